package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"todo-api/models"
	"todo-api/utilities"
)

const taskColumns = "id, title, description, status, priority, owner_id, created_at, updated_at"

// PostgresTaskStore guarda tarefas no PostgreSQL. Cada operação é um único
// comando SQL, logo uma única transação.
type PostgresTaskStore struct {
	db *sql.DB
}

var _ TaskStore = (*PostgresTaskStore)(nil)

func NewPostgresTaskStore(db *sql.DB) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

func (s *PostgresTaskStore) Create(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	draft, err := prepareDraft(draft)
	if err != nil {
		return models.Task{}, err
	}

	utilities.LogDebug("Inserindo nova tarefa no banco de dados para %s", draft.OwnerID)
	query := `INSERT INTO tasks (title, description, status, priority, owner_id)
              VALUES ($1, $2, $3, $4, $5) RETURNING ` + taskColumns
	task, err := scanTask(s.db.QueryRowContext(ctx, query,
		draft.Title,
		nullString(draft.Description),
		string(draft.Status),
		string(draft.Priority),
		draft.OwnerID,
	))
	if err != nil {
		return models.Task{}, storeError("create", err)
	}
	return task, nil
}

func (s *PostgresTaskStore) Get(ctx context.Context, id int64) (models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, storeError("get", err)
	}
	return task, nil
}

func (s *PostgresTaskStore) List(ctx context.Context, ownerID string, opts ListOptions) ([]models.Task, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1`
	params := []interface{}{ownerID}
	paramCount := 2

	if opts.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", paramCount)
		params = append(params, string(opts.Status))
		paramCount++
	}
	if opts.Priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", paramCount)
		params = append(params, string(opts.Priority))
		paramCount++
	}

	query += " ORDER BY id ASC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", paramCount)
		params = append(params, opts.Limit)
		paramCount++
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", paramCount)
		params = append(params, opts.Offset)
	}

	utilities.LogDebug("Buscando tarefas de %s - status: %q, prioridade: %q", ownerID, opts.Status, opts.Priority)
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, storeError("list", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, storeError("list", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list", err)
	}
	return tasks, nil
}

// Update monta o SET só com os campos presentes no patch. updated_at é
// sempre renovado, mesmo com patch vazio.
func (s *PostgresTaskStore) Update(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	if err := patch.Validate(); err != nil {
		return models.Task{}, err
	}

	query := "UPDATE tasks SET "
	params := []interface{}{}
	paramCount := 1

	if patch.Title != nil {
		query += fmt.Sprintf("title = $%d, ", paramCount)
		params = append(params, *patch.Title)
		paramCount++
	}
	if patch.Description != nil {
		query += fmt.Sprintf("description = $%d, ", paramCount)
		params = append(params, *patch.Description)
		paramCount++
	}
	if patch.Status != nil {
		query += fmt.Sprintf("status = $%d, ", paramCount)
		params = append(params, string(*patch.Status))
		paramCount++
	}
	if patch.Priority != nil {
		query += fmt.Sprintf("priority = $%d, ", paramCount)
		params = append(params, string(*patch.Priority))
		paramCount++
	}

	query += "updated_at = NOW() WHERE id = $" + strconv.Itoa(paramCount) + " RETURNING " + taskColumns
	params = append(params, id)

	utilities.LogDebug("Atualizando tarefa %d", id)
	task, err := scanTask(s.db.QueryRowContext(ctx, query, params...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, storeError("update", err)
	}
	return task, nil
}

func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) (models.Task, error) {
	query := `DELETE FROM tasks WHERE id = $1 RETURNING ` + taskColumns
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, storeError("delete", err)
	}
	return task, nil
}

func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storeError("ping", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		task        models.Task
		description sql.NullString
		status      string
		priority    string
	)
	err := row.Scan(
		&task.ID, &task.Title, &description, &status, &priority,
		&task.OwnerID, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}
	if description.Valid {
		task.Description = &description.String
	}
	task.Status = models.Status(status)
	task.Priority = models.Priority(priority)
	return task, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// storeError registra o código SQLSTATE quando disponível e embrulha em ErrStore.
func storeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		utilities.LogError(err, fmt.Sprintf("Erro do PostgreSQL em %s (código %s, %s)", op, pqErr.Code, pqErr.Code.Name()))
	} else {
		utilities.LogError(err, "Erro no banco de dados em "+op)
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
