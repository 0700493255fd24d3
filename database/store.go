package database

import (
	"context"
	"errors"
	"fmt"

	"todo-api/models"
)

var (
	// ErrNotFound indica que nenhuma tarefa tem o id pedido.
	ErrNotFound = errors.New("task not found")

	// ErrStore indica falha de persistência (conexão, constraint, etc.).
	ErrStore = errors.New("task store failure")
)

// TaskStore é a única fonte de verdade das tarefas. Get, Update e Delete
// não filtram por dono: quem chama faz a checagem de posse.
type TaskStore interface {
	Create(ctx context.Context, draft models.TaskDraft) (models.Task, error)
	Get(ctx context.Context, id int64) (models.Task, error)
	List(ctx context.Context, ownerID string, opts ListOptions) ([]models.Task, error)
	Update(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, id int64) (models.Task, error)
	Ping(ctx context.Context) error
}

// ListOptions filtra e pagina a listagem. Valores zero não filtram.
type ListOptions struct {
	Status   models.Status
	Priority models.Priority
	Offset   int
	Limit    int
}

func (o ListOptions) Validate() error {
	if o.Status != "" && !o.Status.Valid() {
		return fmt.Errorf("%w: invalid status filter %q", models.ErrValidation, o.Status)
	}
	if o.Priority != "" && !o.Priority.Valid() {
		return fmt.Errorf("%w: invalid priority filter %q", models.ErrValidation, o.Priority)
	}
	if o.Offset < 0 || o.Limit < 0 {
		return fmt.Errorf("%w: skip and limit must not be negative", models.ErrValidation)
	}
	return nil
}

func (o ListOptions) matches(t models.Task) bool {
	if o.Status != "" && t.Status != o.Status {
		return false
	}
	if o.Priority != "" && t.Priority != o.Priority {
		return false
	}
	return true
}

// prepareDraft aplica os padrões e valida antes de qualquer escrita.
func prepareDraft(draft models.TaskDraft) (models.TaskDraft, error) {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return draft, err
	}
	return draft, nil
}
