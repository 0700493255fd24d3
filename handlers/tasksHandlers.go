package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"todo-api/authz"
	"todo-api/database"
	"todo-api/models"
	"todo-api/utilities"
)

type deleteTaskResponse struct {
	OK   bool        `json:"ok"`
	Task models.Task `json:"task"`
}

// CreateTaskHandler cria uma tarefa para o próprio usuário autenticado.
// O owner_id declarado no corpo precisa ser o sujeito do token.
func (s *Server) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando criação de nova tarefa")
	identity := mustIdentity(r)

	var draft models.TaskDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, r, err, "Erro ao decodificar JSON da tarefa")
		return
	}

	draft.Normalize()
	if err := draft.Validate(); err != nil {
		writeError(w, r, err, "Validação da tarefa falhou")
		return
	}

	if err := authz.CheckCreate(identity, draft); err != nil {
		writeError(w, r, err, fmt.Sprintf("Usuário %s tentou criar tarefa para outro dono", identity.Subject))
		return
	}

	task, err := s.tasks.Create(r.Context(), draft)
	if err != nil {
		writeError(w, r, err, "Erro ao inserir tarefa no banco de dados")
		return
	}

	utilities.LogInfo("Tarefa criada com sucesso: %s (ID: %d)", task.Title, task.ID)
	writeJSON(w, http.StatusOK, task)
}

// ListTasksHandler lista apenas as tarefas do usuário autenticado.
func (s *Server) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando listagem de tarefas")
	identity := mustIdentity(r)

	opts, err := listOptionsFromQuery(r)
	if err != nil {
		writeError(w, r, err, "Parâmetros de listagem inválidos")
		return
	}

	tasks, err := s.tasks.List(r.Context(), identity.Subject, opts)
	if err != nil {
		writeError(w, r, err, "Erro ao buscar tarefas no banco de dados")
		return
	}

	utilities.LogInfo("Tarefas listadas com sucesso - total: %d", len(tasks))
	writeJSON(w, http.StatusOK, tasks)
}

// GetTaskHandler devolve uma tarefa do próprio usuário.
func (s *Server) GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadAuthorizedTask(w, r, authz.ActionRead)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// UpdateTaskHandler aplica uma atualização parcial. id e owner_id não mudam.
func (s *Server) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando atualização de tarefa")

	var patch models.TaskPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err, "Erro ao decodificar JSON de atualização")
		return
	}
	if err := patch.Validate(); err != nil {
		writeError(w, r, err, "Validação da atualização falhou")
		return
	}

	current, ok := s.loadAuthorizedTask(w, r, authz.ActionUpdate)
	if !ok {
		return
	}

	task, err := s.tasks.Update(r.Context(), current.ID, patch)
	if err != nil {
		writeError(w, r, err, "Erro ao atualizar tarefa no banco de dados")
		return
	}

	utilities.LogInfo("Tarefa atualizada com sucesso: %d", task.ID)
	writeJSON(w, http.StatusOK, task)
}

// DeleteTaskHandler remove a tarefa definitivamente.
func (s *Server) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando exclusão de tarefa")

	current, ok := s.loadAuthorizedTask(w, r, authz.ActionDelete)
	if !ok {
		return
	}

	task, err := s.tasks.Delete(r.Context(), current.ID)
	if err != nil {
		writeError(w, r, err, "Erro ao excluir tarefa do banco de dados")
		return
	}

	utilities.LogInfo("Tarefa excluída com sucesso: %d", task.ID)
	writeJSON(w, http.StatusOK, deleteTaskResponse{OK: true, Task: task})
}

// loadAuthorizedTask executa os dois passos para recursos endereçados por id:
// primeiro busca (404 se não existe), depois verifica a posse (403).
func (s *Server) loadAuthorizedTask(w http.ResponseWriter, r *http.Request, action authz.Action) (models.Task, bool) {
	identity := mustIdentity(r)

	id, err := taskIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "ID de tarefa inválido")
		return models.Task{}, false
	}

	task, err := s.fetchTask(r.Context(), id)
	if err != nil {
		writeError(w, r, err, fmt.Sprintf("Erro ao buscar tarefa %d", id))
		return models.Task{}, false
	}

	if err := authz.Check(identity, action, task.OwnerID); err != nil {
		writeError(w, r, err, fmt.Sprintf("Usuário %s sem permissão (%s) na tarefa %d", identity.Subject, action, id))
		return models.Task{}, false
	}
	return task, true
}

func (s *Server) fetchTask(ctx context.Context, id int64) (models.Task, error) {
	utilities.LogDebug("Buscando tarefa %d", id)
	return s.tasks.Get(ctx, id)
}

// taskIDFromRequest lê {id}; a rota já garante só dígitos, então um valor
// que não cabe em int64 não pode existir e vira ErrNotFound.
func taskIDFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, database.ErrNotFound
	}
	return id, nil
}

func listOptionsFromQuery(r *http.Request) (database.ListOptions, error) {
	q := r.URL.Query()
	opts := database.ListOptions{
		Status:   models.Status(q.Get("status")),
		Priority: models.Priority(q.Get("priority")),
	}

	for _, param := range []struct {
		key string
		dst *int
	}{
		{"skip", &opts.Offset},
		{"limit", &opts.Limit},
	} {
		key, dst := param.key, param.dst
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("%w: %s must be an integer", models.ErrValidation, key)
		}
		*dst = n
	}
	return opts, opts.Validate()
}

// mustIdentity só é chamado atrás do AuthMiddleware.
func mustIdentity(r *http.Request) models.Identity {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		panic(errors.New("handlers: identity missing from request context"))
	}
	return identity
}
