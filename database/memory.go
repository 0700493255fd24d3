package database

import (
	"context"
	"sync"
	"time"

	"todo-api/models"
)

// MemoryTaskStore mantém as tarefas em memória, na ordem de inserção.
// Serve para desenvolvimento local (STORE_BACKEND=memory) e para os testes.
type MemoryTaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]models.Task
	order  []int64
	now    func() time.Time
}

var _ TaskStore = (*MemoryTaskStore)(nil)

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		nextID: 1,
		tasks:  make(map[int64]models.Task),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock troca o relógio usado nos timestamps.
func (s *MemoryTaskStore) WithClock(now func() time.Time) *MemoryTaskStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *MemoryTaskStore) Create(_ context.Context, draft models.TaskDraft) (models.Task, error) {
	draft, err := prepareDraft(draft)
	if err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task := models.Task{
		ID:          s.nextID,
		Title:       draft.Title,
		Description: cloneString(draft.Description),
		Status:      draft.Status,
		Priority:    draft.Priority,
		OwnerID:     draft.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)
	return cloneTask(task), nil
}

func (s *MemoryTaskStore) Get(_ context.Context, id int64) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return cloneTask(task), nil
}

func (s *MemoryTaskStore) List(_ context.Context, ownerID string, opts ListOptions) ([]models.Task, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := []models.Task{}
	skipped := 0
	for _, id := range s.order {
		task := s.tasks[id]
		if task.OwnerID != ownerID || !opts.matches(task) {
			continue
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		if opts.Limit > 0 && len(tasks) == opts.Limit {
			break
		}
		tasks = append(tasks, cloneTask(task))
	}
	return tasks, nil
}

func (s *MemoryTaskStore) Update(_ context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	if err := patch.Validate(); err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	patch.Apply(&task, s.now())
	s.tasks[id] = task
	return cloneTask(task), nil
}

func (s *MemoryTaskStore) Delete(_ context.Context, id int64) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return cloneTask(task), nil
}

func (s *MemoryTaskStore) Ping(context.Context) error { return nil }

func cloneTask(t models.Task) models.Task {
	t.Description = cloneString(t.Description)
	return t
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
