package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/models"
)

func strPtr(s string) *string { return &s }

func assertSameTask(t *testing.T, want, got models.Task) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.Priority, got.Priority)
	assert.Equal(t, want.OwnerID, got.OwnerID)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at %v != %v", want.UpdatedAt, got.UpdatedAt)
}

// runStoreContract valida o comportamento comum a toda implementação de TaskStore.
func runStoreContract(t *testing.T, newStore func(t *testing.T) TaskStore) {
	ctx := context.Background()

	t.Run("create assigns id, defaults and timestamps", func(t *testing.T) {
		s := newStore(t)
		task, err := s.Create(ctx, models.TaskDraft{Title: "T", OwnerID: "user"})
		require.NoError(t, err)

		assert.NotZero(t, task.ID)
		assert.Equal(t, "T", task.Title)
		assert.Nil(t, task.Description)
		assert.Equal(t, models.StatusPending, task.Status)
		assert.Equal(t, models.PriorityMedium, task.Priority)
		assert.Equal(t, "user", task.OwnerID)
		assert.False(t, task.CreatedAt.IsZero())
		assert.True(t, task.CreatedAt.Equal(task.UpdatedAt))

		got, err := s.Get(ctx, task.ID)
		require.NoError(t, err)
		assertSameTask(t, task, got)
	})

	t.Run("ids are unique across owners", func(t *testing.T) {
		s := newStore(t)
		a, err := s.Create(ctx, models.TaskDraft{Title: "A", OwnerID: "alice"})
		require.NoError(t, err)
		b, err := s.Create(ctx, models.TaskDraft{Title: "B", OwnerID: "bob"})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("invalid drafts are never persisted", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, models.TaskDraft{Title: "T", OwnerID: "user", Status: "Done"})
		assert.ErrorIs(t, err, models.ErrValidation)
		_, err = s.Create(ctx, models.TaskDraft{Title: "T", OwnerID: "user", Priority: "urgent"})
		assert.ErrorIs(t, err, models.ErrValidation)
		_, err = s.Create(ctx, models.TaskDraft{OwnerID: "user"})
		assert.ErrorIs(t, err, models.ErrValidation)

		tasks, err := s.List(ctx, "user", ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("list is scoped to owner in insertion order", func(t *testing.T) {
		s := newStore(t)
		for _, d := range []models.TaskDraft{
			{Title: "u1", OwnerID: "user"},
			{Title: "a1", OwnerID: "admin"},
			{Title: "u2", OwnerID: "user", Status: models.StatusCompleted},
			{Title: "a2", OwnerID: "admin"},
			{Title: "u3", OwnerID: "user", Priority: models.PriorityHigh},
		} {
			_, err := s.Create(ctx, d)
			require.NoError(t, err)
		}

		tasks, err := s.List(ctx, "user", ListOptions{})
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "u1", tasks[0].Title)
		assert.Equal(t, "u2", tasks[1].Title)
		assert.Equal(t, "u3", tasks[2].Title)
		for _, task := range tasks {
			assert.Equal(t, "user", task.OwnerID)
		}

		nobody, err := s.List(ctx, "nobody", ListOptions{})
		require.NoError(t, err)
		assert.NotNil(t, nobody)
		assert.Empty(t, nobody)
	})

	t.Run("list filters and paginates", func(t *testing.T) {
		s := newStore(t)
		for i, status := range []models.Status{models.StatusPending, models.StatusCompleted, models.StatusPending, models.StatusPending} {
			_, err := s.Create(ctx, models.TaskDraft{Title: string(rune('a' + i)), OwnerID: "user", Status: status})
			require.NoError(t, err)
		}

		pending, err := s.List(ctx, "user", ListOptions{Status: models.StatusPending})
		require.NoError(t, err)
		assert.Len(t, pending, 3)

		page, err := s.List(ctx, "user", ListOptions{Status: models.StatusPending, Offset: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "c", page[0].Title)

		_, err = s.List(ctx, "user", ListOptions{Priority: "urgent"})
		assert.ErrorIs(t, err, models.ErrValidation)
		_, err = s.List(ctx, "user", ListOptions{Limit: -1})
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("update is partial and keeps owner", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, models.TaskDraft{Title: "T", Description: strPtr("d"), OwnerID: "user"})
		require.NoError(t, err)

		status := models.StatusInProgress
		updated, err := s.Update(ctx, created.ID, models.TaskPatch{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "T", updated.Title)
		assert.Equal(t, strPtr("d"), updated.Description)
		assert.Equal(t, models.StatusInProgress, updated.Status)
		assert.Equal(t, models.PriorityMedium, updated.Priority)
		assert.Equal(t, "user", updated.OwnerID)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assertSameTask(t, updated, got)
	})

	t.Run("empty patch only refreshes updated_at", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, models.TaskDraft{Title: "T", OwnerID: "user", Priority: models.PriorityLow})
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, models.TaskPatch{})
		require.NoError(t, err)

		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, created.Status, updated.Status)
		assert.Equal(t, created.Priority, updated.Priority)
		assert.Equal(t, created.OwnerID, updated.OwnerID)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	})

	t.Run("invalid patch leaves record unchanged", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, models.TaskDraft{Title: "T", OwnerID: "user"})
		require.NoError(t, err)

		bad := models.Status("Done")
		title := "changed"
		_, err = s.Update(ctx, created.ID, models.TaskPatch{Title: &title, Status: &bad})
		assert.ErrorIs(t, err, models.ErrValidation)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assertSameTask(t, created, got)
	})

	t.Run("missing ids are not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, 999999)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.Update(ctx, 999999, models.TaskPatch{})
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.Delete(ctx, 999999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete removes permanently", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, models.TaskDraft{Title: "T", OwnerID: "user"})
		require.NoError(t, err)

		deleted, err := s.Delete(ctx, created.ID)
		require.NoError(t, err)
		assertSameTask(t, created, deleted)

		_, err = s.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		tasks, err := s.List(ctx, "user", ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}
