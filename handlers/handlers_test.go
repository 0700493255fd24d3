package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"todo-api/auth"
	"todo-api/database"
	"todo-api/models"
)

const (
	testPrefix = "/api/v1"
	testSecret = "handlers-test-secret"
)

// spyStore conta as mutações para provar que uma negação não chega ao store.
type spyStore struct {
	*database.MemoryTaskStore
	creates, updates, deletes int
	failWith                  error
}

func (s *spyStore) Create(ctx context.Context, d models.TaskDraft) (models.Task, error) {
	s.creates++
	if s.failWith != nil {
		return models.Task{}, s.failWith
	}
	return s.MemoryTaskStore.Create(ctx, d)
}

func (s *spyStore) Update(ctx context.Context, id int64, p models.TaskPatch) (models.Task, error) {
	s.updates++
	return s.MemoryTaskStore.Update(ctx, id, p)
}

func (s *spyStore) Delete(ctx context.Context, id int64) (models.Task, error) {
	s.deletes++
	return s.MemoryTaskStore.Delete(ctx, id)
}

func (s *spyStore) Ping(ctx context.Context) error {
	if s.failWith != nil {
		return s.failWith
	}
	return nil
}

type harness struct {
	t      *testing.T
	router *mux.Router
	issuer *auth.Issuer
	store  *spyStore
}

func newHarness(t *testing.T, devAuth bool) *harness {
	t.Helper()
	verifier, err := auth.NewJWTVerifier([]byte(testSecret))
	require.NoError(t, err)
	issuer, err := auth.NewIssuer([]byte(testSecret), time.Hour)
	require.NoError(t, err)

	store := &spyStore{MemoryTaskStore: database.NewMemoryTaskStore()}

	var opts []ServerOption
	if devAuth {
		opts = append(opts, WithDevIssuer(issuer))
	}
	router := mux.NewRouter()
	RegisterRoutes(router, NewServer(verifier, store, opts...), testPrefix)

	return &harness{t: t, router: router, issuer: issuer, store: store}
}

func (h *harness) token(subject string) string {
	h.t.Helper()
	token, _, err := h.issuer.Issue(models.Identity{Subject: subject})
	require.NoError(h.t, err)
	return token
}

func (h *harness) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, testPrefix+path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

// create cria uma tarefa para subject e devolve o registro.
func (h *harness) create(subject, title string) models.Task {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/tasks/", h.token(subject), map[string]interface{}{
		"title":    title,
		"owner_id": subject,
	})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeTask(h.t, rec)
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) models.Task {
	t.Helper()
	var task models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Detail
}

func taskPath(id int64) string { return fmt.Sprintf("/tasks/%d", id) }

// httpGet chama uma rota fora do prefixo da API.
func httpGet(h *harness, path string) *httptest.ResponseRecorder {
	h.t.Helper()
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}
