package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"todo-api/auth"
	"todo-api/models"
	"todo-api/utilities"
)

type contextKey string

const (
	identityKey  contextKey = "identity"
	requestIDKey contextKey = "requestID"

	RequestIDHeader = "X-Request-ID"
)

// IdentityFromContext devolve a identidade colocada pelo AuthMiddleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

func withIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// RequestIDFromContext devolve o id da requisição, ou "-" se não houver.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return "-"
}

// RequestIDMiddleware reaproveita o X-Request-ID do cliente ou gera um novo.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// LoggingMiddleware registra informações sobre cada requisição HTTP
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Criar um ResponseWriter personalizado para capturar o status code
		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		utilities.LogRequest(RequestIDFromContext(r.Context()), r.Method, r.URL.Path, r.RemoteAddr, rw.statusCode, time.Since(start))
	})
}

// responseWriter é um wrapper para http.ResponseWriter que captura o status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captura o status code antes de escrevê-lo
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// AuthMiddleware verifica o token bearer e coloca a identidade no contexto.
// Nenhum handler protegido roda sem uma identidade válida.
func (s *Server) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, err, "Autenticação falhou: header de autorização ausente")
			return
		}

		identity, err := s.verifier.Verify(r.Context(), token)
		if err != nil {
			writeError(w, r, err, "Autenticação falhou: token rejeitado")
			return
		}

		utilities.LogDebug("Token verificado com sucesso para o sujeito: %s", identity.Subject)
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	}
}
