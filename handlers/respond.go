package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"todo-api/auth"
	"todo-api/authz"
	"todo-api/database"
	"todo-api/models"
	"todo-api/utilities"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Detail string `json:"detail"`
}

// statusFor traduz um erro do núcleo para status HTTP e mensagem ao cliente.
func statusFor(err error) (int, string) {
	var denied *authz.DeniedError
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, auth.ErrExpiredCredential):
		return http.StatusUnauthorized, "Token has expired"
	case errors.Is(err, auth.ErrMissingSubject):
		return http.StatusForbidden, "Token missing subject (sub) claim"
	case errors.Is(err, auth.ErrInvalidCredential):
		return http.StatusForbidden, "Could not validate credentials"
	case errors.As(err, &denied):
		return http.StatusForbidden, denied.Error()
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden, "Not authorized"
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, "Task not found"
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// writeError registra o erro e responde {"detail": ...}.
func writeError(w http.ResponseWriter, r *http.Request, err error, context string) {
	status, detail := statusFor(err)
	utilities.LogError(err, fmt.Sprintf("[%s] %s", RequestIDFromContext(r.Context()), context))

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utilities.LogError(err, "Erro ao codificar resposta JSON")
	}
}

// decodeJSON lê o corpo como JSON; qualquer falha vira ErrValidation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", models.ErrValidation)
		}
		return fmt.Errorf("%w: invalid JSON body: %v", models.ErrValidation, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: request body must contain a single JSON object", models.ErrValidation)
	}
	return nil
}
