package handlers

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes monta as rotas da API sob prefix (ex.: "/api/v1").
func RegisterRoutes(r *mux.Router, s *Server, prefix string) {
	r.Use(RequestIDMiddleware, LoggingMiddleware)

	// --- Rotas públicas ---
	r.HandleFunc("/health", s.HealthHandler).Methods("GET")

	api := r
	if prefix != "" && prefix != "/" {
		api = r.PathPrefix(prefix).Subrouter()
	}

	api.HandleFunc("/utils/health", s.UtilsHealthHandler).Methods("GET")
	api.HandleFunc("/utils/me", s.AuthMiddleware(s.MeHandler)).Methods("GET")

	// --- Rotas de autenticação de desenvolvimento ---
	if s.issuer != nil {
		api.HandleFunc("/auth/signup", s.SignUpHandler).Methods("POST")
		api.HandleFunc("/auth/signin", s.SignInHandler).Methods("POST")
	}

	// --- Rotas de tarefas (protegidas) ---
	for _, path := range []string{"/tasks", "/tasks/"} {
		api.HandleFunc(path, s.AuthMiddleware(s.CreateTaskHandler)).Methods("POST")
		api.HandleFunc(path, s.AuthMiddleware(s.ListTasksHandler)).Methods("GET")
	}
	api.HandleFunc("/tasks/{id:[0-9]+}", s.AuthMiddleware(s.GetTaskHandler)).Methods("GET")
	api.HandleFunc("/tasks/{id:[0-9]+}", s.AuthMiddleware(s.UpdateTaskHandler)).Methods("PATCH", "PUT")
	api.HandleFunc("/tasks/{id:[0-9]+}", s.AuthMiddleware(s.DeleteTaskHandler)).Methods("DELETE")
}
