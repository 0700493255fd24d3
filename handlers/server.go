package handlers

import (
	"todo-api/auth"
	"todo-api/database"
)

// Server reúne as dependências dos handlers. Nada aqui é estado global:
// o verificador e o store são injetados por quem monta o servidor.
type Server struct {
	verifier auth.Verifier
	tasks    database.TaskStore
	issuer   *auth.Issuer
}

type ServerOption func(*Server)

// WithDevIssuer habilita os stubs de signup/signin, que emitem tokens sem
// verificar senha. Nunca usar em produção.
func WithDevIssuer(issuer *auth.Issuer) ServerOption {
	return func(s *Server) { s.issuer = issuer }
}

func NewServer(verifier auth.Verifier, tasks database.TaskStore, opts ...ServerOption) *Server {
	s := &Server{verifier: verifier, tasks: tasks}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
