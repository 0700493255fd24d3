// Package authz decide se uma identidade pode agir sobre uma tarefa.
//
// A única regra é a posse: o sujeito da identidade precisa ser igual ao
// owner_id do recurso. Não há papéis nem exceção para administradores.
package authz

import (
	"errors"

	"todo-api/models"
)

// ErrForbidden é devolvido para qualquer negação, sem detalhes do recurso.
var ErrForbidden = errors.New("forbidden")

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Authorize permite apenas quando identity.Subject == ownerID.
func Authorize(identity models.Identity, _ Action, ownerID string) Decision {
	if identity.Subject == "" || ownerID == "" {
		return Deny
	}
	return Decision(identity.Subject == ownerID)
}

// Check é Authorize em forma de erro.
func Check(identity models.Identity, action Action, ownerID string) error {
	if Authorize(identity, action, ownerID) == Deny {
		return &DeniedError{Action: action}
	}
	return nil
}

// CheckCreate compara o dono declarado no rascunho com a identidade.
func CheckCreate(identity models.Identity, draft models.TaskDraft) error {
	return Check(identity, ActionCreate, draft.OwnerID)
}

// DeniedError carrega a ação negada para a mensagem de resposta.
type DeniedError struct {
	Action Action
}

func (e *DeniedError) Error() string {
	switch e.Action {
	case ActionCreate:
		return "Not authorized to create tasks for other users"
	case ActionRead:
		return "Not authorized to access this task"
	case ActionUpdate:
		return "Not authorized to update this task"
	case ActionDelete:
		return "Not authorized to delete this task"
	}
	return "Not authorized"
}

func (e *DeniedError) Unwrap() error { return ErrForbidden }
