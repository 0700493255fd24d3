package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrValidation indica um rascunho ou patch de tarefa malformado.
var ErrValidation = errors.New("validation error")

const TitleMaxLength = 255

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var validStatuses = map[Status]bool{StatusPending: true, StatusInProgress: true, StatusCompleted: true}

func (s Status) Valid() bool { return validStatuses[s] }

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var validPriorities = map[Priority]bool{PriorityLow: true, PriorityMedium: true, PriorityHigh: true}

func (p Priority) Valid() bool { return validPriorities[p] }

// Task é o registro persistido. OwnerID e ID nunca mudam depois da criação.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskDraft é o corpo de criação. OwnerID é o dono declarado pelo cliente.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	OwnerID     string   `json:"owner_id"`
}

// Normalize aplica os valores padrão de status e prioridade.
func (d *TaskDraft) Normalize() {
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
}

// Validate espera um rascunho já normalizado.
func (d TaskDraft) Validate() error {
	if err := validateTitle(d.Title); err != nil {
		return err
	}
	if !d.Status.Valid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, d.Status)
	}
	if !d.Priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", ErrValidation, d.Priority)
	}
	if strings.TrimSpace(d.OwnerID) == "" {
		return fmt.Errorf("%w: owner_id is required", ErrValidation)
	}
	return nil
}

// TaskPatch descreve uma atualização parcial: campos nil ficam intactos.
// Não existe campo para id ou owner_id.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
}

func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", ErrValidation, *p.Priority)
	}
	return nil
}

// Empty informa se o patch não altera nenhum campo.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil
}

// Apply copia os campos presentes para t e atualiza UpdatedAt.
func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		t.Description = &d
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	t.UpdatedAt = now
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrValidation, TitleMaxLength)
	}
	return nil
}
