package database

import (
	"context"
	"database/sql"
	"fmt"

	"todo-api/utilities"
)

// Schema cria a tabela de tarefas e o índice por dono. Sem framework de
// migração: os comandos são idempotentes.
const Schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          BIGSERIAL PRIMARY KEY,
	title       VARCHAR(255) NOT NULL,
	description TEXT,
	status      VARCHAR(20) NOT NULL DEFAULT 'pending'
	            CHECK (status IN ('pending', 'in_progress', 'completed')),
	priority    VARCHAR(10) NOT NULL DEFAULT 'medium'
	            CHECK (priority IN ('low', 'medium', 'high')),
	owner_id    TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS ix_tasks_owner_id ON tasks (owner_id);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	utilities.LogDebug("Garantindo schema da tabela tasks")
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("erro ao criar schema: %w", err)
	}
	return nil
}
