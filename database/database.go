package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"todo-api/config"
	"todo-api/utilities"
)

// ConnectPostgres abre a conexão e confirma que o banco responde.
func ConnectPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		utilities.LogError(err, "Erro ao abrir conexão com o banco de dados")
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		utilities.LogError(err, "Erro ao conectar ao banco de dados")
		db.Close()
		return nil, err
	}

	utilities.LogInfo("Conectado ao PostgreSQL com sucesso!")
	return db, nil
}
