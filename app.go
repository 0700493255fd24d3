package main

import (
	"context"
	"database/sql"
	"fmt"

	"todo-api/auth"
	"todo-api/config"
	"todo-api/database"
	"todo-api/firebase"
	"todo-api/handlers"
	"todo-api/utilities"
)

// application guarda o que precisa ser fechado ao encerrar.
type application struct {
	server *handlers.Server
	db     *sql.DB
}

func (a *application) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

func buildApp(ctx context.Context, cfg config.Config) (*application, error) {
	app := &application{}

	store, err := buildStore(ctx, cfg, app)
	if err != nil {
		return nil, err
	}

	verifier, err := buildVerifier(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	var opts []handlers.ServerOption
	if cfg.Auth.EnableDevAuth {
		issuer, err := auth.NewIssuer([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)
		if err != nil {
			app.Close()
			return nil, err
		}
		opts = append(opts, handlers.WithDevIssuer(issuer))
		utilities.LogWarn("ENABLE_DEV_AUTH ativo: /auth/signup e /auth/signin emitem tokens sem verificar senha")
	}

	app.server = handlers.NewServer(verifier, store, opts...)
	return app, nil
}

func buildStore(ctx context.Context, cfg config.Config, app *application) (database.TaskStore, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		utilities.LogInfo("Usando store em memória: os dados não sobrevivem a reinícios")
		return database.NewMemoryTaskStore(), nil
	case config.BackendPostgres:
		db, err := database.ConnectPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
		}
		app.db = db
		if err := database.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		return database.NewPostgresTaskStore(db), nil
	}
	return nil, fmt.Errorf("store_backend desconhecido: %q", cfg.StoreBackend)
}

func buildVerifier(ctx context.Context, cfg config.Config) (auth.Verifier, error) {
	switch cfg.Auth.Provider {
	case config.ProviderJWT:
		return auth.NewJWTVerifier([]byte(cfg.Auth.Secret))
	case config.ProviderFirebase:
		return firebase.NewVerifier(ctx, cfg.Auth.FirebaseCredentialsPath)
	}
	return nil, fmt.Errorf("auth provider desconhecido: %q", cfg.Auth.Provider)
}
