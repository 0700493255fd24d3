package main

import (
	"context"
	"fmt"
	"log"

	"todo-api/config"
	"todo-api/utilities"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

// run devolve o erro em vez de encerrar o processo, para que app.Close
// sempre execute.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("erro ao carregar configuração: %w", err)
	}
	utilities.InitLogger(cfg.LogDebug)

	app, err := buildApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("erro ao inicializar a aplicação: %w", err)
	}
	defer app.Close()

	return LoadRoutes(cfg, app)
}
