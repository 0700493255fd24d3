package main

import (
	"log"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"todo-api/config"
	"todo-api/handlers"
	"todo-api/utilities"
)

// newHandler monta o router com CORS e recuperação de panics.
func newHandler(cfg config.Config, app *application) http.Handler {
	r := mux.NewRouter()
	handlers.RegisterRoutes(r, app.server, cfg.APIPrefix)

	// Configuração do CORS
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization", handlers.RequestIDHeader})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	origins := gorillahandlers.AllowedOrigins(cfg.CORSAllowedOrigins)
	utilities.LogInfo("Configurando CORS com origens permitidas: %v", cfg.CORSAllowedOrigins)

	recovery := gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(utilities.ErrorLogger),
		gorillahandlers.PrintRecoveryStack(true),
	)

	return recovery(gorillahandlers.CORS(headers, methods, origins)(r))
}

func LoadRoutes(cfg config.Config, app *application) error {
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           newHandler(cfg, app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	utilities.LogInfo("Servidor iniciado na porta %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Servidor encerrado com erro: %v", err)
		return err
	}
	return nil
}
