package main

import (
	"context"
	"fmt"

	"github.com/liquify-app/liquify-server/internal/adapter"
	"github.com/liquify-app/liquify-server/internal/config"
	handler "github.com/liquify-app/liquify-server/internal/handler/http"
	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/server"
	"github.com/liquify-app/liquify-server/internal/service"
	"github.com/liquify-app/liquify-server/internal/store"
	"github.com/liquify-app/liquify-server/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("liquify-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	aggregator := adapter.NewAggregatorAdapter(adapter.AggregatorConfig{
		BaseURL:  cfg.Aggregator.BaseURL,
		ClientID: cfg.Aggregator.ClientID,
		Secret:   cfg.Aggregator.Secret,
		Timeout:  cfg.Aggregator.Timeout,
	})
	mailer := adapter.NewMailerAdapter(adapter.MailerConfig{
		BaseURL: cfg.Mail.BaseURL,
		APIKey:  cfg.Mail.APIKey,
		Sender:  cfg.Mail.Sender,
		Timeout: cfg.Mail.Timeout,
	})

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, cfg, aggregator, mailer, log)
	handlers := handler.NewHandler(services, log)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
