// Package service holds the domain logic: session negotiation, account
// operations, and the two encrypted-document services. Handlers call into
// these interfaces; repositories, adapters, and crypto primitives are
// injected at construction.
package service

import (
	"github.com/liquify-app/liquify-server/internal/adapter"
	"github.com/liquify-app/liquify-server/internal/config"
	"github.com/liquify-app/liquify-server/internal/crypto"
	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/store"
)

type Services struct {
	AccountService AccountService
	BudgetService  BudgetService
	LearnService   LearnService
}

func NewServices(
	storages *store.Storages,
	cfg *config.StructuredConfig,
	aggregator adapter.Aggregator,
	mailer adapter.Mailer,
	logger *logger.Logger,
) *Services {
	codec := crypto.NewDocumentCodec(cfg.App.EncryptionSecret)
	verifier := crypto.NewCredentialVerifier()
	negotiator := NewSessionNegotiator(storages.SessionRepository, cfg.App, logger)

	return &Services{
		AccountService: NewAccountService(storages, negotiator, verifier, aggregator, mailer, logger),
		BudgetService:  NewBudgetService(storages, codec, logger),
		LearnService:   NewLearnService(storages, codec, logger),
	}
}
