package store

import "github.com/liquify-app/liquify-server/internal/logger"

// Storages bundles every repository plus the shared connection wrapper so
// the service layer receives one dependency instead of seven.
type Storages struct {
	DB                     *DB
	UserRepository         UserRepository
	VerificationRepository VerificationRepository
	SessionRepository      SessionRepository
	ItemRepository         ItemRepository
	BudgetRepository       BudgetRepository
	LearnRepository        LearnRepository
}

// NewStorages constructs every repository over the given database
// connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		DB:                     db,
		UserRepository:         NewUserRepository(db, logger),
		VerificationRepository: NewVerificationRepository(db, logger),
		SessionRepository:      NewSessionRepository(db, logger),
		ItemRepository:         NewItemRepository(db, logger),
		BudgetRepository:       NewBudgetRepository(db, logger),
		LearnRepository:        NewLearnRepository(db, logger),
	}
}
