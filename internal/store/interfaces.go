// Package store implements the PostgreSQL persistence layer: one repository
// per table plus the connection/transaction helpers that enforce the
// acquire-use-release discipline around every query.
package store

import (
	"context"
	"database/sql"

	"github.com/liquify-app/liquify-server/models"
)

// Querier is the subset of database/sql operations shared by *sql.DB,
// *sql.Conn, and *sql.Tx. Repository methods that must participate in a
// caller-managed transaction accept a Querier instead of touching the pool
// directly.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository handles account rows in the "users" table.
type UserRepository interface {
	// FindUserByEmail returns the user whose email matches, or
	// [ErrUserNotFound].
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the user with the given id, or [ErrUserNotFound].
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// SetValid marks the user's email as verified. It runs on the supplied
	// Querier so callers can pair it with the hash deletion in one
	// transaction.
	SetValid(ctx context.Context, q Querier, userID int64) error
}

// VerificationRepository handles pending email-verification hashes.
type VerificationRepository interface {
	// UpsertHash stores the verification hash for the user, replacing any
	// previous one.
	UpsertHash(ctx context.Context, userID int64, hash string) error

	// GetHash returns the pending hash for the user, or
	// [ErrVerificationNotFound].
	GetHash(ctx context.Context, userID int64) (string, error)

	// DeleteHash removes the pending hash. It runs on the supplied Querier
	// so callers can pair it with SetValid in one transaction. Deleting a
	// hash that does not exist is not an error.
	DeleteHash(ctx context.Context, q Querier, userID int64) error
}

// SessionRepository handles device-bound session rows. The table carries a
// UNIQUE(user_id, fingerprint) constraint; CreateSession surfaces a
// violation as [ErrSessionExists] so the negotiation loop can converge on
// the winning row.
type SessionRepository interface {
	// CreateSession inserts a new session row. Returns [ErrSessionExists]
	// when another session already holds the (user, fingerprint) slot.
	CreateSession(ctx context.Context, session models.Session) error

	// FindSession returns the session for (userID, fingerprint), or
	// [ErrSessionNotFound].
	FindSession(ctx context.Context, userID int64, fingerprint string) (models.Session, error)

	// FindSessionByID resolves a presented session token to its session
	// row, or [ErrSessionNotFound].
	FindSessionByID(ctx context.Context, sessionID string) (models.Session, error)

	// DeleteSession removes the session row for (userID, fingerprint).
	// Deleting an absent session is not an error.
	DeleteSession(ctx context.Context, userID int64, fingerprint string) error
}

// ItemRepository handles linked aggregator items.
type ItemRepository interface {
	// SaveItem persists a newly exchanged item for the user.
	SaveItem(ctx context.Context, item models.Item) error

	// GetItems returns all active items linked to the user. An empty slice
	// is a valid result.
	GetItems(ctx context.Context, userID int64) ([]models.Item, error)
}

// BudgetRepository handles encrypted budget blobs.
type BudgetRepository interface {
	// CreateBudget inserts an encrypted budget row.
	CreateBudget(ctx context.Context, row models.BudgetRow) error

	// GetBudget returns the row for (userID, budgetID), or
	// [ErrBudgetNotFound].
	GetBudget(ctx context.Context, userID int64, budgetID string) (models.BudgetRow, error)

	// ListBudgets returns the user's budget rows. A non-empty budgetIDs
	// slice narrows the result to those ids; nil returns everything.
	ListBudgets(ctx context.Context, userID int64, budgetIDs []string) ([]models.BudgetRow, error)

	// UpdateBudget replaces the encrypted blob for (userID, budgetID).
	// Returns [ErrBudgetNotFound] when no such row exists.
	UpdateBudget(ctx context.Context, row models.BudgetRow) error
}

// LearnRepository handles per-user learning-progress blobs.
type LearnRepository interface {
	// GetLearn returns the encrypted progress blob for the user, or
	// [ErrLearnNotFound].
	GetLearn(ctx context.Context, userID int64) (string, error)

	// CreateLearn inserts the progress blob for a user seen for the first
	// time.
	CreateLearn(ctx context.Context, userID int64, data string) error

	// UpdateLearn replaces the progress blob. Returns [ErrLearnNotFound]
	// when the user has no row yet.
	UpdateLearn(ctx context.Context, userID int64, data string) error
}
