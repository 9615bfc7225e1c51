package service

import (
	"context"

	"github.com/liquify-app/liquify-server/models"
)

// SessionNegotiator resolves (user, fingerprint) pairs to exactly one
// session row, converging under concurrent logins from the same device.
type SessionNegotiator interface {
	// Negotiate returns the session identifier for (userID, fingerprint),
	// creating the session row if the device has none. Concurrent callers
	// for the same pair all receive the same identifier.
	Negotiate(ctx context.Context, userID int64, fingerprint string) (string, error)
}

// AccountService owns the user-facing identity operations: login, logout,
// email verification, and linked-account management.
type AccountService interface {
	Login(ctx context.Context, email, password, fingerprint string) (models.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	ResendVerification(ctx context.Context, sessionID string) error
	Verify(ctx context.Context, sessionID, code string) error
	Account(ctx context.Context, sessionID string) (models.AccountSummary, error)
	SaveAccessToken(ctx context.Context, sessionID, accessToken, itemID string) ([]models.Item, error)
	ExchangeToken(ctx context.Context, sessionID, publicToken string) ([]models.Item, error)
}

// BudgetService owns CRUD-with-encryption over budget documents.
type BudgetService interface {
	All(ctx context.Context, sessionID string, candidates []models.BudgetRef) ([]models.BudgetDocument, error)
	Get(ctx context.Context, sessionID, budgetID string) (models.BudgetDocument, error)
	Create(ctx context.Context, sessionID string, req models.BudgetCreateRequest) (models.BudgetDocument, error)
	Edit(ctx context.Context, sessionID string, req models.BudgetEditRequest) (models.BudgetDocument, error)
}

// LearnService owns the per-user learning-progress document.
type LearnService interface {
	Get(ctx context.Context, sessionID string) (models.LearnDocument, error)
	Update(ctx context.Context, sessionID, category, part string, score int) (models.LearnDocument, error)
}
