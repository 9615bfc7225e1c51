package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liquify-app/liquify-server/internal/crypto"
	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/store"
	"github.com/liquify-app/liquify-server/models"
)

// budgetService is the concrete implementation of [BudgetService]. Budgets
// are stored as one encrypted blob per row; this layer owns the
// encrypt/decrypt boundary and the document timestamps.
type budgetService struct {
	sessionRepository store.SessionRepository
	budgetRepository  store.BudgetRepository
	codec             crypto.DocumentCodec
	logger            *logger.Logger
}

// NewBudgetService constructs a [BudgetService] wired to the given
// repositories and document codec.
func NewBudgetService(storages *store.Storages, codec crypto.DocumentCodec, logger *logger.Logger) BudgetService {
	return &budgetService{
		sessionRepository: storages.SessionRepository,
		budgetRepository:  storages.BudgetRepository,
		codec:             codec,
		logger:            logger,
	}
}

// All returns every budget the session's user owns, decrypted.
//
// The client-supplied candidate list is accepted but not applied: the
// endpoint has always returned the full set regardless of the filter, and
// clients depend on that. The repository supports narrowing by id, so
// honoring the filter is a one-line change once the product decides to.
func (b *budgetService) All(ctx context.Context, sessionID string, candidates []models.BudgetRef) ([]models.BudgetDocument, error) {
	userID, err := b.resolveUserID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := b.budgetRepository.ListBudgets(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("budget listing ended with error: %w", err)
	}

	documents := make([]models.BudgetDocument, 0, len(rows))
	for _, row := range rows {
		var document models.BudgetDocument
		if err := b.codec.Decrypt(row.BudgetData, &document); err != nil {
			return nil, fmt.Errorf("budget decryption ended with error: %w", err)
		}
		documents = append(documents, document)
	}

	return documents, nil
}

// Get returns one decrypted budget, or [ErrBudgetNotFound].
func (b *budgetService) Get(ctx context.Context, sessionID, budgetID string) (models.BudgetDocument, error) {
	userID, err := b.resolveUserID(ctx, sessionID)
	if err != nil {
		return models.BudgetDocument{}, err
	}

	row, err := b.budgetRepository.GetBudget(ctx, userID, budgetID)
	if err != nil {
		if errors.Is(err, store.ErrBudgetNotFound) {
			return models.BudgetDocument{}, ErrBudgetNotFound
		}
		return models.BudgetDocument{}, fmt.Errorf("budget lookup ended with error: %w", err)
	}

	var document models.BudgetDocument
	if err := b.codec.Decrypt(row.BudgetData, &document); err != nil {
		return models.BudgetDocument{}, fmt.Errorf("budget decryption ended with error: %w", err)
	}

	return document, nil
}

// Create builds a new budget document from the validated request, assigns
// it a fresh id and timestamps, encrypts it, and inserts the row. Any
// budget id or creation date the client supplied is discarded.
func (b *budgetService) Create(ctx context.Context, sessionID string, req models.BudgetCreateRequest) (models.BudgetDocument, error) {
	log := logger.FromContext(ctx)

	userID, err := b.resolveUserID(ctx, sessionID)
	if err != nil {
		return models.BudgetDocument{}, err
	}

	now := time.Now().UTC()
	document := models.BudgetDocument{
		BudgetID:     uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Allocations:  req.Allocations,
		DateCreated:  now,
		DateModified: now,
	}

	blob, err := b.codec.Encrypt(document)
	if err != nil {
		return models.BudgetDocument{}, fmt.Errorf("budget encryption ended with error: %w", err)
	}

	row := models.BudgetRow{
		UserID:     userID,
		BudgetID:   document.BudgetID,
		BudgetData: blob,
	}
	if err := b.budgetRepository.CreateBudget(ctx, row); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("budget creation ended with error")
		return models.BudgetDocument{}, fmt.Errorf("budget creation ended with error: %w", err)
	}

	return document, nil
}

// Edit replaces a budget document wholesale: the stored creation date is
// preserved, the modification date is refreshed, and the re-encrypted blob
// overwrites the row. Returns [ErrBudgetNotFound] when the user owns no
// budget with the given id.
func (b *budgetService) Edit(ctx context.Context, sessionID string, req models.BudgetEditRequest) (models.BudgetDocument, error) {
	userID, err := b.resolveUserID(ctx, sessionID)
	if err != nil {
		return models.BudgetDocument{}, err
	}

	existingRow, err := b.budgetRepository.GetBudget(ctx, userID, req.BudgetID)
	if err != nil {
		if errors.Is(err, store.ErrBudgetNotFound) {
			return models.BudgetDocument{}, ErrBudgetNotFound
		}
		return models.BudgetDocument{}, fmt.Errorf("budget lookup ended with error: %w", err)
	}

	var existing models.BudgetDocument
	if err := b.codec.Decrypt(existingRow.BudgetData, &existing); err != nil {
		return models.BudgetDocument{}, fmt.Errorf("budget decryption ended with error: %w", err)
	}

	document := models.BudgetDocument{
		BudgetID:     req.BudgetID,
		Name:         req.Name,
		Description:  req.Description,
		Allocations:  req.Allocations,
		DateCreated:  existing.DateCreated,
		DateModified: time.Now().UTC(),
	}

	blob, err := b.codec.Encrypt(document)
	if err != nil {
		return models.BudgetDocument{}, fmt.Errorf("budget encryption ended with error: %w", err)
	}

	row := models.BudgetRow{
		UserID:     userID,
		BudgetID:   req.BudgetID,
		BudgetData: blob,
	}
	if err := b.budgetRepository.UpdateBudget(ctx, row); err != nil {
		if errors.Is(err, store.ErrBudgetNotFound) {
			return models.BudgetDocument{}, ErrBudgetNotFound
		}
		return models.BudgetDocument{}, fmt.Errorf("budget update ended with error: %w", err)
	}

	return document, nil
}

// resolveUserID maps a session identifier to its owning user id.
func (b *budgetService) resolveUserID(ctx context.Context, sessionID string) (int64, error) {
	session, err := b.sessionRepository.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("session lookup ended with error: %w", err)
	}
	return session.UserID, nil
}
