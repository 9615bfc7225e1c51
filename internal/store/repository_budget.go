package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/models"
)

// budgetRepository is the PostgreSQL-backed implementation of
// [BudgetRepository]. Budget contents are opaque to this layer: rows carry
// the encrypted blob produced by the document codec, and every query is
// scoped by user_id so one user can never address another user's budgets.
type budgetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewBudgetRepository constructs a [BudgetRepository] backed by the provided
// database connection and logger.
func NewBudgetRepository(db *DB, logger *logger.Logger) BudgetRepository {
	logger.Debug().Msg("creating budget repository")
	return &budgetRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBudget inserts an encrypted budget row.
func (r *budgetRepository) CreateBudget(ctx context.Context, budget models.BudgetRow) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createBudget, budget.BudgetID, budget.UserID, budget.BudgetData); err != nil {
		log.Err(err).Str("func", "*budgetRepository.CreateBudget").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetBudget retrieves the row for (userID, budgetID), or [ErrBudgetNotFound].
func (r *budgetRepository) GetBudget(ctx context.Context, userID int64, budgetID string) (models.BudgetRow, error) {
	log := logger.FromContext(ctx)

	var budget models.BudgetRow
	row := r.db.QueryRowContext(ctx, getBudget, userID, budgetID)

	if err := row.Scan(&budget.BudgetID, &budget.UserID, &budget.BudgetData); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BudgetRow{}, ErrBudgetNotFound
		}

		log.Err(err).Str("func", "*budgetRepository.GetBudget").Msg("error: scanning error")
		return models.BudgetRow{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return budget, nil
}

// ListBudgets returns the user's budget rows. A non-empty budgetIDs slice
// narrows the result to those ids; nil returns every budget the user owns.
func (r *budgetRepository) ListBudgets(ctx context.Context, userID int64, budgetIDs []string) ([]models.BudgetRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListBudgetsQuery(userID, budgetIDs)
	if err != nil {
		log.Err(err).Str("func", "*budgetRepository.ListBudgets").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*budgetRepository.ListBudgets").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	budgets := make([]models.BudgetRow, 0)
	for rows.Next() {
		var budget models.BudgetRow
		if err := rows.Scan(&budget.BudgetID, &budget.UserID, &budget.BudgetData); err != nil {
			log.Err(err).Str("func", "*budgetRepository.ListBudgets").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return budgets, nil
}

// UpdateBudget replaces the encrypted blob for (userID, budgetID).
// Returns [ErrBudgetNotFound] when no such row exists.
func (r *budgetRepository) UpdateBudget(ctx context.Context, budget models.BudgetRow) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateBudget, budget.BudgetData, budget.UserID, budget.BudgetID)
	if err != nil {
		log.Err(err).Str("func", "*budgetRepository.UpdateBudget").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrBudgetNotFound
	}

	return nil
}
