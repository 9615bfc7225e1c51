package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/liquify-app/liquify-server/internal/logger"
)

// learnRepository is the PostgreSQL-backed implementation of
// [LearnRepository]. Each user owns at most one learning-progress row; the
// service layer provisions it lazily on first read.
type learnRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLearnRepository constructs a [LearnRepository] backed by the provided
// database connection and logger.
func NewLearnRepository(db *DB, logger *logger.Logger) LearnRepository {
	logger.Debug().Msg("creating learn repository")
	return &learnRepository{
		db:     db,
		logger: logger,
	}
}

// GetLearn returns the encrypted progress blob for the user, or
// [ErrLearnNotFound] when the user has never touched the learning tracks.
func (r *learnRepository) GetLearn(ctx context.Context, userID int64) (string, error) {
	log := logger.FromContext(ctx)

	var data string
	row := r.db.QueryRowContext(ctx, getLearn, userID)

	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrLearnNotFound
		}

		log.Err(err).Str("func", "*learnRepository.GetLearn").Msg("error: scanning error")
		return "", fmt.Errorf("unexpected DB error: %w", err)
	}

	return data, nil
}

// CreateLearn inserts the progress blob for a user seen for the first time.
func (r *learnRepository) CreateLearn(ctx context.Context, userID int64, data string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createLearn, userID, data); err != nil {
		log.Err(err).Str("func", "*learnRepository.CreateLearn").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// UpdateLearn replaces the progress blob. Returns [ErrLearnNotFound] when
// the user has no row yet.
func (r *learnRepository) UpdateLearn(ctx context.Context, userID int64, data string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateLearn, data, userID)
	if err != nil {
		log.Err(err).Str("func", "*learnRepository.UpdateLearn").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrLearnNotFound
	}

	return nil
}
