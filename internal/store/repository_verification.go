package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/liquify-app/liquify-server/internal/logger"
)

// verificationRepository is the PostgreSQL-backed implementation of
// [VerificationRepository]. One pending hash exists per user at most; a
// fresh verification request overwrites the previous hash.
type verificationRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVerificationRepository constructs a [VerificationRepository] backed by
// the provided database connection and logger.
func NewVerificationRepository(db *DB, logger *logger.Logger) VerificationRepository {
	logger.Debug().Msg("creating verification repository")
	return &verificationRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertHash stores the verification hash for the user. The ON CONFLICT
// clause replaces any earlier pending hash, so only the most recently
// mailed code remains redeemable.
func (r *verificationRepository) UpsertHash(ctx context.Context, userID int64, hash string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, upsertVerificationHash, userID, hash); err != nil {
		log.Err(err).Str("func", "*verificationRepository.UpsertHash").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetHash returns the pending verification hash for the user, or
// [ErrVerificationNotFound] when none is outstanding.
func (r *verificationRepository) GetHash(ctx context.Context, userID int64) (string, error) {
	log := logger.FromContext(ctx)

	var hash string
	row := r.db.QueryRowContext(ctx, getVerificationHash, userID)

	if err := row.Scan(&hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrVerificationNotFound
		}

		log.Err(err).Str("func", "*verificationRepository.GetHash").Msg("error: scanning error")
		return "", fmt.Errorf("unexpected DB error: %w", err)
	}

	return hash, nil
}

// DeleteHash removes the pending hash for the user. It runs on the supplied
// [Querier] so the verification flow can bundle it with the user update in
// one transaction. An absent hash is not an error.
func (r *verificationRepository) DeleteHash(ctx context.Context, q Querier, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := q.ExecContext(ctx, deleteVerificationHash, userID); err != nil {
		log.Err(err).Str("func", "*verificationRepository.DeleteHash").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
