package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. The "user_sessions" table enforces
// UNIQUE(user_id, fingerprint), which is what makes concurrent logins from
// the same device converge on a single session row.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession inserts a new session row.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrSessionExists]; the caller
//     should re-read the winning row rather than treat this as failure.
//   - Transient driver errors (per the classifier) → wrapped with
//     [ErrRetryableDB].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createSession, session.SessionID, session.UserID, session.Fingerprint); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrSessionExists
		}

		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: executing statement")

		if r.db.errorClassificator.Classify(err) == Retryable {
			return fmt.Errorf("%w: %w", ErrRetryableDB, err)
		}
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// FindSession retrieves the session row for (userID, fingerprint), or
// [ErrSessionNotFound] when the device has no session.
func (r *sessionRepository) FindSession(ctx context.Context, userID int64, fingerprint string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, findSession, userID, fingerprint)

	if err := row.Scan(&session.SessionID, &session.UserID, &session.Fingerprint); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).Str("func", "*sessionRepository.FindSession").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// FindSessionByID resolves a presented session token to its session row, or
// [ErrSessionNotFound] when the token matches nothing.
func (r *sessionRepository) FindSessionByID(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, findSessionByID, sessionID)

	if err := row.Scan(&session.SessionID, &session.UserID, &session.Fingerprint); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).Str("func", "*sessionRepository.FindSessionByID").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// DeleteSession removes the session row for (userID, fingerprint). Logout is
// idempotent: deleting a session that is already gone succeeds.
func (r *sessionRepository) DeleteSession(ctx context.Context, userID int64, fingerprint string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSession, userID, fingerprint); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
