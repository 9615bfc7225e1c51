package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/liquify-app/liquify-server/internal/config"
	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/store"
	"github.com/liquify-app/liquify-server/models"
	"github.com/sethvargo/go-retry"
)

// sessionNegotiator is the concrete implementation of [SessionNegotiator].
//
// Two requests from the same device can race to create the first session
// for a user. The UNIQUE(user_id, fingerprint) constraint is the only
// coordination primitive: the loser of the race sees a duplicate-key error,
// re-reads the winning row, and returns its identifier. The negotiator
// never trusts a locally generated identifier once the insert has been
// rejected.
type sessionNegotiator struct {
	sessionRepository store.SessionRepository

	// attempts caps the creation loop; delay is the pause between attempts.
	attempts int
	delay    time.Duration

	logger *logger.Logger
}

// NewSessionNegotiator constructs a [SessionNegotiator] with the retry
// budget from cfg.
func NewSessionNegotiator(sessionRepository store.SessionRepository, cfg config.App, logger *logger.Logger) SessionNegotiator {
	return &sessionNegotiator{
		sessionRepository: sessionRepository,
		attempts:          cfg.SessionAttempts,
		delay:             cfg.SessionRetryDelay,
		logger:            logger,
	}
}

// Negotiate implements [SessionNegotiator].
//
// Fast path: an existing session for (userID, fingerprint) is returned
// without any write. Otherwise the negotiator enters a bounded loop:
// generate a fresh token, INSERT, and on duplicate-key re-read the
// authoritative row. A re-read that finds nothing means the winning session
// was deleted between our insert and lookup (logout race); the loop simply
// tries again. Exhausting the attempt budget yields
// [ErrSessionCreationFailed].
func (n *sessionNegotiator) Negotiate(ctx context.Context, userID int64, fingerprint string) (string, error) {
	log := logger.FromContext(ctx)

	existing, err := n.sessionRepository.FindSession(ctx, userID, fingerprint)
	if err == nil {
		return existing.SessionID, nil
	}
	if !errors.Is(err, store.ErrSessionNotFound) {
		return "", fmt.Errorf("session lookup ended with error: %w", err)
	}

	var sessionID string

	backoff := retry.WithMaxRetries(uint64(n.attempts), retry.NewConstant(n.delay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		token, err := newSessionToken()
		if err != nil {
			return err
		}

		err = n.sessionRepository.CreateSession(ctx, models.Session{
			SessionID:   token,
			UserID:      userID,
			Fingerprint: fingerprint,
		})
		switch {
		case err == nil:
			sessionID = token
			return nil

		case errors.Is(err, store.ErrSessionExists):
			// lost the race: the winning row is authoritative
			winner, findErr := n.sessionRepository.FindSession(ctx, userID, fingerprint)
			if findErr == nil {
				sessionID = winner.SessionID
				return nil
			}
			if errors.Is(findErr, store.ErrSessionNotFound) {
				// winner logged out before we could read its row
				log.Warn().
					Int64("user_id", userID).
					Msg("session vanished after duplicate-key, retrying creation")
				return retry.RetryableError(err)
			}
			return findErr

		case errors.Is(err, store.ErrRetryableDB):
			return retry.RetryableError(err)

		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, store.ErrSessionExists) || errors.Is(err, store.ErrRetryableDB) {
			log.Err(err).Int64("user_id", userID).Msg("session negotiation exhausted attempts")
			return "", fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
		}
		return "", fmt.Errorf("session creation ended with error: %w", err)
	}

	return sessionID, nil
}

// newSessionToken returns a 64-character hex token from the OS CSPRNG.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
