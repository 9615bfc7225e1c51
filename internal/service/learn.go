package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/liquify-app/liquify-server/internal/crypto"
	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/store"
	"github.com/liquify-app/liquify-server/models"
)

// learnService is the concrete implementation of [LearnService]. Each user
// owns one encrypted progress document, provisioned lazily with the
// all-zero template the first time it is read or updated.
type learnService struct {
	sessionRepository store.SessionRepository
	learnRepository   store.LearnRepository
	codec             crypto.DocumentCodec
	logger            *logger.Logger
}

// NewLearnService constructs a [LearnService] wired to the given
// repositories and document codec.
func NewLearnService(storages *store.Storages, codec crypto.DocumentCodec, logger *logger.Logger) LearnService {
	return &learnService{
		sessionRepository: storages.SessionRepository,
		learnRepository:   storages.LearnRepository,
		codec:             codec,
		logger:            logger,
	}
}

// Get returns the user's progress document. A first-time reader gets the
// zero template, which Get also persists; if that insert fails the error is
// logged and swallowed — the caller still receives the template, and the
// next write will try to persist again.
func (l *learnService) Get(ctx context.Context, sessionID string) (models.LearnDocument, error) {
	log := logger.FromContext(ctx)

	userID, err := l.resolveUserID(ctx, sessionID)
	if err != nil {
		return models.LearnDocument{}, err
	}

	data, err := l.learnRepository.GetLearn(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrLearnNotFound) {
			return models.LearnDocument{}, fmt.Errorf("learn lookup ended with error: %w", err)
		}

		document := models.NewLearnDocument()
		if createErr := l.persistNew(ctx, userID, document); createErr != nil {
			log.Err(createErr).Int64("user_id", userID).Msg("lazy learn creation failed, returning template")
		}
		return document, nil
	}

	var document models.LearnDocument
	if err := l.codec.Decrypt(data, &document); err != nil {
		return models.LearnDocument{}, fmt.Errorf("learn decryption ended with error: %w", err)
	}

	return document, nil
}

// Update records a score for (category, part). The stored value only moves
// upward; a submission at or below the current score leaves the document
// unchanged but still succeeds. A user with no document yet gets the zero
// template with the score applied.
func (l *learnService) Update(ctx context.Context, sessionID, category, part string, score int) (models.LearnDocument, error) {
	userID, err := l.resolveUserID(ctx, sessionID)
	if err != nil {
		return models.LearnDocument{}, err
	}

	data, err := l.learnRepository.GetLearn(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrLearnNotFound) {
			return models.LearnDocument{}, fmt.Errorf("learn lookup ended with error: %w", err)
		}

		document := models.NewLearnDocument()
		if !document.Apply(category, part, score) {
			return models.LearnDocument{}, fmt.Errorf("unknown learning part %s/%s", category, part)
		}
		if err := l.persistNew(ctx, userID, document); err != nil {
			return models.LearnDocument{}, fmt.Errorf("learn creation ended with error: %w", err)
		}
		return document, nil
	}

	var document models.LearnDocument
	if err := l.codec.Decrypt(data, &document); err != nil {
		return models.LearnDocument{}, fmt.Errorf("learn decryption ended with error: %w", err)
	}

	if !document.Apply(category, part, score) {
		return models.LearnDocument{}, fmt.Errorf("unknown learning part %s/%s", category, part)
	}

	blob, err := l.codec.Encrypt(document)
	if err != nil {
		return models.LearnDocument{}, fmt.Errorf("learn encryption ended with error: %w", err)
	}
	if err := l.learnRepository.UpdateLearn(ctx, userID, blob); err != nil {
		return models.LearnDocument{}, fmt.Errorf("learn update ended with error: %w", err)
	}

	return document, nil
}

// persistNew encrypts and inserts a fresh progress document.
func (l *learnService) persistNew(ctx context.Context, userID int64, document models.LearnDocument) error {
	blob, err := l.codec.Encrypt(document)
	if err != nil {
		return fmt.Errorf("learn encryption ended with error: %w", err)
	}
	return l.learnRepository.CreateLearn(ctx, userID, blob)
}

// resolveUserID maps a session identifier to its owning user id.
func (l *learnService) resolveUserID(ctx context.Context, sessionID string) (int64, error) {
	session, err := l.sessionRepository.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("session lookup ended with error: %w", err)
	}
	return session.UserID, nil
}
