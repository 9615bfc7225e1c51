package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/liquify-app/liquify-server/internal/adapter"
	"github.com/liquify-app/liquify-server/internal/crypto"
	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/store"
	"github.com/liquify-app/liquify-server/models"
)

// accountService is the concrete implementation of [AccountService]. It
// composes the repositories, the session negotiator, the credential
// verifier, and the two outbound adapters.
type accountService struct {
	db                     *store.DB
	userRepository         store.UserRepository
	verificationRepository store.VerificationRepository
	sessionRepository      store.SessionRepository
	itemRepository         store.ItemRepository

	negotiator SessionNegotiator
	verifier   crypto.CredentialVerifier
	aggregator adapter.Aggregator
	mailer     adapter.Mailer

	logger *logger.Logger
}

// NewAccountService constructs an [AccountService] wired to the given
// repositories and collaborators.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAccountService(
	storages *store.Storages,
	negotiator SessionNegotiator,
	verifier crypto.CredentialVerifier,
	aggregator adapter.Aggregator,
	mailer adapter.Mailer,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		db:                     storages.DB,
		userRepository:         storages.UserRepository,
		verificationRepository: storages.VerificationRepository,
		sessionRepository:      storages.SessionRepository,
		itemRepository:         storages.ItemRepository,
		negotiator:             negotiator,
		verifier:               verifier,
		aggregator:             aggregator,
		mailer:                 mailer,
		logger:                 logger,
	}
}

// Login authenticates by email and password, then negotiates a session for
// the device fingerprint.
//
// Returns [ErrInvalidCredentials] for an unknown email and for a wrong
// password alike, so a caller cannot probe which emails exist. Any other
// failure is a wrapped storage or negotiation error.
func (a *accountService) Login(ctx context.Context, email, password, fingerprint string) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.LoginResult{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user lookup ended with error")
		return models.LoginResult{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	if !a.verifier.Verify(user.Password, password) {
		return models.LoginResult{}, ErrInvalidCredentials
	}

	items, err := a.itemRepository.GetItems(ctx, user.ID)
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("item lookup ended with error")
		return models.LoginResult{}, fmt.Errorf("item lookup ended with error: %w", err)
	}

	sessionID, err := a.negotiator.Negotiate(ctx, user.ID, fingerprint)
	if err != nil {
		return models.LoginResult{}, err
	}

	return models.LoginResult{
		SessionID: sessionID,
		UserID:    user.ID,
		LegalName: user.LegalName,
		Email:     user.Email,
		Valid:     user.Valid,
		Items:     items,
	}, nil
}

// Logout deletes the session row. It is idempotent: an unknown session
// identifier is a successful no-op.
func (a *accountService) Logout(ctx context.Context, sessionID string) error {
	session, err := a.sessionRepository.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("session lookup ended with error: %w", err)
	}

	if err := a.sessionRepository.DeleteSession(ctx, session.UserID, session.Fingerprint); err != nil {
		return fmt.Errorf("session deletion ended with error: %w", err)
	}

	return nil
}

// ResendVerification issues a fresh 6-digit access code for an unverified
// user: the code is hashed, the stored verification hash is overwritten,
// and the plain code is mailed. A mail delivery failure is a hard error for
// the whole operation.
func (a *accountService) ResendVerification(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	user, err := a.resolveSessionUser(ctx, sessionID)
	if err != nil {
		return err
	}
	if user.Valid {
		return ErrAlreadyVerified
	}

	code, err := a.verifier.GenerateAccessCode()
	if err != nil {
		return fmt.Errorf("access code generation ended with error: %w", err)
	}

	hash, err := a.verifier.Hash(code)
	if err != nil {
		return fmt.Errorf("access code hashing ended with error: %w", err)
	}

	if err := a.verificationRepository.UpsertHash(ctx, user.ID, hash); err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("verification hash upsert ended with error")
		return fmt.Errorf("verification hash upsert ended with error: %w", err)
	}

	if err := a.mailer.Send(ctx, user.Email, "Verify your email",
		fmt.Sprintf("Your verification code is %s.", code)); err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("verification mail ended with error")
		return err
	}

	return nil
}

// Verify consumes an access code. On a hash match, the verification row is
// deleted and the user's valid flag is set in a single transaction; any
// failure inside the scope rolls both writes back.
//
// Returns [ErrSessionNotFound], [ErrAlreadyVerified], or [ErrIncorrectCode]
// for the expected user mistakes.
func (a *accountService) Verify(ctx context.Context, sessionID, code string) error {
	log := logger.FromContext(ctx)

	user, err := a.resolveSessionUser(ctx, sessionID)
	if err != nil {
		return err
	}
	if user.Valid {
		return ErrAlreadyVerified
	}

	hash, err := a.verificationRepository.GetHash(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrVerificationNotFound) {
			return ErrIncorrectCode
		}
		return fmt.Errorf("verification hash lookup ended with error: %w", err)
	}

	if !a.verifier.Verify(hash, code) {
		return ErrIncorrectCode
	}

	err = a.db.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := a.verificationRepository.DeleteHash(ctx, tx, user.ID); err != nil {
			return err
		}
		return a.userRepository.SetValid(ctx, tx, user.ID)
	})
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("verification transaction ended with error")
		return fmt.Errorf("verification transaction ended with error: %w", err)
	}

	return nil
}

// ItemLookup is the tagged outcome of one per-item aggregator fan-out. A
// non-nil Err marks the item as failed; the account assembly decides what
// to do with failures instead of this layer dropping them silently.
type ItemLookup struct {
	ItemID string
	Detail models.ItemDetail
	Err    error
}

// Account assembles the account summary: the user record plus one
// aggregator lookup per linked item, fanned out in parallel. Items whose
// lookups fail are omitted from the summary; the response reflects the
// best effort of whatever calls succeeded.
func (a *accountService) Account(ctx context.Context, sessionID string) (models.AccountSummary, error) {
	log := logger.FromContext(ctx)

	user, err := a.resolveSessionUser(ctx, sessionID)
	if err != nil {
		return models.AccountSummary{}, err
	}

	items, err := a.itemRepository.GetItems(ctx, user.ID)
	if err != nil {
		return models.AccountSummary{}, fmt.Errorf("item lookup ended with error: %w", err)
	}

	lookups := a.lookupItems(ctx, items)

	summary := models.AccountSummary{
		ID:        user.ID,
		Email:     user.Email,
		LegalName: user.LegalName,
		Items:     make([]models.ItemDetail, 0, len(lookups)),
	}
	for _, lookup := range lookups {
		if lookup.Err != nil {
			log.Warn().
				Str("item_id", lookup.ItemID).
				Err(lookup.Err).
				Msg("item omitted from account summary")
			continue
		}
		summary.Items = append(summary.Items, lookup.Detail)
	}

	return summary, nil
}

// lookupItems fans out one aggregator round per item in parallel and waits
// for all of them. Each round is independent; failures are recorded in the
// returned lookups, never propagated.
func (a *accountService) lookupItems(ctx context.Context, items []models.Item) []ItemLookup {
	lookups := make([]ItemLookup, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item models.Item) {
			defer wg.Done()
			lookups[i] = a.lookupItem(ctx, item)
		}(i, item)
	}
	wg.Wait()

	return lookups
}

// lookupItem performs the three aggregator calls for one linked item:
// the item record, its institution, and the account list.
func (a *accountService) lookupItem(ctx context.Context, item models.Item) ItemLookup {
	lookup := ItemLookup{ItemID: item.ItemID}

	itemRecord, err := a.aggregator.GetItem(ctx, item.AccessToken)
	if err != nil {
		lookup.Err = err
		return lookup
	}

	institutionID, err := institutionIDFromItem(itemRecord)
	if err != nil {
		lookup.Err = err
		return lookup
	}

	institution, err := a.aggregator.GetInstitution(ctx, institutionID)
	if err != nil {
		lookup.Err = err
		return lookup
	}

	accounts, err := a.aggregator.GetAccounts(ctx, item.AccessToken)
	if err != nil {
		lookup.Err = err
		return lookup
	}

	lookup.Detail = models.ItemDetail{
		Item:        itemRecord,
		Institution: institution,
		Accounts:    accounts,
	}
	return lookup
}

// SaveAccessToken persists an already-exchanged aggregator token for the
// session's user and returns the refreshed item list.
func (a *accountService) SaveAccessToken(ctx context.Context, sessionID, accessToken, itemID string) ([]models.Item, error) {
	user, err := a.resolveSessionUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item := models.Item{
		UserID:      user.ID,
		ItemID:      itemID,
		AccessToken: accessToken,
		Active:      true,
	}
	if err := a.itemRepository.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("item save ended with error: %w", err)
	}

	return a.itemRepository.GetItems(ctx, user.ID)
}

// ExchangeToken trades a client-issued public token for a permanent access
// token at the aggregator, persists the resulting item, and returns the
// refreshed item list. An aggregator failure here is a hard error: without
// the exchange there is nothing to save.
func (a *accountService) ExchangeToken(ctx context.Context, sessionID, publicToken string) ([]models.Item, error) {
	user, err := a.resolveSessionUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, err := a.aggregator.ExchangeToken(ctx, publicToken)
	if err != nil {
		return nil, err
	}

	item.UserID = user.ID
	if err := a.itemRepository.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("item save ended with error: %w", err)
	}

	return a.itemRepository.GetItems(ctx, user.ID)
}

// resolveSessionUser maps a session identifier to its owning user record.
func (a *accountService) resolveSessionUser(ctx context.Context, sessionID string) (models.User, error) {
	session, err := a.sessionRepository.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.User{}, ErrSessionNotFound
		}
		return models.User{}, fmt.Errorf("session lookup ended with error: %w", err)
	}

	user, err := a.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrSessionNotFound
		}
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	return user, nil
}

// institutionIDFromItem extracts the institution id from the aggregator's
// raw item document.
func institutionIDFromItem(itemRecord any) (string, error) {
	raw, err := json.Marshal(itemRecord)
	if err != nil {
		return "", fmt.Errorf("encode item record: %w", err)
	}

	var envelope struct {
		InstitutionID string `json:"institution_id"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("decode item record: %w", err)
	}
	if envelope.InstitutionID == "" {
		return "", errors.New("item record has no institution_id")
	}

	return envelope.InstitutionID, nil
}
