package service

import (
	"context"
	"sync"

	"github.com/liquify-app/liquify-server/internal/store"
	"github.com/liquify-app/liquify-server/models"
)

// fakeSessionRepository is an in-memory SessionRepository with injectable
// failures. It enforces the (user_id, fingerprint) uniqueness the real
// table provides.
type fakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]models.Session // key: fingerprint key

	createErrs []error // consumed one per CreateSession call, nil = succeed
	createCnt  int

	// missFirstFind makes the first FindSession miss even when the row
	// exists, simulating a row that lands between lookup and insert.
	missFirstFind bool
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]models.Session)}
}

func sessionKey(userID int64, fingerprint string) string {
	return string(rune(userID)) + "/" + fingerprint
}

func (f *fakeSessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCnt++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}

	key := sessionKey(session.UserID, session.Fingerprint)
	if _, exists := f.sessions[key]; exists {
		return store.ErrSessionExists
	}
	f.sessions[key] = session
	return nil
}

func (f *fakeSessionRepository) FindSession(ctx context.Context, userID int64, fingerprint string) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.missFirstFind {
		f.missFirstFind = false
		return models.Session{}, store.ErrSessionNotFound
	}

	session, ok := f.sessions[sessionKey(userID, fingerprint)]
	if !ok {
		return models.Session{}, store.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, session := range f.sessions {
		if session.SessionID == sessionID {
			return session, nil
		}
	}
	return models.Session{}, store.ErrSessionNotFound
}

func (f *fakeSessionRepository) DeleteSession(ctx context.Context, userID int64, fingerprint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, sessionKey(userID, fingerprint))
	return nil
}

func (f *fakeSessionRepository) put(session models.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[sessionKey(session.UserID, session.Fingerprint)] = session
}

func (f *fakeSessionRepository) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

// fakeUserRepository serves a fixed set of users.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[int64]models.User

	setValidErr error
}

func newFakeUserRepository(users ...models.User) *fakeUserRepository {
	f := &fakeUserRepository{users: make(map[int64]models.User)}
	for _, user := range users {
		f.users[user.ID] = user
	}
	return f
}

func (f *fakeUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (f *fakeUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) SetValid(ctx context.Context, q store.Querier, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setValidErr != nil {
		return f.setValidErr
	}
	user, ok := f.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	user.Valid = true
	f.users[userID] = user
	return nil
}

// fakeVerificationRepository keeps one hash per user.
type fakeVerificationRepository struct {
	mu     sync.Mutex
	hashes map[int64]string

	deleteErr error
}

func newFakeVerificationRepository() *fakeVerificationRepository {
	return &fakeVerificationRepository{hashes: make(map[int64]string)}
}

func (f *fakeVerificationRepository) UpsertHash(ctx context.Context, userID int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hashes[userID] = hash
	return nil
}

func (f *fakeVerificationRepository) GetHash(ctx context.Context, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	hash, ok := f.hashes[userID]
	if !ok {
		return "", store.ErrVerificationNotFound
	}
	return hash, nil
}

func (f *fakeVerificationRepository) DeleteHash(ctx context.Context, q store.Querier, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.hashes, userID)
	return nil
}

// fakeItemRepository keeps items per user.
type fakeItemRepository struct {
	mu    sync.Mutex
	items map[int64][]models.Item
}

func newFakeItemRepository() *fakeItemRepository {
	return &fakeItemRepository{items: make(map[int64][]models.Item)}
}

func (f *fakeItemRepository) SaveItem(ctx context.Context, item models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.UserID] = append(f.items[item.UserID], item)
	return nil
}

func (f *fakeItemRepository) GetItems(ctx context.Context, userID int64) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]models.Item, len(f.items[userID]))
	copy(items, f.items[userID])
	return items, nil
}

// fakeBudgetRepository keeps encrypted rows per (user, budget).
type fakeBudgetRepository struct {
	mu   sync.Mutex
	rows map[string]models.BudgetRow
}

func newFakeBudgetRepository() *fakeBudgetRepository {
	return &fakeBudgetRepository{rows: make(map[string]models.BudgetRow)}
}

func budgetKey(userID int64, budgetID string) string {
	return string(rune(userID)) + "/" + budgetID
}

func (f *fakeBudgetRepository) CreateBudget(ctx context.Context, row models.BudgetRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[budgetKey(row.UserID, row.BudgetID)] = row
	return nil
}

func (f *fakeBudgetRepository) GetBudget(ctx context.Context, userID int64, budgetID string) (models.BudgetRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[budgetKey(userID, budgetID)]
	if !ok {
		return models.BudgetRow{}, store.ErrBudgetNotFound
	}
	return row, nil
}

func (f *fakeBudgetRepository) ListBudgets(ctx context.Context, userID int64, budgetIDs []string) ([]models.BudgetRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := make([]models.BudgetRow, 0)
	for _, row := range f.rows {
		if row.UserID != userID {
			continue
		}
		if len(budgetIDs) > 0 {
			matched := false
			for _, id := range budgetIDs {
				if row.BudgetID == id {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (f *fakeBudgetRepository) UpdateBudget(ctx context.Context, row models.BudgetRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := budgetKey(row.UserID, row.BudgetID)
	if _, ok := f.rows[key]; !ok {
		return store.ErrBudgetNotFound
	}
	f.rows[key] = row
	return nil
}

// fakeLearnRepository keeps one encrypted blob per user.
type fakeLearnRepository struct {
	mu    sync.Mutex
	blobs map[int64]string

	createErr error
	creates   int
}

func newFakeLearnRepository() *fakeLearnRepository {
	return &fakeLearnRepository{blobs: make(map[int64]string)}
}

func (f *fakeLearnRepository) GetLearn(ctx context.Context, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	blob, ok := f.blobs[userID]
	if !ok {
		return "", store.ErrLearnNotFound
	}
	return blob, nil
}

func (f *fakeLearnRepository) CreateLearn(ctx context.Context, userID int64, data string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	f.blobs[userID] = data
	return nil
}

func (f *fakeLearnRepository) UpdateLearn(ctx context.Context, userID int64, data string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.blobs[userID]; !ok {
		return store.ErrLearnNotFound
	}
	f.blobs[userID] = data
	return nil
}

// fakeAggregator returns canned payloads and records calls.
type fakeAggregator struct {
	mu sync.Mutex

	exchangeErr error
	itemErrs    map[string]error // keyed by access token
}

func newFakeAggregator() *fakeAggregator {
	return &fakeAggregator{itemErrs: make(map[string]error)}
}

func (f *fakeAggregator) ExchangeToken(ctx context.Context, publicToken string) (models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.exchangeErr != nil {
		return models.Item{}, f.exchangeErr
	}
	return models.Item{ItemID: "item-" + publicToken, AccessToken: "access-" + publicToken, Active: true}, nil
}

func (f *fakeAggregator) GetItem(ctx context.Context, accessToken string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.itemErrs[accessToken]; err != nil {
		return nil, err
	}
	return map[string]any{"item_id": "item-1", "institution_id": "ins-1"}, nil
}

func (f *fakeAggregator) GetInstitution(ctx context.Context, institutionID string) (any, error) {
	return map[string]any{"institution_id": institutionID, "name": "First Bank"}, nil
}

func (f *fakeAggregator) GetAccounts(ctx context.Context, accessToken string) (any, error) {
	return []any{map[string]any{"account_id": "acc-1"}}, nil
}

// fakeMailer records deliveries.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []string // recipients
	bodies  []string
	sendErr error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	f.bodies = append(f.bodies, body)
	return nil
}
