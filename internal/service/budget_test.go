package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/liquify-app/liquify-server/internal/crypto"
	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/models"
)

type budgetFixture struct {
	svc      *budgetService
	sessions *fakeSessionRepository
	budgets  *fakeBudgetRepository
}

func newBudgetFixture(t *testing.T) *budgetFixture {
	t.Helper()

	f := &budgetFixture{
		sessions: newFakeSessionRepository(),
		budgets:  newFakeBudgetRepository(),
	}
	f.sessions.put(models.Session{SessionID: "tok", UserID: 1, Fingerprint: "fp-1"})

	f.svc = &budgetService{
		sessionRepository: f.sessions,
		budgetRepository:  f.budgets,
		codec:             crypto.NewDocumentCodec("test-secret"),
		logger:            logger.Nop(),
	}
	return f
}

func sampleCreateRequest() models.BudgetCreateRequest {
	return models.BudgetCreateRequest{
		SessionID: "tok",
		Name:      "September",
		Allocations: []models.Allocation{
			{Name: "Groceries", Total: "500", Amount: "120.50"},
		},
	}
}

func TestBudgetCreate_RoundTrip(t *testing.T) {
	f := newBudgetFixture(t)

	created, err := f.svc.Create(context.Background(), "tok", sampleCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.BudgetID == "" {
		t.Fatal("expected a generated budget id")
	}
	if created.DateCreated.IsZero() || !created.DateCreated.Equal(created.DateModified) {
		t.Errorf("expected fresh matching timestamps, got %v / %v", created.DateCreated, created.DateModified)
	}

	got, err := f.svc.Get(context.Background(), "tok", created.BudgetID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "September" || len(got.Allocations) != 1 {
		t.Errorf("decrypted document does not match created one: %+v", got)
	}
	if got.Allocations[0].Amount != "120.50" {
		t.Errorf("amount must survive the round trip as a string, got %q", got.Allocations[0].Amount)
	}
}

func TestBudgetCreate_IgnoresClientSuppliedID(t *testing.T) {
	f := newBudgetFixture(t)

	req := sampleCreateRequest()
	req.BudgetID = "client-chosen-id"

	created, err := f.svc.Create(context.Background(), "tok", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.BudgetID == "client-chosen-id" {
		t.Error("server must generate the budget id, not trust the client's")
	}
}

func TestBudgetGet_NotFound(t *testing.T) {
	f := newBudgetFixture(t)

	_, err := f.svc.Get(context.Background(), "tok", "missing")
	if !errors.Is(err, ErrBudgetNotFound) {
		t.Fatalf("expected ErrBudgetNotFound, got %v", err)
	}
}

func TestBudgetGet_UnknownSession(t *testing.T) {
	f := newBudgetFixture(t)

	_, err := f.svc.Get(context.Background(), "bad-token", "b-1")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestBudgetAll_ReturnsAllIgnoringCandidates(t *testing.T) {
	f := newBudgetFixture(t)

	first, err := f.svc.Create(context.Background(), "tok", sampleCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := sampleCreateRequest()
	req.Name = "October"
	if _, err := f.svc.Create(context.Background(), "tok", req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the candidate list names only one budget; the endpoint returns both
	candidates := []models.BudgetRef{{BudgetID: first.BudgetID}}
	documents, err := f.svc.All(context.Background(), "tok", candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(documents) != 2 {
		t.Fatalf("expected all budgets regardless of candidate filter, got %d", len(documents))
	}
}

func TestBudgetEdit_PreservesCreationDate(t *testing.T) {
	f := newBudgetFixture(t)

	created, err := f.svc.Create(context.Background(), "tok", sampleCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edited, err := f.svc.Edit(context.Background(), "tok", models.BudgetEditRequest{
		SessionID: "tok",
		BudgetID:  created.BudgetID,
		Name:      "September (revised)",
		Allocations: []models.Allocation{
			{Name: "Groceries", Total: "450", Amount: "100"},
			{Name: "Transit", Total: "80", Amount: "12"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !edited.DateCreated.Equal(created.DateCreated) {
		t.Errorf("edit must preserve the creation date: %v vs %v", edited.DateCreated, created.DateCreated)
	}
	if edited.DateModified.Before(created.DateModified) {
		t.Error("edit must refresh the modification date")
	}

	got, err := f.svc.Get(context.Background(), "tok", created.BudgetID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "September (revised)" || len(got.Allocations) != 2 {
		t.Errorf("stored document does not reflect the edit: %+v", got)
	}
}

func TestBudgetEdit_NotFound(t *testing.T) {
	f := newBudgetFixture(t)

	_, err := f.svc.Edit(context.Background(), "tok", models.BudgetEditRequest{
		SessionID:   "tok",
		BudgetID:    "missing",
		Name:        "Whatever",
		Allocations: []models.Allocation{{Name: "A", Total: "1", Amount: "1"}},
	})
	if !errors.Is(err, ErrBudgetNotFound) {
		t.Fatalf("expected ErrBudgetNotFound, got %v", err)
	}
}

func TestBudgetDocuments_AreEncryptedAtRest(t *testing.T) {
	f := newBudgetFixture(t)

	created, err := f.svc.Create(context.Background(), "tok", sampleCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row, err := f.budgets.GetBudget(context.Background(), 1, created.BudgetID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the stored blob must not contain the plaintext budget name
	if row.BudgetData == "" {
		t.Fatal("expected stored blob")
	}
	if strings.Contains(row.BudgetData, "September") {
		t.Error("stored blob leaks plaintext document contents")
	}
}
