package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMailerSend_Success(t *testing.T) {
	var received mailMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Errorf("expected bearer token, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	mailer := NewMailerAdapter(MailerConfig{
		BaseURL: srv.URL,
		APIKey:  "key-123",
		Sender:  "noreply@liquify.app",
		Timeout: 2 * time.Second,
	})

	err := mailer.Send(context.Background(), "john@example.com", "Verify your email", "Your code is 123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if received.From != "noreply@liquify.app" {
		t.Errorf("expected configured sender, got %s", received.From)
	}
	if received.To != "john@example.com" {
		t.Errorf("expected recipient, got %s", received.To)
	}
}

func TestMailerSend_APIRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	mailer := NewMailerAdapter(MailerConfig{BaseURL: srv.URL, APIKey: "key-123", Sender: "noreply@liquify.app"})

	err := mailer.Send(context.Background(), "john@example.com", "subject", "body")
	if !errors.Is(err, ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}
}
