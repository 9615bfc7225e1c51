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

func newAggregatorTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Aggregator) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	agg := NewAggregatorAdapter(AggregatorConfig{
		BaseURL:  srv.URL,
		ClientID: "client-1",
		Secret:   "secret-1",
		Timeout:  2 * time.Second,
	})
	return srv, agg
}

func TestExchangeToken_Success(t *testing.T) {
	_, agg := newAggregatorTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/item/public_token/exchange" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["client_id"] != "client-1" || body["secret"] != "secret-1" {
			t.Errorf("credentials not attached to request body")
		}
		if body["public_token"] != "public-abc" {
			t.Errorf("expected public token public-abc, got %s", body["public_token"])
		}

		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "access-xyz",
			"item_id":      "item-1",
		})
	})

	item, err := agg.ExchangeToken(context.Background(), "public-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ItemID != "item-1" {
		t.Errorf("expected item-1, got %s", item.ItemID)
	}
	if item.AccessToken != "access-xyz" {
		t.Errorf("expected access-xyz, got %s", item.AccessToken)
	}
	if !item.Active {
		t.Errorf("expected exchanged item to be active")
	}
}

func TestExchangeToken_ProviderError(t *testing.T) {
	_, agg := newAggregatorTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := agg.ExchangeToken(context.Background(), "public-abc")
	if !errors.Is(err, ErrAggregatorUnavailable) {
		t.Fatalf("expected ErrAggregatorUnavailable, got %v", err)
	}
}

func TestGetItem_Success(t *testing.T) {
	_, agg := newAggregatorTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/item/get" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"item": {"item_id": "item-1", "institution_id": "ins-9"}}`))
	})

	item, err := agg.GetItem(context.Background(), "access-xyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, ok := item.(json.RawMessage)
	if !ok {
		t.Fatalf("expected raw JSON item, got %T", item)
	}
	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	if decoded["institution_id"] != "ins-9" {
		t.Errorf("expected institution ins-9, got %s", decoded["institution_id"])
	}
}

func TestGetInstitution_Success(t *testing.T) {
	_, agg := newAggregatorTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/institutions/get_by_id" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"institution": {"name": "First Bank"}}`))
	})

	institution, err := agg.GetInstitution(context.Background(), "ins-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if institution == nil {
		t.Fatalf("expected institution payload")
	}
}

func TestGetAccounts_ProviderDown(t *testing.T) {
	srv, agg := newAggregatorTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := agg.GetAccounts(context.Background(), "access-xyz")
	if !errors.Is(err, ErrAggregatorUnavailable) {
		t.Fatalf("expected ErrAggregatorUnavailable, got %v", err)
	}
}
