package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/liquify-app/liquify-server/models"
)

// AggregatorConfig carries the endpoint and credentials for the
// financial-data aggregator.
type AggregatorConfig struct {
	BaseURL  string
	ClientID string
	Secret   string
	Timeout  time.Duration
}

type aggregatorAdapter struct {
	client   *resty.Client
	clientID string
	secret   string
}

// NewAggregatorAdapter constructs an [Aggregator] client. Credentials are
// injected into every request body, which is how the provider authenticates
// API consumers.
func NewAggregatorAdapter(cfg AggregatorConfig) Aggregator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &aggregatorAdapter{client: cli, clientID: cfg.ClientID, secret: cfg.Secret}
}

// exchangeResponse is the provider's reply to a public-token exchange.
type exchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// itemResponse wraps the item document in the provider's envelope.
type itemResponse struct {
	Item json.RawMessage `json:"item"`
}

type institutionResponse struct {
	Institution json.RawMessage `json:"institution"`
}

type accountsResponse struct {
	Accounts json.RawMessage `json:"accounts"`
}

func (a *aggregatorAdapter) ExchangeToken(ctx context.Context, publicToken string) (models.Item, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"client_id":    a.clientID,
			"secret":       a.secret,
			"public_token": publicToken,
		}).
		Post("/item/public_token/exchange")
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: exchange request: %w", ErrAggregatorUnavailable, err)
	}
	if err = mapAggregatorError(resp); err != nil {
		return models.Item{}, err
	}

	var exchanged exchangeResponse
	if err = json.Unmarshal(resp.Body(), &exchanged); err != nil {
		return models.Item{}, fmt.Errorf("%w: decode exchange response: %w", ErrAggregatorUnavailable, err)
	}

	return models.Item{
		ItemID:      exchanged.ItemID,
		AccessToken: exchanged.AccessToken,
		Active:      true,
	}, nil
}

func (a *aggregatorAdapter) GetItem(ctx context.Context, accessToken string) (any, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"client_id":    a.clientID,
			"secret":       a.secret,
			"access_token": accessToken,
		}).
		Post("/item/get")
	if err != nil {
		return nil, fmt.Errorf("%w: item request: %w", ErrAggregatorUnavailable, err)
	}
	if err = mapAggregatorError(resp); err != nil {
		return nil, err
	}

	var item itemResponse
	if err = json.Unmarshal(resp.Body(), &item); err != nil {
		return nil, fmt.Errorf("%w: decode item response: %w", ErrAggregatorUnavailable, err)
	}

	return item.Item, nil
}

func (a *aggregatorAdapter) GetInstitution(ctx context.Context, institutionID string) (any, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"client_id":      a.clientID,
			"secret":         a.secret,
			"institution_id": institutionID,
		}).
		Post("/institutions/get_by_id")
	if err != nil {
		return nil, fmt.Errorf("%w: institution request: %w", ErrAggregatorUnavailable, err)
	}
	if err = mapAggregatorError(resp); err != nil {
		return nil, err
	}

	var institution institutionResponse
	if err = json.Unmarshal(resp.Body(), &institution); err != nil {
		return nil, fmt.Errorf("%w: decode institution response: %w", ErrAggregatorUnavailable, err)
	}

	return institution.Institution, nil
}

func (a *aggregatorAdapter) GetAccounts(ctx context.Context, accessToken string) (any, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"client_id":    a.clientID,
			"secret":       a.secret,
			"access_token": accessToken,
		}).
		Post("/accounts/get")
	if err != nil {
		return nil, fmt.Errorf("%w: accounts request: %w", ErrAggregatorUnavailable, err)
	}
	if err = mapAggregatorError(resp); err != nil {
		return nil, err
	}

	var accounts accountsResponse
	if err = json.Unmarshal(resp.Body(), &accounts); err != nil {
		return nil, fmt.Errorf("%w: decode accounts response: %w", ErrAggregatorUnavailable, err)
	}

	return accounts.Accounts, nil
}

// mapAggregatorError converts a non-2xx provider response into
// [ErrAggregatorUnavailable], carrying the status code for logs.
func mapAggregatorError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}
	return fmt.Errorf("%w: status %d", ErrAggregatorUnavailable, resp.StatusCode())
}
