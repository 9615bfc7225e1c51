// Package adapter holds the outbound HTTP clients: the financial-data
// aggregator and the transactional mail API. Both are thin resty wrappers
// that translate remote failures into the package's sentinel errors so the
// service layer never inspects HTTP status codes.
package adapter

import (
	"context"

	"github.com/liquify-app/liquify-server/models"
)

// Aggregator is the client for the external financial-data provider. Item
// and account payloads are passed through as raw JSON documents; the server
// stores only the item id and access token, never the document contents.
type Aggregator interface {
	// ExchangeToken trades a client-issued public token for a permanent
	// access token and its item id.
	ExchangeToken(ctx context.Context, publicToken string) (models.Item, error)

	// GetItem fetches the aggregator's item record for the access token.
	GetItem(ctx context.Context, accessToken string) (any, error)

	// GetInstitution fetches the institution record by its aggregator id.
	GetInstitution(ctx context.Context, institutionID string) (any, error)

	// GetAccounts fetches the account list for the access token.
	GetAccounts(ctx context.Context, accessToken string) (any, error)
}

// Mailer delivers transactional email.
type Mailer interface {
	// Send delivers one message to the given recipient.
	Send(ctx context.Context, to, subject, body string) error
}
