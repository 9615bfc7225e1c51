package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// MailerConfig carries the endpoint and credentials for the transactional
// mail API.
type MailerConfig struct {
	BaseURL string
	APIKey  string
	Sender  string
	Timeout time.Duration
}

type mailerAdapter struct {
	client *resty.Client
	sender string
}

// NewMailerAdapter constructs a [Mailer] backed by an HTTP mail API.
// The API key is attached as a bearer token on every request.
func NewMailerAdapter(cfg MailerConfig) Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey)

	return &mailerAdapter{client: cli, sender: cfg.Sender}
}

// mailMessage is the request body of the mail API's send endpoint.
type mailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m *mailerAdapter) Send(ctx context.Context, to, subject, body string) error {
	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(mailMessage{
			From:    m.sender,
			To:      to,
			Subject: subject,
			Body:    body,
		}).
		Post("/v1/send")
	if err != nil {
		return fmt.Errorf("%w: send request: %w", ErrMailDelivery, err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: status %d", ErrMailDelivery, resp.StatusCode())
	}

	return nil
}
