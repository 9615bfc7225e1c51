package adapter

import "errors"

var (
	// ErrAggregatorUnavailable is returned when the aggregator rejects a
	// request or cannot be reached. The caller decides whether the failure
	// is fatal (token exchange) or partial (account assembly).
	ErrAggregatorUnavailable = errors.New("aggregator request failed")

	// ErrMailDelivery is returned when the mail API rejects a message or
	// cannot be reached.
	ErrMailDelivery = errors.New("mail delivery failed")
)
