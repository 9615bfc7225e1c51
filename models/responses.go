package models

// Envelope is the only response contract of the HTTP surface:
// {success, msg} with msg carrying either the payload or a single
// human-readable error string.
type Envelope struct {
	Success bool `json:"success"`
	Msg     any  `json:"msg"`
}

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	SessionID string `json:"session_id"`
	UserID    int64  `json:"_id"`
	LegalName string `json:"_legal_name"`
	Email     string `json:"_email"`
	Valid     bool   `json:"_valid"`
	Items     []Item `json:"_items"`
}

// AccountSummary is the payload of the account assembly endpoint. Items
// holds one entry per linked account whose aggregator lookups succeeded.
type AccountSummary struct {
	ID        int64        `json:"id"`
	Email     string       `json:"email"`
	LegalName string       `json:"legal_name"`
	Items     []ItemDetail `json:"items"`
}

// ItemDetail is the assembled view of one linked account: the aggregator's
// item record, its institution, and the account list.
type ItemDetail struct {
	Item        any `json:"item"`
	Institution any `json:"institution"`
	Accounts    any `json:"accounts"`
}
