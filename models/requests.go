package models

// LoginRequest is the body of the login endpoint. Fingerprint is optional:
// when the client omits it, the transport layer derives one from request
// characteristics.
type LoginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Fingerprint string `json:"fingerprint"`
}

// SessionRequest is the body shared by endpoints that need only an
// authenticated session.
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

// VerifyRequest is the body of the email verification endpoint.
type VerifyRequest struct {
	SessionID  string `json:"session_id"`
	VerifyCode string `json:"verify_code"`
}

// SaveAccessTokenRequest is the body of the linked-account persistence
// endpoint.
type SaveAccessTokenRequest struct {
	SessionID   string `json:"session_id"`
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// ExchangeTokenRequest is the body of the public-token exchange endpoint.
type ExchangeTokenRequest struct {
	SessionID   string `json:"session_id"`
	PublicToken string `json:"public_token"`
}

// BudgetRef is one candidate id in a bulk budget fetch.
type BudgetRef struct {
	BudgetID string `json:"budget_id"`
}

// BudgetAllRequest is the body of the bulk budget fetch. Budgets is the
// client-supplied candidate list; see the budget service for how it is
// interpreted.
type BudgetAllRequest struct {
	SessionID string      `json:"session_id"`
	Budgets   []BudgetRef `json:"budgets"`
}

// BudgetGetRequest is the body of the single budget fetch.
type BudgetGetRequest struct {
	SessionID string `json:"session_id"`
	BudgetID  string `json:"budget_id"`
}

// BudgetCreateRequest is the body of the budget creation endpoint.
// BudgetID and DateCreated are accepted but ignored: the server generates
// both.
type BudgetCreateRequest struct {
	SessionID   string       `json:"session_id"`
	BudgetID    string       `json:"budget_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Allocations []Allocation `json:"allocations"`
	DateCreated string       `json:"date_created"`
}

// BudgetEditRequest is the body of the budget edit endpoint. The stored
// document is replaced wholesale; DateModified is refreshed by the server.
type BudgetEditRequest struct {
	SessionID   string       `json:"session_id"`
	BudgetID    string       `json:"budget_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Allocations []Allocation `json:"allocations"`
}

// LearnUpdateRequest is the body of the learning-progress update endpoint.
type LearnUpdateRequest struct {
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
	Part      string `json:"part"`
	Score     int    `json:"score"`
}
