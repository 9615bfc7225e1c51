package models

import "time"

// Allocation is one spending bucket inside a budget. Total and Amount are
// kept as the numeric strings the client submitted so that decimal values
// survive the encrypt/decrypt round trip without float drift.
type Allocation struct {
	Name   string `json:"name"`
	Total  string `json:"total"`
	Amount string `json:"amount"`
}

// BudgetDocument is the plaintext shape of one encrypted budget blob.
// BudgetID doubles as the row key and the only external handle to the
// budget.
type BudgetDocument struct {
	BudgetID     string       `json:"budget_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Allocations  []Allocation `json:"allocations"`
	DateCreated  time.Time    `json:"date_created"`
	DateModified time.Time    `json:"date_modified"`
}

// BudgetRow is the persisted form: the document encrypted into an opaque
// string, keyed by (UserID, BudgetID).
type BudgetRow struct {
	UserID     int64
	BudgetID   string
	BudgetData string
}
