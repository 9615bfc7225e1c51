package models

// User is the identity record backing every session and document in the
// system. Password holds the bcrypt hash, never the plain text. Valid flips
// to true exactly once, when the email verification flow succeeds.
type User struct {
	ID        int64  `json:"id"`
	LegalName string `json:"legal_name"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	Valid     bool   `json:"valid"`
}
