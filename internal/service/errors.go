package service

import "errors"

var (
	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound is returned when a presented session identifier
	// resolves to nothing.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionCreationFailed is returned when the session negotiation
	// loop exhausts its attempt budget without converging.
	ErrSessionCreationFailed = errors.New("session creation failed")

	// ErrAlreadyVerified is returned when a verification operation targets
	// a user whose email is already confirmed.
	ErrAlreadyVerified = errors.New("account is already verified")

	// ErrIncorrectCode is returned when the submitted access code does not
	// match the stored verification hash.
	ErrIncorrectCode = errors.New("incorrect access code")

	// ErrBudgetNotFound is returned when a budget lookup or edit targets a
	// budget the user does not own.
	ErrBudgetNotFound = errors.New("budget not found")
)
