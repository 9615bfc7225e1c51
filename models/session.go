package models

// Session binds a user to one device fingerprint. The (UserID, Fingerprint)
// pair is unique in the database; SessionID is the opaque token clients
// present on every authenticated request.
type Session struct {
	SessionID   string `json:"session_id"`
	UserID      int64  `json:"user_id"`
	Fingerprint string `json:"fingerprint"`
}
