package config

import "errors"

var (
	// ErrNoDatabaseDSN is returned by validation when no database DSN was
	// provided by any configuration source.
	ErrNoDatabaseDSN = errors.New("no database DSN provided")

	// ErrNoEncryptionSecret is returned by validation when the document
	// encryption secret is missing. The server refuses to start without it
	// rather than silently storing plaintext.
	ErrNoEncryptionSecret = errors.New("no encryption secret provided")
)
