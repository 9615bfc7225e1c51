package config

import "errors"

// validate checks the merged configuration for the values the server cannot
// run without. Defaults are applied before validation, so only genuinely
// required settings are rejected here.
func (c *StructuredConfig) validate() error {
	var err error

	if c.Storage.DB.DSN == "" {
		err = errors.Join(err, ErrNoDatabaseDSN)
	}

	if c.App.EncryptionSecret == "" {
		err = errors.Join(err, ErrNoEncryptionSecret)
	}

	return err
}
