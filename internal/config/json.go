package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations so that operators can write "30s" instead of
// nanosecond integers.
type StructuredJSONConfig struct {
	App struct {
		EncryptionSecret  string   `json:"encryption_secret"`
		SessionAttempts   int      `json:"session_attempts"`
		SessionRetryDelay Duration `json:"session_retry_delay"`
		Version           string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Aggregator struct {
		BaseURL  string   `json:"base_url"`
		ClientID string   `json:"client_id"`
		Secret   string   `json:"secret"`
		Timeout  Duration `json:"timeout"`
	} `json:"aggregator,omitempty"`

	Mail struct {
		BaseURL string   `json:"base_url"`
		APIKey  string   `json:"api_key"`
		Sender  string   `json:"sender"`
		Timeout Duration `json:"timeout"`
	} `json:"mail,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			EncryptionSecret:  jsonCfg.App.EncryptionSecret,
			SessionAttempts:   jsonCfg.App.SessionAttempts,
			SessionRetryDelay: time.Duration(jsonCfg.App.SessionRetryDelay),
			Version:           jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Aggregator: Aggregator{
			BaseURL:  jsonCfg.Aggregator.BaseURL,
			ClientID: jsonCfg.Aggregator.ClientID,
			Secret:   jsonCfg.Aggregator.Secret,
			Timeout:  time.Duration(jsonCfg.Aggregator.Timeout),
		},
		Mail: Mail{
			BaseURL: jsonCfg.Mail.BaseURL,
			APIKey:  jsonCfg.Mail.APIKey,
			Sender:  jsonCfg.Mail.Sender,
			Timeout: time.Duration(jsonCfg.Mail.Timeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h" or "30s" as well as plain
// nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.New("invalid duration")
	}
}
