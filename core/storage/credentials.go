package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// CredentialSource names where the storage credentials came from.
type CredentialSource string

const (
	SourceSecrets CredentialSource = "secrets"
	SourceFile    CredentialSource = "file"
	SourceNone    CredentialSource = "none"
)

// Credentials is the structure of the local credentials file.
type Credentials struct {
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
	SessionToken string `json:"session_token,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"`
	Region       string `json:"region,omitempty"`
}

// ResolveCredentials picks credentials from the configured secrets first and
// the credentials file second. It returns ErrNoCredentials when neither exists.
func ResolveCredentials(cfg Config) (Credentials, CredentialSource, error) {
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		return Credentials{
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
		}, SourceSecrets, nil
	}

	if cfg.CredentialsFile == "" {
		return Credentials{}, SourceNone, ErrNoCredentials
	}

	raw, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, SourceNone, ErrNoCredentials
		}
		return Credentials{}, SourceNone, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, SourceNone, fmt.Errorf("failed to parse credentials file %s: %w", cfg.CredentialsFile, err)
	}
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return Credentials{}, SourceNone, fmt.Errorf("credentials file %s: missing access_key or secret_key", cfg.CredentialsFile)
	}
	if creds.Endpoint == "" {
		creds.Endpoint = cfg.Endpoint
	}
	if creds.Region == "" {
		creds.Region = cfg.Region
	}

	return creds, SourceFile, nil
}
