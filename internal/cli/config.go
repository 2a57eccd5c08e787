package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/pastebin/pkg/errors"
)

// Environment variables read by the demo.
const (
	envConfig   = "PASTEBIN_CONFIG"
	envDevKey   = "PASTEBIN_DEV_KEY"
	envUsername = "PASTEBIN_USERNAME"
	envPassword = "PASTEBIN_PASSWORD"
	envBaseURL  = "PASTEBIN_BASE_URL"
	envLogLevel = "PASTEBIN_LOG_LEVEL"
)

// defaultCredentialsFile is looked up in the home directory.
const defaultCredentialsFile = ".pbcreds"

// Credentials holds the account used by the demo.
//
// The file is JSON unless its name ends in ".toml":
//
//	{"api_dev_key": "...", "username": "...", "password": "..."}
type Credentials struct {
	DevKey   string `json:"api_dev_key" toml:"api_dev_key"`
	Username string `json:"username" toml:"username"`
	Password string `json:"password" toml:"password"`
	BaseURL  string `json:"base_url,omitempty" toml:"base_url"`
}

// credentialsPath returns $PASTEBIN_CONFIG, else ~/.pbcreds.
func credentialsPath(getenv func(string) string) (string, error) {
	if p := getenv(envConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInvalidInput, err, "locate home directory")
	}
	return filepath.Join(home, defaultCredentialsFile), nil
}

// loadCredentials reads the credentials file and applies environment
// overrides. A missing file is not an error when the environment supplies the
// developer key. The developer key is required.
func loadCredentials(getenv func(string) string) (Credentials, error) {
	var creds Credentials

	path, err := credentialsPath(getenv)
	if err != nil {
		return creds, err
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if creds, err = decodeCredentials(path, data); err != nil {
			return creds, err
		}
	case os.IsNotExist(err) && getenv(envDevKey) != "":
	default:
		return creds, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read credentials")
	}

	override(&creds.DevKey, getenv(envDevKey))
	override(&creds.Username, getenv(envUsername))
	override(&creds.Password, getenv(envPassword))
	override(&creds.BaseURL, getenv(envBaseURL))

	if strings.TrimSpace(creds.DevKey) == "" {
		return creds, perrors.New(perrors.ErrCodeInvalidInput, "%s: missing api_dev_key", path)
	}
	return creds, nil
}

func decodeCredentials(path string, data []byte) (Credentials, error) {
	var creds Credentials
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &creds); err != nil {
			return creds, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode %s", path)
		}
		return creds, nil
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return creds, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode %s", path)
	}
	return creds, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
