package gateway

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenFile is the on-disk representation of a cached session token.
type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenStore caches the session token between runs so that the startup
// session check can resolve without asking the user to sign in again.
// The zero ExpiresAt means the token carries no expiry claim.
type TokenStore struct {
	path string
}

// NewTokenStore places the token file under the user config directory:
// $XDG_CONFIG_HOME/dailynotes/token.json, falling back to ~/.config.
func NewTokenStore() *TokenStore {
	return &TokenStore{path: filepath.Join(configDir(), "token.json")}
}

// NewTokenStoreAt uses an explicit file path. Tests use this.
func NewTokenStoreAt(path string) *TokenStore {
	return &TokenStore{path: path}
}

func configDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "dailynotes")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dailynotes")
}

// Save persists the token. The expiry is recovered from the token's JWT
// claims without signature verification — the client only needs it to skip
// tokens the server would reject anyway. Opaque (non-JWT) tokens are stored
// without an expiry.
func (s *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	tf := tokenFile{AccessToken: token, ExpiresAt: tokenExpiry(token)}

	b, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Load returns the cached token, or "" when no usable token exists
// (missing file, unreadable content, or a token already past its expiry).
func (s *TokenStore) Load() string {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return ""
	}
	if tf.AccessToken == "" {
		return ""
	}
	if !tf.ExpiresAt.IsZero() && time.Now().After(tf.ExpiresAt) {
		return ""
	}
	return tf.AccessToken
}

// Clear removes the cached token. A missing file is not an error.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
