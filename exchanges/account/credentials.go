package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thrasher-corp/bulkwithdraw/common/crypto"
)

const apiKeyDisplaySize = 4

var (
	// ErrCredentialsAreEmpty is returned when credentials are required but
	// have not been supplied
	ErrCredentialsAreEmpty = errors.New("credentials are empty")
	errKeyUnset            = errors.New("api key unset")
	errSecretUnset         = errors.New("api secret unset")
)

// Credentials define parameters that allow for an authenticated request.
// They are supplied by the caller per operation and never persisted.
type Credentials struct {
	Key    string `json:"apiKey"`
	Secret string `json:"apiSecret"`
}

// String prints out basic credential info (obfuscated) to track key
// instances. The secret is never rendered.
func (c *Credentials) String() string {
	if c == nil {
		return "Key:[]"
	}
	obfuscated := c.Key
	if len(obfuscated) > apiKeyDisplaySize {
		obfuscated = obfuscated[:apiKeyDisplaySize]
	}
	return fmt.Sprintf("Key:[%s...]", obfuscated)
}

// GoString prevents %#v from leaking the secret
func (c *Credentials) GoString() string {
	return c.String()
}

// IsEmpty return true if the underlying credentials type has not been filled
// with at least one item.
func (c *Credentials) IsEmpty() bool {
	return c == nil || c.Key == "" && c.Secret == ""
}

// Validate checks both the key and secret are present
func (c *Credentials) Validate() error {
	if c.IsEmpty() {
		return ErrCredentialsAreEmpty
	}
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("%w: %w", ErrCredentialsAreEmpty, errKeyUnset)
	}
	if strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("%w: %w", ErrCredentialsAreEmpty, errSecretUnset)
	}
	return nil
}

// Fingerprint returns a stable, non-reversible identifier for the API key
// suitable for use as a cache key
func (c *Credentials) Fingerprint() string {
	if c == nil {
		return ""
	}
	return crypto.HexEncodeToString(crypto.GetSHA256([]byte(c.Key)))
}
