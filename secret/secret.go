// Package secret masks sensitive configuration values, e.g. the database password,
// so they are not exposed by accident when printed, logged, or serialised.
package secret

import (
	"encoding/json"
	"log/slog"
)

const mask = "******"

func New(secret string) Secret {
	return Secret{secret: &secret}
}

// Secret masks its value in every representation except Secret().
type Secret struct {
	// a pointer makes it harder to read the value via reflection.
	// It is still possible by directly accessing the memory address.
	secret *string
}

// Secret returns the actual value.
func (s Secret) Secret() string {
	if s.secret == nil {
		return ""
	}

	return *s.secret
}

func (s Secret) String() string {
	return mask
}

func (s Secret) LogValue() slog.Value {
	return slog.StringValue(mask)
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(mask) //nolint:wrapcheck // export the underlying error
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	var des string
	if err := json.Unmarshal(data, &des); err != nil {
		return err //nolint:wrapcheck // export the underlying error
	}

	s.secret = &des

	return nil
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(mask), nil
}

// UnmarshalText is used by the configuration to decode the value, see catalog.Viper.
func (s *Secret) UnmarshalText(data []byte) error {
	text := string(data)
	s.secret = &text

	return nil
}
