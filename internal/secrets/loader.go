// Package secrets resolves credentials given inline, through the environment or in files.
package secrets

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

var ErrNotConfigured = errors.New("not configured")

type Source struct {
	// Name is used in error messages.
	Name string
	// Value usually comes from the config file or an environment variable.
	Value string
	// File wins over Value when set.
	File string
}

// Load returns the trimmed secret described by src.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s from %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("%s is %w", name, ErrNotConfigured)
}

// RedactURL hides the password of a connection URL so it can be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
