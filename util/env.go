package util

import (
	"os"
	"strings"
)

// GetOrDefault returns the value of the named environment variable or the
// given default if the variable is unset or empty.
func GetOrDefault(name, defaultValue string) string {
	v := os.Getenv(name)
	if v == "" {
		return defaultValue
	}
	return v
}

// IsTruthy interprets common affirmative spellings of an env var value.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}
