package generation

import "regexp"

// API keys must be at least this long to be considered plausible.
const minAPIKeyLength = 10

var apiKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateAPIKey checks the credential's shape before any network call
// so a malformed key fails fast without burning a request. An empty key
// maps to missing_api_key; a short key or one containing characters
// outside [A-Za-z0-9_.-] maps to invalid_api_key.
func ValidateAPIKey(key string) error {
	if key == "" {
		return NewError(CodeMissingAPIKey, "API key is not configured")
	}

	if len(key) < minAPIKeyLength {
		return NewError(CodeInvalidAPIKey, "API key is too short")
	}

	if !apiKeyPattern.MatchString(key) {
		return NewError(CodeInvalidAPIKey, "API key contains invalid characters")
	}

	return nil
}
