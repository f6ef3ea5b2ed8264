package generation

import (
	"context"
	"time"
)

// Request and connectivity-test timeouts applied inside every client.
const (
	GenerateTimeout       = 60 * time.Second
	TestConnectionTimeout = 15 * time.Second
)

// Generator is the uniform contract implemented by every provider
// client. Implementations build the provider-specific request, send it
// over HTTP with a bounded timeout, and normalize failures into *Error
// values with stable codes.
type Generator interface {
	// Generate produces text for the given prompt. wordCount drives the
	// token budget; opts may carry a "temperature" override. The prompt
	// must be non-empty and wordCount positive.
	Generate(ctx context.Context, prompt string, wordCount int, opts map[string]any) (string, error)

	// TestConnection sends a minimal request (trivial prompt, 5-token
	// budget) to verify the credential and endpoint are usable.
	TestConnection(ctx context.Context) error
}
