// Package provider holds the static registry of supported AI text
// providers and their connection metadata. The registry is defined at
// build time and is never mutated.
package provider

// Provider identifiers.
const (
	OpenAI    = "openai"
	DeepSeek  = "deepseek"
	Gemini    = "gemini"
	Anthropic = "anthropic"
)

// Config describes how to reach one provider. Immutable.
type Config struct {
	ID          string
	DisplayName string
	Endpoint    string
	Model       string
	DocsURL     string
}

// ids preserves the display order used throughout the application.
var ids = []string{OpenAI, DeepSeek, Gemini, Anthropic}

var configs = map[string]Config{
	OpenAI: {
		ID:          OpenAI,
		DisplayName: "OpenAI",
		Endpoint:    "https://api.openai.com/v1/chat/completions",
		Model:       "gpt-3.5-turbo",
		DocsURL:     "https://platform.openai.com/docs/api-reference",
	},
	DeepSeek: {
		ID:          DeepSeek,
		DisplayName: "DeepSeek",
		Endpoint:    "https://api.deepseek.com/v1/chat/completions",
		Model:       "deepseek-chat",
		DocsURL:     "https://platform.deepseek.com",
	},
	Gemini: {
		ID:          Gemini,
		DisplayName: "Google Gemini",
		Endpoint:    "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent",
		Model:       "gemini-pro",
		DocsURL:     "https://ai.google.dev/docs",
	},
	Anthropic: {
		ID:          Anthropic,
		DisplayName: "Claude (Anthropic)",
		Endpoint:    "https://api.anthropic.com/v1/messages",
		Model:       "claude-3-sonnet-20240229",
		DocsURL:     "https://docs.anthropic.com/claude/reference",
	},
}

// Get returns the configuration for the given provider ID.
// The second return value reports whether the provider is known.
func Get(id string) (Config, bool) {
	cfg, ok := configs[id]
	return cfg, ok
}

// IDs returns the supported provider IDs in display order.
// The returned slice is a copy and may be modified by the caller.
func IDs() []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
