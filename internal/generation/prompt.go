package generation

import (
	"fmt"
	"math"

	"github.com/phrazzld/pagegen/internal/domain"
)

// SystemMessage is the instruction sent alongside every generation
// prompt. Providers without a dedicated system role fold it into the
// user content.
const SystemMessage = "You are an expert content writer specializing in creating high-quality, " +
	"SEO-optimized content for WordPress websites. Generate well-structured content " +
	"with proper HTML formatting including headings (h2, h3), paragraphs (p), " +
	"lists (ul, ol, li), and emphasis (strong, em) where appropriate."

// DefaultTemperature is used when the caller does not override it.
const DefaultTemperature = 0.7

// BuildPrompt assembles the user prompt for a generation request. The
// output is a pure function of its inputs: no randomness and no clock
// reads, so the cache fingerprint of identical requests always matches.
func BuildPrompt(title string, contentType domain.ContentType, wordCount int) string {
	label := "page"
	if contentType == domain.ContentTypePost {
		label = "blog post"
	}

	prompt := fmt.Sprintf("Write a comprehensive %s of approximately %d words", label, wordCount)

	if title != "" {
		prompt += fmt.Sprintf(" about: %s", title)
	}

	prompt += ". Structure the content with proper HTML formatting including headings (h2, h3), " +
		"paragraphs, lists, and emphasis where appropriate. Make it engaging, informative, and SEO-friendly."

	return prompt
}

// MaxTokens estimates the token budget for a target word count.
// One word is roughly 1.3 tokens; a 20% buffer absorbs sub-word
// tokenization and HTML formatting overhead.
func MaxTokens(wordCount int) int {
	return int(math.Ceil(float64(wordCount) * 1.3 * 1.2))
}

// Temperature resolves the sampling temperature from the options map,
// falling back to DefaultTemperature. Integer values are accepted for
// callers that decoded options from JSON numbers.
func Temperature(opts map[string]any) float64 {
	if opts == nil {
		return DefaultTemperature
	}

	switch v := opts["temperature"].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return DefaultTemperature
	}
}
