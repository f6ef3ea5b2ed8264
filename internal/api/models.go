package api

// Common request/response structures

// GenerateRequest defines the payload for the content generation
// endpoint. Every field is optional; omitted fields fall back to the
// configured generation defaults.
type GenerateRequest struct {
	Title       string `json:"title"        validate:"omitempty,max=200"`
	Provider    string `json:"provider"     validate:"omitempty"`
	WordCount   int    `json:"word_count"   validate:"omitempty,gt=0"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=post page"`
	PostStatus  string `json:"post_status"  validate:"omitempty,oneof=publish draft pending"`
}

// GenerateResponse defines the successful response for the content
// generation endpoint.
type GenerateResponse struct {
	PostID    int64  `json:"post_id"`
	Provider  string `json:"provider"`
	WordCount int    `json:"word_count"`
}

// ProviderResponse describes one supported provider.
type ProviderResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Model       string `json:"model"`
	DocsURL     string `json:"docs_url"`
}

// TestProviderResponse reports the outcome of a connectivity test.
type TestProviderResponse struct {
	Provider string `json:"provider"`
	Status   string `json:"status"`
}

// ErrorResponse defines the standard error response structure. Code
// carries the stable machine-readable failure category when the error
// originated in the generation pipeline.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
