package domain

import (
	"errors"
	"unicode/utf8"
)

// ContentType identifies the kind of content a generation produces.
type ContentType string

// Supported content types.
const (
	ContentTypePost ContentType = "post"
	ContentTypePage ContentType = "page"
)

// PostStatus is the publication state a generated post is created with.
type PostStatus string

// Supported post statuses.
const (
	PostStatusPublish PostStatus = "publish"
	PostStatusDraft   PostStatus = "draft"
	PostStatusPending PostStatus = "pending"
)

// WordCountOptions is the closed set of word counts a caller may request.
var WordCountOptions = []int{100, 300, 500, 1000, 2000}

// MaxTitleLength is the longest title accepted on a generation request.
const MaxTitleLength = 200

// Common validation errors for GenerationRequest.
var (
	ErrEmptyProviderID    = errors.New("provider ID cannot be empty")
	ErrInvalidWordCount   = errors.New("word count is not one of the supported options")
	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidPostStatus  = errors.New("invalid post status")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
)

// GenerationRequest captures one caller invocation of the generation
// pipeline. It is ephemeral: constructed per call and never persisted.
type GenerationRequest struct {
	Title       string      `json:"title,omitempty"`
	ProviderID  string      `json:"provider_id"`
	WordCount   int         `json:"word_count"`
	ContentType ContentType `json:"content_type"`
	PostStatus  PostStatus  `json:"post_status"`
}

// Validate checks the request against the enumerated constraints.
// It returns the first violation found.
func (r GenerationRequest) Validate() error {
	if r.ProviderID == "" {
		return ErrEmptyProviderID
	}

	if !IsValidWordCount(r.WordCount) {
		return ErrInvalidWordCount
	}

	if !IsValidContentType(r.ContentType) {
		return ErrInvalidContentType
	}

	if !IsValidPostStatus(r.PostStatus) {
		return ErrInvalidPostStatus
	}

	if utf8.RuneCountInString(r.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	return nil
}

// IsValidWordCount reports whether wc is one of WordCountOptions.
func IsValidWordCount(wc int) bool {
	for _, opt := range WordCountOptions {
		if wc == opt {
			return true
		}
	}
	return false
}

// IsValidContentType reports whether ct is a supported content type.
func IsValidContentType(ct ContentType) bool {
	switch ct {
	case ContentTypePost, ContentTypePage:
		return true
	default:
		return false
	}
}

// IsValidPostStatus reports whether st is a supported post status.
func IsValidPostStatus(st PostStatus) bool {
	switch st {
	case PostStatusPublish, PostStatusDraft, PostStatusPending:
		return true
	default:
		return false
	}
}
