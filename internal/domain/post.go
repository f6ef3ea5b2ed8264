package domain

import (
	"errors"
	"time"
)

// Version is recorded in artifact metadata so generated content can be
// traced back to the release that produced it.
const Version = "2.0.0"

// Metadata keys attached to every generated post.
const (
	MetaGenerated   = "_pagegen_generated"
	MetaProvider    = "_pagegen_provider"
	MetaWordCount   = "_pagegen_word_count"
	MetaGeneratedAt = "_pagegen_generated_at"
	MetaVersion     = "_pagegen_version"
)

// Common validation errors for Post.
var (
	ErrEmptyPostTitle = errors.New("post title cannot be empty")
	ErrEmptyPostBody  = errors.New("post body cannot be empty")
)

// Post is the persistable shape of a generated artifact. The backing
// store assigns the numeric ID on creation.
type Post struct {
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	ContentType ContentType `json:"content_type"`
	Status      PostStatus  `json:"status"`
	Author      string      `json:"author,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewPost builds a Post with the creation timestamp set.
// Returns an error if validation fails.
func NewPost(title, body string, ct ContentType, st PostStatus, author string) (*Post, error) {
	post := &Post{
		Title:       title,
		Body:        body,
		ContentType: ct,
		Status:      st,
		Author:      author,
		CreatedAt:   time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks that the post is persistable.
func (p *Post) Validate() error {
	if p.Title == "" {
		return ErrEmptyPostTitle
	}

	if p.Body == "" {
		return ErrEmptyPostBody
	}

	if !IsValidContentType(p.ContentType) {
		return ErrInvalidContentType
	}

	if !IsValidPostStatus(p.Status) {
		return ErrInvalidPostStatus
	}

	return nil
}

// GenerationStats aggregates counts over persisted generated posts.
// A store with no generated posts yields zero values, not an error.
type GenerationStats struct {
	Total         int64            `json:"total"`
	ByProvider    map[string]int64 `json:"by_provider"`
	ByContentType map[string]int64 `json:"by_content_type"`
}
