// Package entity defines the core domain entities and validation logic for the application.
// It contains the Article value object produced by the search client and consumed by
// the stream publisher, along with domain-specific errors.
package entity

import (
	"fmt"
	"strings"
	"time"
)

// Article represents one normalized search result ready for publishing.
// All required fields are validated at construction time; an Article never
// exists in a partially-valid state and is not mutated afterwards.
type Article struct {
	WebPublicationDate time.Time `json:"webPublicationDate"`
	WebTitle           string    `json:"webTitle"`
	WebURL             string    `json:"webUrl"`
	ContentPreview     string    `json:"content_preview,omitempty"`
}

// NewArticle constructs an Article from the raw provider fields.
// The publication date must be an RFC 3339 timestamp (the provider's
// ISO-8601 form), and title and URL must be non-empty.
func NewArticle(publicationDate, title, rawURL string) (Article, error) {
	publishedAt, err := time.Parse(time.RFC3339, publicationDate)
	if err != nil {
		return Article{}, &ValidationError{
			Field:   "webPublicationDate",
			Message: fmt.Sprintf("invalid publication date %q: must be RFC 3339", publicationDate),
		}
	}

	if strings.TrimSpace(title) == "" {
		return Article{}, &ValidationError{Field: "webTitle", Message: "title is required"}
	}

	if strings.TrimSpace(rawURL) == "" {
		return Article{}, &ValidationError{Field: "webUrl", Message: "url is required"}
	}

	return Article{
		WebPublicationDate: publishedAt,
		WebTitle:           title,
		WebURL:             rawURL,
	}, nil
}

// WithPreview returns a copy of the article carrying a content preview.
// An empty preview means the field is absent from the serialized record.
func (a Article) WithPreview(preview string) Article {
	a.ContentPreview = preview
	return a
}

// PartitionKey returns the value used to route the article's record to a
// shard in the sink. The URL is the canonical identity of an article, so
// all records for the same article land on the same ordering lane.
func (a Article) PartitionKey() string {
	return a.WebURL
}
