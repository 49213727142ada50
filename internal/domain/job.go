package domain

import (
	"encoding/json"
	"time"
)

type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusClosed    JobStatus = "closed"
)

// Job mirrors the server's representation. The client never invents these:
// every Job in the collection came back from a resolved API call.
type Job struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Interviewer  string          `json:"interviewer"`
	CreatedAt    time.Time       `json:"createdAt"`
	Status       JobStatus       `json:"status"`
	Applications int             `json:"applications"`
	JobPost      *JobPost        `json:"jobPost,omitempty"`
	AIMetadata   json.RawMessage `json:"aiMetadata,omitempty"`
}

// JobPost is owned by exactly one Job. Platforms is the set actually
// published; it is non-empty iff PublishedAt is set.
type JobPost struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Platforms   []string   `json:"platforms"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Published reports whether the post has gone out to at least one platform.
func (p *JobPost) Published() bool {
	return p != nil && p.PublishedAt != nil
}

// PublishResult is the server's per-platform outcome for one publish call.
type PublishResult struct {
	Platform string `json:"platform"`
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	PostURL  string `json:"postUrl,omitempty"`
}
