package api

import (
	"context"
	"net/url"

	"hrms-engine/internal/domain"
)

type CreateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Interviewer string `json:"interviewer"`
}

// UpdateJobRequest carries only the client-mutable fields. Nil means
// "leave unchanged".
type UpdateJobRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Interviewer *string `json:"interviewer,omitempty"`
}

type GeneratePostRequest struct {
	Content      string `json:"content,omitempty"`
	UseAI        bool   `json:"useAI"`
	IncludeImage bool   `json:"includeImage"`
	CompanyInfo  string `json:"companyInfo,omitempty"`
}

type PublishPostRequest struct {
	Platforms []string `json:"platforms"`
	Content   string   `json:"content,omitempty"`
}

// PublishPayload is the data field of a publish response. PublishResults
// may be absent on older servers, in which case every requested platform
// is taken as published.
type PublishPayload struct {
	Job            *domain.Job            `json:"job,omitempty"`
	PublishResults []domain.PublishResult `json:"publishResults,omitempty"`
}

func (c *Client) ListJobs(ctx context.Context, status string) ([]domain.Job, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": []string{status}}
	}
	var out []domain.Job
	if err := c.get(ctx, "/api/jobs", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	var out domain.Job
	if err := c.get(ctx, "/api/jobs/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateJob(ctx context.Context, req CreateJobRequest) (*domain.Job, error) {
	var out domain.Job
	if err := c.post(ctx, "/api/jobs", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, req UpdateJobRequest) (*domain.Job, error) {
	var out domain.Job
	if err := c.put(ctx, "/api/jobs/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.del(ctx, "/api/jobs/"+url.PathEscape(id), nil)
}

// GenerateJobPost runs the remote generator and returns the full job row
// with the new jobPost and aiMetadata attached.
func (c *Client) GenerateJobPost(ctx context.Context, id string, req GeneratePostRequest) (*domain.Job, error) {
	var out domain.Job
	if err := c.post(ctx, "/api/jobs/"+url.PathEscape(id)+"/job-post", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PublishJobPost(ctx context.Context, id string, req PublishPostRequest) (*PublishPayload, error) {
	var out PublishPayload
	if err := c.post(ctx, "/api/jobs/"+url.PathEscape(id)+"/publish", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) IncrementApplications(ctx context.Context, id string) (int, error) {
	var out struct {
		ID           string `json:"id"`
		Applications int    `json:"applications"`
	}
	if err := c.post(ctx, "/api/jobs/"+url.PathEscape(id)+"/applications", nil, &out); err != nil {
		return 0, err
	}
	return out.Applications, nil
}

func (c *Client) JobStats(ctx context.Context) (*domain.JobStats, error) {
	var out domain.JobStats
	if err := c.get(ctx, "/api/jobs/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
