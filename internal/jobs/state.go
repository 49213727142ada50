package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"hrms-engine/internal/api"
	"hrms-engine/internal/domain"
	"hrms-engine/internal/post"
)

// Local validation errors, raised before any remote call goes out.
var (
	ErrNoPlatforms    = errors.New("select at least one platform to publish")
	ErrImmutableField = errors.New("field is not client-mutable")
	ErrMissingFields  = errors.New("title, description and interviewer are required")
)

// API is the slice of the remote client the workflow needs.
type API interface {
	ListJobs(ctx context.Context, status string) ([]domain.Job, error)
	CreateJob(ctx context.Context, req api.CreateJobRequest) (*domain.Job, error)
	UpdateJob(ctx context.Context, id string, req api.UpdateJobRequest) (*domain.Job, error)
	DeleteJob(ctx context.Context, id string) error
	GenerateJobPost(ctx context.Context, id string, req api.GeneratePostRequest) (*domain.Job, error)
	PublishJobPost(ctx context.Context, id string, req api.PublishPostRequest) (*api.PublishPayload, error)
	IncrementApplications(ctx context.Context, id string) (int, error)
}

// Gate vets a platform right before a publish goes out. The LinkedIn
// connection state implements it.
type Gate interface {
	CanPublish(platform string) error
}

// Cache persists the last-seen job list so the next start paints before the
// first round trip. Derived state only; never authoritative.
type Cache interface {
	SaveJobs(ctx context.Context, jobs []domain.Job) error
}

// State owns the job collection and the generate→edit→publish pipeline.
// Nothing is optimistic: the collection changes only when a remote call
// resolves, and a resolution for an id that has since been deleted is
// discarded (membership guard), so a delete always wins.
type State struct {
	mu    sync.Mutex
	api   API
	gate  Gate
	cache Cache

	jobs    []domain.Job
	loading bool
	lastErr string
}

type Snapshot struct {
	Jobs      []domain.Job `json:"jobs"`
	Loading   bool         `json:"loading"`
	LastError string       `json:"lastError,omitempty"`
}

// GenerateOptions mirrors the generate endpoint's body. When UseAI is off
// and Content is empty, the local template composer fills Content in.
type GenerateOptions struct {
	UseAI        bool   `json:"useAI"`
	IncludeImage bool   `json:"includeImage"`
	CompanyInfo  string `json:"companyInfo,omitempty"`
	Content      string `json:"content,omitempty"`
}

// PlatformFailure is one platform the server could not publish to.
type PlatformFailure struct {
	Platform string `json:"platform"`
	Message  string `json:"message"`
}

// PublishOutcome distinguishes full success from partial: the call counts
// as successful when at least one platform went out, but Failed enumerates
// the rest so the caller can report them separately.
type PublishOutcome struct {
	Job       *domain.Job       `json:"job,omitempty"`
	Published []string          `json:"published"`
	Failed    []PlatformFailure `json:"failed,omitempty"`
}

func (o *PublishOutcome) Partial() bool {
	return o != nil && len(o.Failed) > 0
}

func New(remote API, gate Gate, cache Cache) *State {
	return &State{api: remote, gate: gate, cache: cache}
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Jobs: s.copyJobs(), Loading: s.loading, LastError: s.lastErr}
}

// Prime seeds the collection from the local cache before any network call.
// A collection that already holds server truth is left alone.
func (s *State) Prime(jobs []domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.jobs) == 0 {
		s.jobs = jobs
	}
}

// List replaces the whole collection with the server's result for the
// filter. No merging.
func (s *State) List(ctx context.Context, statusFilter string) ([]domain.Job, error) {
	s.begin()

	jobs, err := s.api.ListJobs(ctx, statusFilter)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		// Keep whatever was rendered; only record the failure.
		s.lastErr = api.Message(err)
		return nil, err
	}
	s.jobs = jobs
	s.persistLocked(ctx)
	return s.copyJobs(), nil
}

// Create inserts the server-assigned row at the front of the collection.
func (s *State) Create(ctx context.Context, title, description, interviewer string) (*domain.Job, error) {
	if title == "" || description == "" || interviewer == "" {
		return nil, ErrMissingFields
	}
	s.begin()

	created, err := s.api.CreateJob(ctx, api.CreateJobRequest{
		Title:       title,
		Description: description,
		Interviewer: interviewer,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.Message(err)
		return nil, err
	}
	s.jobs = append([]domain.Job{*created}, s.jobs...)
	s.persistLocked(ctx)
	return created, nil
}

// Update accepts only the client-mutable fields; anything else is a local
// domain error. On success the server's full row replaces the old one in
// place, unless the job was deleted while the call was in flight.
func (s *State) Update(ctx context.Context, id string, fields map[string]string) (*domain.Job, error) {
	var req api.UpdateJobRequest
	for k := range fields {
		v := fields[k]
		switch k {
		case "title":
			req.Title = &v
		case "description":
			req.Description = &v
		case "interviewer":
			req.Interviewer = &v
		default:
			return nil, fmt.Errorf("%w: %s", ErrImmutableField, k)
		}
	}
	s.begin()

	updated, err := s.api.UpdateJob(ctx, id, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.Message(err)
		return nil, err
	}
	i := s.indexLocked(id)
	if i < 0 {
		// Deleted while in flight; the delete wins.
		return nil, nil
	}
	s.jobs[i] = *updated
	s.persistLocked(ctx)
	return updated, nil
}

// Delete removes the job once the server confirms.
func (s *State) Delete(ctx context.Context, id string) error {
	s.begin()

	err := s.api.DeleteJob(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.Message(err)
		return err
	}
	if i := s.indexLocked(id); i >= 0 {
		s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
	}
	s.persistLocked(ctx)
	return nil
}

// GeneratePost runs the remote generator and replaces the job's post and AI
// metadata in place. Status is never touched here.
func (s *State) GeneratePost(ctx context.Context, jobID string, opts GenerateOptions) (*domain.Job, error) {
	if !opts.UseAI && opts.Content == "" {
		s.mu.Lock()
		if i := s.indexLocked(jobID); i >= 0 {
			opts.Content = post.Compose(s.jobs[i].Title, s.jobs[i].Description)
		}
		s.mu.Unlock()
	}
	s.begin()

	resolved, err := s.api.GenerateJobPost(ctx, jobID, api.GeneratePostRequest{
		Content:      opts.Content,
		UseAI:        opts.UseAI,
		IncludeImage: opts.IncludeImage,
		CompanyInfo:  opts.CompanyInfo,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.Message(err)
		return nil, err
	}
	i := s.indexLocked(jobID)
	if i < 0 {
		return nil, nil
	}
	s.jobs[i].JobPost = resolved.JobPost
	s.jobs[i].AIMetadata = resolved.AIMetadata
	s.persistLocked(ctx)
	cp := s.jobs[i]
	return &cp, nil
}

// PublishPost pushes the post out. Preconditions run locally before any
// network call: a non-empty platform set, and each platform's gate. On
// resolution the platforms that actually went out land on the post,
// publishedAt is stamped, and the job flips to published, provided at least
// one platform succeeded.
func (s *State) PublishPost(ctx context.Context, jobID string, platforms []string, content string) (*PublishOutcome, error) {
	if len(platforms) == 0 {
		return nil, ErrNoPlatforms
	}
	if s.gate != nil {
		for _, p := range platforms {
			if err := s.gate.CanPublish(p); err != nil {
				return nil, err
			}
		}
	}
	s.begin()

	payload, err := s.api.PublishJobPost(ctx, jobID, api.PublishPostRequest{
		Platforms: platforms,
		Content:   content,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.Message(err)
		return nil, err
	}

	published, failed := splitResults(platforms, payload.PublishResults)
	if len(published) == 0 {
		// Every platform failed: the publish as a whole failed.
		msg := "publish failed on every platform"
		if len(failed) > 0 && failed[0].Message != "" {
			msg = failed[0].Message
		}
		s.lastErr = msg
		return &PublishOutcome{Failed: failed}, errors.New(msg)
	}

	outcome := &PublishOutcome{Published: published, Failed: failed}
	i := s.indexLocked(jobID)
	if i < 0 {
		// Deleted while publishing; keep the outcome, drop the state change.
		return outcome, nil
	}

	jp := s.jobs[i].JobPost
	if jp == nil {
		jp = &domain.JobPost{}
		s.jobs[i].JobPost = jp
	}
	if content != "" {
		jp.Content = content
	}
	now := time.Now().UTC()
	jp.Platforms = published
	jp.PublishedAt = &now
	s.jobs[i].Status = domain.JobStatusPublished
	s.persistLocked(ctx)

	cp := s.jobs[i]
	outcome.Job = &cp
	return outcome, nil
}

// IncrementApplications bumps the server-side counter and mirrors it.
func (s *State) IncrementApplications(ctx context.Context, jobID string) (int, error) {
	s.begin()

	n, err := s.api.IncrementApplications(ctx, jobID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.Message(err)
		return 0, err
	}
	if i := s.indexLocked(jobID); i >= 0 {
		s.jobs[i].Applications = n
		s.persistLocked(ctx)
	}
	return n, nil
}

// ClearError drops only the last-error field.
func (s *State) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *State) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *State) indexLocked(id string) int {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) copyJobs() []domain.Job {
	out := make([]domain.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *State) persistLocked(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveJobs(ctx, s.copyJobs()); err != nil {
		// Cache is best effort; the server stays authoritative.
		log.Printf("level=warn msg=\"job snapshot save failed\" err=%v", err)
	}
}

func splitResults(requested []string, results []domain.PublishResult) (published []string, failed []PlatformFailure) {
	if len(results) == 0 {
		// Older servers report no per-platform detail; take the request
		// as fully published.
		return append([]string(nil), requested...), nil
	}
	for _, r := range results {
		if r.Success {
			published = append(published, r.Platform)
		} else {
			failed = append(failed, PlatformFailure{Platform: r.Platform, Message: r.Message})
		}
	}
	return published, failed
}
