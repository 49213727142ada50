package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-engine/internal/api"
	"hrms-engine/internal/domain"
)

type stubAPI struct {
	calls int

	list      func(status string) ([]domain.Job, error)
	create    func(req api.CreateJobRequest) (*domain.Job, error)
	update    func(id string, req api.UpdateJobRequest) (*domain.Job, error)
	deleteJob func(id string) error
	generate  func(id string, req api.GeneratePostRequest) (*domain.Job, error)
	publish   func(id string, req api.PublishPostRequest) (*api.PublishPayload, error)
	increment func(id string) (int, error)
}

func (s *stubAPI) ListJobs(ctx context.Context, status string) ([]domain.Job, error) {
	s.calls++
	return s.list(status)
}

func (s *stubAPI) CreateJob(ctx context.Context, req api.CreateJobRequest) (*domain.Job, error) {
	s.calls++
	return s.create(req)
}

func (s *stubAPI) UpdateJob(ctx context.Context, id string, req api.UpdateJobRequest) (*domain.Job, error) {
	s.calls++
	return s.update(id, req)
}

func (s *stubAPI) DeleteJob(ctx context.Context, id string) error {
	s.calls++
	return s.deleteJob(id)
}

func (s *stubAPI) GenerateJobPost(ctx context.Context, id string, req api.GeneratePostRequest) (*domain.Job, error) {
	s.calls++
	return s.generate(id, req)
}

func (s *stubAPI) PublishJobPost(ctx context.Context, id string, req api.PublishPostRequest) (*api.PublishPayload, error) {
	s.calls++
	return s.publish(id, req)
}

func (s *stubAPI) IncrementApplications(ctx context.Context, id string) (int, error) {
	s.calls++
	return s.increment(id)
}

type gateFunc func(platform string) error

func (g gateFunc) CanPublish(platform string) error { return g(platform) }

func openGate() Gate { return gateFunc(func(string) error { return nil }) }

func draftJob(id, title string) domain.Job {
	return domain.Job{ID: id, Title: title, Description: "desc", Interviewer: "jo", Status: domain.JobStatusDraft}
}

func TestListReplacesCollection(t *testing.T) {
	remote := &stubAPI{list: func(status string) ([]domain.Job, error) {
		assert.Equal(t, "draft", status)
		return []domain.Job{draftJob("j2", "Backend"), draftJob("j3", "SRE")}, nil
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Stale")})

	got, err := s.List(context.Background(), "draft")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "j2", got[0].ID)

	snap := s.Snapshot()
	require.Len(t, snap.Jobs, 2, "server result replaces the primed rows wholesale")
	assert.False(t, snap.Loading)
}

func TestListFailureKeepsCollection(t *testing.T) {
	remote := &stubAPI{list: func(string) ([]domain.Job, error) {
		return nil, &api.Error{Message: api.NetworkErrorMessage}
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend")})

	_, err := s.List(context.Background(), "")
	require.Error(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Jobs, 1, "a failed refresh keeps what was rendered")
	assert.Equal(t, api.NetworkErrorMessage, snap.LastError)
}

func TestCreatePrepends(t *testing.T) {
	remote := &stubAPI{create: func(req api.CreateJobRequest) (*domain.Job, error) {
		return &domain.Job{ID: "j9", Title: req.Title, Description: req.Description, Interviewer: req.Interviewer, Status: domain.JobStatusDraft}, nil
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Old")})

	created, err := s.Create(context.Background(), "Go Engineer", "Build things", "jo")
	require.NoError(t, err)
	assert.Equal(t, "j9", created.ID)

	snap := s.Snapshot()
	require.Len(t, snap.Jobs, 2)
	assert.Equal(t, "j9", snap.Jobs[0].ID, "newest job lands at the front")
}

func TestCreateRequiresAllFields(t *testing.T) {
	remote := &stubAPI{}
	s := New(remote, openGate(), nil)

	_, err := s.Create(context.Background(), "Go Engineer", "", "jo")
	require.ErrorIs(t, err, ErrMissingFields)
	assert.Zero(t, remote.calls, "local validation must not reach the network")
}

func TestUpdateRejectsImmutableFields(t *testing.T) {
	remote := &stubAPI{}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend")})

	_, err := s.Update(context.Background(), "j1", map[string]string{"status": "published"})
	require.ErrorIs(t, err, ErrImmutableField)
	assert.Zero(t, remote.calls)
}

func TestUpdateReplacesRowInPlace(t *testing.T) {
	remote := &stubAPI{update: func(id string, req api.UpdateJobRequest) (*domain.Job, error) {
		require.NotNil(t, req.Title)
		j := draftJob(id, *req.Title)
		return &j, nil
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend"), draftJob("j2", "SRE")})

	updated, err := s.Update(context.Background(), "j1", map[string]string{"title": "Platform"})
	require.NoError(t, err)
	assert.Equal(t, "Platform", updated.Title)

	snap := s.Snapshot()
	assert.Equal(t, "Platform", snap.Jobs[0].Title)
	assert.Equal(t, "SRE", snap.Jobs[1].Title)
}

func TestDeleteWinsOverLateUpdate(t *testing.T) {
	remote := &stubAPI{
		deleteJob: func(string) error { return nil },
		update: func(id string, req api.UpdateJobRequest) (*domain.Job, error) {
			// The server still knows the row when this resolves.
			j := draftJob(id, "Late Title")
			return &j, nil
		},
	}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend")})

	require.NoError(t, s.Delete(context.Background(), "j1"))

	updated, err := s.Update(context.Background(), "j1", map[string]string{"title": "Late Title"})
	require.NoError(t, err)
	assert.Nil(t, updated, "resolution for a deleted id is discarded")
	assert.Empty(t, s.Snapshot().Jobs, "the delete must win")
}

func TestGenerateFillsTemplateWhenAIOff(t *testing.T) {
	var sent api.GeneratePostRequest
	remote := &stubAPI{generate: func(id string, req api.GeneratePostRequest) (*domain.Job, error) {
		sent = req
		j := draftJob(id, "Go Engineer")
		j.JobPost = &domain.JobPost{ID: "p1", Content: req.Content}
		return &j, nil
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Go Engineer")})

	got, err := s.GeneratePost(context.Background(), "j1", GenerateOptions{UseAI: false})
	require.NoError(t, err)
	assert.False(t, sent.UseAI)
	assert.Contains(t, sent.Content, "Go Engineer", "template content is composed from the job")
	require.NotNil(t, got.JobPost)
	assert.Equal(t, domain.JobStatusDraft, got.Status, "generating never flips status")
}

func TestGenerateKeepsCallerContent(t *testing.T) {
	remote := &stubAPI{generate: func(id string, req api.GeneratePostRequest) (*domain.Job, error) {
		assert.Equal(t, "hand written", req.Content)
		j := draftJob(id, "Go Engineer")
		j.JobPost = &domain.JobPost{ID: "p1", Content: req.Content}
		return &j, nil
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Go Engineer")})

	_, err := s.GeneratePost(context.Background(), "j1", GenerateOptions{Content: "hand written"})
	require.NoError(t, err)
}

func TestPublishRequiresPlatforms(t *testing.T) {
	remote := &stubAPI{}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend")})

	_, err := s.PublishPost(context.Background(), "j1", nil, "")
	require.ErrorIs(t, err, ErrNoPlatforms)
	assert.Zero(t, remote.calls)
}

func TestPublishGateBlocksLocally(t *testing.T) {
	remote := &stubAPI{}
	gateErr := errors.New("LinkedIn account is not connected")
	s := New(remote, gateFunc(func(p string) error {
		if strings.EqualFold(p, "linkedin") {
			return gateErr
		}
		return nil
	}), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend")})

	_, err := s.PublishPost(context.Background(), "j1", []string{"linkedin"}, "")
	require.ErrorIs(t, err, gateErr)
	assert.Zero(t, remote.calls, "gate failures must not reach the network")
	assert.Equal(t, domain.JobStatusDraft, s.Snapshot().Jobs[0].Status)
}

func TestPublishSuccessStampsJob(t *testing.T) {
	remote := &stubAPI{publish: func(id string, req api.PublishPostRequest) (*api.PublishPayload, error) {
		return &api.PublishPayload{PublishResults: []domain.PublishResult{
			{Platform: "linkedin", Success: true, PostURL: "https://linkedin.com/p/1"},
		}}, nil
	}}
	s := New(remote, openGate(), nil)
	j := draftJob("j1", "Backend")
	j.JobPost = &domain.JobPost{ID: "p1", Content: "post body"}
	s.Prime([]domain.Job{j})

	outcome, err := s.PublishPost(context.Background(), "j1", []string{"linkedin"}, "")
	require.NoError(t, err)
	assert.False(t, outcome.Partial())
	assert.Equal(t, []string{"linkedin"}, outcome.Published)

	got := s.Snapshot().Jobs[0]
	assert.Equal(t, domain.JobStatusPublished, got.Status)
	require.True(t, got.JobPost.Published())
	assert.Equal(t, []string{"linkedin"}, got.JobPost.Platforms)
	assert.WithinDuration(t, time.Now().UTC(), *got.JobPost.PublishedAt, 5*time.Second)
}

func TestPublishPartialIsStillSuccess(t *testing.T) {
	remote := &stubAPI{publish: func(id string, req api.PublishPostRequest) (*api.PublishPayload, error) {
		return &api.PublishPayload{PublishResults: []domain.PublishResult{
			{Platform: "linkedin", Success: true},
			{Platform: "twitter", Success: false, Message: "rate limited"},
		}}, nil
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend")})

	outcome, err := s.PublishPost(context.Background(), "j1", []string{"linkedin", "twitter"}, "body")
	require.NoError(t, err, "one platform out is success overall")
	assert.True(t, outcome.Partial())
	assert.Equal(t, []string{"linkedin"}, outcome.Published)
	require.Len(t, outcome.Failed, 1)
	assert.Equal(t, "twitter", outcome.Failed[0].Platform)
	assert.Equal(t, "rate limited", outcome.Failed[0].Message)

	got := s.Snapshot().Jobs[0]
	assert.Equal(t, domain.JobStatusPublished, got.Status)
	assert.Equal(t, []string{"linkedin"}, got.JobPost.Platforms, "only platforms that went out land on the post")
}

func TestPublishAllFailed(t *testing.T) {
	remote := &stubAPI{publish: func(id string, req api.PublishPostRequest) (*api.PublishPayload, error) {
		return &api.PublishPayload{PublishResults: []domain.PublishResult{
			{Platform: "linkedin", Success: false, Message: "token revoked"},
		}}, nil
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend")})

	outcome, err := s.PublishPost(context.Background(), "j1", []string{"linkedin"}, "")
	require.Error(t, err)
	assert.Equal(t, "token revoked", err.Error())
	assert.Empty(t, outcome.Published)

	got := s.Snapshot().Jobs[0]
	assert.Equal(t, domain.JobStatusDraft, got.Status, "a fully failed publish changes nothing")
	assert.Equal(t, "token revoked", s.Snapshot().LastError)
}

func TestPublishWithoutPerPlatformDetail(t *testing.T) {
	// Servers that omit publishResults report success for the whole request.
	remote := &stubAPI{publish: func(id string, req api.PublishPostRequest) (*api.PublishPayload, error) {
		return &api.PublishPayload{}, nil
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend")})

	outcome, err := s.PublishPost(context.Background(), "j1", []string{"linkedin"}, "body")
	require.NoError(t, err)
	assert.Equal(t, []string{"linkedin"}, outcome.Published)
	assert.False(t, outcome.Partial())
	assert.Equal(t, "body", s.Snapshot().Jobs[0].JobPost.Content)
}

func TestIncrementApplicationsMirrorsCounter(t *testing.T) {
	remote := &stubAPI{increment: func(id string) (int, error) { return 4, nil }}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend")})

	n, err := s.IncrementApplications(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, s.Snapshot().Jobs[0].Applications)
}

func TestStatusPublishedTracksPublishedAt(t *testing.T) {
	remote := &stubAPI{publish: func(id string, req api.PublishPostRequest) (*api.PublishPayload, error) {
		return &api.PublishPayload{}, nil
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend"), draftJob("j2", "SRE")})

	_, err := s.PublishPost(context.Background(), "j1", []string{"linkedin"}, "body")
	require.NoError(t, err)

	for _, j := range s.Snapshot().Jobs {
		if j.Status == domain.JobStatusPublished {
			assert.True(t, j.JobPost.Published(), "published status implies a stamped post: %s", j.ID)
		} else {
			assert.False(t, j.JobPost.Published(), "draft must not carry a publish stamp: %s", j.ID)
		}
	}
}

func TestClearErrorOnlyDropsError(t *testing.T) {
	remote := &stubAPI{list: func(string) ([]domain.Job, error) {
		return nil, &api.Error{Message: "boom"}
	}}
	s := New(remote, openGate(), nil)
	s.Prime([]domain.Job{draftJob("j1", "Backend")})
	_, _ = s.List(context.Background(), "")
	require.NotEmpty(t, s.Snapshot().LastError)

	s.ClearError()
	snap := s.Snapshot()
	assert.Empty(t, snap.LastError)
	assert.Len(t, snap.Jobs, 1)
}
