package httpapi

import (
	"net/http"
	"strings"

	"hrms-engine/internal/app"
	"hrms-engine/internal/events"
	"hrms-engine/internal/jobs"
)

type JobsHandler struct {
	App *app.App
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.App.Jobs.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteData(w, "jobs", list)
}

func (h JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Interviewer string `json:"interviewer"`
	}
	if !readJSON(w, r, &body) {
		return
	}

	job, err := h.App.Jobs.Create(r.Context(), body.Title, body.Description, body.Interviewer)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.App.Hub.Publish(events.MakeEvent(reqID, events.TypeJobCreated, 1, map[string]any{"id": job.ID}))
	WriteData(w, "job created", job)
}

// ByPath dispatches /jobs/{id} and the /jobs/{id}/{action} sub-resources.
func (h JobsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/jobs/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		WriteJSON(w, http.StatusBadRequest, Envelope{Message: "invalid job id"})
		return
	}

	switch {
	case action == "" && r.Method == http.MethodPut:
		h.update(w, r, id)
	case action == "" && r.Method == http.MethodDelete:
		h.delete(w, r, id)
	case action == "job-post" && r.Method == http.MethodPost:
		h.generate(w, r, id)
	case action == "publish" && r.Method == http.MethodPost:
		h.publish(w, r, id)
	case action == "applications" && r.Method == http.MethodPost:
		h.applications(w, r, id)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h JobsHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var fields map[string]string
	if !readJSON(w, r, &fields) {
		return
	}

	job, err := h.App.Jobs.Update(r.Context(), id, fields)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	if job == nil {
		// Resolved after a delete for the same id; nothing to show.
		WriteData(w, "job no longer exists", nil)
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.App.Hub.Publish(events.MakeEvent(reqID, events.TypeJobUpdated, 1, map[string]any{"id": job.ID}))
	WriteData(w, "job updated", job)
}

func (h JobsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.App.Jobs.Delete(r.Context(), id); err != nil {
		WriteFailure(w, err)
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.App.Hub.Publish(events.MakeEvent(reqID, events.TypeJobDeleted, 1, map[string]any{"id": id}))
	WriteData(w, "job deleted", map[string]any{"id": id})
}

func (h JobsHandler) generate(w http.ResponseWriter, r *http.Request, id string) {
	var opts jobs.GenerateOptions
	if !readJSON(w, r, &opts) {
		return
	}

	job, err := h.App.Jobs.GeneratePost(r.Context(), id, opts)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	if job == nil {
		WriteData(w, "job no longer exists", nil)
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.App.Hub.Publish(events.MakeEvent(reqID, events.TypePostGenerated, 1, map[string]any{"id": job.ID}))
	WriteData(w, "job post generated", job)
}

func (h JobsHandler) publish(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Platforms []string `json:"platforms"`
		Content   string   `json:"content"`
	}
	if !readJSON(w, r, &body) {
		return
	}

	outcome, err := h.App.Jobs.PublishPost(r.Context(), id, body.Platforms, body.Content)
	if err != nil {
		WriteFailure(w, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.App.Hub.Publish(events.MakeEvent(reqID, events.TypePostPublished, 1, map[string]any{
		"id":        id,
		"platforms": outcome.Published,
	}))
	if outcome.Partial() {
		// Separate notification enumerating what failed and why.
		h.App.Hub.Publish(events.MakeEvent(reqID, events.TypePublishPartial, 1, map[string]any{
			"id":     id,
			"failed": outcome.Failed,
		}))
	}
	WriteData(w, "job post published", outcome)
}

func (h JobsHandler) applications(w http.ResponseWriter, r *http.Request, id string) {
	n, err := h.App.Jobs.IncrementApplications(r.Context(), id)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteData(w, "application recorded", map[string]any{"id": id, "applications": n})
}

func (h JobsHandler) ClearError(w http.ResponseWriter, r *http.Request) {
	h.App.Jobs.ClearError()
	WriteData(w, "cleared", nil)
}
