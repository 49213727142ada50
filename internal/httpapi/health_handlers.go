package httpapi

import (
	"net/http"
	"time"

	"hrms-engine/internal/app"
)

type HealthHandler struct {
	App *app.App
}

// Health reports the engine itself plus whether the remote API answers.
func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	remoteOK := h.App.API.Health(r.Context()) == nil
	WriteData(w, "ok", map[string]any{
		"ok":     true,
		"remote": remoteOK,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
