package httpapi

import (
	"net/http"

	"hrms-engine/internal/app"
)

type LinkedInHandler struct {
	App *app.App
}

func (h LinkedInHandler) Status(w http.ResponseWriter, r *http.Request) {
	// Refresh on every read; a failure shows as disconnected, never errors
	// the surface.
	h.App.LinkedIn.FetchStatus(r.Context())
	WriteData(w, "linkedin status", h.App.LinkedIn.Snapshot())
}

// Connect hands back the provider authorization URL; the UI performs the
// actual navigation.
func (h LinkedInHandler) Connect(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.App.LinkedIn.StartConnect(r.Context())
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteData(w, "authorization started", map[string]any{"authUrl": authURL})
}

// Callback is where the provider redirect lands. The engine consumes the
// query parameters once and redirects to a clean address so a reload can't
// reprocess them.
func (h LinkedInHandler) Callback(w http.ResponseWriter, r *http.Request) {
	_ = h.App.HandleOAuthCallback(r.Context(), r.URL.Query())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h LinkedInHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.App.LinkedIn.Disconnect(r.Context()); err != nil {
		WriteFailure(w, err)
		return
	}
	WriteData(w, "linkedin disconnected", h.App.LinkedIn.Snapshot())
}
