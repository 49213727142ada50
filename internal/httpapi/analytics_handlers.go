package httpapi

import (
	"net/http"

	"hrms-engine/internal/app"
)

type AnalyticsHandler struct {
	App *app.App
}

func (h AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, err := h.App.Analytics.Refresh(r.Context()); err != nil {
		WriteFailure(w, err)
		return
	}
	WriteData(w, "job stats", h.App.Analytics.Snapshot())
}
