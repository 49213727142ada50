package httpapi

import (
	"net/http"

	"hrms-engine/internal/app"
	"hrms-engine/internal/domain"
	"hrms-engine/internal/events"
)

type SessionHandler struct {
	App *app.App
}

func (h SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteData(w, "session", h.App.Session.Snapshot())
}

func (h SessionHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string          `json:"username"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Role     domain.UserRole `json:"role"`
	}
	if !readJSON(w, r, &body) {
		return
	}

	if err := h.App.Session.SignUp(r.Context(), body.Username, body.Email, body.Password, body.Role); err != nil {
		WriteFailure(w, err)
		return
	}
	h.App.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeSignedIn, 1, nil))
	WriteData(w, "signed up", h.App.Session.Snapshot())
}

func (h SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !readJSON(w, r, &body) {
		return
	}

	if err := h.App.Session.SignIn(r.Context(), body.Email, body.Password); err != nil {
		WriteFailure(w, err)
		return
	}
	h.App.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeSignedIn, 1, nil))
	WriteData(w, "signed in", h.App.Session.Snapshot())
}

// Logout always ends with a clean local session; the remote call is best
// effort and never fails this endpoint.
func (h SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.App.Session.Logout(r.Context())
	h.App.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeSignedOut, 1, nil))
	WriteData(w, "signed out", h.App.Session.Snapshot())
}

func (h SessionHandler) ClearError(w http.ResponseWriter, r *http.Request) {
	h.App.Session.ClearError()
	WriteData(w, "cleared", h.App.Session.Snapshot())
}

func (h SessionHandler) Interviewers(w http.ResponseWriter, r *http.Request) {
	list, err := h.App.API.Interviewers(r.Context())
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteData(w, "interviewers", list)
}
