package httpapi

import "net/http"

// NewMux wires the UI-facing surface. main() wraps it with the middleware
// chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Session
	sh := SessionHandler{App: d.App}
	mux.HandleFunc("/session", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Get,
	}))
	mux.HandleFunc("/session/signup", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SignUp,
	}))
	mux.HandleFunc("/session/signin", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SignIn,
	}))
	mux.HandleFunc("/session/logout", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Logout,
	}))
	mux.HandleFunc("/session/error", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: sh.ClearError,
	}))
	mux.HandleFunc("/interviewers", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Interviewers,
	}))

	// Jobs and the generate→edit→publish pipeline
	jh := JobsHandler{App: d.App}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  jh.List,
		http.MethodPost: jh.Create,
	}))
	mux.HandleFunc("/jobs/", jh.ByPath) // /jobs/{id}[/job-post|publish|applications]
	mux.HandleFunc("/jobs-error", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: jh.ClearError,
	}))

	// LinkedIn connection
	lh := LinkedInHandler{App: d.App}
	mux.HandleFunc("/linkedin/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.Status,
	}))
	mux.HandleFunc("/linkedin/connect", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Connect,
	}))
	mux.HandleFunc("/linkedin/callback", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.Callback,
	}))
	mux.HandleFunc("/linkedin/disconnect", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: lh.Disconnect,
	}))

	// Analytics
	ah := AnalyticsHandler{App: d.App}
	mux.HandleFunc("/analytics", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Get,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.App.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{App: d.App}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
