package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything the UI
// should surface before a save is accepted.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.API.BaseURL = strings.TrimRight(strings.TrimSpace(out.API.BaseURL), "/")

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.API.BaseURL == "" {
		res.addErr("api.base_url is required")
	} else if u, err := url.Parse(out.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("api.base_url must be an absolute http(s) URL: %q", out.API.BaseURL)
	}

	if out.API.TimeoutSeconds <= 0 {
		res.addErr("api.timeout_seconds must be > 0")
	} else if out.API.TimeoutSeconds > 60 {
		res.addWarn("api.timeout_seconds is very high (%d); calls will appear hung to the UI.", out.API.TimeoutSeconds)
	}

	if out.API.RatePerSec <= 0 {
		res.addErr("api.rate_per_sec must be > 0")
	}
	if out.API.RateBurst <= 0 {
		res.addErr("api.rate_burst must be > 0")
	}

	return out, res
}
