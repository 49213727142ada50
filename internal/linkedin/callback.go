package linkedin

import (
	"context"
	"net/url"
)

type CallbackKind int

const (
	CallbackNone CallbackKind = iota
	CallbackConnected
	CallbackError
)

// CallbackResult is the discriminated outcome of one OAuth redirect landing.
type CallbackResult struct {
	Kind    CallbackKind
	Message string
}

// ParseCallback inspects already-parsed query parameters for the provider's
// redirect markers. The composition root calls this once per landing and is
// responsible for scrubbing the parameters from the visible address so a
// reload does not reprocess them.
func ParseCallback(q url.Values) CallbackResult {
	if q.Get("linkedin_connected") == "true" {
		msg := q.Get("message")
		if msg == "" {
			msg = "Your LinkedIn account has been connected successfully."
		}
		return CallbackResult{Kind: CallbackConnected, Message: msg}
	}
	if e := q.Get("linkedin_error"); e != "" {
		return CallbackResult{Kind: CallbackError, Message: e}
	}
	return CallbackResult{Kind: CallbackNone}
}

// HandleCallback consumes a redirect landing: a success marker triggers a
// status refresh, an error marker surfaces the decoded message.
func (s *State) HandleCallback(ctx context.Context, q url.Values) CallbackResult {
	res := ParseCallback(q)
	switch res.Kind {
	case CallbackConnected:
		s.FetchStatus(ctx)
	case CallbackError:
		s.mu.Lock()
		s.lastErr = res.Message
		s.mu.Unlock()
	}
	return res
}
