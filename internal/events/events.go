package events

import (
	"encoding/json"
	"time"
)

// Event types pushed to the UI. Each maps to one dismissible notification
// (or, for ping/session_expired, a UI-level action).
const (
	TypePing = "ping"

	TypeSessionExpired = "session_expired"
	TypeSignedIn       = "signed_in"
	TypeSignedOut      = "signed_out"

	TypeJobCreated     = "job_created"
	TypeJobUpdated     = "job_updated"
	TypeJobDeleted     = "job_deleted"
	TypePostGenerated  = "post_generated"
	TypePostPublished  = "post_published"
	TypePublishPartial = "publish_partial"

	TypeLinkedInConnected    = "linkedin_connected"
	TypeLinkedInDisconnected = "linkedin_disconnected"

	TypeOperationFailed = "operation_failed"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
