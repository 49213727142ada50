package api

// Messages for failures that never reached the server or came back
// unreadable. The network one is fixed so the UI can special-case it.
const (
	NetworkErrorMessage    = "Network error. Please check your connection and try again."
	UnexpectedErrorMessage = "An unexpected error occurred. Please try again."
)

// FieldError is the server's field-level validation detail.
type FieldError struct {
	Msg      string `json:"msg"`
	Param    string `json:"param"`
	Location string `json:"location"`
}

// Error is the one shape every failed call resolves to, whether the server
// reported it, the transport died, or the response made no sense.
type Error struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// IsNetwork reports whether the failure never got a server verdict.
func (e *Error) IsNetwork() bool { return e.Message == NetworkErrorMessage }

func networkError() *Error {
	return &Error{Message: NetworkErrorMessage}
}

func unexpectedError() *Error {
	return &Error{Message: UnexpectedErrorMessage}
}

// Message extracts the human-readable text from any error, normalized or not.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
