package domain

import "time"

// LinkedInStatus is the connection sub-resource gating the publish step.
// TokenValid only means anything while IsConnected is true.
type LinkedInStatus struct {
	IsConnected   bool             `json:"isConnected"`
	LinkedinEmail string           `json:"linkedinEmail,omitempty"`
	LastConnected *time.Time       `json:"lastConnected,omitempty"`
	TokenValid    bool             `json:"tokenValid"`
	Profile       *LinkedInProfile `json:"profile,omitempty"`
}

type LinkedInProfile struct {
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}
