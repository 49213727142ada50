package domain

import "time"

type UserRole string

const (
	RoleHR          UserRole = "hr"
	RoleInterviewer UserRole = "interviewer"
)

type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Interviewer is the trimmed listing the server returns for assignee pickers.
type Interviewer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
