package domain

// JobStats backs the analytics dashboard cards.
type JobStats struct {
	Total             int `json:"total"`
	Published         int `json:"published"`
	Draft             int `json:"draft"`
	Closed            int `json:"closed"`
	TotalApplications int `json:"totalApplications"`
}
