package model

import "time"

// Run is one persisted aggregation run: the request parameters plus the
// derived statistics. Organizations are stored alongside, keyed by run.
type Run struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Type      OrgType   `json:"organization_type"`
	Location  string    `json:"location"`
	Limit     int       `json:"limit"`
	Stats     RunStats  `json:"stats"`
	CreatedAt time.Time `json:"created_at"`
}
