package domain

import "time"

// ActivityEntry is what the activity log records for an authorized attempt.
type ActivityEntry struct {
	ID             string
	UserID         string
	UserName       string
	DepartmentName DepartmentName
	Origin         string
	Action         string
	Message        string
	Metadata       map[string]any
	CreatedAt      time.Time
}
