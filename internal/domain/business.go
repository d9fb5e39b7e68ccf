package domain

import "time"

// Business is the client account tickets, payments and inventory belong to.
type Business struct {
	ID             string
	BusinessName   string
	BusinessEmail  string
	BusinessNumber string
	ClientName     string
	WebsiteURL     string
	Status         string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BusinessName is the lightweight projection used by pickers.
type BusinessName struct {
	ID           string
	BusinessName string
}
