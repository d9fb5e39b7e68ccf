package domain

import "time"

// TicketMessage is one entry of a ticket's chat thread.
type TicketMessage struct {
	ID         string
	TicketID   string
	AuthorID   string
	AuthorName string
	Body       string
	CreatedAt  time.Time
}
