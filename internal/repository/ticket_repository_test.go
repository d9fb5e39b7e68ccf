package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
)

func TestTicketFilterWhere(t *testing.T) {
	assignee := "u1"
	business := "b1"
	status := domain.TicketStatusCompleted

	where, args := TicketFilter{AssigneeID: &assignee, BusinessID: &business, Status: &status}.where()
	assert.Equal(t, "1=1 AND $1 = ANY(assignee_employees) AND business_id=$2 AND status=$3", where)
	assert.Equal(t, []any{"u1", "b1", "Completed"}, args)
}

func TestTicketFilterWhereEmpty(t *testing.T) {
	where, args := TicketFilter{}.where()
	assert.Equal(t, "1=1", where)
	assert.Empty(t, args)
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Limit: 20}, Page{}.Normalize())
	assert.Equal(t, Page{Limit: 200, Offset: 0}, Page{Limit: 1000, Offset: -5}.Normalize())
	assert.Equal(t, Page{Limit: 5, Offset: 10}, Page{Limit: 5, Offset: 10}.Normalize())
}
