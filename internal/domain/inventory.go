package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryKind separates domain and hosting records.
type InventoryKind string

const (
	InventoryKindDomain  InventoryKind = "domain"
	InventoryKindHosting InventoryKind = "hosting"
)

const (
	LiveStatusLive   = "Live"
	ListStatusListed = "Listed"
)

// InventoryRecord is a domain or hosting form entry.
type InventoryRecord struct {
	ID             string
	Kind           InventoryKind
	BusinessID     *string
	Name           string
	Holder         string
	Platform       string
	ApprovedBy     string
	Price          decimal.Decimal
	LiveStatus     string
	ListStatus     string
	Notes          string
	CreationDate   *time.Time
	ExpirationDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
