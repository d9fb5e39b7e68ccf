package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRequest payload for domain and hosting records.
type InventoryRequest struct {
	BusinessID     *string         `json:"business_id" validate:"omitempty,uuid"`
	Name           string          `json:"name" validate:"required,max=255"`
	Holder         string          `json:"holder" validate:"max=255"`
	Platform       string          `json:"platform" validate:"max=255"`
	ApprovedBy     string          `json:"approved_by" validate:"max=255"`
	Price          decimal.Decimal `json:"price"`
	LiveStatus     string          `json:"live_status" validate:"max=64"`
	ListStatus     string          `json:"list_status" validate:"max=64"`
	Notes          string          `json:"notes"`
	CreationDate   *time.Time      `json:"creation_date"`
	ExpirationDate *time.Time      `json:"expiration_date"`
}

// InventoryResponse is the API view of an inventory record.
type InventoryResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	BusinessID     *string         `json:"business_id"`
	Name           string          `json:"name"`
	Holder         string          `json:"holder"`
	Platform       string          `json:"platform"`
	ApprovedBy     string          `json:"approved_by"`
	Price          decimal.Decimal `json:"price"`
	LiveStatus     string          `json:"live_status"`
	ListStatus     string          `json:"list_status"`
	Notes          string          `json:"notes"`
	CreationDate   *time.Time      `json:"creation_date"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
