package dto

import "time"

// CreateBusinessRequest payload.
type CreateBusinessRequest struct {
	BusinessName   string `json:"business_name" validate:"required,max=200"`
	BusinessEmail  string `json:"business_email" validate:"omitempty,email"`
	BusinessNumber string `json:"business_number" validate:"max=50"`
	ClientName     string `json:"client_name" validate:"max=200"`
	WebsiteURL     string `json:"website_url" validate:"omitempty,url"`
	Status         string `json:"status" validate:"max=64"`
}

// UpdateBusinessStatusRequest payload. The status is checked by the service
// after authorization.
type UpdateBusinessStatusRequest struct {
	Status string `json:"status"`
}

// BusinessResponse is the API view of a business.
type BusinessResponse struct {
	ID             string    `json:"id"`
	BusinessName   string    `json:"business_name"`
	BusinessEmail  string    `json:"business_email"`
	BusinessNumber string    `json:"business_number"`
	ClientName     string    `json:"client_name"`
	WebsiteURL     string    `json:"website_url"`
	Status         string    `json:"status"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BusinessNameResponse is a picker entry.
type BusinessNameResponse struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
}
