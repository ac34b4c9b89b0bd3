package dto

import "github.com/BarkinBalci/launch-tracker/internal/domain"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"invalid period: fortnight"`
}

// LaunchesResponse represents the launch log table of a view
type LaunchesResponse struct {
	Period   string                `json:"period" example:"this_week"`
	Count    int                   `json:"count" example:"3"`
	Launches []domain.LaunchRecord `json:"launches"`
}

// RetailerInfo represents one configured retailer
type RetailerInfo struct {
	Name     string   `json:"name" example:"Madewell"`
	Keywords []string `json:"keywords" example:"madewell"`
	Schedule string   `json:"schedule" example:"Weekly/Biweekly"`
}

// RetailersResponse lists the configured retailers in matching order
type RetailersResponse struct {
	Retailers []RetailerInfo `json:"retailers"`
}

// ReplaceLogResponse represents a successful manual edit of the log
type ReplaceLogResponse struct {
	Version string `json:"version" example:"3b18e512dba79e4c8300dd08aeb37f8e728b8dad"`
	Status  string `json:"status" example:"replaced"`
}
