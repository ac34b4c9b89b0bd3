package dto

// LaunchesRequest represents a dashboard view query
type LaunchesRequest struct {
	Period    string   `form:"period" example:"this_week"`
	Retailers []string `form:"retailer" example:"Roots"`
}
