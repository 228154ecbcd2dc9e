package types

// ------------------------------
// Request Types
// ------------------------------

// CategoryQuery selects products by category and optional subcategory.
type CategoryQuery struct {
	Category    string `validate:"required"`
	Subcategory string
}

// DateRange bounds an orders query. Dates are passed through to the backend
// verbatim (ISO-8601 dates are what the storefront sends).
type DateRange struct {
	StartDate string `validate:"required"`
	EndDate   string `validate:"required"`
}

// StatusUpdate is the body of PATCH /orders/{id}/status.
type StatusUpdate struct {
	Status string `json:"status" validate:"required"`
}
