package dtos

// UpsertApplicationRequest creates or patches one application record. The
// owner email is taken from the bearer token, never from the body.
type UpsertApplicationRequest struct {
	Company         string `json:"company" binding:"required"`
	Role            string `json:"role" binding:"required"`
	Status          string `json:"status" binding:"required"`
	ApplicationDate string `json:"applicationDate" binding:"required"`

	// Optional Fields
	JobDescriptionLink string `json:"jobDescriptionLink"`
	DueDate            string `json:"dueDate"`
	LastActionDate     string `json:"lastActionDate"`
}

// DeleteApplicationRequest identifies the record to remove. Combined with
// the token's email it forms the full delete key.
type DeleteApplicationRequest struct {
	Company string `json:"company" binding:"required"`
	Role    string `json:"role" binding:"required"`
}

// TokenRequest mints a session token for a verified email address.
type TokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}
