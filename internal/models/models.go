package models

import (
	"time"

	"gorm.io/gorm"
)

// Application statuses the tracker understands. Earlier data may carry
// free-text statuses; these are the values the UI and the classifier emit.
const (
	StatusApplied          = "Applied"
	StatusPendingInterview = "Pending Interview"
	StatusPendingDecision  = "Pending Decision"
	StatusReceivedOffer    = "Received Offer"
	StatusRejected         = "Rejected"

	// StatusUnrelated is the classifier sentinel for non-application emails.
	// It is never persisted.
	StatusUnrelated = "Unrelated"
)

// Application is one tracked job application. A user has at most one row
// per company: (email, company) is the identity key, so re-applying to the
// same company overwrites role, status and dates in place.
type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Uniqueness of (email, company) is enforced by the upsert lookup, not a
	// DB constraint: soft-deleted rows would otherwise pin the index.
	Email   string `gorm:"index;not null" json:"email"`
	Company string `gorm:"not null" json:"company"`
	Role    string `gorm:"not null" json:"role"`
	Status  string `gorm:"not null" json:"status"`

	JobDescriptionLink string `json:"jobDescriptionLink"`

	// Dates are ISO date strings (e.g. "2024-09-01"). The store treats them
	// as opaque text; parsing happens at the edges.
	ApplicationDate string `gorm:"not null" json:"applicationDate"`
	DueDate         string `json:"dueDate,omitempty"`
	LastActionDate  string `json:"lastActionDate,omitempty"`
}
