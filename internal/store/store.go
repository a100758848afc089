package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Daniel-Moraes1/offer-watch/internal/models"
	"gorm.io/gorm"
)

// Store is the data-access layer for application records. All methods issue
// a single query or write; nothing here is transactional across calls.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Key identifies one application for deletion. Delete matches on the full
// (email, company, role) triple even though upsert keys on (email, company);
// a stale role simply turns the delete into a no-op.
type Key struct {
	Email   string `json:"email"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

// Upsert inserts app, or patches the existing record with the same
// (email, company). On a patch only status, jobDescriptionLink, dueDate and
// lastActionDate change; the identity fields, role and applicationDate of
// the stored record stay as they were at creation.
func (s *Store) Upsert(ctx context.Context, app *models.Application) error {
	if err := validate(app); err != nil {
		return err
	}

	var existing models.Application
	err := s.DB.WithContext(ctx).
		Where("email = ? AND company = ?", app.Email, app.Company).
		First(&existing).Error

	switch {
	case err == nil:
		updates := map[string]interface{}{
			"status":               app.Status,
			"job_description_link": app.JobDescriptionLink,
			"due_date":             app.DueDate,
			"last_action_date":     app.LastActionDate,
		}
		if err := s.DB.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("%w: updating application: %v", ErrStoreUnavailable, err)
		}
		app.ID = existing.ID
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
			return fmt.Errorf("%w: inserting application: %v", ErrStoreUnavailable, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: looking up application: %v", ErrStoreUnavailable, err)
	}
}

// ListByOwner returns every application owned by email, in store-native
// order. No matches is an empty slice, not an error.
func (s *Store) ListByOwner(ctx context.Context, email string) ([]models.Application, error) {
	apps := []models.Application{}
	err := s.DB.WithContext(ctx).
		Where("email = ?", email).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing applications: %v", ErrStoreUnavailable, err)
	}
	return apps, nil
}

// Delete removes at most one application matching key. Deleting a key that
// matches nothing is a no-op.
func (s *Store) Delete(ctx context.Context, key Key) error {
	var existing models.Application
	err := s.DB.WithContext(ctx).
		Where("email = ? AND company = ? AND role = ?", key.Email, key.Company, key.Role).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: looking up application: %v", ErrStoreUnavailable, err)
	}

	if err := s.DB.WithContext(ctx).Delete(&existing).Error; err != nil {
		return fmt.Errorf("%w: deleting application: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func validate(app *models.Application) error {
	switch {
	case app.Email == "":
		return &ValidationError{Field: "email"}
	case app.Company == "":
		return &ValidationError{Field: "company"}
	case app.Role == "":
		return &ValidationError{Field: "role"}
	case app.Status == "":
		return &ValidationError{Field: "status"}
	case app.ApplicationDate == "":
		return &ValidationError{Field: "applicationDate"}
	}
	return nil
}
