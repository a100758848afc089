package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Daniel-Moraes1/offer-watch/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upserter is the slice of the record store the email pipeline writes to.
type Upserter interface {
	Upsert(ctx context.Context, app *models.Application) error
}

// Processor runs the notification pipeline: fetch the newest message,
// classify it, and upsert the extracted record for the mailbox owner.
type Processor struct {
	Inbox      Mailbox
	Classifier *Classifier
	Store      Upserter
	Logger     *zap.Logger
}

func NewProcessor(inbox Mailbox, classifier *Classifier, st Upserter, logger *zap.Logger) *Processor {
	return &Processor{Inbox: inbox, Classifier: classifier, Store: st, Logger: logger}
}

// ProcessLatest handles one notification for the given mailbox owner. The
// returned error is for logging only; webhook callers acknowledge the
// notification regardless.
func (p *Processor) ProcessLatest(ctx context.Context, owner string) error {
	log := p.Logger.With(
		zap.String("owner", owner),
		zap.String("processing_id", uuid.NewString()),
	)

	msg, err := p.Inbox.LatestMessage(ctx)
	if err != nil {
		return fmt.Errorf("fetching latest message: %w", err)
	}
	log = log.With(zap.String("message_id", msg.ID))
	log.Info("classifying email", zap.String("subject", msg.Subject), zap.String("from", msg.From))

	result := p.Classifier.Classify(ctx, msg.Subject, msg.Body)
	switch result.Kind {
	case Unrelated:
		log.Info("email not related to a job application")
		return nil
	case ParseFailed:
		log.Warn("classifier produced unusable output", zap.String("raw", result.Raw))
		return nil
	}

	app := recordFromFields(owner, result.Fields)
	if app == nil {
		log.Info("extraction missing company, nothing to store",
			zap.Any("fields", result.Fields))
		return nil
	}

	if err := p.Store.Upsert(ctx, app); err != nil {
		return fmt.Errorf("storing extracted application: %w", err)
	}
	log.Info("application record updated from email",
		zap.String("company", app.Company), zap.String("status", app.Status))
	return nil
}

// recordFromFields maps an extraction onto a storable record, filling the
// gaps a partial email leaves: role falls back to the job title, status to
// Applied, applicationDate to today. Without a company there is no identity
// key and nothing can be stored.
func recordFromFields(owner string, f ExtractedFields) *models.Application {
	if f.Company == "" {
		return nil
	}

	role := f.Role
	if role == "" {
		role = f.JobTitle
	}
	if role == "" {
		role = "Unknown"
	}

	status := f.Status
	if status == "" {
		status = models.StatusApplied
	}

	applicationDate := f.ApplicationDate
	if applicationDate == "" {
		applicationDate = time.Now().Format("2006-01-02")
	}

	return &models.Application{
		Email:              owner,
		Company:            f.Company,
		Role:               role,
		Status:             status,
		JobDescriptionLink: f.JobDescriptionLink,
		ApplicationDate:    applicationDate,
		DueDate:            f.DueDate,
		LastActionDate:     f.LastActionDate,
	}
}
