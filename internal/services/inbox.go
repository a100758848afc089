package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
)

// EmailMessage is the subset of a mail message the tracker cares about.
type EmailMessage struct {
	ID      string
	Subject string
	From    string
	Body    string
}

// Mailbox is what the webhook pipeline needs from the mail provider.
type Mailbox interface {
	LatestMessage(ctx context.Context) (*EmailMessage, error)
}

// Inbox wraps the Gmail API for one mailbox ("me" in every call).
type Inbox struct {
	Gmail  *gmail.Service
	Logger *zap.Logger
}

func NewInbox(svc *gmail.Service, logger *zap.Logger) *Inbox {
	return &Inbox{Gmail: svc, Logger: logger}
}

// Labels lists the label names on the mailbox. Used at startup as a cheap
// connectivity check.
func (in *Inbox) Labels(ctx context.Context) ([]string, error) {
	resp, err := in.Gmail.Users.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	names := make([]string, 0, len(resp.Labels))
	for _, l := range resp.Labels {
		names = append(names, l.Name)
	}
	return names, nil
}

// StartWatch subscribes the INBOX to the given Pub/Sub topic. Any existing
// watch is stopped first; a failed stop is logged and ignored because the
// new watch supersedes it anyway.
func (in *Inbox) StartWatch(ctx context.Context, topicName string) error {
	if err := in.StopWatch(ctx); err != nil {
		in.Logger.Warn("stopping previous watch failed", zap.Error(err))
	}

	resp, err := in.Gmail.Users.Watch("me", &gmail.WatchRequest{
		LabelIds:  []string{"INBOX"},
		TopicName: topicName,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("starting watch: %w", err)
	}

	in.Logger.Info("mailbox watch registered",
		zap.String("topic", topicName),
		zap.Uint64("history_id", resp.HistoryId),
		zap.Int64("expiration", resp.Expiration))
	return nil
}

// StopWatch ends the current mailbox watch, if any.
func (in *Inbox) StopWatch(ctx context.Context) error {
	return in.Gmail.Users.Stop("me").Context(ctx).Do()
}

// LatestMessage fetches the newest message in the mailbox with subject,
// sender and plain-text body resolved.
func (in *Inbox) LatestMessage(ctx context.Context) (*EmailMessage, error) {
	list, err := in.Gmail.Users.Messages.List("me").MaxResults(4).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	if len(list.Messages) == 0 {
		return nil, fmt.Errorf("mailbox has no messages")
	}

	msg, err := in.Gmail.Users.Messages.Get("me", list.Messages[0].Id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching message %s: %w", list.Messages[0].Id, err)
	}

	return &EmailMessage{
		ID:      msg.Id,
		Subject: headerValue(msg, "Subject"),
		From:    headerValue(msg, "From"),
		Body:    messageBody(msg),
	}, nil
}

func headerValue(msg *gmail.Message, name string) string {
	if msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// messageBody pulls the decoded text of a message: the top-level body if
// present, otherwise the first text/plain part, otherwise text/html.
func messageBody(msg *gmail.Message) string {
	if msg.Payload == nil {
		return ""
	}
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		return decodeBody(msg.Payload.Body.Data)
	}
	for _, part := range msg.Payload.Parts {
		if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
			return decodeBody(part.Body.Data)
		}
	}
	for _, part := range msg.Payload.Parts {
		if part.MimeType == "text/html" && part.Body != nil && part.Body.Data != "" {
			return decodeBody(part.Body.Data)
		}
	}
	return ""
}

// Gmail emits unpadded base64url; some fixtures carry padding.
func decodeBody(data string) string {
	if d, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(d)
	}
	if d, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(d)
	}
	return ""
}
