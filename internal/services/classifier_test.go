package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// mockCompleter implements Completer for testing.
type mockCompleter struct {
	response string
	err      error
	prompt   string
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.response, m.err
}

func TestClassifyExtractsFields(t *testing.T) {
	mock := &mockCompleter{
		response: `{"jobTitle":"Engineer","company":"Acme","role":"Backend Developer","status":"Applied","applicationDate":"2024-09-01"}`,
	}
	c := NewClassifier(mock, zap.NewNop())

	got := c.Classify(context.Background(), "Thanks for applying to Acme", "We received your application...")

	if got.Kind != Extracted {
		t.Fatalf("Kind = %v, want Extracted", got.Kind)
	}
	if got.Fields.Company != "Acme" || got.Fields.Status != "Applied" {
		t.Errorf("Fields = %+v, want Acme/Applied", got.Fields)
	}
	if got.Fields.ApplicationDate != "2024-09-01" {
		t.Errorf("ApplicationDate = %q, want 2024-09-01", got.Fields.ApplicationDate)
	}
}

func TestClassifyEmbedsSubjectAndBody(t *testing.T) {
	mock := &mockCompleter{response: `{"status":"Unrelated"}`}
	c := NewClassifier(mock, zap.NewNop())

	c.Classify(context.Background(), "SUBJECT-MARKER", "BODY-MARKER")

	for _, marker := range []string{"SUBJECT-MARKER", "BODY-MARKER"} {
		if !strings.Contains(mock.prompt, marker) {
			t.Errorf("prompt missing %q", marker)
		}
	}
}

func TestClassifyUnrelatedEmail(t *testing.T) {
	mock := &mockCompleter{response: `{"status": "Unrelated"}`}
	c := NewClassifier(mock, zap.NewNop())

	got := c.Classify(context.Background(), "Your order shipped", "Track your package at ...")
	if got.Kind != Unrelated {
		t.Errorf("Kind = %v, want Unrelated", got.Kind)
	}
}

func TestClassifyTransportFailureDegradesToUnrelated(t *testing.T) {
	mock := &mockCompleter{err: errors.New("connection refused")}
	c := NewClassifier(mock, zap.NewNop())

	got := c.Classify(context.Background(), "subject", "body")
	if got.Kind != Unrelated {
		t.Errorf("Kind = %v, want Unrelated on transport failure", got.Kind)
	}
}

func TestClassifyMalformedReply(t *testing.T) {
	mock := &mockCompleter{response: "Sure! Here is the JSON you asked for: {broken"}
	c := NewClassifier(mock, zap.NewNop())

	got := c.Classify(context.Background(), "subject", "body")
	if got.Kind != ParseFailed {
		t.Fatalf("Kind = %v, want ParseFailed", got.Kind)
	}
	if got.Raw != mock.response {
		t.Errorf("Raw = %q, want the untouched model reply", got.Raw)
	}
}

func TestClassifyStripsCodeFence(t *testing.T) {
	mock := &mockCompleter{
		response: "```json\n{\"company\":\"Globex\",\"status\":\"Rejected\"}\n```",
	}
	c := NewClassifier(mock, zap.NewNop())

	got := c.Classify(context.Background(), "subject", "body")
	if got.Kind != Extracted {
		t.Fatalf("Kind = %v, want Extracted", got.Kind)
	}
	if got.Fields.Company != "Globex" {
		t.Errorf("Company = %q, want Globex", got.Fields.Company)
	}
}
