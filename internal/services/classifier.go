package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Completer is the one chat-completion call the classifier needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAICompleter backs Completer with a langchaingo OpenAI model.
type OpenAICompleter struct {
	model llms.Model
}

func NewOpenAICompleter(apiKey, model string) (*OpenAICompleter, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &OpenAICompleter{model: llm}, nil
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
}

// ExtractionKind tags a classification outcome.
type ExtractionKind int

const (
	// Extracted: the email is about a job application and fields were parsed.
	Extracted ExtractionKind = iota
	// Unrelated: not a job-application email, or the model was unreachable.
	Unrelated
	// ParseFailed: the model answered but not with usable JSON.
	ParseFailed
)

// ExtractedFields are the optional fields the model may pull from an email.
type ExtractedFields struct {
	JobTitle           string `json:"jobTitle,omitempty"`
	Company            string `json:"company,omitempty"`
	Role               string `json:"role,omitempty"`
	Status             string `json:"status,omitempty"`
	JobDescriptionLink string `json:"jobDescriptionLink,omitempty"`
	ApplicationDate    string `json:"applicationDate,omitempty"`
	DueDate            string `json:"dueDate,omitempty"`
	LastActionDate     string `json:"lastActionDate,omitempty"`
}

// Extraction is the classifier's result. Raw holds the model's reply text
// for ParseFailed so the failure is diagnosable from logs.
type Extraction struct {
	Kind   ExtractionKind
	Fields ExtractedFields
	Raw    string
}

const classifyPrompt = `I have an email related to a job application. Please extract the following information:

- Job Title
- Company Name
- Job Role
- Application Status (e.g., Applied, Pending Interview, Pending Decision, Received Offer, Rejected)
- Job Description Link (if any)
- Application Date
- Due Date (if any)
- Last Action Date (if any)

Email Subject: %s
Email Text: %s

Please respond with the fields in a structured JSON format. The output should not be preceded or followed by any other text. It should not deviate from a JSON object. Here is an example:
{
  "jobTitle": "Engineer",
  "company": "ALAX",
  "role": "Frontend Developer",
  "status": "Applied",
  "jobDescriptionLink": "https://careers.google.com",
  "applicationDate": "2024-09-01",
  "dueDate": "2024-09-15",
  "lastActionDate": "2024-09-10"
}

If the email is related to a job application but some of the fields cannot be inferred from the email, leave them out of the JSON.

If this email isn't related to a job application, respond with this JSON format:
{
  "status": "Unrelated"
}`

// Classifier turns unstructured email text into application fields via a
// chat-completion model.
type Classifier struct {
	LLM    Completer
	Logger *zap.Logger
}

func NewClassifier(llm Completer, logger *zap.Logger) *Classifier {
	return &Classifier{LLM: llm, Logger: logger}
}

// Classify asks the model about one email. It never returns an error: a
// transport failure degrades to Unrelated and a malformed reply becomes
// ParseFailed carrying the raw text. The model output is untrusted input.
func (c *Classifier) Classify(ctx context.Context, subject, body string) Extraction {
	prompt := fmt.Sprintf(classifyPrompt, subject, body)

	resp, err := c.LLM.Complete(ctx, prompt)
	if err != nil {
		c.Logger.Error("classification call failed", zap.Error(err))
		return Extraction{Kind: Unrelated}
	}

	cleaned := stripCodeFence(resp)

	var fields ExtractedFields
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		c.Logger.Warn("classifier reply is not valid JSON",
			zap.Error(err), zap.String("raw", resp))
		return Extraction{Kind: ParseFailed, Raw: resp}
	}

	if strings.EqualFold(fields.Status, "Unrelated") {
		return Extraction{Kind: Unrelated}
	}

	return Extraction{Kind: Extracted, Fields: fields}
}

// stripCodeFence removes a surrounding markdown fence; models add one even
// when told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
