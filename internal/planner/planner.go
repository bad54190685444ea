// Package planner turns freeform system guidelines into a Markdown
// architecture plan via a chat completion. It is deliberately isolated
// from purchasing data: the caller supplies all context as text.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrBusy rejects a second generation while one is in flight.
var ErrBusy = errors.New("a plan generation is already running")

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("planner is not configured")

const promptTemplate = `You are a lead solutions architect specializing in scalable, maintainable ERP systems. Analyze the provided system guidelines for a purchasing module and produce a comprehensive technical and architectural plan.

Your response MUST be a detailed, actionable plan formatted in Markdown, serving as a blueprint for developing and enhancing the purchasing workflow (Purchase Request -> Purchase Order -> Purchase Invoice).

Structure your response into the following sections:

1. **Data Architecture & Models** — schemas for the primary entities (PurchaseRequest, PurchaseOrder, PurchaseInvoice, Vendor, InventoryItem), a Mermaid.js entity relationship diagram, and the key relationships with cardinality.
2. **Workflow Analysis** — the step-by-step user flow for the complete purchasing lifecycle, focusing on status transitions (Draft -> Submitted -> Reviewed -> Approved), and improvements to streamline data entry and decision-making.
3. **Module Integration Strategy** — how purchasing integrates with inventory, vendor management and future payment modules, and the data flow between them.
4. **AI-Powered Feature Enhancements** — three to five concrete AI features that could be built on this system, such as predictive cost analysis, automated vendor recommendation, or anomaly detection in purchase requests.
5. **API & Data Layer** — the essential RESTful endpoints for each module with example request/response payloads for key operations.
6. **Scalability & Best Practices** — recommendations for code organization, modularity and long-term maintainability.

### System Guidelines
%s
`

// Service generates plans. Only one generation may run at a time; the
// model call is made exactly once per request, with no retry.
type Service struct {
	client *openai.Client
	model  string
	logger *zap.Logger
	busy   atomic.Bool
}

// NewService accepts a nil client; Generate then fails with
// ErrNotConfigured.
func NewService(client *openai.Client, model string, logger *zap.Logger) *Service {
	if model == "" {
		model = openai.GPT4o
	}
	return &Service{client: client, model: model, logger: logger}
}

// Generate produces a Markdown plan from the guidelines text. Context
// cancellation aborts the in-flight completion.
func (s *Service) Generate(ctx context.Context, guidelines string) (string, error) {
	if s.client == nil {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(guidelines) == "" {
		return "", errors.New("guidelines must not be empty")
	}
	if !s.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer s.busy.Store(false)

	s.logger.Info("generating project plan", zap.Int("guidelines_bytes", len(guidelines)))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, guidelines)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate plan: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
