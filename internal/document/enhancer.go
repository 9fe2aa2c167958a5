package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lexdraft/lexdraft/internal/llm"
)

const enhanceSystemPrompt = `You are an experienced legal drafting assistant. You refine legal documents for clarity, consistency and professional tone. Preserve every placeholder marker you encounter (text in {{...}}, [...] or <...>) exactly as written. Never add legal advice, commentary, or clauses the draft does not already contain. Return only the refined document text.`

const enhancePromptTemplate = `Refine the following %s for use in the %s jurisdiction. Improve wording, fix grammar, and normalize formatting, but do not change the substance of any clause and do not remove or alter unresolved placeholder markers.

%s`

// Enhancer rewrites resolved documents through an LLM provider.
type Enhancer struct {
	provider llm.Provider
	model    string
}

// NewEnhancer creates an Enhancer. A nil provider disables enhancement.
func NewEnhancer(provider llm.Provider, model string) *Enhancer {
	return &Enhancer{provider: provider, model: model}
}

// Enabled reports whether an AI provider is configured.
func (e *Enhancer) Enabled() bool {
	return e != nil && e.provider != nil
}

// Enhance sends the resolved document to the provider and returns the
// refined text. Responses that lose the document (empty or drastically
// shortened) are rejected so the caller keeps the resolved original.
func (e *Enhancer) Enhance(ctx context.Context, content, documentType, jurisdiction string) (string, error) {
	if !e.Enabled() {
		return "", fmt.Errorf("no AI provider configured")
	}
	if documentType == "" {
		documentType = "legal document"
	}
	if jurisdiction == "" {
		jurisdiction = "US"
	}

	resp, err := e.completeWithRetry(ctx, llm.CompletionRequest{
		Model: e.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: enhanceSystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf(enhancePromptTemplate, documentType, jurisdiction, content)},
		},
		MaxTokens:   8192,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}

	refined := strings.TrimSpace(resp.Content)
	if refined == "" {
		return "", fmt.Errorf("provider returned empty document")
	}
	if len(refined) < len(content)/2 {
		return "", fmt.Errorf("provider response lost most of the document (%d of %d chars)", len(refined), len(content))
	}
	return refined, nil
}

// completeWithRetry calls the LLM with exponential backoff on rate limit
// and overload errors. Other failures surface immediately.
func (e *Enhancer) completeWithRetry(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	maxRetries := 4
	backoff := 5 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := e.provider.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}

		errStr := err.Error()
		isRateLimit := strings.Contains(errStr, "rate_limit") || strings.Contains(errStr, "429") || strings.Contains(errStr, "too many requests")
		isOverloaded := strings.Contains(errStr, "overloaded")

		if !isRateLimit && !isOverloaded {
			return nil, err
		}

		if attempt == maxRetries {
			return nil, fmt.Errorf("rate limited after %d retries: %w", maxRetries, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
			backoff = backoff * 2
			if backoff > time.Minute {
				backoff = time.Minute
			}
		}
	}
	return nil, fmt.Errorf("unreachable")
}
