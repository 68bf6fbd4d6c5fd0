// Package llm abstracts the completion providers behind the advisor.
package llm

import "context"

// Provider defines the interface for LLM providers
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request holds a single-turn completion request.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// Response holds the provider's reply.
type Response struct {
	Content      string
	InputTokens  int
	OutputTokens int
	FinishReason string
}
