// Package mocks provides test doubles for the llm.Provider boundary.
package mocks

import (
	"context"
	"sync"

	"github.com/BaSui01/cinecheck/llm"
)

// Call records a single Completion invocation.
type Call struct {
	Request  *llm.ChatRequest
	Response *llm.ChatResponse
	Error    error
}

// Provider is a scripted llm.Provider. Responses are consumed in order, so
// a two-step chain can be fed one response per step. It records every call
// for assertion.
type Provider struct {
	mu sync.Mutex

	responses []string
	err       error
	failAt    int // fail on the Nth call (1-based), 0 disables

	calls []Call
}

// NewProvider creates a mock provider with no scripted responses.
// An unscripted Completion call returns an empty response.
func NewProvider() *Provider {
	return &Provider{}
}

// WithResponses scripts the response texts, consumed one per Completion call.
// The last response repeats once the script runs out.
func (p *Provider) WithResponses(responses ...string) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = responses
	return p
}

// WithError makes every Completion call fail with err.
func (p *Provider) WithError(err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	return p
}

// WithErrorAt makes only the n-th Completion call (1-based) fail with err.
func (p *Provider) WithErrorAt(n int, err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	p.failAt = n
	return p
}

func (p *Provider) Name() string { return "mock" }

func (p *Provider) HealthCheck(ctx context.Context) (*llm.HealthStatus, error) {
	return &llm.HealthStatus{Healthy: true}, nil
}

func (p *Provider) Completion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.calls) + 1

	if p.err != nil && (p.failAt == 0 || p.failAt == n) {
		p.calls = append(p.calls, Call{Request: req, Error: p.err})
		return nil, p.err
	}

	content := ""
	if len(p.responses) > 0 {
		idx := n - 1
		if idx >= len(p.responses) {
			idx = len(p.responses) - 1
		}
		content = p.responses[idx]
	}

	resp := &llm.ChatResponse{
		Provider: p.Name(),
		Model:    req.Model,
		Choices: []llm.ChatChoice{{
			Message:      llm.Message{Role: llm.RoleAssistant, Content: content},
			FinishReason: "stop",
		}},
	}

	p.calls = append(p.calls, Call{Request: req, Response: resp})
	return resp, nil
}

// Calls returns a copy of the recorded calls.
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

// CallCount returns how many Completion calls were made.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
