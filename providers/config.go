// Package providers holds provider configuration structs, kept separate from
// the client implementations so config loading does not import HTTP code.
package providers

import "time"

// GeminiConfig configures the Google Gemini provider.
type GeminiConfig struct {
	APIKey  string        `json:"api_key" yaml:"api_key"`
	BaseURL string        `json:"base_url" yaml:"base_url"`
	Model   string        `json:"model,omitempty" yaml:"model,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}
