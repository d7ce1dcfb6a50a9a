// Package llm defines the provider boundary: a narrow capability interface
// for synchronous text generation, the request/response types that cross it,
// typed upstream errors, and credential resolution from the environment.
package llm
