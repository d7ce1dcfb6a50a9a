package structured

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/BaSui01/cinecheck/llm"
)

// ParseResult carries the outcome of parsing structured output, including
// the raw response text for error reporting.
type ParseResult[T any] struct {
	Value  *T           `json:"value,omitempty"`
	Raw    string       `json:"raw"`
	Errors []FieldError `json:"errors,omitempty"`
}

// IsValid returns true if parsing succeeded with no errors.
func (r *ParseResult[T]) IsValid() bool {
	return r.Value != nil && len(r.Errors) == 0
}

// Output binds a Go type, its JSON Schema, and an LLM provider into a
// type-safe structured output handler. Every value it returns has passed
// schema validation in full; a single violated constraint yields a
// *ValidationErrors and no value.
type Output[T any] struct {
	schema    *JSONSchema
	provider  llm.Provider
	validator *Validator
}

// NewOutput creates an output handler for type T, generating the JSON Schema
// from T's struct tags.
func NewOutput[T any](provider llm.Provider) (*Output[T], error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	var zero T
	schema, err := NewSchemaGenerator().GenerateSchema(reflect.TypeOf(zero))
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema for type %T: %w", zero, err)
	}

	return &Output[T]{
		schema:    schema,
		provider:  provider,
		validator: NewValidator(),
	}, nil
}

// NewOutputWithSchema creates an output handler with a custom schema.
func NewOutputWithSchema[T any](provider llm.Provider, schema *JSONSchema) (*Output[T], error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	if schema == nil {
		return nil, fmt.Errorf("schema cannot be nil")
	}

	return &Output[T]{
		schema:    schema,
		provider:  provider,
		validator: NewValidator(),
	}, nil
}

// Schema returns the JSON Schema used for validation.
func (o *Output[T]) Schema() *JSONSchema {
	return o.schema
}

// Generate sends the request to the provider, extracts the JSON object from
// the response text, and parses it into a validated *T.
func (o *Output[T]) Generate(ctx context.Context, req *llm.ChatRequest) (*T, error) {
	value, _, err := o.GenerateWithRaw(ctx, req)
	return value, err
}

// GenerateWithRaw is Generate plus the raw response text, which remains
// available even when validation fails.
func (o *Output[T]) GenerateWithRaw(ctx context.Context, req *llm.ChatRequest) (*T, string, error) {
	resp, err := o.provider.Completion(ctx, req)
	if err != nil {
		return nil, "", fmt.Errorf("provider completion failed: %w", err)
	}

	choice, err := llm.FirstChoice(resp)
	if err != nil {
		return nil, "", err
	}

	raw := choice.Message.Content
	value, err := o.Parse(ExtractJSON(raw))
	if err != nil {
		return nil, raw, err
	}
	return value, raw, nil
}

// Parse validates a JSON string against the schema and unmarshals it into
// *T. All-or-nothing: on any violation it returns *ValidationErrors.
func (o *Output[T]) Parse(jsonStr string) (*T, error) {
	value, errs := o.parseDetailed(jsonStr)
	if len(errs) > 0 {
		return nil, &ValidationErrors{Errors: errs}
	}
	return value, nil
}

// ParseWithResult parses a JSON string and returns the detailed result.
func (o *Output[T]) ParseWithResult(jsonStr string) *ParseResult[T] {
	value, errs := o.parseDetailed(jsonStr)
	if len(errs) > 0 {
		// No partially populated value escapes a failed parse.
		return &ParseResult[T]{Raw: jsonStr, Errors: errs}
	}
	return &ParseResult[T]{Value: value, Raw: jsonStr}
}

// ValidateValue validates an already-constructed value against the schema.
func (o *Output[T]) ValidateValue(value *T) error {
	if value == nil {
		return fmt.Errorf("value cannot be nil")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return o.validator.Validate(data, o.schema)
}

func (o *Output[T]) parseDetailed(jsonStr string) (*T, []FieldError) {
	var errs []FieldError

	if err := o.validator.Validate([]byte(jsonStr), o.schema); err != nil {
		var ve *ValidationErrors
		if errors.As(err, &ve) {
			errs = append(errs, ve.Errors...)
		} else {
			errs = append(errs, FieldError{Message: err.Error()})
		}
	}

	var value T
	if err := json.Unmarshal([]byte(jsonStr), &value); err != nil {
		errs = append(errs, FieldError{Message: fmt.Sprintf("JSON parse error: %v", err)})
		return nil, errs
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &value, nil
}
