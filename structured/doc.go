// Package structured turns free-form model output into validated, typed data.
//
// The pipeline has three stages:
//
//  1. ExtractJSON pulls the JSON object out of a raw response that may be
//     wrapped in markdown fences or surrounded by prose.
//  2. Validator checks the extracted text against a JSONSchema and reports
//     every violated field with its path.
//  3. Output[T] binds a schema to a Go type and a Provider, so callers get
//     either a fully valid *T or a ValidationErrors, never a partial value.
//
// Schemas can be built with the fluent API (NewObjectSchema().AddProperty(...))
// or generated from struct tags with SchemaGenerator.
package structured
