package review

import (
	"encoding/json"
	"fmt"

	"github.com/BaSui01/cinecheck/structured"
)

// MovieReview is a structured movie review. Instances are created only
// through successful validation and are read-only afterward.
type MovieReview struct {
	Title   string   `json:"title" jsonschema:"required,description=Movie title"`
	Rating  int      `json:"rating" jsonschema:"required,minimum=1,maximum=10,description=Rating from 1 to 10"`
	Genre   string   `json:"genre" jsonschema:"required,description=Movie genre"`
	Summary string   `json:"summary" jsonschema:"required,description=Brief summary of the movie"`
	Pros    []string `json:"pros" jsonschema:"description=Positive aspects"`
	Cons    []string `json:"cons" jsonschema:"description=Negative aspects"`
}

// MovieSuitability assesses whether a movie is suitable for kids under 10.
type MovieSuitability struct {
	SuitableForUnder10 bool     `json:"suitable_for_under_10" jsonschema:"required,description=True if suitable for children under 10"`
	Reasoning          string   `json:"reasoning" jsonschema:"required,description=Short explanation of the decision"`
	Warnings           []string `json:"warnings" jsonschema:"description=Content warnings or concerns"`
	SuggestedMinAge    int      `json:"suggested_min_age" jsonschema:"required,minimum=0,maximum=18,description=Suggested minimum viewing age"`
}

var (
	reviewSchema      = mustSchema(MovieReview{})
	suitabilitySchema = mustSchema(MovieSuitability{})
)

func mustSchema(v any) *structured.JSONSchema {
	schema, err := structured.NewSchemaGenerator().GenerateSchemaFromValue(v)
	if err != nil {
		panic(fmt.Sprintf("review: schema generation failed for %T: %v", v, err))
	}
	return schema
}

// ReviewSchema returns the JSON Schema for MovieReview.
func ReviewSchema() *structured.JSONSchema { return reviewSchema }

// SuitabilitySchema returns the JSON Schema for MovieSuitability.
func SuitabilitySchema() *structured.JSONSchema { return suitabilitySchema }

// normalize defaults absent list fields to empty ordered sequences.
func (r *MovieReview) normalize() {
	if r.Pros == nil {
		r.Pros = []string{}
	}
	if r.Cons == nil {
		r.Cons = []string{}
	}
}

func (s *MovieSuitability) normalize() {
	if s.Warnings == nil {
		s.Warnings = []string{}
	}
}

// CanonicalJSON returns the canonical serialization of the review.
func (r *MovieReview) CanonicalJSON() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to serialize movie review: %w", err)
	}
	return string(data), nil
}

// CanonicalJSON returns the canonical serialization of the assessment.
func (s *MovieSuitability) CanonicalJSON() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to serialize suitability assessment: %w", err)
	}
	return string(data), nil
}

// ParseMovieReview validates JSON text against the MovieReview schema and
// constructs the instance, or fails with *structured.ValidationErrors
// listing every violated field. All-or-nothing.
func ParseMovieReview(jsonText string) (*MovieReview, error) {
	var r MovieReview
	if err := parseInto(jsonText, reviewSchema, &r); err != nil {
		return nil, err
	}
	r.normalize()
	return &r, nil
}

// ParseMovieSuitability validates JSON text against the MovieSuitability
// schema and constructs the instance.
func ParseMovieSuitability(jsonText string) (*MovieSuitability, error) {
	var s MovieSuitability
	if err := parseInto(jsonText, suitabilitySchema, &s); err != nil {
		return nil, err
	}
	s.normalize()
	return &s, nil
}

func parseInto(jsonText string, schema *structured.JSONSchema, target any) error {
	if err := structured.NewValidator().Validate([]byte(jsonText), schema); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(jsonText), target); err != nil {
		return &structured.ValidationErrors{
			Errors: []structured.FieldError{{Message: fmt.Sprintf("JSON parse error: %v", err)}},
		}
	}
	return nil
}
