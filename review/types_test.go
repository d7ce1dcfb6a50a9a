package review

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/cinecheck/structured"
)

func TestReviewSchema(t *testing.T) {
	schema := ReviewSchema()

	assert.ElementsMatch(t, []string{"title", "rating", "genre", "summary"}, schema.Required)

	rating := schema.GetProperty("rating")
	require.NotNil(t, rating)
	assert.Equal(t, structured.TypeInteger, rating.Type)
	assert.Equal(t, float64(1), *rating.Minimum)
	assert.Equal(t, float64(10), *rating.Maximum)

	pros := schema.GetProperty("pros")
	require.NotNil(t, pros)
	assert.Equal(t, structured.TypeArray, pros.Type)
	assert.Equal(t, structured.TypeString, pros.Items.Type)
}

func TestSuitabilitySchema(t *testing.T) {
	schema := SuitabilitySchema()

	assert.ElementsMatch(t, []string{"suitable_for_under_10", "reasoning", "suggested_min_age"}, schema.Required)
	assert.Equal(t, structured.TypeBoolean, schema.GetProperty("suitable_for_under_10").Type)

	minAge := schema.GetProperty("suggested_min_age")
	require.NotNil(t, minAge)
	assert.Equal(t, float64(0), *minAge.Minimum)
	assert.Equal(t, float64(18), *minAge.Maximum)
}

func TestParseMovieReview(t *testing.T) {
	t.Run("full review", func(t *testing.T) {
		r, err := ParseMovieReview(`{"title":"Inception","rating":9,"genre":"Sci-Fi","summary":"A heist within dreams.","pros":["Visuals"],"cons":[]}`)
		require.NoError(t, err)

		assert.Equal(t, "Inception", r.Title)
		assert.Equal(t, 9, r.Rating)
		assert.Equal(t, "Sci-Fi", r.Genre)
		assert.Equal(t, "A heist within dreams.", r.Summary)
		assert.Equal(t, []string{"Visuals"}, r.Pros)
		assert.Equal(t, []string{}, r.Cons, "explicit empty list stays empty, defaulting not triggered")
	})

	t.Run("absent lists default to empty", func(t *testing.T) {
		r, err := ParseMovieReview(`{"title":"Up","rating":8,"genre":"Animation","summary":"A house flies."}`)
		require.NoError(t, err)
		assert.NotNil(t, r.Pros)
		assert.NotNil(t, r.Cons)
		assert.Empty(t, r.Pros)
		assert.Empty(t, r.Cons)
	})

	t.Run("missing rating", func(t *testing.T) {
		r, err := ParseMovieReview(`{"title":"Inception","genre":"Sci-Fi","summary":"Dreams."}`)
		assert.Nil(t, r)

		ve := requireValidationErrors(t, err)
		fieldErr := ve.ErrorAt("rating")
		require.NotNil(t, fieldErr)
		assert.Equal(t, "required field is missing", fieldErr.Message)
	})

	t.Run("rating bounds", func(t *testing.T) {
		valid := []int{1, 10}
		for _, rating := range valid {
			_, err := ParseMovieReview(reviewJSONWithRating(rating))
			assert.NoError(t, err, "rating %d should validate", rating)
		}

		invalid := []int{0, 11}
		for _, rating := range invalid {
			r, err := ParseMovieReview(reviewJSONWithRating(rating))
			assert.Nil(t, r)
			ve := requireValidationErrors(t, err)
			require.NotNil(t, ve.ErrorAt("rating"), "range error for rating %d must be at rating", rating)
		}
	})

	t.Run("unknown extra fields ignored", func(t *testing.T) {
		r, err := ParseMovieReview(`{"title":"Up","rating":8,"genre":"Animation","summary":"A house flies.","director":"Pete Docter"}`)
		require.NoError(t, err)
		assert.Equal(t, "Up", r.Title)
	})

	t.Run("list element type enforced", func(t *testing.T) {
		r, err := ParseMovieReview(`{"title":"Up","rating":8,"genre":"Animation","summary":"x","pros":["good",42]}`)
		assert.Nil(t, r)
		ve := requireValidationErrors(t, err)
		require.NotNil(t, ve.ErrorAt("pros[1]"))
	})

	t.Run("not JSON at all", func(t *testing.T) {
		r, err := ParseMovieReview("I cannot produce that review.")
		assert.Nil(t, r)
		ve := requireValidationErrors(t, err)
		assert.Contains(t, ve.Errors[0].Message, "invalid JSON")
	})
}

func TestParseMovieSuitability(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		s, err := ParseMovieSuitability(`{"suitable_for_under_10":false,"reasoning":"Contains intense violence.","warnings":["violence","language"],"suggested_min_age":13}`)
		require.NoError(t, err)

		assert.False(t, s.SuitableForUnder10)
		assert.Equal(t, "Contains intense violence.", s.Reasoning)
		assert.Equal(t, []string{"violence", "language"}, s.Warnings)
		assert.Equal(t, 13, s.SuggestedMinAge)
	})

	t.Run("suggested_min_age bounds", func(t *testing.T) {
		for _, age := range []int{0, 18} {
			_, err := ParseMovieSuitability(suitabilityJSONWithAge(age))
			assert.NoError(t, err, "age %d should validate", age)
		}
		for _, age := range []int{-1, 19} {
			s, err := ParseMovieSuitability(suitabilityJSONWithAge(age))
			assert.Nil(t, s)
			ve := requireValidationErrors(t, err)
			require.NotNil(t, ve.ErrorAt("suggested_min_age"), "range error for age %d", age)
		}
	})

	t.Run("boolean must be a real boolean", func(t *testing.T) {
		s, err := ParseMovieSuitability(`{"suitable_for_under_10":"false","reasoning":"x","suggested_min_age":10}`)
		assert.Nil(t, s)
		ve := requireValidationErrors(t, err)
		fieldErr := ve.ErrorAt("suitable_for_under_10")
		require.NotNil(t, fieldErr)
		assert.Contains(t, fieldErr.Message, "expected boolean")
	})

	t.Run("absent warnings default to empty", func(t *testing.T) {
		s, err := ParseMovieSuitability(`{"suitable_for_under_10":true,"reasoning":"Gentle fun.","suggested_min_age":0}`)
		require.NoError(t, err)
		assert.NotNil(t, s.Warnings)
		assert.Empty(t, s.Warnings)
	})
}

// Serializing a validated instance and re-validating the serialization
// produces an equal instance.
func TestRoundTrip(t *testing.T) {
	t.Run("review", func(t *testing.T) {
		original, err := ParseMovieReview(`{"title":"Inception","rating":9,"genre":"Sci-Fi","summary":"A heist within dreams.","pros":["Visuals"],"cons":[]}`)
		require.NoError(t, err)

		serialized, err := original.CanonicalJSON()
		require.NoError(t, err)

		reparsed, err := ParseMovieReview(serialized)
		require.NoError(t, err)
		assert.Equal(t, original, reparsed)
	})

	t.Run("suitability", func(t *testing.T) {
		original, err := ParseMovieSuitability(`{"suitable_for_under_10":false,"reasoning":"Contains intense violence.","warnings":["violence"],"suggested_min_age":13}`)
		require.NoError(t, err)

		serialized, err := original.CanonicalJSON()
		require.NoError(t, err)

		reparsed, err := ParseMovieSuitability(serialized)
		require.NoError(t, err)
		assert.Equal(t, original, reparsed)
	})
}

// Re-validating an already-valid serialized instance yields an equal
// instance every time.
func TestValidationIdempotent(t *testing.T) {
	input := `{"title":"Up","rating":8,"genre":"Animation","summary":"A house flies.","pros":["Heart"],"cons":["Slow start"]}`

	first, err := ParseMovieReview(input)
	require.NoError(t, err)
	second, err := ParseMovieReview(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func reviewJSONWithRating(rating int) string {
	return `{"title":"T","rating":` + strconv.Itoa(rating) + `,"genre":"G","summary":"S"}`
}

func suitabilityJSONWithAge(age int) string {
	return `{"suitable_for_under_10":true,"reasoning":"R","suggested_min_age":` + strconv.Itoa(age) + `}`
}

func requireValidationErrors(t *testing.T, err error) *structured.ValidationErrors {
	t.Helper()
	require.Error(t, err)
	var ve *structured.ValidationErrors
	require.True(t, errors.As(err, &ve), "error should be *structured.ValidationErrors, got %T", err)
	return ve
}
