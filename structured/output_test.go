package structured_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/cinecheck/llm"
	"github.com/BaSui01/cinecheck/structured"
	"github.com/BaSui01/cinecheck/testutil/mocks"
)

type taskResult struct {
	Status  string `json:"status" jsonschema:"required,enum=success,failure,pending"`
	Message string `json:"message" jsonschema:"required"`
	Score   int    `json:"score" jsonschema:"minimum=0,maximum=100"`
}

func TestNewOutput(t *testing.T) {
	provider := mocks.NewProvider()

	out, err := structured.NewOutput[taskResult](provider)
	require.NoError(t, err)

	schema := out.Schema()
	require.NotNil(t, schema)
	assert.Equal(t, structured.TypeObject, schema.Type)
	assert.True(t, schema.IsRequired("status"))
}

func TestNewOutput_NilProvider(t *testing.T) {
	_, err := structured.NewOutput[taskResult](nil)
	assert.Error(t, err)
}

func TestOutput_Parse(t *testing.T) {
	out, err := structured.NewOutput[taskResult](mocks.NewProvider())
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		value, err := out.Parse(`{"status":"success","message":"done","score":95}`)
		require.NoError(t, err)
		assert.Equal(t, "success", value.Status)
		assert.Equal(t, 95, value.Score)
	})

	t.Run("all-or-nothing on violation", func(t *testing.T) {
		value, err := out.Parse(`{"status":"unknown","message":"done","score":150}`)
		assert.Nil(t, value)

		var ve *structured.ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Errors, 2)
	})

	t.Run("parse error on non-JSON", func(t *testing.T) {
		value, err := out.Parse(`nope`)
		assert.Nil(t, value)
		assert.Error(t, err)
	})
}

func TestOutput_ParseWithResult(t *testing.T) {
	out, err := structured.NewOutput[taskResult](mocks.NewProvider())
	require.NoError(t, err)

	valid := out.ParseWithResult(`{"status":"pending","message":"queued"}`)
	assert.True(t, valid.IsValid())
	assert.Equal(t, "pending", valid.Value.Status)

	invalid := out.ParseWithResult(`{"status":"pending"}`)
	assert.False(t, invalid.IsValid())
	assert.Nil(t, invalid.Value, "no partial value on failed validation")
	assert.NotEmpty(t, invalid.Errors)
	assert.Equal(t, `{"status":"pending"}`, invalid.Raw)
}

func TestOutput_Generate(t *testing.T) {
	t.Run("fenced response", func(t *testing.T) {
		provider := mocks.NewProvider().WithResponses(
			"```json\n{\"status\":\"success\",\"message\":\"ok\",\"score\":50}\n```",
		)
		out, err := structured.NewOutput[taskResult](provider)
		require.NoError(t, err)

		value, err := out.Generate(context.Background(), &llm.ChatRequest{
			Messages: []llm.Message{{Role: llm.RoleUser, Content: "go"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "success", value.Status)
		assert.Equal(t, 1, provider.CallCount())
	})

	t.Run("raw kept on validation failure", func(t *testing.T) {
		raw := `The score is {"status":"success","message":"ok","score":999}`
		provider := mocks.NewProvider().WithResponses(raw)
		out, err := structured.NewOutput[taskResult](provider)
		require.NoError(t, err)

		value, got, err := out.GenerateWithRaw(context.Background(), &llm.ChatRequest{})
		assert.Nil(t, value)
		assert.Equal(t, raw, got)

		var ve *structured.ValidationErrors
		require.ErrorAs(t, err, &ve)
		require.NotNil(t, ve.ErrorAt("score"))
	})

	t.Run("provider error surfaces", func(t *testing.T) {
		provider := mocks.NewProvider().WithError(&llm.Error{
			Code:    llm.ErrRateLimited,
			Message: "slow down",
		})
		out, err := structured.NewOutput[taskResult](provider)
		require.NoError(t, err)

		_, err = out.Generate(context.Background(), &llm.ChatRequest{})
		var lerr *llm.Error
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, llm.ErrRateLimited, lerr.Code)
	})
}

func TestOutput_ValidateValue(t *testing.T) {
	out, err := structured.NewOutput[taskResult](mocks.NewProvider())
	require.NoError(t, err)

	assert.NoError(t, out.ValidateValue(&taskResult{Status: "success", Message: "ok", Score: 1}))
	assert.Error(t, out.ValidateValue(&taskResult{Status: "nope", Message: "ok"}))
	assert.Error(t, out.ValidateValue(nil))
}
