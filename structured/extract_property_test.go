package structured

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// For any JSON object, wrapping the response in a fenced code block must not
// change what extraction yields.
func TestProperty_Extract_FenceInvariance(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		obj := genObjectJSON(rt)

		unwrapped := ExtractJSON(obj)
		tagged := ExtractJSON("```json\n" + obj + "\n```")
		untagged := ExtractJSON("```\n" + obj + "\n```")

		require.Equal(rt, unwrapped, tagged)
		require.Equal(rt, unwrapped, untagged)
	})
}

// For any JSON object surrounded by brace-free prose, extraction discards
// the prose and yields a string that parses back to the same value.
func TestProperty_Extract_ProseDiscarded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		obj := genObjectJSON(rt)
		before := rapid.StringMatching(`[a-zA-Z0-9 .,!\n]{0,40}`).Draw(rt, "before")
		after := rapid.StringMatching(`[a-zA-Z0-9 .,!\n]{0,40}`).Draw(rt, "after")

		extracted := ExtractJSON(before + obj + after)

		var want, got any
		require.NoError(rt, json.Unmarshal([]byte(obj), &want))
		require.NoError(rt, json.Unmarshal([]byte(extracted), &got), "extracted slice must stay parseable: %q", extracted)
		require.Equal(rt, want, got)
	})
}

// Extraction output is stable: extracting twice yields the same result.
func TestProperty_Extract_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		obj := genObjectJSON(rt)
		once := ExtractJSON(obj)
		require.Equal(rt, once, ExtractJSON(once))
	})
}

// genObjectJSON produces a compact JSON object with string, integer, bool
// and string-array members, including strings containing braces and quotes.
func genObjectJSON(rt *rapid.T) string {
	obj := map[string]any{}

	n := rapid.IntRange(1, 5).Draw(rt, "fields")
	for i := 0; i < n; i++ {
		key := rapid.StringMatching(`[a-z_]{1,10}`).Draw(rt, "key")
		switch rapid.IntRange(0, 3).Draw(rt, "kind") {
		case 0:
			obj[key] = rapid.StringMatching(`[a-zA-Z {}"\\]{0,20}`).Draw(rt, "str")
		case 1:
			obj[key] = rapid.IntRange(-1000, 1000).Draw(rt, "int")
		case 2:
			obj[key] = rapid.Bool().Draw(rt, "bool")
		case 3:
			obj[key] = rapid.SliceOfN(rapid.StringMatching(`[a-z]{0,8}`), 0, 4).Draw(rt, "list")
		}
	}

	data, err := json.Marshal(obj)
	if err != nil {
		rt.Fatalf("marshal: %v", err)
	}
	return string(data)
}
