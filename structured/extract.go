package structured

import "strings"

// ExtractJSON pulls the JSON object out of a raw model response. Responses
// asked to return "ONLY JSON" often come back wrapped in a markdown fence or
// with stray prose around the object anyway, so this is deliberately
// best-effort: strip fences, then scan for the first complete top-level
// object. When no brace is present the trimmed text is returned unchanged so
// the validator fails with a parse error instead of extraction inventing
// structure.
func ExtractJSON(response string) string {
	text := strings.TrimSpace(response)

	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	text = strings.TrimSpace(text)

	if obj, ok := firstBalancedObject(text); ok {
		return obj
	}

	// No balanced object closed before the text ran out. Fall back to the
	// naive first-{ .. last-} slice so truncated responses still reach the
	// validator with their best candidate.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return strings.TrimSpace(text[start : end+1])
	}

	return text
}

// firstBalancedObject scans for the first complete, balanced top-level JSON
// object, tracking brace depth and skipping braces inside string literals
// (including escaped quotes). This holds up against prose containing stray
// braces and against multiple independent JSON-like blocks, where a plain
// first-{/last-} slice does not.
func firstBalancedObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(text[start : i+1]), true
			}
		}
	}

	return "", false
}
