package review

import (
	"fmt"
	"strings"
)

// ReviewPrompt renders the review-request prompt for a movie title. The
// field list mirrors the MovieReview schema; the trailing "ONLY the JSON"
// instruction is what the extractor is built around.
func ReviewPrompt(title string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Write a review of the movie %q in JSON format with these fields:\n", title)
	sb.WriteString("- title: string (movie title)\n")
	sb.WriteString("- rating: integer 1-10\n")
	sb.WriteString("- genre: string\n")
	sb.WriteString("- summary: string (brief summary)\n")
	sb.WriteString("- pros: array of strings (positive aspects)\n")
	sb.WriteString("- cons: array of strings (negative aspects)\n")
	sb.WriteString("\nReturn ONLY the JSON, no other text.")

	return sb.String()
}

// SuitabilityPrompt renders the child-suitability prompt, embedding the
// canonical JSON of an already-validated review.
func SuitabilityPrompt(reviewJSON string) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful content suitability assistant. ")
	sb.WriteString("Given the following JSON movie review, determine if the movie is suitable for children under 10. ")
	sb.WriteString("Consider violence, language, fear/intensity, sexual content, substance use, and overall themes.\n\n")
	sb.WriteString("Return ONLY a JSON object with exactly these fields:\n")
	sb.WriteString("- suitable_for_under_10: boolean\n")
	sb.WriteString("- reasoning: string (max 3 sentences)\n")
	sb.WriteString("- warnings: array of strings (list any relevant content warnings)\n")
	sb.WriteString("- suggested_min_age: integer (0-18)\n")
	sb.WriteString("\nMovie review JSON:\n")
	sb.WriteString(reviewJSON)

	return sb.String()
}
