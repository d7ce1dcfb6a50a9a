package review

import (
	"fmt"
	"io"
	"strings"
)

const divider = "------------------------------------------------------------"

// Render writes a human-readable report of a chain result, including the
// canonical JSON of each validated structure.
func Render(w io.Writer, res *Result) error {
	if res == nil || res.Review == nil || res.Suitability == nil {
		return fmt.Errorf("cannot render incomplete result")
	}

	r := res.Review
	fmt.Fprintf(w, "Movie Review: %s\n", r.Title)
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "  Genre:  %s\n", r.Genre)
	fmt.Fprintf(w, "  Rating: %d/10\n", r.Rating)
	fmt.Fprintf(w, "\n  Summary: %s\n", r.Summary)
	renderList(w, "Pros", r.Pros)
	renderList(w, "Cons", r.Cons)

	reviewJSON, err := r.CanonicalJSON()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n  JSON: %s\n", reviewJSON)

	s := res.Suitability
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Suitability Assessment")
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "  Suitable for under 10: %s\n", yesNo(s.SuitableForUnder10))
	fmt.Fprintf(w, "  Suggested minimum age: %d\n", s.SuggestedMinAge)
	fmt.Fprintf(w, "  Reasoning: %s\n", s.Reasoning)
	renderList(w, "Warnings", s.Warnings)

	suitabilityJSON, err := s.CanonicalJSON()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n  JSON: %s\n", suitabilityJSON)

	return nil
}

func renderList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "    - %s\n", strings.TrimSpace(item))
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
