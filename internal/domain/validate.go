package domain

import (
	"strconv"
	"strings"
)

// Validate checks the required fields and that progress is numeric.
func (f MediaFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationFailure{Field: "name", Reason: "Please fill in all required fields"}
	}
	if strings.TrimSpace(string(f.Category)) == "" {
		return &ValidationFailure{Field: "category", Reason: "Please fill in all required fields"}
	}
	if strings.TrimSpace(f.Score) == "" {
		return &ValidationFailure{Field: "score", Reason: "Please fill in all required fields"}
	}
	if p := strings.TrimSpace(f.Progress); p != "" {
		if _, err := strconv.ParseFloat(p, 64); err != nil {
			return &ValidationFailure{Field: "progress", Reason: "Progress must be a number!"}
		}
	}
	return nil
}

// ValidateCommentText rejects empty or whitespace-only comment text.
func ValidateCommentText(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", &ValidationFailure{Field: "text", Reason: "Comment cannot be empty"}
	}
	return t, nil
}
