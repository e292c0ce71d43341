package search

import (
	"strings"

	"github.com/mmcdole/logbook/internal/domain"
)

// NormalizeTerm trims and lower-cases a submitted search term.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Filter returns the entries whose name contains term, ignoring case.
// An empty term returns entries itself, not a copy.
func Filter(entries []domain.MediaEntry, term string) []domain.MediaEntry {
	if term == "" {
		return entries
	}
	needle := strings.ToLower(term)
	out := make([]domain.MediaEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}
