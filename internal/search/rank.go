package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/mmcdole/logbook/internal/domain"
)

// RankLookup orders lookup candidates by how closely their title matches query
// (lower score first). Ties keep the service's order.
func RankLookup(query string, results []domain.LookupResult) []domain.LookupResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(results) < 2 {
		return results
	}

	scores := make([]int, len(results))
	order := make([]int, len(results))
	for i, r := range results {
		scores[i] = matchScore(query, strings.ToLower(r.Title))
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] < scores[order[b]]
	})

	ranked := make([]domain.LookupResult, len(results))
	for i, idx := range order {
		ranked[i] = results[idx]
	}
	return ranked
}

// matchScore ranks exact < prefix < substring < subsequence < edit distance.
func matchScore(query, title string) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	case fuzzy.MatchFold(query, title):
		return 75
	}
	return 100 + fuzzy.LevenshteinDistance(query, title)
}

type categorySource []domain.Category

func (s categorySource) String(i int) string { return strings.ToLower(string(s[i])) }
func (s categorySource) Len() int            { return len(s) }

// ResolveCategory maps a typed fragment ("mng", "ser") to the best matching
// category. It reports false when nothing matches.
func ResolveCategory(input string) (domain.Category, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}
	if c := domain.ParseCategory(input); c.Known() {
		return c, true
	}
	matches := sfuzzy.FindFrom(input, categorySource(domain.Categories))
	if len(matches) == 0 {
		return "", false
	}
	return domain.Categories[matches[0].Index], true
}
