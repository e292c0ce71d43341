// Package lookup orchestrates external metadata searches for the media form.
package lookup

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/search"
)

const (
	NoticeUnsupported = "API info not available for Movies or Series yet."
	NoticeNothing     = "Nothing found."

	// DefaultMinQuery is the shortest query length that is never sent.
	DefaultMinQuery = 2
)

// Result is what the form shows under the name field.
type Result struct {
	Query      string
	Category   domain.Category
	Candidates []domain.LookupResult
	Notice     string // set instead of candidates for unsupported or empty searches
	Skipped    bool   // query too short; the panel should close
	Cached     bool
}

// Service searches the lookup API with caching and ranking.
type Service struct {
	repo     domain.LookupRepository
	cache    domain.LookupCache
	minQuery int
	logger   *slog.Logger
}

// NewService creates a lookup service. cache may be nil.
func NewService(repo domain.LookupRepository, cache domain.LookupCache, minQuery int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if minQuery <= 0 {
		minQuery = DefaultMinQuery
	}
	return &Service{repo: repo, cache: cache, minQuery: minQuery, logger: logger}
}

// Search resolves query for category. Movie and Series never reach the repository.
func (s *Service) Search(ctx context.Context, query string, category domain.Category) (Result, error) {
	res := Result{Query: query, Category: category}
	if !category.SupportsLookup() {
		res.Notice = NoticeUnsupported
		return res, nil
	}
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) <= s.minQuery {
		res.Skipped = true
		return res, nil
	}

	if s.cache != nil {
		if hit, ok := s.cache.GetLookup(category, trimmed); ok {
			s.logger.Debug("lookup cache hit", "query", trimmed, "category", category)
			res.Cached = true
			return s.finish(res, trimmed, hit), nil
		}
	}

	results, err := s.repo.SearchExternal(ctx, trimmed, category)
	if err != nil {
		s.logger.Error("failed to search external api", "error", err, "query", trimmed, "category", category)
		return res, err
	}
	if s.cache != nil && len(results) > 0 {
		if err := s.cache.SaveLookup(category, trimmed, results); err != nil {
			s.logger.Warn("failed to cache lookup", "error", err)
		}
	}
	s.logger.Debug("lookup completed", "query", trimmed, "category", category, "count", len(results))
	return s.finish(res, trimmed, results), nil
}

func (s *Service) finish(res Result, query string, results []domain.LookupResult) Result {
	if len(results) == 0 {
		res.Notice = NoticeNothing
		return res
	}
	res.Candidates = search.RankLookup(query, results)
	return res
}
