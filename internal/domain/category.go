package domain

import "strings"

// Category is the kind of media an entry tracks.
type Category string

const (
	CategoryAnime  Category = "Anime"
	CategoryManga  Category = "Manga"
	CategoryBook   Category = "Book"
	CategorySeries Category = "Series"
	CategoryMovie  Category = "Movie"
)

// Categories lists every known category in form order.
var Categories = []Category{CategoryAnime, CategoryManga, CategoryBook, CategorySeries, CategoryMovie}

// LabelSet holds the category-specific field captions.
type LabelSet struct {
	Progress string
	Total    string
	Info     string
}

// Labels returns the captions used when displaying an entry of this category.
func (c Category) Labels() LabelSet {
	switch c {
	case CategoryAnime:
		return LabelSet{Progress: "Episodes watched", Total: "Total episodes", Info: "Synopsis"}
	case CategoryManga:
		return LabelSet{Progress: "Chapters read", Total: "Total chapters", Info: "Synopsis"}
	case CategoryBook:
		return LabelSet{Progress: "Pages read", Total: "Total pages", Info: "About"}
	case CategorySeries:
		return LabelSet{Progress: "Episodes watched", Total: "Total episodes", Info: "Synopsis"}
	case CategoryMovie:
		return LabelSet{Progress: "Times watched", Total: "Duration (min)", Info: "Synopsis"}
	default:
		return LabelSet{Progress: "Progress", Total: "Total", Info: "Info"}
	}
}

// SupportsLookup reports whether the external search can be queried for c.
func (c Category) SupportsLookup() bool {
	switch c {
	case CategoryMovie, CategorySeries:
		return false
	default:
		return true
	}
}

// Known reports whether c is one of the defined categories.
func (c Category) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// ParseCategory matches a category name case-insensitively.
// Unknown names are returned unchanged so they still render with default labels.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, k := range Categories {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return Category(s)
}

func (c Category) String() string { return string(c) }
