package domain

import "context"

// MediaRepository performs media CRUD against the backing service.
type MediaRepository interface {
	ListMedia(ctx context.Context) ([]MediaEntry, error)
	CreateMedia(ctx context.Context, fields MediaFields) (MediaEntry, error)
	UpdateMedia(ctx context.Context, id int64, fields MediaFields) error
	DeleteMedia(ctx context.Context, id int64) (MediaEntry, error)
}

// CommentRepository performs comment CRUD against the backing service.
type CommentRepository interface {
	CreateComment(ctx context.Context, mediaID int64, text string) (Comment, error)
	UpdateComment(ctx context.Context, id int64, text string) (Comment, error)
	DeleteComment(ctx context.Context, id int64) (Comment, error)
}

// LookupRepository queries the external metadata search.
type LookupRepository interface {
	SearchExternal(ctx context.Context, query string, category Category) ([]LookupResult, error)
}

// LookupCache stores lookup results between sessions.
type LookupCache interface {
	GetLookup(category Category, query string) ([]LookupResult, bool)
	SaveLookup(category Category, query string, results []LookupResult) error
}
