package domain

import "strconv"

// MediaEntry is a tracked media item as confirmed by the backing service.
type MediaEntry struct {
	ID       int64    // Server-assigned identifier
	Name     string   // Display name
	Category Category // Anime, Manga, Book, Series or Movie
	Progress string   // Numeric, as entered by the user
	Score    string
	Complete bool   // Stored as 0/1 on the wire
	Date     string // Start date, dd-mm-yyyy

	// External metadata, set only when the entry came from a lookup match
	ExternalID    string
	CoverImageURL string
	TotalEpisodes string
	ExternalScore string
	Synopsis      string

	Comments []Comment // Owned by the entry, oldest first
}

// Clone returns a deep copy of the entry.
func (m MediaEntry) Clone() MediaEntry {
	out := m
	if m.Comments != nil {
		out.Comments = make([]Comment, len(m.Comments))
		copy(out.Comments, m.Comments)
	}
	return out
}

// HasMetadata reports whether any external metadata is attached.
func (m MediaEntry) HasMetadata() bool {
	return m.ExternalID != "" || m.CoverImageURL != "" || m.TotalEpisodes != "" ||
		m.ExternalScore != "" || m.Synopsis != ""
}

// Metadata returns the entry's external metadata as a selection snapshot.
func (m MediaEntry) Metadata() *SelectedMetadata {
	if !m.HasMetadata() {
		return nil
	}
	return &SelectedMetadata{
		Title:         m.Name,
		ExternalID:    m.ExternalID,
		CoverImageURL: m.CoverImageURL,
		TotalEpisodes: m.TotalEpisodes,
		ExternalScore: m.ExternalScore,
		Synopsis:      m.Synopsis,
	}
}

// CommentIndex returns the position of a comment in the entry, or -1.
func (m MediaEntry) CommentIndex(commentID int64) int {
	for i, c := range m.Comments {
		if c.ID == commentID {
			return i
		}
	}
	return -1
}

// Comment is a note attached to a media entry.
type Comment struct {
	ID      int64
	MediaID int64 // Owning entry
	Text    string
}

// SelectedMetadata is the metadata snapshot picked while the media form is open.
type SelectedMetadata struct {
	Title         string
	ExternalID    string
	CoverImageURL string
	TotalEpisodes string
	ExternalScore string
	Synopsis      string
}

// LookupResult is one candidate returned by the external search.
type LookupResult = SelectedMetadata

// MediaFields is the user-submitted form for creating or updating an entry.
type MediaFields struct {
	Name     string
	Category Category
	Progress string
	Score    string
	Complete bool
	Date     string
	Metadata *SelectedMetadata // nil when no lookup match is attached
}

// FieldsOf returns the editable fields of an existing entry.
func FieldsOf(m MediaEntry) MediaFields {
	return MediaFields{
		Name:     m.Name,
		Category: m.Category,
		Progress: m.Progress,
		Score:    m.Score,
		Complete: m.Complete,
		Date:     m.Date,
		Metadata: m.Metadata(),
	}
}

// Apply returns a copy of the entry with the submitted fields applied.
// Comments are kept; metadata is replaced (cleared when none is selected).
func (f MediaFields) Apply(m MediaEntry) MediaEntry {
	out := m.Clone()
	out.Name = f.Name
	out.Category = f.Category
	out.Progress = f.Progress
	out.Score = f.Score
	out.Complete = f.Complete
	out.Date = f.Date
	var md SelectedMetadata
	if f.Metadata != nil {
		md = *f.Metadata
	}
	out.ExternalID = md.ExternalID
	out.CoverImageURL = md.CoverImageURL
	out.TotalEpisodes = md.TotalEpisodes
	out.ExternalScore = md.ExternalScore
	out.Synopsis = md.Synopsis
	return out
}

// FormatID renders an identifier for use in requests and node ids.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
