package tracker

import (
	"net/url"

	"github.com/mmcdole/logbook/internal/domain"
)

func mapMedia(d mediaDTO) domain.MediaEntry {
	m := domain.MediaEntry{
		ID:            int64(d.ID),
		Name:          string(d.Name),
		Category:      domain.ParseCategory(string(d.Category)),
		Progress:      string(d.Progress),
		Score:         string(d.Score),
		Complete:      bool(d.Complete),
		Date:          string(d.Date),
		ExternalID:    string(d.ExternalID),
		CoverImageURL: string(d.CoverImageURL),
		TotalEpisodes: string(d.TotalEpisodes),
		ExternalScore: string(d.ExternalScore),
		Synopsis:      string(d.Synopsis),
		Comments:      make([]domain.Comment, 0, len(d.Comments)),
	}
	for _, c := range d.Comments {
		mc := mapComment(c)
		if mc.MediaID == 0 {
			mc.MediaID = m.ID
		}
		m.Comments = append(m.Comments, mc)
	}
	return m
}

func mapComment(d commentDTO) domain.Comment {
	return domain.Comment{
		ID:      int64(d.ID),
		MediaID: int64(d.MediaID),
		Text:    string(d.Text),
	}
}

func mapLookup(d lookupDTO) domain.LookupResult {
	return domain.LookupResult{
		Title:         string(d.Title),
		ExternalID:    string(d.ExternalID),
		CoverImageURL: string(d.CoverImageURL),
		TotalEpisodes: string(d.TotalEpisodes),
		ExternalScore: string(d.ExternalScore),
		Synopsis:      string(d.Synopsis),
	}
}

// mediaForm encodes submitted fields. Absent metadata is sent as empty values.
func mediaForm(f domain.MediaFields) url.Values {
	v := url.Values{}
	v.Set("name", f.Name)
	v.Set("category", string(f.Category))
	v.Set("progress", f.Progress)
	v.Set("score", f.Score)
	if f.Complete {
		v.Set("complete", "1")
	} else {
		v.Set("complete", "0")
	}
	v.Set("date", f.Date)

	var md domain.SelectedMetadata
	if f.Metadata != nil {
		md = *f.Metadata
	}
	v.Set("external_id", md.ExternalID)
	v.Set("cover_image_url", md.CoverImageURL)
	v.Set("total_episodes", md.TotalEpisodes)
	v.Set("external_score", md.ExternalScore)
	v.Set("synopsis", md.Synopsis)
	return v
}
