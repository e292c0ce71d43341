package tracker

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// looseString accepts JSON strings, numbers, booleans and null.
// The backend stores most user fields as text but emits some as numbers.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		if v == "null" {
			v = ""
		}
		*s = looseString(v)
	default:
		*s = looseString(b)
	}
	return nil
}

// looseBool accepts 0/1, "0"/"1" and true/false.
type looseBool bool

func (v *looseBool) UnmarshalJSON(b []byte) error {
	var s looseString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	switch string(s) {
	case "", "0", "false":
		*v = false
	case "1", "true":
		*v = true
	default:
		n, err := strconv.ParseFloat(string(s), 64)
		if err != nil {
			return err
		}
		*v = n != 0
	}
	return nil
}

// looseID accepts numeric or string ids.
type looseID int64

func (v *looseID) UnmarshalJSON(b []byte) error {
	var s looseString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	if s == "" {
		*v = 0
		return nil
	}
	n, err := strconv.ParseInt(string(s), 10, 64)
	if err != nil {
		return err
	}
	*v = looseID(n)
	return nil
}

type mediaDTO struct {
	ID            looseID      `json:"id"`
	Name          looseString  `json:"name"`
	Category      looseString  `json:"category"`
	Progress      looseString  `json:"progress"`
	Score         looseString  `json:"score"`
	Complete      looseBool    `json:"complete"`
	Date          looseString  `json:"date"`
	ExternalID    looseString  `json:"external_id"`
	CoverImageURL looseString  `json:"cover_image_url"`
	TotalEpisodes looseString  `json:"total_episodes"`
	ExternalScore looseString  `json:"external_score"`
	Synopsis      looseString  `json:"synopsis"`
	Comments      []commentDTO `json:"comments"`
}

type commentDTO struct {
	ID      looseID     `json:"id"`
	MediaID looseID     `json:"media_id"`
	Text    looseString `json:"text"`
}

type lookupDTO struct {
	Title         looseString `json:"title"`
	ExternalID    looseString `json:"external_id"`
	CoverImageURL looseString `json:"cover_image_url"`
	TotalEpisodes looseString `json:"total_episodes"`
	ExternalScore looseString `json:"external_score"`
	Synopsis      looseString `json:"synopsis"`
}
