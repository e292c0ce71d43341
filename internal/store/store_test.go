package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/logbook/internal/domain"
)

func ids(entries []domain.MediaEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestInsertPreservesConfirmationOrder(t *testing.T) {
	s := New(nil)
	for _, id := range []int64{3, 1, 2} {
		require.True(t, s.Insert(domain.MediaEntry{ID: id}))
	}
	assert.Equal(t, []int64{3, 1, 2}, ids(s.All()))
}

func TestInsertDuplicateIgnored(t *testing.T) {
	s := New(nil)
	s.Insert(domain.MediaEntry{ID: 1, Name: "first"})
	assert.False(t, s.Insert(domain.MediaEntry{ID: 1, Name: "replayed"}))
	assert.Equal(t, 1, s.Len())
	got, _ := s.Find(1)
	assert.Equal(t, "first", got.Name)
}

func TestUpdateDoesNotReorder(t *testing.T) {
	s := New(nil)
	s.Insert(domain.MediaEntry{ID: 1, Name: "a"})
	s.Insert(domain.MediaEntry{ID: 2, Name: "b"})
	s.Insert(domain.MediaEntry{ID: 3, Name: "c"})

	require.True(t, s.Update(domain.MediaEntry{ID: 1, Name: "a2"}))
	assert.Equal(t, []int64{1, 2, 3}, ids(s.All()))
	got, _ := s.Find(1)
	assert.Equal(t, "a2", got.Name)

	assert.False(t, s.Update(domain.MediaEntry{ID: 99}))
	assert.Equal(t, 3, s.Len())
}

func TestMixedSequenceOrder(t *testing.T) {
	s := New(nil)
	s.Insert(domain.MediaEntry{ID: 1})
	s.Insert(domain.MediaEntry{ID: 2})
	s.Insert(domain.MediaEntry{ID: 3})
	s.Remove(2)
	s.Update(domain.MediaEntry{ID: 3, Name: "x"})
	s.Insert(domain.MediaEntry{ID: 4})
	s.Update(domain.MediaEntry{ID: 1, Name: "y"})
	assert.Equal(t, []int64{1, 3, 4}, ids(s.All()))
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	s := New(nil)
	s.Insert(domain.MediaEntry{ID: 1})
	assert.False(t, s.Remove(7))
	assert.True(t, s.Remove(1))
	assert.Equal(t, 0, s.Len())
}

func TestReturnedValuesAreCopies(t *testing.T) {
	s := New(nil)
	s.Insert(domain.MediaEntry{ID: 1, Name: "Naruto"})
	s.InsertComment(1, domain.Comment{ID: 10, Text: "great"})

	all := s.All()
	all[0].Name = "mutated"
	all[0].Comments[0].Text = "mutated"

	got, _ := s.Find(1)
	assert.Equal(t, "Naruto", got.Name)
	assert.Equal(t, "great", got.Comments[0].Text)
}

func TestInsertCommentScenario(t *testing.T) {
	s := New(nil)
	s.Insert(domain.MediaEntry{ID: 1, Name: "Naruto", Comments: []domain.Comment{}})

	require.True(t, s.InsertComment(1, domain.Comment{ID: 10, Text: "great"}))

	got, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, []domain.Comment{{ID: 10, MediaID: 1, Text: "great"}}, got.Comments)
}

func TestCommentOpsOnUnknownEntry(t *testing.T) {
	s := New(nil)
	s.Insert(domain.MediaEntry{ID: 1})

	assert.False(t, s.InsertComment(2, domain.Comment{ID: 10, Text: "x"}))
	assert.False(t, s.UpdateComment(2, 10, "x"))
	assert.False(t, s.RemoveComment(2, 10))
	assert.False(t, s.UpdateComment(1, 99, "x"))
	assert.False(t, s.RemoveComment(1, 99))

	got, _ := s.Find(1)
	assert.Empty(t, got.Comments)
}

func TestUpdateAndRemoveComment(t *testing.T) {
	s := New(nil)
	s.Insert(domain.MediaEntry{ID: 1})
	s.InsertComment(1, domain.Comment{ID: 10, Text: "one"})
	s.InsertComment(1, domain.Comment{ID: 11, Text: "two"})

	require.True(t, s.UpdateComment(1, 11, "TWO"))
	c, ok := s.FindComment(11)
	require.True(t, ok)
	assert.Equal(t, "TWO", c.Text)

	require.True(t, s.RemoveComment(1, 10))
	got, _ := s.Find(1)
	assert.Equal(t, []domain.Comment{{ID: 11, MediaID: 1, Text: "TWO"}}, got.Comments)
}

func TestReset(t *testing.T) {
	s := New(nil)
	s.Insert(domain.MediaEntry{ID: 9})
	s.Reset([]domain.MediaEntry{{ID: 1}, {ID: 2}, {ID: 1}})
	assert.Equal(t, []int64{1, 2}, ids(s.All()))
}
