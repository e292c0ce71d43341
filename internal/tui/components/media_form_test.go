package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/logbook/internal/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, f MediaForm, msg tea.Msg) (MediaForm, tea.Cmd, FormResult) {
	t.Helper()
	return f.Update(msg)
}

func TestShowAddDefaults(t *testing.T) {
	f := NewMediaForm(0)
	f.ShowAdd(domain.CategoryManga, "15-10-2026")

	require.True(t, f.IsVisible())
	assert.Equal(t, FormAdd, f.Mode())
	got := f.Fields()
	assert.Equal(t, "", got.Name)
	assert.Equal(t, domain.CategoryManga, got.Category)
	assert.Equal(t, "0", got.Progress)
	assert.Equal(t, "7", got.Score)
	assert.Equal(t, "15-10-2026", got.Date)
	assert.False(t, got.Complete)
	assert.Nil(t, got.Metadata)
}

func TestShowEditPrefills(t *testing.T) {
	f := NewMediaForm(0)
	f.ShowEdit(domain.MediaEntry{
		ID: 4, Name: "Dune", Category: domain.CategoryBook, Progress: "120",
		Score: "9", Complete: true, Date: "01-02-2020", ExternalID: "OL1",
	})

	assert.Equal(t, FormEdit, f.Mode())
	assert.Equal(t, int64(4), f.MediaID())
	got := f.Fields()
	assert.Equal(t, "Dune", got.Name)
	assert.Equal(t, domain.CategoryBook, got.Category)
	assert.True(t, got.Complete)
	require.NotNil(t, got.Metadata)
	assert.Equal(t, "OL1", got.Metadata.ExternalID)

	_, _, ok := f.LookupRequest()
	assert.False(t, ok, "metadata already chosen")
}

func TestTypingNameSchedulesLookup(t *testing.T) {
	f := NewMediaForm(0)
	f.ShowAdd(domain.CategoryAnime, "")
	before := f.Seq()

	f, cmd, res := press(t, f, runes("Bleach"))
	assert.Equal(t, FormNone, res)
	assert.NotNil(t, cmd)
	assert.Greater(t, f.Seq(), before)

	query, cat, ok := f.LookupRequest()
	require.True(t, ok)
	assert.Equal(t, "Bleach", query)
	assert.Equal(t, domain.CategoryAnime, cat)
}

func TestStaleLookupResultsDropped(t *testing.T) {
	f := NewMediaForm(0)
	f.ShowAdd(domain.CategoryAnime, "")
	f, _, _ = press(t, f, runes("Ble"))
	old := f.Seq()
	f, _, _ = press(t, f, runes("ach"))

	assert.False(t, f.SetLookup(old, []domain.LookupResult{{Title: "Bleach"}}, "", false))
	assert.False(t, f.Candidates())

	assert.True(t, f.SetLookup(f.Seq(), []domain.LookupResult{{Title: "Bleach"}}, "", false))
	assert.True(t, f.Candidates())

	seq := f.Seq()
	f.Hide()
	assert.False(t, f.SetLookup(seq, []domain.LookupResult{{Title: "Bleach"}}, "", false))
}

func TestPickCandidateAndReset(t *testing.T) {
	f := NewMediaForm(0)
	f.ShowAdd(domain.CategoryAnime, "")
	f, _, _ = press(t, f, runes("nar"))
	require.True(t, f.SetLookup(f.Seq(), []domain.LookupResult{
		{Title: "Naruto", ExternalID: "20"},
		{Title: "Naruto Shippuden", ExternalID: "1735", TotalEpisodes: "500"},
	}, "", false))

	f, _, _ = press(t, f, tea.KeyMsg{Type: tea.KeyTab})
	f, _, _ = press(t, f, runes("j"))
	f, _, res := press(t, f, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, FormNone, res, "enter in the list picks, it does not submit")

	got := f.Fields()
	assert.Equal(t, "Naruto Shippuden", got.Name)
	require.NotNil(t, got.Metadata)
	assert.Equal(t, "1735", got.Metadata.ExternalID)
	assert.False(t, f.Candidates())

	f, _, _ = press(t, f, tea.KeyMsg{Type: tea.KeyCtrlR})
	got = f.Fields()
	assert.Empty(t, got.Name)
	assert.Nil(t, got.Metadata)
}

func TestSkippedLookupClearsList(t *testing.T) {
	f := NewMediaForm(0)
	f.ShowAdd(domain.CategoryAnime, "")
	f, _, _ = press(t, f, runes("bl"))
	require.True(t, f.SetLookup(f.Seq(), []domain.LookupResult{{Title: "Bleach"}}, "", false))
	require.True(t, f.SetLookup(f.Seq(), nil, "", true))
	assert.False(t, f.Candidates())
}

func TestCategoryChangeResolvesAndClearsList(t *testing.T) {
	f := NewMediaForm(0)
	f.ShowAdd(domain.CategoryAnime, "")
	f, _, _ = press(t, f, runes("Dune"))
	require.True(t, f.SetLookup(f.Seq(), []domain.LookupResult{{Title: "Dune"}}, "", false))

	// name -> results -> category
	f, _, _ = press(t, f, tea.KeyMsg{Type: tea.KeyTab})
	f, _, _ = press(t, f, tea.KeyMsg{Type: tea.KeyTab})
	for range "Anime" {
		f, _, _ = press(t, f, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	f, cmd, _ := press(t, f, runes("Book"))

	assert.NotNil(t, cmd)
	assert.False(t, f.Candidates())
	assert.Equal(t, domain.CategoryBook, f.Fields().Category)
	assert.Equal(t, "Dune", f.Fields().Name)
}

func TestCompleteToggleAndSubmit(t *testing.T) {
	f := NewMediaForm(0)
	f.ShowAdd(domain.CategoryAnime, "")

	// name -> category -> progress -> score -> complete
	for i := 0; i < 4; i++ {
		f, _, _ = press(t, f, tea.KeyMsg{Type: tea.KeyTab})
	}
	f, _, _ = press(t, f, runes(" "))
	assert.True(t, f.Fields().Complete)

	_, _, res := press(t, f, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, FormSubmitted, res)

	f, _, res = press(t, f, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FormCancelled, res)
	assert.False(t, f.IsVisible())
}
