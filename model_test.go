package main

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// seededModel returns a model over a memory store holding the given notes,
// newest first.
func seededModel(t *testing.T, notes ...Edit) (*model, *Store) {
	t.Helper()
	s, clock := newTestStore(t, newMemorySlot())
	ctx := context.Background()
	for i := len(notes) - 1; i >= 0; i-- {
		n, err := s.Create(ctx)
		require.NoError(t, err)
		_, err = s.Update(ctx, n.ID, notes[i])
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}
	m := newModel(ctx, s, newStyles(getDefaultConfig().Colors), discardLogger())
	m.now = clock.Now
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, s
}

func press(m *model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *model, s string) {
	for _, r := range s {
		press(m, runes(string(r)))
	}
}

func TestModel_EmptyState(t *testing.T) {
	m, _ := seededModel(t)
	view := m.View()
	assert.Contains(t, view, "No notes yet")
	assert.Contains(t, view, "Press n to create one")
	assert.Contains(t, view, "0 notes")
}

func TestModel_NewNoteFocusesContentAfterDelay(t *testing.T) {
	m, s := seededModel(t)

	cmd := press(m, runes("n"))
	require.NotNil(t, cmd)
	assert.Equal(t, editView, m.mode)
	assert.Equal(t, Editing, m.editor.Mode())
	assert.Equal(t, 1, s.Len())
	assert.False(t, m.form.focused)

	press(m, focusContentMsg{target: m.editor.Target()})
	assert.True(t, m.form.focused)
	assert.Equal(t, contentField, m.form.focus)

	typeText(m, "buy milk")
	press(m, keyOf(tea.KeyEsc))

	assert.Equal(t, browseView, m.mode)
	assert.Equal(t, "Saved", m.status)
	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, NewNoteTitle, all[0].Title)
	assert.Equal(t, "buy milk", all[0].Content)
}

func TestModel_StaleFocusIgnored(t *testing.T) {
	m, _ := seededModel(t)
	press(m, runes("n"))

	press(m, focusContentMsg{target: "someone-else"})
	assert.False(t, m.form.focused)
}

func TestModel_EditTitleAndTags(t *testing.T) {
	m, s := seededModel(t, Edit{Title: "Old", Content: "body", Tags: []string{"work"}})

	press(m, keyOf(tea.KeyEnter))
	require.Equal(t, editView, m.mode)
	press(m, focusContentMsg{target: m.editor.Target()})

	// content -> tags
	press(m, keyOf(tea.KeyTab))
	assert.Equal(t, tagsField, m.form.focus)
	typeText(m, ", ideas")

	// tags -> title
	press(m, keyOf(tea.KeyTab))
	assert.Equal(t, titleField, m.form.focus)
	press(m, keyOf(tea.KeyCtrlU))
	press(m, keyOf(tea.KeyEsc))

	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, UntitledTitle, all[0].Title)
	assert.Equal(t, []string{"work", "ideas"}, all[0].Tags)
	assert.Equal(t, "body", all[0].Content)
}

func TestModel_SearchFilters(t *testing.T) {
	m, _ := seededModel(t,
		Edit{Title: "Groceries", Content: "milk"},
		Edit{Title: "Standup", Content: "working on it"},
	)
	require.Len(t, m.visible, 2)

	press(m, runes("/"))
	assert.True(t, m.searching)
	typeText(m, "GROCER")
	require.Len(t, m.visible, 1)
	assert.Equal(t, "Groceries", m.visible[0].Title)
	assert.Contains(t, m.View(), "(1 shown)")

	press(m, keyOf(tea.KeyEnter))
	assert.False(t, m.searching)
	require.Len(t, m.visible, 1)

	press(m, runes("/"), runes("z"))
	assert.Empty(t, m.visible)
	assert.Contains(t, m.View(), "No notes match your search")

	press(m, keyOf(tea.KeyEsc))
	assert.Len(t, m.visible, 2)
}

func TestModel_TagSelectionIsAnded(t *testing.T) {
	m, _ := seededModel(t,
		Edit{Title: "N1", Tags: []string{"a", "b"}},
		Edit{Title: "N2", Tags: []string{"a"}},
	)
	require.Equal(t, []string{"a", "b"}, m.allTags)

	press(m, keyOf(tea.KeySpace))
	assert.Equal(t, []string{"a"}, m.selectedTags)
	assert.Len(t, m.visible, 2)

	press(m, runes("l"), keyOf(tea.KeySpace))
	assert.Equal(t, []string{"a", "b"}, m.selectedTags)
	require.Len(t, m.visible, 1)
	assert.Equal(t, "N1", m.visible[0].Title)

	press(m, keyOf(tea.KeySpace))
	assert.Equal(t, []string{"a"}, m.selectedTags)

	press(m, runes("x"))
	assert.Empty(t, m.selectedTags)
	assert.Len(t, m.visible, 2)
}

func TestModel_SelectedTagDroppedWhenLastUseDeleted(t *testing.T) {
	m, s := seededModel(t,
		Edit{Title: "only", Tags: []string{"solo"}},
		Edit{Title: "other"},
	)
	press(m, keyOf(tea.KeySpace))
	require.Equal(t, []string{"solo"}, m.selectedTags)

	press(m, runes("d"), runes("y"))
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, m.selectedTags)
	assert.Empty(t, m.allTags)
	assert.Len(t, m.visible, 1)
}

func TestModel_DeleteAsksFirst(t *testing.T) {
	m, s := seededModel(t, Edit{Title: "first"}, Edit{Title: "second"})

	press(m, runes("d"))
	require.NotEmpty(t, m.pendingDelete)
	assert.Contains(t, m.View(), DeletePrompt)

	press(m, runes("n"))
	assert.Empty(t, m.pendingDelete)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, browseView, m.mode, "declining must not open a new note")

	press(m, runes("d"), runes("y"))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "Deleted", m.status)
	assert.Equal(t, "second", s.All()[0].Title)
}

func TestModel_DeleteWhileEditing(t *testing.T) {
	m, s := seededModel(t, Edit{Title: "doomed"}, Edit{Title: "kept"})

	press(m, keyOf(tea.KeyEnter))
	require.Equal(t, editView, m.mode)

	press(m, keyOf(tea.KeyCtrlD))
	require.NotEmpty(t, m.pendingDelete)
	press(m, keyOf(tea.KeyEsc))
	assert.Equal(t, editView, m.mode)
	assert.Equal(t, 2, s.Len())

	press(m, keyOf(tea.KeyCtrlD), runes("y"))
	assert.Equal(t, browseView, m.mode)
	assert.Equal(t, Browsing, m.editor.Mode())
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "kept", s.All()[0].Title)
}

func TestModel_CursorWraps(t *testing.T) {
	m, _ := seededModel(t, Edit{Title: "a"}, Edit{Title: "b"}, Edit{Title: "c"})

	press(m, runes("k"))
	assert.Equal(t, 2, m.cursor)
	press(m, runes("j"))
	assert.Equal(t, 0, m.cursor)
	press(m, keyOf(tea.KeyDown))
	assert.Equal(t, 1, m.cursor)
}

func TestModel_HelpView(t *testing.T) {
	m, _ := seededModel(t)
	press(m, runes("?"))
	assert.Equal(t, helpView, m.mode)
	assert.Contains(t, m.View(), "EDITING VIEW")
	press(m, runes("q"))
	assert.Equal(t, browseView, m.mode)
}

func TestModel_QuitSavesDraft(t *testing.T) {
	m, s := seededModel(t)
	press(m, runes("n"))
	press(m, focusContentMsg{target: m.editor.Target()})
	typeText(m, "unsaved")

	cmd := press(m, keyOf(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
	assert.Equal(t, "unsaved", s.All()[0].Content)
	assert.Empty(t, m.View())
}

func TestModel_ListShowsAgeAndTags(t *testing.T) {
	m, _ := seededModel(t, Edit{Title: "Groceries", Content: "milk and eggs", Tags: []string{"home"}})
	view := m.View()
	assert.Contains(t, view, "Groceries")
	assert.Contains(t, view, "milk and eggs")
	assert.Contains(t, view, "#home")
	assert.Contains(t, view, "Today")
	assert.True(t, strings.Contains(view, "1 note") && !strings.Contains(view, "1 notes"))
}
