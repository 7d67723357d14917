package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//go:embed VERSION
var versionFile string

func getVersion() string {
	return strings.TrimSpace(versionFile)
}

type viewMode int

const (
	browseView viewMode = iota
	editView
	helpView
)

// lines per note in the list: title, two preview lines, tags/date, gap
const itemHeight = 5

type focusContentMsg struct {
	target string
}

// promptConfirmer hands the answer of the on-screen delete prompt to the Editor.
type promptConfirmer struct {
	answer bool
}

func (p *promptConfirmer) Confirm(string) bool {
	answer := p.answer
	p.answer = false
	return answer
}

type model struct {
	ctx     context.Context
	store   *Store
	editor  *Editor
	confirm *promptConfirmer
	logger  *slog.Logger
	styles  styles
	keys    keyMap
	help    help.Model
	now     func() time.Time

	mode         viewMode
	previousMode viewMode
	width        int
	height       int
	quitting     bool

	// list state
	search       textinput.Model
	searching    bool
	selectedTags []string
	allTags      []string
	tagCursor    int
	visible      []Note
	cursor       int
	offset       int

	form          draftForm
	pendingDelete string
	status        string
	err           error
}

func newModel(ctx context.Context, store *Store, st styles, logger *slog.Logger) *model {
	if logger == nil {
		logger = slog.Default()
	}
	search := textinput.New()
	search.Placeholder = "Search notes..."
	search.Prompt = "/ "

	confirm := &promptConfirmer{}
	m := &model{
		ctx:     ctx,
		store:   store,
		editor:  NewEditor(store, confirm, logger),
		confirm: confirm,
		logger:  logger,
		styles:  st,
		keys:    defaultKeyMap(),
		help:    help.New(),
		now:     time.Now,
		mode:    browseView,
		search:  search,
		form:    newDraftForm(),
		width:   80,
		height:  24,
	}
	m.refresh()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

// query is the current filter built from the search box and the selected tags.
func (m *model) query() Query {
	return Query{Text: m.search.Value(), Tags: m.selectedTags}
}

// refresh recomputes the tag bar and the visible notes from the store.
func (m *model) refresh() {
	notes := m.store.All()
	m.allTags = AllTags(notes)
	m.selectedTags = PruneTags(m.selectedTags, m.allTags)
	m.visible = Filter(notes, m.query())

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.tagCursor >= len(m.allTags) {
		m.tagCursor = max(len(m.allTags)-1, 0)
	}
	m.scroll()
}

func (m *model) listHeight() int {
	// title, search, tag bar, status and the list border
	return max(m.height-6, itemHeight)
}

func (m *model) scroll() {
	per := max(m.listHeight()/itemHeight, 1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+per {
		m.offset = m.cursor - per + 1
	}
}

func (m *model) selected() (Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return Note{}, false
	}
	return m.visible[m.cursor], true
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-4, 10)
		m.form.setSize(msg.Width, msg.Height-2)
		m.scroll()
		return m, nil
	case focusContentMsg:
		if m.mode == editView && msg.target == m.editor.Target() && !m.form.focused {
			return m, m.form.focusField(contentField)
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		if m.pendingDelete != "" {
			return m.updateDeletePrompt(msg)
		}
		m.status = ""
		m.err = nil
		switch m.mode {
		case browseView:
			return m.updateBrowseView(msg)
		case editView:
			return m.updateEditView(msg)
		case helpView:
			return m.updateHelpView(msg)
		}
	}

	// cursor blink and other input internals
	switch {
	case m.mode == editView:
		return m, m.form.update(msg)
	case m.searching:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	if m.editor.Mode() == Editing {
		m.editor.SetDraft(m.form.draft())
		if err := m.editor.Save(m.ctx); err != nil {
			m.logger.Error("could not save draft on quit", "id", m.editor.Target(), "error", err)
		}
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *model) updateBrowseView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch {
		case key.Matches(msg, m.keys.SearchDone):
			m.searching = false
			m.search.Blur()
			return m, nil
		case key.Matches(msg, m.keys.SearchCancel):
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.cursor = 0
		m.refresh()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		if len(m.visible) > 0 {
			if m.cursor > 0 {
				m.cursor--
			} else {
				m.cursor = len(m.visible) - 1
			}
			m.scroll()
		}
	case key.Matches(msg, m.keys.Down):
		if len(m.visible) > 0 {
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			} else {
				m.cursor = 0
			}
			m.scroll()
		}
	case key.Matches(msg, m.keys.TagLeft):
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case key.Matches(msg, m.keys.TagRight):
		if m.tagCursor < len(m.allTags)-1 {
			m.tagCursor++
		}
	case key.Matches(msg, m.keys.ToggleTag):
		if len(m.allTags) > 0 {
			m.selectedTags = ToggleTag(m.selectedTags, m.allTags[m.tagCursor])
			m.cursor = 0
			m.refresh()
		}
	case key.Matches(msg, m.keys.ClearFilters):
		m.search.SetValue("")
		m.selectedTags = nil
		m.refresh()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Open):
		if n, ok := m.selected(); ok {
			if err := m.editor.Edit(n.ID); err != nil {
				m.err = err
				return m, nil
			}
			return m, m.enterEditView()
		}
	case key.Matches(msg, m.keys.New):
		if _, err := m.editor.CreateNote(m.ctx); err != nil {
			m.err = err
			m.logger.Error("could not create note", "error", err)
			return m, nil
		}
		m.refresh()
		return m, m.enterEditView()
	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.selected(); ok {
			m.pendingDelete = n.ID
		}
	case key.Matches(msg, m.keys.Copy):
		if n, ok := m.selected(); ok {
			if err := clipboard.WriteAll(n.Content); err != nil {
				m.err = fmt.Errorf("copy to clipboard: %w", err)
			} else {
				m.status = "Copied \"" + n.Title + "\""
			}
		}
	case key.Matches(msg, m.keys.Help):
		m.previousMode = m.mode
		m.mode = helpView
	}
	return m, nil
}

// enterEditView shows the draft of the note the Editor just opened and
// focuses the content after FocusDelay.
func (m *model) enterEditView() tea.Cmd {
	m.err = nil
	m.mode = editView
	m.form.load(m.editor.Draft())
	target := m.editor.Target()
	return tea.Tick(FocusDelay, func(time.Time) tea.Msg {
		return focusContentMsg{target: target}
	})
}

func (m *model) leaveEditView() {
	m.form.blur()
	m.mode = browseView
	m.refresh()
}

func (m *model) updateEditView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Done):
		m.editor.SetDraft(m.form.draft())
		if err := m.editor.Save(m.ctx); err != nil {
			m.err = err
			m.logger.Error("could not save note", "id", m.editor.Target(), "error", err)
			return m, nil
		}
		m.err = nil
		m.status = "Saved"
		m.leaveEditView()
		return m, nil
	case key.Matches(msg, m.keys.DeleteNote):
		m.editor.SetDraft(m.form.draft())
		m.pendingDelete = m.editor.Target()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.next()
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.prev()
	}
	return m, m.form.update(msg)
}

func (m *model) updateDeletePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer bool
	switch {
	case key.Matches(msg, m.keys.Yes):
		answer = true
	case key.Matches(msg, m.keys.No):
	default:
		return m, nil
	}

	id := m.pendingDelete
	m.pendingDelete = ""
	m.confirm.answer = answer
	deleted, err := m.editor.Delete(m.ctx, id)
	if err != nil {
		m.err = err
		m.logger.Error("could not delete note", "id", id, "error", err)
		return m, nil
	}
	if !deleted {
		return m, nil
	}
	m.err = nil
	m.status = "Deleted"
	if m.mode == editView && m.editor.Mode() == Browsing {
		m.leaveEditView()
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m *model) updateHelpView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = m.previousMode
	}
	return m, nil
}

func (m *model) titleView() string {
	title := "Quicknotes v" + getVersion()
	switch m.mode {
	case editView:
		title += " - Editing"
	case helpView:
		title += " - Help"
	default:
		title += " - " + CountLabel(m.store.Len())
		if !m.query().Empty() {
			title += fmt.Sprintf(" (%d shown)", len(m.visible))
		}
	}
	return m.styles.title.Width(m.width).Render(title)
}

func (m *model) tagBarView() string {
	if len(m.allTags) == 0 {
		return m.styles.tagBar.Width(m.width).Render("No tags")
	}

	var parts []string
	used := 0
	for i, tag := range m.allTags {
		style := m.styles.tag
		if slices.Contains(m.selectedTags, tag) {
			style = m.styles.tagActive
		}
		if i == m.tagCursor {
			style = style.Inherit(m.styles.tagCursor)
		}
		chip := style.Render("#" + tag)
		w := lipgloss.Width(chip) + 1
		if used+w > m.width-12 && i > m.tagCursor {
			parts = append(parts, fmt.Sprintf("... %d more", len(m.allTags)-i))
			break
		}
		parts = append(parts, chip)
		used += w
	}
	return m.styles.tagBar.Width(m.width).Render(strings.Join(parts, " "))
}

func (m *model) listView() string {
	inner := max(m.width-4, 10)
	if len(m.visible) == 0 {
		msg := "\n  No notes match your search"
		if m.store.Len() == 0 {
			msg = "\n  No notes yet\n  Press n to create one"
		}
		return m.styles.border.Width(inner).Height(m.listHeight()).Render(m.styles.dim.Render(msg))
	}

	now := m.now()
	per := max(m.listHeight()/itemHeight, 1)
	end := min(m.offset+per, len(m.visible))

	var s strings.Builder
	for i := m.offset; i < end; i++ {
		n := m.visible[i]
		prefix := "  "
		title := n.Title
		if i == m.cursor {
			prefix = "> "
			title = m.styles.selected.Render(title)
		}
		s.WriteString(prefix + title + "\n")

		preview := strings.Split(Preview(n.Content, inner-4, 2), "\n")
		for len(preview) < 2 {
			preview = append(preview, "")
		}
		for _, line := range preview {
			s.WriteString("  " + m.styles.dim.Render(line) + "\n")
		}

		var tags []string
		for _, tag := range n.Tags {
			tags = append(tags, "#"+tag)
		}
		left := "  " + strings.Join(tags, " ")
		right := FormatAge(n.Updated(), now)
		gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right)-1, 1)
		s.WriteString(m.styles.dim.Render(left+strings.Repeat(" ", gap)+right) + "\n")
		if i < end-1 {
			s.WriteString("\n")
		}
	}
	return m.styles.border.Width(inner).Height(m.listHeight()).Render(s.String())
}

func (m *model) helpBodyView() string {
	var s strings.Builder
	s.WriteString("Quicknotes v" + getVersion() + " - Help\n\n")
	s.WriteString("LIST VIEW\n")
	s.WriteString("  ↑/↓, k/j     Move between notes (wraps)\n")
	s.WriteString("  enter        Open note\n")
	s.WriteString("  n            Create new note\n")
	s.WriteString("  d            Delete note (asks first)\n")
	s.WriteString("  /            Search title, content and tags\n")
	s.WriteString("  ←/→, h/l     Move along the tag bar\n")
	s.WriteString("  space        Toggle tag filter (all selected tags must match)\n")
	s.WriteString("  x            Clear search and tag filters\n")
	s.WriteString("  y            Copy note content to clipboard\n")
	s.WriteString("  ?            Show this help\n")
	s.WriteString("  q            Quit\n\n")
	s.WriteString("EDITING VIEW\n")
	s.WriteString("  esc          Done (save and close)\n")
	s.WriteString("  tab          Next field (title, content, tags)\n")
	s.WriteString("  shift+tab    Previous field\n")
	s.WriteString("  ctrl+d       Delete note (asks first)\n")
	return m.styles.border.Width(max(m.width-4, 10)).Render(s.String())
}

func (m *model) deletePromptView() string {
	title := m.pendingDelete
	if n, ok := m.store.Get(m.pendingDelete); ok {
		title = n.Title
	}
	var content strings.Builder
	content.WriteString(m.styles.label.Render(DeletePrompt) + "\n\n")
	content.WriteString(title + "\n\n")
	content.WriteString(m.styles.dim.Render("y: delete | n/esc: keep"))
	popup := m.styles.border.Padding(1, 2).Render(content.String())
	return lipgloss.Place(m.width, max(m.height-2, 1), lipgloss.Center, lipgloss.Center, popup)
}

func (m *model) statusView() string {
	var status string
	switch {
	case m.err != nil:
		status = m.styles.err.Render("Error: " + m.err.Error())
	case m.status != "":
		status = m.status
	case m.pendingDelete != "":
		status = m.help.ShortHelpView(m.keys.promptHelp())
	case m.mode == editView:
		status = m.help.ShortHelpView(m.keys.editHelp())
	case m.mode == helpView:
		status = "esc/q/?: close help"
	case m.searching:
		status = m.help.ShortHelpView(m.keys.searchHelp())
	default:
		status = m.help.ShortHelpView(m.keys.browseHelp())
	}
	return m.styles.status.Width(m.width).Render(status)
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case m.pendingDelete != "":
		body = m.deletePromptView()
	case m.mode == editView:
		body = m.form.view(m.styles, m.width)
	case m.mode == helpView:
		body = m.helpBodyView()
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, m.search.View(), m.tagBarView(), m.listView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.titleView(), body, m.statusView())
}

func main() {
	Execute()
}
