package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type editField int

const (
	titleField editField = iota
	contentField
	tagsField
	numFields
)

// draftForm is the editing view: a title line, the content body and the tag line.
type draftForm struct {
	title   textinput.Model
	content textarea.Model
	tags    textinput.Model
	focus   editField
	focused bool
}

func newDraftForm() draftForm {
	title := textinput.New()
	title.Placeholder = "Note title"
	title.Prompt = ""
	title.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "Start typing..."
	content.ShowLineNumbers = false
	content.Prompt = ""
	content.CharLimit = 0
	content.MaxHeight = 0

	tags := textinput.New()
	tags.Placeholder = "work, personal, ideas"
	tags.Prompt = ""

	return draftForm{title: title, content: content, tags: tags, focus: contentField}
}

// load fills the form from d with every input blurred.
func (f *draftForm) load(d Draft) {
	f.title.SetValue(d.Title)
	f.content.SetValue(d.Content)
	f.tags.SetValue(d.Tags)
	f.blur()
	f.focus = contentField
}

func (f draftForm) draft() Draft {
	return Draft{
		Title:   f.title.Value(),
		Content: f.content.Value(),
		Tags:    f.tags.Value(),
	}
}

func (f *draftForm) blur() {
	f.title.Blur()
	f.content.Blur()
	f.tags.Blur()
	f.focused = false
}

func (f *draftForm) focusField(field editField) tea.Cmd {
	f.blur()
	f.focus = field
	f.focused = true
	switch field {
	case titleField:
		return f.title.Focus()
	case tagsField:
		return f.tags.Focus()
	default:
		return f.content.Focus()
	}
}

func (f *draftForm) next() tea.Cmd {
	return f.focusField((f.focus + 1) % numFields)
}

func (f *draftForm) prev() tea.Cmd {
	return f.focusField((f.focus + numFields - 1) % numFields)
}

func (f *draftForm) setSize(width, height int) {
	f.title.Width = max(width-2, 10)
	f.tags.Width = max(width-2, 10)
	f.content.SetWidth(max(width, 10))
	// title, tags label, tags input and separators
	f.content.SetHeight(max(height-5, 3))
}

// update forwards msg to the focused input only.
func (f *draftForm) update(msg tea.Msg) tea.Cmd {
	if !f.focused {
		return nil
	}
	var cmd tea.Cmd
	switch f.focus {
	case titleField:
		f.title, cmd = f.title.Update(msg)
	case tagsField:
		f.tags, cmd = f.tags.Update(msg)
	default:
		f.content, cmd = f.content.Update(msg)
	}
	return cmd
}

func (f draftForm) view(st styles, width int) string {
	var s strings.Builder
	s.WriteString(st.label.Render(f.title.View()) + "\n")
	s.WriteString(st.dim.Render(strings.Repeat("─", max(width, 1))) + "\n")
	s.WriteString(f.content.View() + "\n")
	s.WriteString(st.dim.Render("Tags (comma separated)") + "\n")
	s.WriteString(f.tags.View())
	return s.String()
}
