package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// list view
	Up           key.Binding
	Down         key.Binding
	TagLeft      key.Binding
	TagRight     key.Binding
	ToggleTag    key.Binding
	ClearFilters key.Binding
	Open         key.Binding
	New          key.Binding
	Delete       key.Binding
	Copy         key.Binding
	Search       key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding

	// search box
	SearchDone   key.Binding
	SearchCancel key.Binding

	// editor view
	Done       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	DeleteNote key.Binding

	// delete prompt
	Yes key.Binding
	No  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		TagLeft:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tag")),
		TagRight:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tag")),
		ToggleTag:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle tag")),
		ClearFilters: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		New:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Copy:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),

		SearchDone:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		SearchCancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),

		Done:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		DeleteNote: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),

		Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "delete")),
		No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "keep")),
	}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.New, k.Delete, k.Search, k.TagRight, k.ToggleTag, k.ClearFilters, k.Copy, k.Help, k.Quit}
}

func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{k.SearchDone, k.SearchCancel}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.Done, k.NextField, k.PrevField, k.DeleteNote}
}

func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}
