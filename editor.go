package main

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DeletePrompt is the question put to the Confirmer before a note is deleted.
const DeletePrompt = "Delete this note?"

// FocusDelay is how long the editing view waits before focusing the content input.
const FocusDelay = 100 * time.Millisecond

// ErrAlreadyEditing is returned when a note is opened while another draft is active.
var ErrAlreadyEditing = errors.New("already editing a note")

// Mode is the state of the Editor.
type Mode int

const (
	Browsing Mode = iota
	Editing
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "browsing"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Confirmer answers yes/no questions on behalf of the user.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Draft holds the unsaved fields of the note being edited.
// Tags is the comma separated form shown to the user.
type Draft struct {
	Title   string
	Content string
	Tags    string
}

// Editor moves between browsing and editing, holding a draft until it is
// saved back to the store or the note is deleted.
type Editor struct {
	store   *Store
	confirm Confirmer
	logger  *slog.Logger

	mode   Mode
	target string
	draft  Draft
}

// NewEditor returns an Editor in the Browsing state.
func NewEditor(store *Store, confirm Confirmer, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{store: store, confirm: confirm, logger: logger}
}

// Mode returns the current state.
func (e *Editor) Mode() Mode { return e.mode }

// Target returns the id of the note being edited, or "" while browsing.
func (e *Editor) Target() string { return e.target }

// Draft returns the current draft. It is zero while browsing.
func (e *Editor) Draft() Draft { return e.draft }

// SetDraft replaces the draft. Ignored while browsing.
func (e *Editor) SetDraft(d Draft) {
	if e.mode != Editing {
		return
	}
	e.draft = d
}

// CreateNote adds a new note to the store and starts editing it.
func (e *Editor) CreateNote(ctx context.Context) (Note, error) {
	if e.mode == Editing {
		return Note{}, ErrAlreadyEditing
	}
	n, err := e.store.Create(ctx)
	if err != nil {
		return Note{}, err
	}
	e.open(n)
	return n, nil
}

// Edit starts editing the note with the given id.
func (e *Editor) Edit(id string) error {
	if e.mode == Editing {
		return ErrAlreadyEditing
	}
	n, ok := e.store.Get(id)
	if !ok {
		return ErrNoteNotFound
	}
	e.open(n)
	return nil
}

func (e *Editor) open(n Note) {
	e.target = n.ID
	e.draft = Draft{Title: n.Title, Content: n.Content, Tags: JoinTags(n.Tags)}
	e.mode = Editing
	e.logger.Debug("editing note", "id", n.ID)
}

// Save commits the draft to the target note and returns to browsing.
// Without a target it does nothing.
func (e *Editor) Save(ctx context.Context) error {
	if e.mode != Editing || e.target == "" {
		return nil
	}
	_, err := e.store.Update(ctx, e.target, Edit{
		Title:   normalizeTitle(e.draft.Title),
		Content: e.draft.Content,
		Tags:    ParseTags(e.draft.Tags),
	})
	if err != nil {
		return err
	}
	e.close()
	return nil
}

// Delete removes the note with the given id once the Confirmer agrees.
// It reports whether the note was deleted. Deleting the note being edited
// discards the draft and returns to browsing.
func (e *Editor) Delete(ctx context.Context, id string) (bool, error) {
	if e.confirm == nil || !e.confirm.Confirm(DeletePrompt) {
		return false, nil
	}
	if err := e.store.Delete(ctx, id); err != nil {
		return false, err
	}
	if id == e.target {
		e.close()
	}
	return true, nil
}

func (e *Editor) close() {
	e.mode = Browsing
	e.target = ""
	e.draft = Draft{}
}
