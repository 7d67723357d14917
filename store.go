package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultStoreKey is the slot key holding the serialized collection.
const DefaultStoreKey = "notes"

const maxIDAttempts = 8

// ErrNoteNotFound is returned when an operation names an id that is not in the collection.
var ErrNoteNotFound = errors.New("note not found")

// Edit carries the fields a save writes onto a note.
type Edit struct {
	Title   string
	Content string
	Tags    []string
}

// Store owns the note collection and mirrors it to a Slot after every mutation.
type Store struct {
	slot   Slot
	codec  Codec
	key    string
	now    func() time.Time
	newID  func() string
	logger *slog.Logger

	notes []Note
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey sets the slot key. Defaults to "notes".
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithCodec sets the serialization format. Defaults to JSON.
func WithCodec(c Codec) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides the UUID id generator.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty store backed by slot. Call Load to read persisted notes.
func NewStore(slot Slot, opts ...StoreOption) *Store {
	s := &Store{
		slot:  slot,
		codec: jsonCodec{},
		key:   DefaultStoreKey,
		now:   time.Now,
		newID: uuid.NewString,
		notes: []Note{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Load replaces the in-memory collection with the persisted one.
// A missing, unreadable or malformed slot leaves the collection empty. Malformed
// payloads, and payloads with entries that had to be dropped, are copied to
// "<key>.corrupt" before anything can overwrite them.
func (s *Store) Load(ctx context.Context) error {
	s.notes = []Note{}

	raw, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrSlotEmpty) {
		s.logger.Debug("no persisted notes", "key", s.key)
		return nil
	}
	if err != nil {
		s.logger.Warn("could not read persisted notes, starting empty", "key", s.key, "error", err)
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	notes, err := s.codec.Unmarshal(raw)
	if err != nil {
		s.logger.Warn("persisted notes are malformed, starting empty",
			"key", s.key, "format", s.codec.Name(), "error", err)
		s.backup(ctx, raw)
		return nil
	}

	seen := make(map[string]bool, len(notes))
	dropped := 0
	for _, n := range notes {
		if n.ID == "" || seen[n.ID] {
			s.logger.Warn("dropping note with missing or duplicate id", "id", n.ID, "title", n.Title)
			dropped++
			continue
		}
		seen[n.ID] = true
		if n.UpdatedAt < n.CreatedAt {
			n.UpdatedAt = n.CreatedAt
		}
		s.notes = append(s.notes, n.clone())
	}
	if dropped > 0 {
		s.backup(ctx, raw)
	}
	s.logger.Debug("loaded notes", "key", s.key, "count", len(s.notes))
	return nil
}

// backup copies a payload that Load could not take over whole to "<key>.corrupt".
// A failed backup is logged; loading carries on.
func (s *Store) backup(ctx context.Context, raw []byte) {
	key := s.key + ".corrupt"
	if err := s.slot.Set(ctx, key, raw); err != nil {
		s.logger.Error("could not back up persisted notes", "key", key, "error", err)
		return
	}
	s.logger.Warn("kept a copy of the persisted notes", "backup", key)
}

// All returns a copy of the collection in display order.
func (s *Store) All() []Note {
	out := make([]Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.clone()
	}
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int {
	return len(s.notes)
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (Note, bool) {
	i := s.index(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i].clone(), true
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

// Create prepends a new, empty note and persists the collection.
func (s *Store) Create(ctx context.Context) (Note, error) {
	id, err := s.freshID()
	if err != nil {
		return Note{}, err
	}
	now := s.now().UnixMilli()
	n := Note{
		ID:        id,
		Title:     NewNoteTitle,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	prev := s.notes
	s.notes = append([]Note{n}, s.notes...)
	if err := s.Persist(ctx); err != nil {
		s.notes = prev
		return Note{}, err
	}
	s.logger.Debug("created note", "id", id)
	return n.clone(), nil
}

func (s *Store) freshID() (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("could not allocate a unique note id")
}

// Update writes e onto the note with the given id, refreshes its updatedAt
// and persists the collection. Other notes are untouched.
func (s *Store) Update(ctx context.Context, id string, e Edit) (Note, error) {
	i := s.index(id)
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}

	old := s.notes[i]
	n := old
	n.Title = e.Title
	n.Content = e.Content
	n.Tags = slices.Clone(e.Tags)
	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.UpdatedAt = max(s.now().UnixMilli(), n.CreatedAt)

	s.notes[i] = n
	if err := s.Persist(ctx); err != nil {
		s.notes[i] = old
		return Note{}, err
	}
	s.logger.Debug("updated note", "id", id)
	return n.clone(), nil
}

// Delete removes the note with the given id and persists the collection.
func (s *Store) Delete(ctx context.Context, id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}

	prev := s.notes
	s.notes = slices.Concat(s.notes[:i], s.notes[i+1:])
	if err := s.Persist(ctx); err != nil {
		s.notes = prev
		return err
	}
	s.logger.Debug("deleted note", "id", id)
	return nil
}

// Persist writes the whole collection to the slot, including an empty one.
func (s *Store) Persist(ctx context.Context) error {
	data, err := s.codec.Marshal(s.notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := s.slot.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist notes: %w", err)
	}
	return nil
}
