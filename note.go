package main

import (
	"slices"
	"strings"
	"time"
)

const (
	// NewNoteTitle is the title a freshly created note starts with.
	NewNoteTitle = "New Note"
	// UntitledTitle replaces a blank title when a draft is saved.
	UntitledTitle = "Untitled"
)

// Note is the only persisted entity. Timestamps are Unix milliseconds.
type Note struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Content   string   `json:"content" yaml:"content"`
	Tags      []string `json:"tags" yaml:"tags"`
	CreatedAt int64    `json:"createdAt" yaml:"createdAt"`
	UpdatedAt int64    `json:"updatedAt" yaml:"updatedAt"`
}

// Created returns the creation instant.
func (n Note) Created() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

// Updated returns the instant of the last committed edit.
func (n Note) Updated() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

// HasTag reports whether tag is one of the note's tags (exact match).
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

func (n Note) clone() Note {
	n.Tags = slices.Clone(n.Tags)
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return n
}

// ParseTags turns a comma separated draft string into a tag list.
// Fragments are trimmed, empty ones are dropped and repeats keep their first position.
func ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || slices.Contains(tags, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// JoinTags is the draft representation of a tag list.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// normalizeTitle applies the blank title fallback used on save.
// The title is stored as typed; trimming only decides whether it is blank.
func normalizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return UntitledTitle
	}
	return title
}
