package main

import (
	"slices"
	"sort"
	"strings"
)

// Query selects the visible notes: Text is matched case-insensitively against
// title, content and tags; every tag in Tags must be present on the note.
type Query struct {
	Text string
	Tags []string
}

// Empty reports whether the query matches every note.
func (q Query) Empty() bool {
	return q.Text == "" && len(q.Tags) == 0
}

// AllTags returns the distinct tags of all notes, sorted.
func AllTags(notes []Note) []string {
	set := make(map[string]bool)
	for _, n := range notes {
		for _, tag := range n.Tags {
			set[tag] = true
		}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Filter returns the notes matching q, in their original order.
func Filter(notes []Note, q Query) []Note {
	text := strings.ToLower(q.Text)
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if matchesText(n, text) && matchesTags(n, q.Tags) {
			out = append(out, n)
		}
	}
	return out
}

// matchesText expects text to be lower-cased already.
func matchesText(n Note, text string) bool {
	if text == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), text) ||
		strings.Contains(strings.ToLower(n.Content), text) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), text) {
			return true
		}
	}
	return false
}

func matchesTags(n Note, selected []string) bool {
	for _, tag := range selected {
		if !n.HasTag(tag) {
			return false
		}
	}
	return true
}

// ToggleTag adds tag to selected, or removes it if it is already there.
func ToggleTag(selected []string, tag string) []string {
	if i := slices.Index(selected, tag); i >= 0 {
		return slices.Delete(slices.Clone(selected), i, i+1)
	}
	return append(slices.Clone(selected), tag)
}

// PruneTags drops selected tags that no note carries any more.
func PruneTags(selected, available []string) []string {
	out := make([]string, 0, len(selected))
	for _, tag := range selected {
		if slices.Contains(available, tag) {
			out = append(out, tag)
		}
	}
	return out
}
