package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAge(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now, "Today"},
		{"earlier today", now.Add(-23 * time.Hour), "Today"},
		{"future", now.Add(48 * time.Hour), "Today"},
		{"one day", now.Add(-24 * time.Hour), "Yesterday"},
		{"almost two days", now.Add(-47 * time.Hour), "Yesterday"},
		{"three days", now.Add(-3 * day), "3 days ago"},
		{"six days", now.Add(-6 * day), "6 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAge(tt.t, now))
		})
	}

	old := now.Add(-10 * day)
	assert.Equal(t, old.Local().Format("Jan 2, 2006"), FormatAge(old, now))
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
		lines   int
		want    string
	}{
		{"empty", "", 20, 2, ""},
		{"whitespace only", " \n\t ", 20, 2, ""},
		{"collapses whitespace", "hello   world\n\nagain", 40, 2, "hello world again"},
		{"wraps", "aaa bbb ccc", 7, 2, "aaa bbb\nccc"},
		{"clamps with ellipsis", "aaa bbb ccc ddd", 7, 1, "aaa bb…"},
		{"long word truncated", "abcdefghij", 5, 3, "abcd…"},
		{"zero lines", "text", 10, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(tt.content, tt.width, tt.lines))
		})
	}
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "0 notes", CountLabel(0))
	assert.Equal(t, "1 note", CountLabel(1))
	assert.Equal(t, "42 notes", CountLabel(42))
}
