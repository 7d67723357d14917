package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank fragments", "work, , personal ,  ", []string{"work", "personal"}},
		{"only commas", " , ,, ", []string{}},
		{"duplicates keep first", "b, a, b", []string{"b", "a"}},
		{"case sensitive", "Work, work", []string{"Work", "work"}},
		{"inner spaces kept", "to do, later", []string{"to do", "later"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.in))
		})
	}
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "", JoinTags(nil))
	assert.Equal(t, "work, personal", JoinTags([]string{"work", "personal"}))
	assert.Equal(t, []string{"work", "personal"}, ParseTags(JoinTags([]string{"work", "personal"})))
}

func TestNote_Timestamps(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	n := Note{CreatedAt: created.UnixMilli(), UpdatedAt: created.Add(time.Hour).UnixMilli()}

	assert.True(t, n.Created().Equal(created))
	assert.True(t, n.Updated().Equal(created.Add(time.Hour)))
}

func TestNote_HasTag(t *testing.T) {
	n := Note{Tags: []string{"work", "ideas"}}
	assert.True(t, n.HasTag("work"))
	assert.False(t, n.HasTag("wor"))
	assert.False(t, n.HasTag("Work"))
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, UntitledTitle, normalizeTitle(""))
	assert.Equal(t, UntitledTitle, normalizeTitle(" \t\n"))
	assert.Equal(t, "  Plan ", normalizeTitle("  Plan "))
}
