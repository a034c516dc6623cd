// Copyright (c) 2026 Libris. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anhtran/libris/pkg/slug"
)

/*
TestFrom covers the slug pipeline: lowercasing, accent folding, punctuation
replacement, and hyphen cleanup.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Pride and Prejudice", "pride-and-prejudice"},
		{"apostrophe", "Harry Potter and the Philosopher's Stone", "harry-potter-and-the-philosopher-s-stone"},
		{"accents", "Les Misérables", "les-miserables"},
		{"numbers", "1984", "1984"},
		{"extra_whitespace", "  A   Christmas  Carol  ", "a-christmas-carol"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
