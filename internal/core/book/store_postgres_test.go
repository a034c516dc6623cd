package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestOrderClause verifies every sort key maps to a deterministic ORDER BY
body with the id tie-break.
*/
func TestOrderClause(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want string
	}{
		{"title", SortTitle, "b.title ASC, b.id ASC"},
		{"author", SortAuthor, "a.name ASC, b.id ASC"},
		{"year", SortYear, "b.publication_year ASC, b.id ASC"},
		{"unknown_falls_back_to_title", "anything", "b.title ASC, b.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderClause(tt.sort))
		})
	}
}
