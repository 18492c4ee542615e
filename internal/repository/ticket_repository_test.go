package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/albedo-hq/support-portal/internal/domain"
)

func TestBuildFilterClauseEmpty(t *testing.T) {
	where, args := BuildFilterClause(TicketFilter{})
	assert.Equal(t, "1=1", where)
	assert.Empty(t, args)
}

func TestBuildFilterClauseAllFields(t *testing.T) {
	status := domain.TicketStatusOpen
	priority := domain.TicketPriorityHigh
	categoryID := "cat-1"
	search := "  Invoice  "

	where, args := BuildFilterClause(TicketFilter{
		Status:     &status,
		Priority:   &priority,
		CategoryID: &categoryID,
		SearchTerm: &search,
	})

	assert.Equal(t, "1=1 AND status=$1 AND priority=$2 AND category_id=$3 AND "+
		"(LOWER(subject) LIKE $4 OR LOWER(message) LIKE $4 OR LOWER(email) LIKE $4)", where)
	assert.Equal(t, []any{status, priority, categoryID, "%invoice%"}, args)
}

func TestBuildFilterClauseBlankSearchIgnored(t *testing.T) {
	search := "   "
	where, args := BuildFilterClause(TicketFilter{SearchTerm: &search})
	assert.Equal(t, "1=1", where)
	assert.Empty(t, args)
}

func TestOrderClauseWhitelistsColumns(t *testing.T) {
	cases := []struct {
		sortBy, sortOrder, want string
	}{
		{"createdAt", "", "ORDER BY created_at DESC"},
		{"updatedAt", "asc", "ORDER BY updated_at ASC"},
		{"priority", "ASC", "ORDER BY priority ASC"},
		{"subject", "desc", "ORDER BY subject DESC"},
		{"", "", "ORDER BY created_at DESC"},
		// Anything outside the whitelist falls back to created_at; this is
		// what keeps user input out of the SQL.
		{"email; DROP TABLE tickets", "asc", "ORDER BY created_at ASC"},
	}
	for _, tc := range cases {
		got := OrderClause(TicketFilter{SortBy: tc.sortBy, SortOrder: tc.sortOrder})
		assert.Equal(t, tc.want, got, "sortBy=%q sortOrder=%q", tc.sortBy, tc.sortOrder)
	}
}
