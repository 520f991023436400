package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortToggle(t *testing.T) {
	s := DefaultAuditSort()
	assert.Equal(t, SortCreatedAt, s.Column)
	assert.True(t, s.Desc)

	// same column flips direction
	s.Toggle(SortCreatedAt)
	assert.Equal(t, SortCreatedAt, s.Column)
	assert.False(t, s.Desc)
	s.Toggle(SortCreatedAt)
	assert.True(t, s.Desc)

	// new column resets to ascending
	s.Toggle(SortVerb)
	assert.Equal(t, SortVerb, s.Column)
	assert.False(t, s.Desc)

	// unknown column is ignored
	s.Toggle("metadata")
	assert.Equal(t, SortVerb, s.Column)
	assert.False(t, s.Desc)
}

func TestSortNormalize(t *testing.T) {
	s := AuditSort{Column: "id; DROP TABLE audit_events"}
	s.Normalize()
	assert.Equal(t, SortCreatedAt, s.Column)

	s = AuditSort{Column: SortDescription, Desc: true}
	s.Normalize()
	assert.Equal(t, SortDescription, s.Column)
	assert.Equal(t, "DESC", s.Direction())
}
