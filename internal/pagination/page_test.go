package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequestClamps(t *testing.T) {
	cases := []struct {
		name               string
		page, size         int
		wantPage, wantSize int
	}{
		{"defaults", 0, 0, 1, DefaultSize},
		{"negative page", -3, 10, 1, 10},
		{"size capped", 2, 500, 2, MaxSize},
		{"passthrough", 4, 25, 4, 25},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPageRequest(c.page, c.size)
			assert.Equal(t, c.wantPage, p.Page)
			assert.Equal(t, c.wantSize, p.Size)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, NewPageRequest(1, 25).Offset())
	assert.Equal(t, 75, NewPageRequest(4, 25).Offset())
}

func TestNewResultPages(t *testing.T) {
	r := NewResult(nil, 51, NewPageRequest(1, 25))
	assert.Equal(t, 3, r.TotalPages)

	empty := NewResult(nil, 0, NewPageRequest(9, 25))
	assert.Equal(t, 0, empty.TotalPages)
	assert.EqualValues(t, 0, empty.Total)
}
