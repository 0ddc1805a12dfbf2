package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Params{Page: 0, PerPage: 500}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)

	p = Params{Page: 3}
	p.Normalize()
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, 40, p.Offset())
}

func TestNewPage(t *testing.T) {
	page := NewPage[int](nil, Params{Page: 2, PerPage: 10}, 25)

	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}
