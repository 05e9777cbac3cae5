package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalized(t *testing.T) {
	assert.Equal(t, Page{Page: 1, PageSize: DefaultPageSize}, Page{}.Normalized())
	assert.Equal(t, Page{Page: 3, PageSize: 5}, Page{Page: 3, PageSize: 5}.Normalized())
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, Page{}.Offset())
	assert.Equal(t, 0, Page{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, Page{Page: 3, PageSize: 10}.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]string{"a", "b"}, 21, Page{Page: 2, PageSize: 10})
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, []string{"a", "b"}, p.Items)

	empty := NewPaginated[string](nil, 0, Page{Page: 1, PageSize: 10})
	assert.Zero(t, empty.TotalPages)
}
