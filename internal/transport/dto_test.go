package transport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	assert.Equal(t, PageMeta{Page: 1, Size: 2, Total: 3, TotalPages: 2, HasNext: true}, NewPageMeta(1, 2, 3))
	assert.Equal(t, PageMeta{Page: 2, Size: 2, Total: 3, TotalPages: 2, HasPrev: true}, NewPageMeta(2, 2, 3))
	assert.Equal(t, PageMeta{Page: 1, Size: 20}, NewPageMeta(1, 20, 0))
}

func TestNewPageMeta_HugePage(t *testing.T) {
	meta := NewPageMeta(math.MaxInt/100, 100, 5)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
	assert.EqualValues(t, 1, meta.TotalPages)
}
