package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateCountsPages(t *testing.T) {
	assert.Equal(t, 1, Paginate(1, 1, 1).Pages)
	assert.Equal(t, 7, Paginate(7, 1, 1).Pages)
	assert.Equal(t, 1, Paginate(10, 1, 10).Pages)
	assert.Equal(t, 2, Paginate(11, 1, 10).Pages)
	assert.Equal(t, 3, Paginate(21, 1, 10).Pages)
}

func TestPaginateWrapsCircularly(t *testing.T) {
	w := Paginate(5, 1, 1)
	assert.Equal(t, 5, w.Left, "left from first page wraps to last")
	assert.Equal(t, 2, w.Right)

	w = Paginate(5, 5, 1)
	assert.Equal(t, 4, w.Left)
	assert.Equal(t, 1, w.Right, "right from last page wraps to first")

	w = Paginate(5, 3, 1)
	assert.Equal(t, 2, w.Left)
	assert.Equal(t, 4, w.Right)
}

func TestPaginateSinglePageWrapsToItself(t *testing.T) {
	w := Paginate(1, 1, 1)
	assert.Equal(t, 1, w.Left)
	assert.Equal(t, 1, w.Right)
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	w := Paginate(3, 9, 1)
	assert.Equal(t, 3, w.Page, "beyond the end clamps to the last page")

	w = Paginate(3, 0, 1)
	assert.Equal(t, 1, w.Page)

	w = Paginate(3, -2, 1)
	assert.Equal(t, 1, w.Page)
}

func TestPaginateSliceBounds(t *testing.T) {
	w := Paginate(25, 3, 10)
	assert.Equal(t, 20, w.Start)
	assert.Equal(t, 25, w.End, "last page is partial")

	w = Paginate(25, 2, 10)
	assert.Equal(t, 10, w.Start)
	assert.Equal(t, 20, w.End)
}

func TestPaginateEmpty(t *testing.T) {
	assert.Equal(t, Window{}, Paginate(0, 1, 1))
	assert.Equal(t, Window{}, Paginate(0, 5, 10))
}
