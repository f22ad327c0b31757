// Package grid is a small tabular engine over an immutable slice of rows.
//
// It owns everything a data-table widget does on behalf of a page: quick
// filtering, per-column filters, multi-key sorting, pagination, row
// selection bookkeeping and CSV export. Callers declare columns and forward
// user input; they never look inside rows themselves.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/staffboard/internal/app/system/paging"
	"github.com/dalemusser/staffboard/internal/app/system/search"
	"github.com/dalemusser/waffle/pantry/text"
)

var (
	// ErrNoColumns is returned by New when no columns are declared.
	ErrNoColumns = errors.New("grid: no columns")
	// ErrNoRowID is returned by New when rowID is nil.
	ErrNoRowID = errors.New("grid: row id func is required")
)

// Grid holds the column declarations and the rows they describe.
// A Grid is immutable after New and safe for concurrent use.
type Grid[T any] struct {
	cols  []Column[T]
	index map[string]int

	rows  []T
	ids   []string
	pos   map[string]int
	quick []string
}

// Request is everything a page forwards to the grid for one render.
type Request struct {
	QuickFilter string
	Filters     FilterModel
	Sort        SortModel
	Page        int
	PageSize    int
}

// Page describes the page of rows returned by Query.
type Page struct {
	Number       int
	Size         int
	Pages        int
	TotalRows    int
	FilteredRows int
	Range        paging.Range
	HasPrev      bool
	HasNext      bool
}

// View is one rendered page: the rows shown, their ids and paging info.
type View[T any] struct {
	Rows []T
	IDs  []string
	Page Page
}

// New builds a grid. Column fields must be unique and non-empty. rows is
// copied; the caller may reuse its slice.
func New[T any](cols []Column[T], rows []T, rowID func(T) string) (*Grid[T], error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	if rowID == nil {
		return nil, ErrNoRowID
	}

	g := &Grid[T]{
		cols:  append([]Column[T](nil), cols...),
		index: make(map[string]int, len(cols)),
		rows:  append([]T(nil), rows...),
		ids:   make([]string, len(rows)),
		pos:   make(map[string]int, len(rows)),
		quick: make([]string, len(rows)),
	}
	for i, c := range g.cols {
		if c.Field == "" {
			return nil, fmt.Errorf("grid: column %d has no field", i)
		}
		if _, dup := g.index[c.Field]; dup {
			return nil, fmt.Errorf("grid: duplicate column field %q", c.Field)
		}
		g.index[c.Field] = i
	}

	parts := make([]string, len(g.cols))
	for i, row := range g.rows {
		id := rowID(row)
		g.ids[i] = id
		if _, seen := g.pos[id]; !seen {
			g.pos[id] = i
		}
		for j, c := range g.cols {
			parts[j] = c.TextOf(row)
		}
		g.quick[i] = text.Fold(strings.Join(parts, " "))
	}
	return g, nil
}

// Columns returns the column declarations in display order.
func (g *Grid[T]) Columns() []Column[T] {
	return append([]Column[T](nil), g.cols...)
}

// Column looks a column up by field.
func (g *Grid[T]) Column(field string) (Column[T], bool) {
	i, ok := g.index[field]
	if !ok {
		return Column[T]{}, false
	}
	return g.cols[i], true
}

// Len returns the total number of rows.
func (g *Grid[T]) Len() int { return len(g.rows) }

// Query filters, sorts and pages the rows.
func (g *Grid[T]) Query(req Request) View[T] {
	idx := g.visible(req)

	size := req.PageSize
	if size < 1 {
		size = paging.DefaultPageSize
	}
	pages := paging.Pages(len(idx), size)
	page := paging.Clamp(req.Page, pages)
	lo, hi := paging.Bounds(page, size, len(idx))

	v := View[T]{
		Rows: make([]T, 0, hi-lo),
		IDs:  make([]string, 0, hi-lo),
		Page: Page{
			Number:       page,
			Size:         size,
			Pages:        pages,
			TotalRows:    len(g.rows),
			FilteredRows: len(idx),
			Range:        paging.ComputeRange(lo+1, hi-lo, size),
			HasPrev:      page > 1,
			HasNext:      page < pages,
		},
	}
	for _, i := range idx[lo:hi] {
		v.Rows = append(v.Rows, g.rows[i])
		v.IDs = append(v.IDs, g.ids[i])
	}
	return v
}

// Visible returns every row passing the quick filter and the column filters,
// in sort order, across all pages.
func (g *Grid[T]) Visible(req Request) []T {
	return g.pick(g.visible(req))
}

// Count returns how many rows pass the current filters.
func (g *Grid[T]) Count(req Request) int {
	return len(g.filter(req))
}

func (g *Grid[T]) visible(req Request) []int {
	idx := g.filter(req)
	g.sortIndices(idx, req.Sort)
	return idx
}

func (g *Grid[T]) filter(req Request) []int {
	terms := search.Terms(req.QuickFilter)
	active := g.activeFilters(req.Filters)

	idx := make([]int, 0, len(g.rows))
	for i, row := range g.rows {
		if !search.MatchAll(g.quick[i], terms) {
			continue
		}
		if !g.matchFilters(row, active) {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

func (g *Grid[T]) pick(idx []int) []T {
	out := make([]T, len(idx))
	for k, i := range idx {
		out[k] = g.rows[i]
	}
	return out
}
