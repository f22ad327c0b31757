// internal/app/system/grid/sort.go
package grid

import (
	"slices"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortKey sorts by one column.
type SortKey struct {
	Field string
	Dir   Direction
}

// SortModel is an ordered list of sort keys; earlier keys win.
type SortModel []SortKey

// ParseSort parses "field:asc,other:desc". A key without a direction sorts
// ascending; keys with an unknown direction are dropped, as are repeats of
// a field already present.
func ParseSort(s string) SortModel {
	var m SortModel
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, dir, _ := strings.Cut(part, ":")
		field = strings.TrimSpace(field)
		d := Direction(strings.ToLower(strings.TrimSpace(dir)))
		if d == "" {
			d = Asc
		}
		if field == "" || (d != Asc && d != Desc) || seen[field] {
			continue
		}
		seen[field] = true
		m = append(m, SortKey{Field: field, Dir: d})
	}
	return m
}

// String renders the model in the form ParseSort accepts.
func (m SortModel) String() string {
	parts := make([]string, len(m))
	for i, k := range m {
		parts[i] = k.Field + ":" + string(k.Dir)
	}
	return strings.Join(parts, ",")
}

// Direction returns the direction field is sorted in, or "" when unsorted.
func (m SortModel) Direction(field string) Direction {
	for _, k := range m {
		if k.Field == field {
			return k.Dir
		}
	}
	return ""
}

// Cycle returns the model after a header click on field: unsorted -> asc ->
// desc -> unsorted. The result sorts by that single column only.
func (m SortModel) Cycle(field string) SortModel {
	switch m.Direction(field) {
	case "":
		return SortModel{{Field: field, Dir: Asc}}
	case Asc:
		return SortModel{{Field: field, Dir: Desc}}
	default:
		return nil
	}
}

// CleanSort drops keys naming unknown or unsortable columns.
func (g *Grid[T]) CleanSort(m SortModel) SortModel {
	out := make(SortModel, 0, len(m))
	for _, k := range m {
		if c, ok := g.Column(k.Field); ok && c.Sortable {
			out = append(out, k)
		}
	}
	return out
}

func (g *Grid[T]) sortIndices(idx []int, m SortModel) {
	m = g.CleanSort(m)
	if len(m) == 0 {
		return
	}
	cols := make([]Column[T], len(m))
	for i, k := range m {
		cols[i], _ = g.Column(k.Field)
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		for i, k := range m {
			c := compareCells(cols[i], g.rows[a], g.rows[b])
			if c == 0 {
				continue
			}
			if k.Dir == Desc {
				return -c
			}
			return c
		}
		return 0
	})
}

// compareCells orders two rows by one column. Missing numbers sort first.
func compareCells[T any](col Column[T], a, b T) int {
	switch col.Kind {
	case Number:
		av, aok := toFloat(col.RawValue(a))
		bv, bok := toFloat(col.RawValue(b))
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case Boolean:
		av, _ := toBool(col.RawValue(a))
		bv, _ := toBool(col.RawValue(b))
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	default:
		return strings.Compare(text.Fold(col.TextOf(a)), text.Fold(col.TextOf(b)))
	}
}
