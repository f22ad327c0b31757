// internal/app/system/grid/selection.go
package grid

import "strings"

// SelectOp is a selection change sent by a page.
type SelectOp string

const (
	SelectAdd    SelectOp = "add"
	SelectRemove SelectOp = "remove"
	SelectToggle SelectOp = "toggle"
	SelectAll    SelectOp = "all"
	SelectNone   SelectOp = "none"
)

// ParseSelectOp validates a selection op name.
func ParseSelectOp(s string) (SelectOp, bool) {
	op := SelectOp(strings.ToLower(strings.TrimSpace(s)))
	switch op {
	case SelectAdd, SelectRemove, SelectToggle, SelectAll, SelectNone:
		return op, true
	}
	return "", false
}

// Select applies op to the current selection and returns the new selection
// as row ids in dataset order. Ids the grid does not know are dropped.
// SelectAll selects every row, not only the filtered ones.
func (g *Grid[T]) Select(current []string, op SelectOp, ids []string) []string {
	set := make(map[string]bool, len(current)+len(ids))
	for _, id := range current {
		if _, ok := g.pos[id]; ok {
			set[id] = true
		}
	}

	switch op {
	case SelectAll:
		for id := range g.pos {
			set[id] = true
		}
	case SelectNone:
		clear(set)
	case SelectAdd:
		for _, id := range ids {
			if _, ok := g.pos[id]; ok {
				set[id] = true
			}
		}
	case SelectRemove:
		for _, id := range ids {
			delete(set, id)
		}
	case SelectToggle:
		for _, id := range ids {
			if _, ok := g.pos[id]; !ok {
				continue
			}
			if set[id] {
				delete(set, id)
			} else {
				set[id] = true
			}
		}
	}

	return g.inOrder(set)
}

// Selected returns the rows for ids in dataset order.
func (g *Grid[T]) Selected(ids []string) []T {
	return g.pick(g.selectedIndices(ids))
}

func (g *Grid[T]) selectedIndices(ids []string) []int {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	idx := make([]int, 0, len(set))
	for i, id := range g.ids {
		if set[id] && g.pos[id] == i {
			idx = append(idx, i)
		}
	}
	return idx
}

// AllSelected reports whether ids covers every row.
func (g *Grid[T]) AllSelected(ids []string) bool {
	if len(g.pos) == 0 {
		return false
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := g.pos[id]; ok {
			set[id] = true
		}
	}
	return len(set) == len(g.pos)
}

// Complement returns the ids of every row not in ids, in dataset order.
func (g *Grid[T]) Complement(ids []string) []string {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	out := make([]string, 0, len(g.ids))
	for i, id := range g.ids {
		if !set[id] && g.pos[id] == i {
			out = append(out, id)
		}
	}
	return out
}

// Has reports whether id names a row.
func (g *Grid[T]) Has(id string) bool {
	_, ok := g.pos[id]
	return ok
}

func (g *Grid[T]) inOrder(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for i, id := range g.ids {
		if set[id] && g.pos[id] == i {
			out = append(out, id)
		}
	}
	return out
}
