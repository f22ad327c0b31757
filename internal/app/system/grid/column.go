// internal/app/system/grid/column.go
package grid

import (
	"html/template"
	"strings"
	"unicode"
)

// Kind is the data type of a column. It decides how values compare when
// sorting.
type Kind int

const (
	Text Kind = iota
	Number
	Boolean
	Set
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Set:
		return "set"
	default:
		return "text"
	}
}

// FilterKind selects the column filter applied to a column.
type FilterKind int

const (
	NoFilter FilterKind = iota
	TextFilter
	NumberFilter
)

func (f FilterKind) String() string {
	switch f {
	case TextFilter:
		return "text"
	case NumberFilter:
		return "number"
	default:
		return ""
	}
}

// Column declares one grid column over rows of type T.
//
// Value yields the raw value used for sorting and number filters. Text yields
// the string form used by the quick filter, text filters and CSV export; when
// nil it is derived from Value. Format, Tooltip and Render only affect
// display.
type Column[T any] struct {
	Field      string
	HeaderName string
	Kind       Kind
	Filter     FilterKind
	Sortable   bool
	Pinned     string
	MinWidth   int
	MaxWidth   int
	Checkbox   bool

	Value   func(T) any
	Text    func(T) string
	Format  func(T) string
	Tooltip func(T) string
	Render  func(T) template.HTML
}

// Header returns HeaderName, or a label derived from Field.
func (c Column[T]) Header() string {
	if c.HeaderName != "" {
		return c.HeaderName
	}
	return HeaderFromField(c.Field)
}

// RawValue returns the column's raw value for row, or nil.
func (c Column[T]) RawValue(row T) any {
	if c.Value == nil {
		return nil
	}
	return c.Value(row)
}

// TextOf returns the string form of the column's value for row.
func (c Column[T]) TextOf(row T) string {
	if c.Text != nil {
		return c.Text(row)
	}
	return Stringify(c.RawValue(row))
}

// DisplayOf returns the formatted value shown in a cell.
func (c Column[T]) DisplayOf(row T) string {
	if c.Format != nil {
		return c.Format(row)
	}
	return c.TextOf(row)
}

// TooltipOf returns the tooltip text for row, or "".
func (c Column[T]) TooltipOf(row T) string {
	if c.Tooltip == nil {
		return ""
	}
	return c.Tooltip(row)
}

// HTMLOf returns the cell markup for row. Without a Render func the display
// text is escaped.
func (c Column[T]) HTMLOf(row T) template.HTML {
	if c.Render != nil {
		return c.Render(row)
	}
	return template.HTML(template.HTMLEscapeString(c.DisplayOf(row)))
}

// HeaderFromField turns a field name into a header label:
// "hireDate" -> "Hire Date", "id" -> "Id", "first_name" -> "First Name".
func HeaderFromField(field string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(field)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
		}
		cur = append(cur, r)
	}
	flush()

	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}
