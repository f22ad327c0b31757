// internal/app/system/grid/filter.go
package grid

import (
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Operator is a column filter comparison.
type Operator string

const (
	Contains           Operator = "contains"
	NotContains        Operator = "notContains"
	Equals             Operator = "equals"
	NotEqual           Operator = "notEqual"
	StartsWith         Operator = "startsWith"
	EndsWith           Operator = "endsWith"
	LessThan           Operator = "lessThan"
	LessThanOrEqual    Operator = "lessThanOrEqual"
	GreaterThan        Operator = "greaterThan"
	GreaterThanOrEqual Operator = "greaterThanOrEqual"
	InRange            Operator = "inRange"
	Blank              Operator = "blank"
	NotBlank           Operator = "notBlank"
)

// Condition is one column filter. Text filters use Text; number filters use
// From (and To for InRange, inclusive on both ends).
type Condition struct {
	Op   Operator
	Text string
	From float64
	To   float64
}

// FilterModel maps column fields to their filter condition. Conditions on
// different columns are combined with AND.
type FilterModel map[string]Condition

// ParseTextCondition parses a floating text filter expression:
//
//	foo     contains
//	=foo    equals
//	!=foo   not equal
//	!foo    does not contain
//	^foo    starts with
//	foo$    ends with
//	blank / !blank
func ParseTextCondition(expr string) (Condition, bool) {
	expr = strings.TrimSpace(expr)
	if c, ok := parseBlank(expr); ok {
		return c, true
	}

	op := Contains
	switch {
	case strings.HasPrefix(expr, "!="):
		op, expr = NotEqual, expr[2:]
	case strings.HasPrefix(expr, "="):
		op, expr = Equals, expr[1:]
	case strings.HasPrefix(expr, "!"):
		op, expr = NotContains, expr[1:]
	case strings.HasPrefix(expr, "^"):
		op, expr = StartsWith, expr[1:]
	case len(expr) > 1 && strings.HasSuffix(expr, "$"):
		op, expr = EndsWith, expr[:len(expr)-1]
	}

	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Condition{}, false
	}
	return Condition{Op: op, Text: expr}, true
}

// ParseNumberCondition parses a floating number filter expression:
//
//	5 or =5   equals
//	!=5       not equal
//	<5 <=5    less than (or equal)
//	>5 >=5    greater than (or equal)
//	1..5      in range, inclusive
//	blank / !blank
//
// Values may carry a "$" prefix and "," grouping.
func ParseNumberCondition(expr string) (Condition, bool) {
	expr = strings.TrimSpace(expr)
	if c, ok := parseBlank(expr); ok {
		return c, true
	}

	if lo, hi, found := strings.Cut(expr, ".."); found {
		from, err1 := parseNumber(lo)
		to, err2 := parseNumber(hi)
		if err1 != nil || err2 != nil {
			return Condition{}, false
		}
		if from > to {
			from, to = to, from
		}
		return Condition{Op: InRange, From: from, To: to}, true
	}

	op := Equals
	for _, p := range []struct {
		prefix string
		op     Operator
	}{
		{">=", GreaterThanOrEqual},
		{"<=", LessThanOrEqual},
		{"!=", NotEqual},
		{">", GreaterThan},
		{"<", LessThan},
		{"=", Equals},
	} {
		if strings.HasPrefix(expr, p.prefix) {
			op, expr = p.op, expr[len(p.prefix):]
			break
		}
	}

	v, err := parseNumber(expr)
	if err != nil {
		return Condition{}, false
	}
	return Condition{Op: op, From: v}, true
}

func parseBlank(expr string) (Condition, bool) {
	switch strings.ToLower(expr) {
	case "blank":
		return Condition{Op: Blank}, true
	case "!blank":
		return Condition{Op: NotBlank}, true
	}
	return Condition{}, false
}

// Expr renders the condition back into floating filter syntax.
func (c Condition) Expr() string {
	num := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	switch c.Op {
	case Blank:
		return "blank"
	case NotBlank:
		return "!blank"
	case Contains:
		return c.Text
	case NotContains:
		return "!" + c.Text
	case StartsWith:
		return "^" + c.Text
	case EndsWith:
		return c.Text + "$"
	case Equals:
		if c.Text != "" {
			return "=" + c.Text
		}
		return num(c.From)
	case NotEqual:
		if c.Text != "" {
			return "!=" + c.Text
		}
		return "!=" + num(c.From)
	case LessThan:
		return "<" + num(c.From)
	case LessThanOrEqual:
		return "<=" + num(c.From)
	case GreaterThan:
		return ">" + num(c.From)
	case GreaterThanOrEqual:
		return ">=" + num(c.From)
	case InRange:
		return num(c.From) + ".." + num(c.To)
	}
	return ""
}

// ParseFilters turns raw floating filter expressions keyed by field into a
// FilterModel. Unknown fields, unfiltered columns and unparseable
// expressions are dropped.
func (g *Grid[T]) ParseFilters(raw map[string]string) FilterModel {
	m := FilterModel{}
	for field, expr := range raw {
		col, ok := g.Column(field)
		if !ok {
			continue
		}
		var (
			cond   Condition
			parsed bool
		)
		switch col.Filter {
		case TextFilter:
			cond, parsed = ParseTextCondition(expr)
		case NumberFilter:
			cond, parsed = ParseNumberCondition(expr)
		}
		if parsed {
			m[field] = cond
		}
	}
	return m
}

type activeFilter[T any] struct {
	col  Column[T]
	cond Condition
}

func (g *Grid[T]) activeFilters(m FilterModel) []activeFilter[T] {
	if len(m) == 0 {
		return nil
	}
	out := make([]activeFilter[T], 0, len(m))
	for _, c := range g.cols {
		cond, ok := m[c.Field]
		if !ok || c.Filter == NoFilter {
			continue
		}
		out = append(out, activeFilter[T]{col: c, cond: cond})
	}
	return out
}

func (g *Grid[T]) matchFilters(row T, active []activeFilter[T]) bool {
	for _, f := range active {
		var ok bool
		switch f.col.Filter {
		case NumberFilter:
			ok = matchNumber(f.cond, f.col.RawValue(row))
		default:
			ok = matchText(f.cond, f.col.TextOf(row))
		}
		if !ok {
			return false
		}
	}
	return true
}

func matchText(c Condition, s string) bool {
	switch c.Op {
	case Blank:
		return strings.TrimSpace(s) == ""
	case NotBlank:
		return strings.TrimSpace(s) != ""
	}

	v := text.Fold(s)
	want := text.Fold(c.Text)
	switch c.Op {
	case Contains:
		return strings.Contains(v, want)
	case NotContains:
		return !strings.Contains(v, want)
	case Equals:
		return v == want
	case NotEqual:
		return v != want
	case StartsWith:
		return strings.HasPrefix(v, want)
	case EndsWith:
		return strings.HasSuffix(v, want)
	}
	return true
}

func matchNumber(c Condition, raw any) bool {
	v, ok := toFloat(raw)
	switch c.Op {
	case Blank:
		return !ok
	case NotBlank:
		return ok
	}
	if !ok {
		return false
	}

	switch c.Op {
	case Equals:
		return v == c.From
	case NotEqual:
		return v != c.From
	case LessThan:
		return v < c.From
	case LessThanOrEqual:
		return v <= c.From
	case GreaterThan:
		return v > c.From
	case GreaterThanOrEqual:
		return v >= c.From
	case InRange:
		return v >= c.From && v <= c.To
	}
	return true
}
