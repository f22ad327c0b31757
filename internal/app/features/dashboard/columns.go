// internal/app/features/dashboard/columns.go
package dashboard

import (
	"strconv"
	"strings"

	"github.com/dalemusser/staffboard/internal/app/system/format"
	"github.com/dalemusser/staffboard/internal/app/system/grid"
	"github.com/dalemusser/staffboard/internal/domain/models"
)

// defaultMinWidth applies to every column that does not set its own.
const defaultMinWidth = 110

// Columns declares the employee grid. Every column is sortable and filtered.
// Unless a column sets its own filter, number columns get the number filter
// and the rest the text filter; id keeps the text filter.
func Columns() []grid.Column[models.Employee] {
	cols := []grid.Column[models.Employee]{
		{
			Field:    "id",
			Kind:     grid.Number,
			Filter:   grid.TextFilter,
			Pinned:   "left",
			MaxWidth: 80,
			Checkbox: true,
			Value:    func(e models.Employee) any { return e.ID },
			Tooltip:  func(e models.Employee) string { return strconv.Itoa(e.ID) },
		},
		{
			Field:      "name",
			HeaderName: "Name",
			Pinned:     "left",
			MinWidth:   150,
			Value:      func(e models.Employee) any { return e.FullName() },
			Tooltip:    func(e models.Employee) string { return e.FullName() },
		},
		{
			Field:    "email",
			MinWidth: 220,
			Value:    func(e models.Employee) any { return e.Email },
			Tooltip:  func(e models.Employee) string { return e.Email },
		},
		{
			Field:   "department",
			Value:   func(e models.Employee) any { return e.Department },
			Tooltip: func(e models.Employee) string { return e.Department },
		},
		{
			Field:    "position",
			MinWidth: 160,
			Value:    func(e models.Employee) any { return e.Position },
			Tooltip:  func(e models.Employee) string { return e.Position },
		},
		{
			Field:    "salary",
			Kind:     grid.Number,
			MinWidth: 120,
			Value:    func(e models.Employee) any { return e.Salary },
			Format:   func(e models.Employee) string { return format.Money(e.Salary) },
			Tooltip:  func(e models.Employee) string { return "Annual Salary: " + format.Money(e.Salary) },
		},
		{
			Field:   "hireDate",
			Value:   func(e models.Employee) any { return e.HireDate },
			Tooltip: func(e models.Employee) string { return e.HireDate },
		},
		{
			Field:    "age",
			Kind:     grid.Number,
			MaxWidth: 90,
			Value:    func(e models.Employee) any { return e.Age },
			Tooltip:  func(e models.Employee) string { return strconv.Itoa(e.Age) },
		},
		{
			Field:    "location",
			MinWidth: 130,
			Value:    func(e models.Employee) any { return e.Location },
			Tooltip:  func(e models.Employee) string { return e.Location },
		},
		{
			Field:      "performanceRating",
			HeaderName: "Rating",
			Kind:       grid.Number,
			MaxWidth:   100,
			Value:      func(e models.Employee) any { return e.PerformanceRating },
			Tooltip:    func(e models.Employee) string { return "Rating: " + format.Number(e.PerformanceRating) },
			Render:     renderRating,
		},
		{
			Field:   "projectsCompleted",
			Kind:    grid.Number,
			Value:   func(e models.Employee) any { return e.ProjectsCompleted },
			Tooltip: func(e models.Employee) string { return strconv.Itoa(e.ProjectsCompleted) },
		},
		{
			Field:      "isActive",
			HeaderName: "Active",
			Kind:       grid.Boolean,
			MaxWidth:   110,
			Value:      func(e models.Employee) any { return e.IsActive },
			Tooltip: func(e models.Employee) string {
				if e.IsActive {
					return "Currently active"
				}
				return "Not active"
			},
			Render: renderActive,
		},
		{
			Field:    "skills",
			Kind:     grid.Set,
			MinWidth: 180,
			Value:    func(e models.Employee) any { return e.Skills },
			Tooltip:  func(e models.Employee) string { return strings.Join(e.Skills, ", ") },
			Render:   renderSkills,
		},
		{
			Field:   "manager",
			Value:   func(e models.Employee) any { return e.Manager },
			Tooltip: func(e models.Employee) string { return e.Manager },
		},
	}

	for i := range cols {
		c := &cols[i]
		c.Sortable = true
		switch {
		case c.Filter != grid.NoFilter:
		case c.Kind == grid.Number:
			c.Filter = grid.NumberFilter
		default:
			c.Filter = grid.TextFilter
		}
		if c.MinWidth == 0 {
			c.MinWidth = defaultMinWidth
		}
		if c.MaxWidth > 0 && c.MinWidth > c.MaxWidth {
			c.MinWidth = c.MaxWidth
		}
	}
	return cols
}

// rowID is the grid row identifier: the employee id as a string.
func rowID(e models.Employee) string { return e.Key() }
