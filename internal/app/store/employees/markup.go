// internal/app/store/employees/markup.go
package employees

import (
	"github.com/dalemusser/staffboard/internal/app/system/htmlsanitize"
	"github.com/dalemusser/staffboard/internal/domain/models"
)

// markupIssues reports text fields that carry HTML tags. The values are kept
// as loaded; templates escape them on output.
func markupIssues(index int, e models.Employee) []Issue {
	fields := []struct {
		name, value string
	}{
		{"firstName", e.FirstName},
		{"lastName", e.LastName},
		{"email", e.Email},
		{"department", e.Department},
		{"position", e.Position},
		{"hireDate", e.HireDate},
		{"location", e.Location},
		{"manager", e.Manager},
	}
	for _, s := range e.Skills {
		fields = append(fields, struct{ name, value string }{"skills", s})
	}

	var issues []Issue
	for _, f := range fields {
		if htmlsanitize.PlainText(f.value) == f.value {
			continue
		}
		issues = append(issues, Issue{
			ID:      e.ID,
			Index:   index,
			Field:   f.name,
			Rule:    "markup",
			Message: "contains markup; shown as literal text",
		})
	}
	return issues
}
