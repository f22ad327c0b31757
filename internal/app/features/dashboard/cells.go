// internal/app/features/dashboard/cells.go
package dashboard

import (
	"html/template"
	"strings"

	"github.com/dalemusser/staffboard/internal/app/system/format"
	"github.com/dalemusser/staffboard/internal/domain/models"
)

const starColor = "#F5C518"

func renderRating(e models.Employee) template.HTML {
	v := template.HTMLEscapeString(format.Number(e.PerformanceRating))
	return template.HTML(`<span title="Rated ` + v + ` stars">` + v +
		` <span class="star" style="color: ` + starColor + `">★</span></span>`)
}

func renderActive(e models.Employee) template.HTML {
	if e.IsActive {
		return `<span class="status status-active" title="Active" style="color: green; font-weight: 700">● Active</span>`
	}
	return `<span class="status status-inactive" title="Not Active" style="color: red; font-weight: 700">● Inactive</span>`
}

func renderSkills(e models.Employee) template.HTML {
	var b strings.Builder
	for _, s := range e.Skills {
		esc := template.HTMLEscapeString(s)
		b.WriteString(`<span class="skill-badge" title="`)
		b.WriteString(esc)
		b.WriteString(`">`)
		b.WriteString(esc)
		b.WriteString(`</span>`)
	}
	return template.HTML(b.String())
}
