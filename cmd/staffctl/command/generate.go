package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/staffboard/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/jaswdr/faker"
)

type department struct {
	name      string
	positions []string
	skills    []string
	salary    [2]int
}

var departments = []department{
	{"Engineering", []string{"Software Engineer", "Senior Software Engineer", "Staff Engineer", "Engineering Manager"},
		[]string{"Go", "JavaScript", "React", "Kubernetes", "PostgreSQL", "AWS", "Python"}, [2]int{90000, 190000}},
	{"Sales", []string{"Sales Representative", "Account Executive", "Sales Manager"},
		[]string{"Negotiation", "CRM", "Prospecting", "Salesforce"}, [2]int{55000, 140000}},
	{"Marketing", []string{"Marketing Specialist", "Content Strategist", "Marketing Manager"},
		[]string{"SEO", "Copywriting", "Analytics", "Social Media"}, [2]int{60000, 135000}},
	{"Human Resources", []string{"HR Generalist", "Recruiter", "HR Manager"},
		[]string{"Recruiting", "Onboarding", "Employee Relations"}, [2]int{55000, 125000}},
	{"Finance", []string{"Financial Analyst", "Accountant", "Finance Manager"},
		[]string{"Excel", "Forecasting", "Budgeting", "SQL"}, [2]int{65000, 150000}},
	{"Operations", []string{"Operations Analyst", "Project Coordinator", "Operations Manager"},
		[]string{"Logistics", "Process Improvement", "Scheduling"}, [2]int{55000, 130000}},
}

var hireEpoch = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)

// generate builds n synthetic employees with ids 1..n. The same faker seed
// always yields the same records.
func generate(f faker.Faker, n int) []models.Employee {
	p := f.Person()
	addr := f.Address()

	recs := make([]models.Employee, 0, n)
	managers := map[string]string{}
	for i := 1; i <= n; i++ {
		dept := departments[f.IntBetween(0, len(departments)-1)]
		first, last := p.FirstName(), p.LastName()

		if _, ok := managers[dept.name]; !ok {
			managers[dept.name] = p.FirstName() + " " + p.LastName()
		}

		var skills []string
		for _, s := range dept.skills {
			if len(skills) < 3 && f.IntBetween(0, 2) == 0 {
				skills = append(skills, s)
			}
		}

		hired := hireEpoch.AddDate(0, 0, f.IntBetween(0, 15*365))
		recs = append(recs, models.Employee{
			ID:                i,
			FirstName:         first,
			LastName:          last,
			Email:             emailFor(first, last, i),
			Department:        dept.name,
			Position:          f.RandomStringElement(dept.positions),
			Salary:            float64(f.IntBetween(dept.salary[0]/1000, dept.salary[1]/1000) * 1000),
			HireDate:          hired.Format("2006-01-02"),
			Age:               f.IntBetween(22, 64),
			Location:          addr.City() + ", " + addr.StateAbbr(),
			PerformanceRating: float64(f.IntBetween(30, 50)) / 10,
			ProjectsCompleted: f.IntBetween(0, 60),
			IsActive:          f.IntBetween(0, 4) > 0,
			Skills:            skills,
			Manager:           managers[dept.name],
		})
	}
	return recs
}

func emailFor(first, last string, id int) string {
	local := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.':
			return r
		}
		return -1
	}, strings.ToLower(text.Fold(first+"."+last)))
	if local == "" || local == "." {
		local = "employee"
	}
	return fmt.Sprintf("%s.%d@example.com", strings.Trim(local, "."), id)
}
