// internal/domain/models/employee.go
package models

import "strconv"

// Employee is one row of the bundled staff dataset.
//
// Records are loaded once at startup and never mutated. Manager is a free-form
// name; it is not resolved against other records.
type Employee struct {
	ID                int      `bson:"id" json:"id" yaml:"id" validate:"gt=0"`
	FirstName         string   `bson:"firstName" json:"firstName" yaml:"firstName" validate:"required,max=100"`
	LastName          string   `bson:"lastName" json:"lastName" yaml:"lastName" validate:"required,max=100"`
	Email             string   `bson:"email" json:"email" yaml:"email" validate:"omitempty,email"`
	Department        string   `bson:"department" json:"department" yaml:"department"`
	Position          string   `bson:"position" json:"position" yaml:"position"`
	Salary            float64  `bson:"salary" json:"salary" yaml:"salary" validate:"gte=0"`
	HireDate          string   `bson:"hireDate" json:"hireDate" yaml:"hireDate" validate:"omitempty,datetime=2006-01-02"`
	Age               int      `bson:"age" json:"age" yaml:"age" validate:"gte=0,lte=120"`
	Location          string   `bson:"location" json:"location" yaml:"location"`
	PerformanceRating float64  `bson:"performanceRating" json:"performanceRating" yaml:"performanceRating" validate:"gte=1,lte=5"`
	ProjectsCompleted int      `bson:"projectsCompleted" json:"projectsCompleted" yaml:"projectsCompleted" validate:"gte=0"`
	IsActive          bool     `bson:"isActive" json:"isActive" yaml:"isActive"`
	Skills            []string `bson:"skills" json:"skills" yaml:"skills,omitempty"`
	Manager           string   `bson:"manager" json:"manager" yaml:"manager"`
}

// FullName joins first and last name the way the dashboard displays it.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Key returns the row identifier used for selection.
func (e Employee) Key() string {
	return strconv.Itoa(e.ID)
}
