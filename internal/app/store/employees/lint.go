// internal/app/store/employees/lint.go
package employees

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/staffboard/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

// Issue is one lint finding on a record. Issues are warnings; a dataset with
// issues still loads.
type Issue struct {
	ID      int    `json:"id"`
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("record %d (id %d): %s: %s", i.Index, i.ID, i.Field, i.Message)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

// Lint checks every record against the model's validate tags and reports
// duplicate ids and text fields holding markup.
func Lint(recs []models.Employee) []Issue {
	var issues []Issue
	seen := make(map[int]int, len(recs))

	for i, e := range recs {
		if first, dup := seen[e.ID]; dup {
			issues = append(issues, Issue{
				ID:      e.ID,
				Index:   i,
				Field:   "id",
				Rule:    "unique",
				Message: fmt.Sprintf("duplicate id, first used by record %d", first),
			})
		} else {
			seen[e.ID] = i
		}

		issues = append(issues, markupIssues(i, e)...)

		err := recordValidator().Struct(e)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			issues = append(issues, Issue{ID: e.ID, Index: i, Rule: "invalid", Message: err.Error()})
			continue
		}
		for _, fe := range verrs {
			issues = append(issues, Issue{
				ID:      e.ID,
				Index:   i,
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: lintMessage(fe.Tag(), fe.Param()),
			})
		}
	}
	return issues
}

func lintMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "is not a valid email address"
	case "datetime":
		return "must be a date like " + param
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	case "lte":
		return "must be at most " + param
	case "max":
		return "must be at most " + param + " characters"
	}
	return "failed " + rule
}
