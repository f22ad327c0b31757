// internal/app/store/employees/employees.go
package employees

import (
	"errors"
	"slices"
	"strconv"

	"github.com/dalemusser/staffboard/internal/domain/models"
)

// Source names where a dataset was read from.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceMongo    = "mongo"
)

var (
	// ErrUnknownFormat is returned for dataset files that are neither JSON
	// nor YAML.
	ErrUnknownFormat = errors.New("employees: unknown dataset format")
	// ErrEmptyDataset is returned when a MongoDB collection has no records.
	ErrEmptyDataset = errors.New("employees: dataset is empty")
)

// Dataset is the immutable, loaded-once list of employee records.
type Dataset struct {
	records []models.Employee
	source  string
	byID    map[int]int
}

// NewDataset wraps records read from source. Records are kept exactly as
// given, problems included; Lint reports them.
func NewDataset(records []models.Employee, source string) *Dataset {
	d := &Dataset{
		records: make([]models.Employee, len(records)),
		source:  source,
		byID:    make(map[int]int, len(records)),
	}
	for i, e := range records {
		e.Skills = slices.Clone(e.Skills)
		d.records[i] = e
		if _, dup := d.byID[e.ID]; !dup {
			d.byID[e.ID] = i
		}
	}
	return d
}

// All returns a copy of the records in load order.
func (d *Dataset) All() []models.Employee {
	return append([]models.Employee(nil), d.records...)
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Source returns where the records came from.
func (d *Dataset) Source() string { return d.source }

// ByID returns the first record with the given id.
func (d *Dataset) ByID(id int) (models.Employee, bool) {
	i, ok := d.byID[id]
	if !ok {
		return models.Employee{}, false
	}
	return d.records[i], true
}

// ByKey looks a record up by its selection key.
func (d *Dataset) ByKey(key string) (models.Employee, bool) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return models.Employee{}, false
	}
	return d.ByID(id)
}
