package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/dalemusser/staffboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Employees returns a small, varied set of records for tests. The slice is
// freshly allocated on every call.
//
//	ids 1-3 Engineering, 4-5 Sales, 6 Marketing; 3 and 5 inactive;
//	6 has no skills and no email.
func Employees() []models.Employee {
	return []models.Employee{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Department: "Engineering",
			Position: "Senior Software Engineer", Salary: 150000, HireDate: "2015-03-01", Age: 36,
			Location: "London, UK", PerformanceRating: 4.9, ProjectsCompleted: 42, IsActive: true,
			Skills: []string{"Go", "Math"}, Manager: "Charles Babbage"},
		{ID: 2, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Department: "Engineering",
			Position: "Engineering Manager", Salary: 185000, HireDate: "2012-07-15", Age: 58,
			Location: "Arlington, VA", PerformanceRating: 4.8, ProjectsCompleted: 48, IsActive: true,
			Skills: []string{"COBOL", "Compilers"}, Manager: "Charles Babbage"},
		{ID: 3, FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Department: "Engineering",
			Position: "Software Engineer", Salary: 120000, HireDate: "2019-01-20", Age: 41,
			Location: "Manchester, UK", PerformanceRating: 4.5, ProjectsCompleted: 17, IsActive: false,
			Skills: []string{"Cryptography"}, Manager: "Grace Hopper"},
		{ID: 4, FirstName: "Mary", LastName: "Jackson", Email: "mary@example.com", Department: "Sales",
			Position: "Account Executive", Salary: 85000, HireDate: "2020-09-09", Age: 29,
			Location: "Hampton, VA", PerformanceRating: 3.8, ProjectsCompleted: 12, IsActive: true,
			Skills: []string{"Negotiation", "CRM"}, Manager: "Katherine Johnson"},
		{ID: 5, FirstName: "José", LastName: "Núñez", Email: "jose@example.com", Department: "Sales",
			Position: "Sales Representative", Salary: 64000, HireDate: "2022-02-14", Age: 25,
			Location: "Austin, TX", PerformanceRating: 3.2, ProjectsCompleted: 5, IsActive: false,
			Skills: []string{"Prospecting"}, Manager: "Katherine Johnson"},
		{ID: 6, FirstName: "Hedy", LastName: "Lamarr", Department: "Marketing",
			Position: "Content Strategist", Salary: 72000, HireDate: "2021-11-30", Age: 33,
			Location: "Remote", PerformanceRating: 4.1, ProjectsCompleted: 9, IsActive: true,
			Manager: "Michael Brooks"},
	}
}

// ManyEmployees returns n generated records with ids 1..n, for tests that
// need a dataset larger than the hand-written fixtures.
func ManyEmployees(n int) []models.Employee {
	depts := []string{"Engineering", "Sales", "Marketing", "Finance"}
	out := make([]models.Employee, n)
	for i := range out {
		id := i + 1
		out[i] = models.Employee{
			ID:                id,
			FirstName:         "Worker",
			LastName:          fmt.Sprintf("Number%d", id),
			Email:             fmt.Sprintf("worker%d@example.com", id),
			Department:        depts[i%len(depts)],
			Position:          "Analyst",
			Salary:            float64(50000 + (id%50)*1000),
			HireDate:          "2020-01-01",
			Age:               25 + id%40,
			Location:          "Remote",
			PerformanceRating: 3.5,
			ProjectsCompleted: id % 30,
			IsActive:          id%5 != 0,
			Manager:           "Pat Lead",
		}
	}
	return out
}

// Fixtures inserts test data into a MongoDB test database.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// InsertEmployees writes recs into collection.
func (f *Fixtures) InsertEmployees(ctx context.Context, collection string, recs []models.Employee) {
	f.t.Helper()

	docs := make([]any, len(recs))
	for i, e := range recs {
		docs[i] = e
	}
	if _, err := f.db.Collection(collection).InsertMany(ctx, docs); err != nil {
		f.t.Fatalf("failed to insert test employees: %v", err)
	}
}
