package employees_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/staffboard/internal/app/store/employees"
	"github.com/dalemusser/staffboard/internal/testutil"
)

func TestStore_LoadOrdersByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	recs := testutil.Employees()
	recs[0], recs[5] = recs[5], recs[0]
	fixtures.InsertEmployees(ctx, employees.DefaultCollection, recs)

	store := employees.New(db, "")
	d, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Source() != employees.SourceMongo {
		t.Errorf("Source = %q", d.Source())
	}
	all := d.All()
	if len(all) != len(recs) {
		t.Fatalf("loaded %d records, want %d", len(all), len(recs))
	}
	for i, e := range all {
		if e.ID != i+1 {
			t.Errorf("record %d has id %d", i, e.ID)
		}
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d, err := employees.New(db, "nobody").Load(ctx)
	if !errors.Is(err, employees.ErrEmptyDataset) {
		t.Fatalf("got %v, want ErrEmptyDataset", err)
	}
	if d == nil || d.Len() != 0 {
		t.Errorf("expected an empty dataset, got %v", d)
	}
}

func TestStore_Replace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := employees.New(db, "staff")
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	if n, err := store.InsertMany(ctx, testutil.Employees()); err != nil || n != 6 {
		t.Fatalf("InsertMany = %d, %v", n, err)
	}
	if n, err := store.Replace(ctx, testutil.Employees()[:2]); err != nil || n != 2 {
		t.Fatalf("Replace = %d, %v", n, err)
	}
	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("after Replace: %d records, want 2", len(all))
	}
}
