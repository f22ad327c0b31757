package command

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dalemusser/staffboard/internal/app/store/employees"
	"github.com/jaswdr/faker"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_LintClean(t *testing.T) {
	recs := generate(faker.NewWithSeed(rand.NewSource(7)), 200)
	if len(recs) != 200 {
		t.Fatalf("got %d records", len(recs))
	}
	for i, e := range recs {
		if e.ID != i+1 {
			t.Fatalf("record %d has id %d", i, e.ID)
		}
	}
	if issues := employees.Lint(recs); len(issues) != 0 {
		t.Errorf("generated records have lint issues: %v", issues[0])
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(faker.NewWithSeed(rand.NewSource(42)), 25)
	b := generate(faker.NewWithSeed(rand.NewSource(42)), 25)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different datasets")
	}
}

func TestEmailFor(t *testing.T) {
	tests := []struct {
		first, last string
		id          int
		want        string
	}{
		{"Ada", "Lovelace", 1, "ada.lovelace.1@example.com"},
		{"Mary-Jo", "O'Neil", 9, "maryjo.oneil.9@example.com"},
		{"", "", 3, "employee.3@example.com"},
	}
	for _, tt := range tests {
		if got := emailFor(tt.first, tt.last, tt.id); got != tt.want {
			t.Errorf("emailFor(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestParseNbEntries(t *testing.T) {
	if n, err := parseNbEntries(nil); err != nil || n != defaultNbEntries {
		t.Errorf("default = %d, %v", n, err)
	}
	if n, err := parseNbEntries([]string{"12"}); err != nil || n != 12 {
		t.Errorf("12 = %d, %v", n, err)
	}
	for _, bad := range []string{"0", "-3", "many"} {
		if _, err := parseNbEntries([]string{bad}); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
}

func TestSeed_WritesLoadableFile(t *testing.T) {
	for _, name := range []string{"people.json", "people.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if _, err := run(t, "seed", "30", "--seed", "3", "--out", path); err != nil {
				t.Fatalf("seed: %v", err)
			}
			ds, err := employees.LoadFile(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if ds.Len() != 30 {
				t.Errorf("loaded %d records, want 30", ds.Len())
			}
		})
	}
}

func TestSeed_UnknownFormat(t *testing.T) {
	_, err := run(t, "seed", "3", "--out", filepath.Join(t.TempDir(), "people.csv"))
	if err == nil {
		t.Fatal("expected an error for .csv output")
	}
}

func TestTable_RendersPage(t *testing.T) {
	out, err := run(t, "table", "--size", "3", "--sort", "id:asc")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if !strings.Contains(out, "Rating") || !strings.Contains(out, "Active") {
		t.Errorf("missing headers:\n%s", out)
	}
	if !strings.Contains(out, "1 to 3 of ") {
		t.Errorf("missing page summary:\n%s", out)
	}
}

func TestTable_UnknownFilterField(t *testing.T) {
	if _, err := run(t, "table", "-f", "nope=1"); err == nil {
		t.Error("expected an error for an unknown filter column")
	}
	if _, err := run(t, "table", "-f", "salary"); err == nil {
		t.Error("expected an error for a filter without '='")
	}
}

func TestExport_MatchesFilteredCount(t *testing.T) {
	o := gridOptions{q: "engineering"}
	_, g, req, err := o.build()
	if err != nil {
		t.Fatal(err)
	}
	want := g.Count(req)

	path := filepath.Join(t.TempDir(), "eng.csv")
	if _, err := run(t, "export", "-q", "engineering", "--out", path, "--no-bom"); err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\r\n"), "\r\n")
	if got := len(lines) - 1; got != want {
		t.Errorf("exported %d rows, want %d", got, want)
	}
	if !strings.HasPrefix(lines[0], "Id,Name,") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestExport_IDs(t *testing.T) {
	out, err := run(t, "export", "--ids", "3, 1", "--no-bom")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "1,") || !strings.HasPrefix(lines[2], "3,") {
		t.Errorf("rows = %q", lines[1:])
	}
}
