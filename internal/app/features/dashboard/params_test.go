package dashboard

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/staffboard/internal/app/system/viewstate"
	"github.com/dalemusser/staffboard/internal/testutil"
)

func TestParseState(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name      string
		query     string
		wantQ     string
		wantPage  int
		wantSize  int
		wantGiven bool
		wantSort  string
		wantF     map[string]string
	}{
		{name: "defaults", query: "", wantPage: 1, wantSize: 5},
		{name: "all set", query: "q=+Ada++L+&page=3&size=10&sort=name:desc",
			wantQ: "Ada L", wantPage: 3, wantSize: 10, wantGiven: true, wantSort: "name:desc"},
		{name: "bad page", query: "page=abc", wantPage: 1, wantSize: 5},
		{name: "zero page", query: "page=0", wantPage: 1, wantSize: 5},
		{name: "size not offered", query: "size=7", wantPage: 1, wantSize: 5},
		{name: "unknown sort field dropped", query: "sort=bogus,age:asc", wantPage: 1, wantSize: 5, wantSort: "age:asc"},
		{name: "filters", query: "f.department=Sales&f.bogus=x&f.age=+&f.salary=%3E100", wantPage: 1, wantSize: 5,
			wantF: map[string]string{"department": "Sales", "salary": ">100"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			st := h.parseState(q, 0)
			if st.Q != tt.wantQ {
				t.Errorf("Q = %q, want %q", st.Q, tt.wantQ)
			}
			if st.Page != tt.wantPage || st.Size != tt.wantSize || st.SizeGiven != tt.wantGiven {
				t.Errorf("page/size = %d/%d (given %v), want %d/%d (given %v)",
					st.Page, st.Size, st.SizeGiven, tt.wantPage, tt.wantSize, tt.wantGiven)
			}
			if got := st.Sort.String(); got != tt.wantSort {
				t.Errorf("Sort = %q, want %q", got, tt.wantSort)
			}
			if len(st.Filters) != len(tt.wantF) {
				t.Fatalf("Filters = %v, want %v", st.Filters, tt.wantF)
			}
			for k, v := range tt.wantF {
				if st.Filters[k] != v {
					t.Errorf("Filters[%s] = %q, want %q", k, st.Filters[k], v)
				}
			}
		})
	}
}

func TestParseState_SessionSize(t *testing.T) {
	h := newTestHandler(t)
	st := h.parseState(url.Values{}, 20)
	if st.Size != 20 || st.SizeGiven {
		t.Errorf("size = %d (given %v), want session size 20", st.Size, st.SizeGiven)
	}
}

func TestGridState_URL(t *testing.T) {
	h := newTestHandler(t)
	q, _ := url.ParseQuery("q=ada&f.department=eng&sort=name&page=2&size=10")
	st := h.parseState(q, 5)

	if got, want := st.url(basePath), "/dashboard?f.department=eng&page=2&q=ada&size=10&sort=name%3Aasc"; got != want {
		t.Errorf("url = %q, want %q", got, want)
	}
	if got := st.withPage(1).url(basePath); strings.Contains(got, "page=") {
		t.Errorf("page 1 should be omitted: %q", got)
	}
	if got, want := st.cleared().url(basePath), "/dashboard?size=10&sort=name%3Aasc"; got != want {
		t.Errorf("cleared url = %q, want %q", got, want)
	}
	sorted := st.withSort(st.Sort.Cycle("name"))
	if sorted.Page != 1 || sorted.Sort.String() != "name:desc" {
		t.Errorf("withSort = page %d sort %q", sorted.Page, sorted.Sort.String())
	}
}

func TestSafeReturn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/dashboard"},
		{"/dashboard", "/dashboard"},
		{"/dashboard/", "/dashboard"},
		{"/dashboard?q=ada&page=2", "/dashboard?q=ada&page=2"},
		{"/dashboard/export.csv?q=x", "/dashboard"},
		{"//evil.example/dashboard", "/dashboard"},
		{"https://evil.example/dashboard", "/dashboard"},
		{`/\evil.example`, "/dashboard"},
		{"/health", "/dashboard"},
		{"dashboard", "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := safeReturn(tt.in).String(); got != tt.want {
				t.Errorf("safeReturn(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildMain(t *testing.T) {
	h := newTestHandler(t)
	req := testutil.NewRequest(http.MethodGet, "/dashboard")

	t.Run("query narrows rows", func(t *testing.T) {
		st := h.parseState(url.Values{"q": {"hopper"}}, 5)
		vm := h.buildMain(req, st, viewstate.State{})
		// Grace Hopper plus Alan Turing, managed by her.
		if vm.Grid.Page.Filtered != 2 || len(vm.Grid.Rows) != 2 {
			t.Fatalf("filtered = %d rows = %d, want 2", vm.Grid.Page.Filtered, len(vm.Grid.Rows))
		}
		if vm.Grid.Page.Total != 6 {
			t.Errorf("total = %d, want 6", vm.Grid.Page.Total)
		}
		if vm.Query != "hopper" || vm.Grid.Empty {
			t.Errorf("query = %q empty = %v", vm.Query, vm.Grid.Empty)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		st := h.parseState(url.Values{"q": {"zzzz"}}, 5)
		vm := h.buildMain(req, st, viewstate.State{})
		if !vm.Grid.Empty || len(vm.Grid.Rows) != 0 {
			t.Errorf("expected empty grid, got %d rows", len(vm.Grid.Rows))
		}
	})

	t.Run("page clamp", func(t *testing.T) {
		st := h.parseState(url.Values{"page": {"99"}}, 5)
		vm := h.buildMain(req, st, viewstate.State{})
		if vm.Grid.Page.Number != 2 || len(vm.Grid.Rows) != 1 {
			t.Errorf("page = %d rows = %d, want last page with 1 row", vm.Grid.Page.Number, len(vm.Grid.Rows))
		}
		if !strings.Contains(vm.ReturnURL, "page=2") {
			t.Errorf("return url not clamped: %q", vm.ReturnURL)
		}
	})

	t.Run("selection", func(t *testing.T) {
		st := h.parseState(url.Values{}, 5)
		vm := h.buildMain(req, st, viewstate.State{Selected: []string{"2", "4"}})
		if vm.Selection.Count != 2 || vm.Selection.AllSelected || vm.Selection.HeaderOp != "all" {
			t.Errorf("selection = %+v", vm.Selection)
		}
		checked := 0
		for _, row := range vm.Grid.Rows {
			if row.Selected {
				checked++
			}
		}
		if checked != vm.Selection.Count {
			t.Errorf("checked rows = %d, count = %d", checked, vm.Selection.Count)
		}

		all := h.buildMain(req, st, viewstate.State{Selected: []string{"1", "2", "3", "4", "5", "6"}})
		if !all.Selection.AllSelected || all.Selection.HeaderOp != "none" {
			t.Errorf("all selected = %+v", all.Selection)
		}
	})

	t.Run("columns and cells", func(t *testing.T) {
		st := h.parseState(url.Values{"sort": {"salary:desc"}}, 5)
		vm := h.buildMain(req, st, viewstate.State{})
		salary := vm.Grid.Columns[5]
		if salary.Field != "salary" || salary.SortArrow != "▼" || salary.AriaSort != "descending" {
			t.Errorf("salary column = %+v", salary)
		}
		if !strings.Contains(salary.SortURL, "sort=") {
			t.Errorf("sort url = %q", salary.SortURL)
		}
		first := vm.Grid.Rows[0]
		if first.ID != "2" {
			t.Fatalf("first row = %s, want 2", first.ID)
		}
		if got := string(first.Cells[5].HTML); got != "$185,000" {
			t.Errorf("salary cell = %q", got)
		}
		if got := first.Cells[5].Title; got != "Annual Salary: $185,000" {
			t.Errorf("salary tooltip = %q", got)
		}
		if !strings.Contains(vm.ExportSelectedURL, "only_selected=1") {
			t.Errorf("export selected url = %q", vm.ExportSelectedURL)
		}
	})
}
