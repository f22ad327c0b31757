package dashboard

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/dalemusser/staffboard/internal/app/store/employees"
	"github.com/dalemusser/staffboard/internal/app/system/metrics"
	"github.com/dalemusser/staffboard/internal/app/system/viewstate"
	"github.com/dalemusser/staffboard/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	ds := employees.NewDataset(testutil.Employees(), employees.SourceFile)
	state := viewstate.New(viewstate.Config{Key: testKey}, zap.NewNop())
	h, err := NewHandler(ds, state, metrics.Noop(), Options{PageSize: 5, PageSizes: []int{5, 10, 20}}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return h
}

// selectRows posts a selection change and returns the response carrying the
// updated view state cookie.
func selectRows(t *testing.T, h *Handler, op string, ids ...string) *testutil.ResponseRecorder {
	t.Helper()
	form := url.Values{"op": {op}, "id": ids, "return": {"/dashboard?sort=name"}}
	rec := testutil.NewRecorder()
	h.HandleSelection(rec, testutil.NewFormRequest("/dashboard/selection", form))
	return rec
}

func TestNewHandler_NormalizesOptions(t *testing.T) {
	ds := employees.NewDataset(testutil.Employees(), employees.SourceFile)
	state := viewstate.New(viewstate.Config{Key: testKey}, zap.NewNop())

	h, err := NewHandler(ds, state, nil, Options{PageSize: 7, PageSizes: []int{20, 5}}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	if h.Opts.PageSize != 5 {
		t.Errorf("PageSize = %d, want fallback 5", h.Opts.PageSize)
	}
	if h.Opts.PageSizes[0] != 5 || h.Opts.PageSizes[1] != 20 {
		t.Errorf("PageSizes not sorted: %v", h.Opts.PageSizes)
	}
	if h.Opts.ExportFilename != "employees.csv" {
		t.Errorf("ExportFilename = %q", h.Opts.ExportFilename)
	}
	if h.Metrics == nil {
		t.Error("nil metrics not replaced")
	}
}

func TestHandleSelection_RedirectsAndPersists(t *testing.T) {
	h := newTestHandler(t)

	rec := selectRows(t, h, "add", "1", "3", "999")
	rec.AssertRedirect(t, "/dashboard?sort=name")

	req := testutil.WithCookies(testutil.NewRequest(http.MethodGet, "/dashboard/selection"), rec.ResponseRecorder)
	out := testutil.NewRecorder()
	h.ServeSelection(out, req)
	out.AssertStatus(t, http.StatusOK)

	var body selectionResponse
	if err := json.Unmarshal(out.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 2 || strings.Join(body.IDs, ",") != "1,3" {
		t.Errorf("selection = %+v, want ids 1,3", body)
	}
}

func newLargeHandler(t *testing.T, n int) *Handler {
	t.Helper()
	ds := employees.NewDataset(testutil.ManyEmployees(n), employees.SourceFile)
	state := viewstate.New(viewstate.Config{Key: testKey}, zap.NewNop())
	h, err := NewHandler(ds, state, metrics.Noop(), Options{PageSize: 5, PageSizes: []int{5, 10}}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return h
}

func postSelection(h *Handler, prev *testutil.ResponseRecorder, op string, ids ...string) *testutil.ResponseRecorder {
	form := url.Values{"op": {op}, "id": ids, "return": {"/dashboard"}}
	req := testutil.NewFormRequest("/dashboard/selection", form)
	if prev != nil {
		req = testutil.WithCookies(req, prev.ResponseRecorder)
	}
	rec := testutil.NewRecorder()
	h.HandleSelection(rec, req)
	return rec
}

func readSelection(t *testing.T, h *Handler, from *testutil.ResponseRecorder) selectionResponse {
	t.Helper()
	rec := testutil.NewRecorder()
	h.ServeSelection(rec, testutil.WithCookies(testutil.NewRequest(http.MethodGet, "/dashboard/selection"), from.ResponseRecorder))
	var body selectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestHandleSelection_SelectAllLargeDataset(t *testing.T) {
	const n = 1500
	h := newLargeHandler(t, n)

	all := postSelection(h, nil, "all")
	all.AssertRedirect(t, "/dashboard")
	if len(all.Result().Cookies()) == 0 {
		t.Fatal("select-all did not set the view state cookie")
	}
	if got := readSelection(t, h, all); got.Count != n {
		t.Fatalf("count after select-all = %d, want %d", got.Count, n)
	}

	less := postSelection(h, all, "remove", "7")
	body := readSelection(t, h, less)
	if body.Count != n-1 {
		t.Fatalf("count after removing one = %d, want %d", body.Count, n-1)
	}
	for _, id := range body.IDs {
		if id == "7" {
			t.Fatal("removed id 7 still selected")
		}
	}

	rec := testutil.NewRecorder()
	h.ServeExportCSV(rec, testutil.WithCookies(
		testutil.NewRequest(http.MethodGet, "/dashboard/export.csv?only_selected=1"), less.ResponseRecorder))
	if got := len(csvLines(rec.Body.String())) - 1; got != n-1 {
		t.Errorf("exported %d selected rows, want %d", got, n-1)
	}
}

func TestHandleSelection_TooLargeKeepsPrevious(t *testing.T) {
	h := newLargeHandler(t, 3000)

	first := postSelection(h, nil, "add", "1", "2")
	if got := readSelection(t, h, first); got.Count != 2 {
		t.Fatalf("initial count = %d, want 2", got.Count)
	}

	// Every other id from 1001: under half the rows and nothing collapses.
	var ids []string
	for n := 1001; n < 3000; n += 2 {
		ids = append(ids, strconv.Itoa(n))
	}
	rec := postSelection(h, first, "add", ids...)
	rec.AssertStatus(t, http.StatusRequestEntityTooLarge)
	rec.AssertContains(t, "too large")
	if len(rec.Result().Cookies()) != 0 {
		t.Error("rejected selection still wrote a cookie")
	}
	if got := readSelection(t, h, first); got.Count != 2 {
		t.Errorf("stored count = %d, want the previous 2", got.Count)
	}
}

func TestHandleSelection_UnknownOp(t *testing.T) {
	h := newTestHandler(t)
	rec := selectRows(t, h, "explode", "1")
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeSelection_EmptyIsArray(t *testing.T) {
	h := newTestHandler(t)
	rec := testutil.NewRecorder()
	h.ServeSelection(rec, testutil.NewRequest(http.MethodGet, "/dashboard/selection"))
	rec.AssertContains(t, `"ids":[]`)
	rec.AssertContains(t, `"count":0`)
}

func TestHandleClearFilters(t *testing.T) {
	h := newTestHandler(t)
	form := url.Values{
		"return": {"/dashboard?q=ada&f.department=eng&sort=salary:desc&size=10&page=2"},
	}

	t.Run("redirect", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.HandleClearFilters(rec, testutil.NewFormRequest("/dashboard/clear", form))
		rec.AssertRedirect(t, "/dashboard?size=10&sort=salary%3Adesc")
	})

	t.Run("htmx", func(t *testing.T) {
		req := testutil.NewFormRequest("/dashboard/clear", form)
		req.Header.Set("HX-Request", "true")
		rec := testutil.NewRecorder()
		h.HandleClearFilters(rec, req)
		rec.AssertStatus(t, http.StatusOK)
		rec.AssertHeader(t, "HX-Redirect", "/dashboard?size=10&sort=salary%3Adesc")
	})

	t.Run("foreign return", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.HandleClearFilters(rec, testutil.NewFormRequest("/dashboard/clear",
			url.Values{"return": {"https://evil.example/dashboard?q=x"}}))
		rec.AssertRedirect(t, "/dashboard?size=5")
	})
}

func csvLines(body string) []string {
	body = strings.TrimPrefix(body, "\ufeff")
	return strings.Split(strings.TrimRight(body, "\r\n"), "\r\n")
}

func TestServeExportCSV_MatchesVisibleRows(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		query string
	}{
		{""},
		{"q=engineering"},
		{"f.salary=%3E80000"},
		{"q=sales&f.isActive=true"},
		{"q=nobody-matches-this"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			want := h.Grid.Count(h.request(h.parseState(q, 5)))

			rec := testutil.NewRecorder()
			h.ServeExportCSV(rec, testutil.NewRequest(http.MethodGet, "/dashboard/export.csv?"+tt.query))
			rec.AssertStatus(t, http.StatusOK)
			rec.AssertHeader(t, "Content-Type", "text/csv; charset=utf-8")

			lines := csvLines(rec.Body.String())
			if got := len(lines) - 1; got != want {
				t.Errorf("data rows = %d, want %d", got, want)
			}
		})
	}
}

func TestServeExportCSV_OnlySelected(t *testing.T) {
	h := newTestHandler(t)
	sel := selectRows(t, h, "add", "2", "6")

	req := testutil.WithCookies(
		testutil.NewRequest(http.MethodGet, "/dashboard/export.csv?only_selected=1&q=sales&filename=picked"),
		sel.ResponseRecorder)
	rec := testutil.NewRecorder()
	h.ServeExportCSV(rec, req)

	rec.AssertHeader(t, "Content-Disposition", `attachment; filename="picked.csv"`)
	lines := csvLines(rec.Body.String())
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2:\n%s", len(lines), rec.Body.String())
	}
	if !strings.HasPrefix(lines[1], "2,") || !strings.HasPrefix(lines[2], "6,") {
		t.Errorf("unexpected rows: %q", lines[1:])
	}
	if v := promtest.ToFloat64(h.Metrics.Exports.WithLabelValues("selected", "ok")); v != 1 {
		t.Errorf("exports{selected,ok} = %v, want 1", v)
	}
}

func TestServeRowsJSON(t *testing.T) {
	h := newTestHandler(t)
	rec := testutil.NewRecorder()
	h.ServeRowsJSON(rec, testutil.NewRequest(http.MethodGet, "/api/employees?sort=salary:desc&page=2&size=5"))
	rec.AssertStatus(t, http.StatusOK)

	var body rowsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Page.Number != 2 || body.Page.Pages != 2 || body.Page.FilteredRows != 6 {
		t.Errorf("page = %+v", body.Page)
	}
	// Lowest salary last: José (64000).
	if len(body.Rows) != 1 || body.Rows[0].ID != 5 {
		t.Errorf("rows = %+v, want only id 5", body.IDs)
	}
	if body.Sort != "salary:desc" {
		t.Errorf("sort = %q", body.Sort)
	}
}

func TestServeColumnsJSON(t *testing.T) {
	h := newTestHandler(t)
	rec := testutil.NewRecorder()
	h.ServeColumnsJSON(rec, testutil.NewRequest(http.MethodGet, "/api/columns"))

	var cols []columnJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &cols); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cols) != 14 {
		t.Fatalf("got %d columns, want 14", len(cols))
	}
	if cols[0].Field != "id" || !cols[0].Checkbox || cols[0].Pinned != "left" || cols[0].MaxWidth != 80 {
		t.Errorf("id column = %+v", cols[0])
	}
	if cols[0].Filter != "text" {
		t.Errorf("id filter = %q, want text", cols[0].Filter)
	}
	if cols[9].Header != "Rating" || cols[9].Filter != "number" {
		t.Errorf("rating column = %+v", cols[9])
	}
}

func TestServeRowsJSON_IDTextFilter(t *testing.T) {
	h := newTestHandler(t)
	rec := testutil.NewRecorder()
	// "^1" is a text startsWith; a number filter would ignore it.
	h.ServeRowsJSON(rec, testutil.NewRequest(http.MethodGet, "/api/employees?f.id=%5E1"))

	var body rowsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(body.IDs, ",") != "1" {
		t.Errorf("ids = %v, want [1]", body.IDs)
	}
}

func TestHandleBatchAction_CountsSelection(t *testing.T) {
	h := newTestHandler(t)
	sel := selectRows(t, h, "add", "1", "2")

	req := testutil.WithCookies(testutil.NewFormRequest("/dashboard/batch", url.Values{}), sel.ResponseRecorder)
	req.Header.Set("HX-Request", "true")

	// The template engine is not booted in unit tests; rendering may panic.
	func() {
		defer func() { _ = recover() }()
		h.HandleBatchAction(testutil.NewRecorder(), req)
	}()

	if v := promtest.ToFloat64(h.Metrics.BatchActions); v != 1 {
		t.Errorf("batch actions = %v, want 1", v)
	}
}

func TestRoutes_ExportRateLimited(t *testing.T) {
	ds := employees.NewDataset(testutil.Employees(), employees.SourceFile)
	state := viewstate.New(viewstate.Config{Key: testKey}, zap.NewNop())
	h, err := NewHandler(ds, state, nil, Options{ExportLimit: 2}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	defer h.Close()

	r := Routes(h)
	codes := make([]int, 3)
	for i := range codes {
		rec := testutil.NewRecorder()
		r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/export.csv"))
		codes[i] = rec.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}
}
