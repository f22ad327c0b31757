// internal/app/features/dashboard/params.go
package dashboard

import (
	"errors"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dalemusser/staffboard/internal/app/system/grid"
	"github.com/dalemusser/staffboard/internal/app/system/search"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const filterPrefix = "f."

// rawParams are the bookmarkable dashboard parameters as they arrive.
type rawParams struct {
	Q    string `validate:"max=200"`
	Page string `validate:"omitempty,number,min=1,max=9"`
	Size string `validate:"omitempty,number,min=1,max=4"`
	Sort string `validate:"max=512"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func paramValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// gridState is one dashboard view: the quick filter, the raw floating
// filter expressions, the sort model and the page. It round-trips through
// the query string.
type gridState struct {
	Q       string
	Filters map[string]string
	Sort    grid.SortModel
	Page    int
	Size    int
	// SizeGiven is true when size came from the request rather than the
	// session or the default.
	SizeGiven bool
}

// parseState reads a gridState from query values. Invalid values fall back
// to defaults and are logged at debug level; they are never errors.
// fallbackSize is used when size is missing or not an allowed option.
func (h *Handler) parseState(q url.Values, fallbackSize int) gridState {
	raw := rawParams{
		Q:    q.Get("q"),
		Page: strings.TrimSpace(q.Get("page")),
		Size: strings.TrimSpace(q.Get("size")),
		Sort: q.Get("sort"),
	}
	if err := paramValidator().Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				h.Log.Debug("dashboard: ignoring invalid parameter",
					zap.String("param", strings.ToLower(fe.Field())),
					zap.String("rule", fe.Tag()))
				switch fe.Field() {
				case "Page":
					raw.Page = ""
				case "Size":
					raw.Size = ""
				case "Sort":
					raw.Sort = ""
				}
			}
		}
	}

	st := gridState{
		Q:       search.Normalize(raw.Q),
		Filters: map[string]string{},
		Sort:    h.Grid.CleanSort(grid.ParseSort(raw.Sort)),
		Page:    1,
		Size:    fallbackSize,
	}
	if n, err := strconv.Atoi(raw.Page); err == nil && n >= 1 {
		st.Page = n
	}
	if n, err := strconv.Atoi(raw.Size); err == nil && slices.Contains(h.Opts.PageSizes, n) {
		st.Size = n
		st.SizeGiven = true
	} else if raw.Size != "" {
		h.Log.Debug("dashboard: ignoring page size", zap.String("size", raw.Size))
	}
	if !slices.Contains(h.Opts.PageSizes, st.Size) {
		st.Size = h.Opts.PageSize
	}

	for key, vals := range q {
		field, ok := strings.CutPrefix(key, filterPrefix)
		if !ok || len(vals) == 0 {
			continue
		}
		expr := strings.TrimSpace(vals[0])
		if expr == "" {
			continue
		}
		if _, known := h.Grid.Column(field); !known {
			continue
		}
		st.Filters[field] = expr
	}
	return st
}

// request converts the state into a grid request.
func (h *Handler) request(st gridState) grid.Request {
	return grid.Request{
		QuickFilter: st.Q,
		Filters:     h.Grid.ParseFilters(st.Filters),
		Sort:        st.Sort,
		Page:        st.Page,
		PageSize:    st.Size,
	}
}

// values encodes the state. Defaults are left out so URLs stay short.
func (st gridState) values() url.Values {
	v := url.Values{}
	if st.Q != "" {
		v.Set("q", st.Q)
	}
	fields := make([]string, 0, len(st.Filters))
	for f := range st.Filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		v.Set(filterPrefix+f, st.Filters[f])
	}
	if len(st.Sort) > 0 {
		v.Set("sort", st.Sort.String())
	}
	if st.Page > 1 {
		v.Set("page", strconv.Itoa(st.Page))
	}
	if st.Size > 0 {
		v.Set("size", strconv.Itoa(st.Size))
	}
	return v
}

// url returns path with the state as its query string.
func (st gridState) url(path string) string {
	if enc := st.values().Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// withPage returns a copy of st on page n.
func (st gridState) withPage(n int) gridState {
	st.Page = n
	return st
}

// withSort returns a copy of st with a new sort model. The page resets.
func (st gridState) withSort(m grid.SortModel) gridState {
	st.Sort = m
	st.Page = 1
	return st
}

// cleared drops the quick filter and every column filter, keeping sort and
// page size.
func (st gridState) cleared() gridState {
	st.Q = ""
	st.Filters = map[string]string{}
	st.Page = 1
	return st
}

// safeReturn accepts only local dashboard URLs as redirect targets and
// returns the parsed URL. Anything else falls back to the dashboard root.
func safeReturn(raw string) *url.URL {
	def := &url.URL{Path: basePath}
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return def
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return def
	}
	if u.Path != basePath && u.Path != basePath+"/" {
		return def
	}
	return &url.URL{Path: basePath, RawQuery: u.RawQuery}
}
