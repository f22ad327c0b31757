// internal/app/features/dashboard/types.go
package dashboard

import (
	"html/template"

	"github.com/dalemusser/staffboard/internal/app/system/viewdata"
)

// pageData is the view model for the full dashboard page.
type pageData struct {
	viewdata.BaseVM
	Main mainVM
}

// mainVM is everything inside #dashboard-main: controls, selection bar and
// grid. It is also the HTMX partial.
type mainVM struct {
	CSRFToken     string
	CSRFFieldName string

	Query       string
	FilterCount int
	Notice      string

	ReturnURL         string
	ExportURL         string
	ExportSelectedURL string

	Selection selectionVM
	Grid      gridVM
}

type selectionVM struct {
	Count       int
	AllSelected bool
	HeaderOp    string // op sent by the header checkbox: "all" or "none"
}

type gridVM struct {
	Sort      string
	Columns   []columnVM
	Rows      []rowVM
	Page      pageVM
	PageSizes []pageSizeVM
	Empty     bool
}

type columnVM struct {
	Field       string
	Header      string
	Pinned      string
	Style       template.CSS
	Checkbox    bool
	Sortable    bool
	SortURL     string
	SortDir     string
	SortArrow   string
	AriaSort    string
	FilterKind  string
	FilterName  string
	FilterID    string
	FilterValue string
	FilterHint  string
}

type rowVM struct {
	ID       string
	Selected bool
	Cells    []cellVM
}

type cellVM struct {
	HTML     template.HTML
	Title    string
	Pinned   string
	Style    template.CSS
	Checkbox bool
}

type pageVM struct {
	Number   int
	Pages    int
	Size     int
	Start    int
	End      int
	Filtered int
	Total    int
	HasPrev  bool
	HasNext  bool
	FirstURL string
	PrevURL  string
	NextURL  string
	LastURL  string
}

type pageSizeVM struct {
	Value    int
	Selected bool
}
