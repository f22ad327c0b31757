// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/dalemusser/staffboard/internal/app/system/htmlsanitize"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is shown in the header when no site name is configured.
const DefaultSiteName = "Staffboard"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	SiteName   string
	FooterHTML template.HTML

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken     string
	CSRFFieldName string
}

// Site holds the site-wide values configured at startup.
type Site struct {
	Name       string
	FooterHTML string
}

var (
	mu     sync.RWMutex
	site   = Site{Name: DefaultSiteName}
	footer template.HTML
)

// Init sets the site name and footer. Footer markup is sanitized here, once.
// Call this once at startup from bootstrap.
func Init(s Site) {
	if s.Name == "" {
		s.Name = DefaultSiteName
	}
	safe := htmlsanitize.SafeHTML(s.FooterHTML)

	mu.Lock()
	defer mu.Unlock()
	site = s
	footer = safe
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	mu.RLock()
	s, f := site, footer
	mu.RUnlock()

	return BaseVM{
		SiteName:      s.Name,
		FooterHTML:    f,
		Title:         title,
		BackURL:       httpnav.ResolveBackURL(r, backDefault),
		CurrentPath:   httpnav.CurrentPath(r),
		CSRFToken:     csrf.Token(r),
		CSRFFieldName: CSRFFieldName,
	}
}

// CSRFFieldName is the form field gorilla/csrf reads the token from.
const CSRFFieldName = "gorilla.csrf.Token"
