// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/staffboard/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// pageData is the basic view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Message string
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// NotFound renders a friendly "page not found" page with status 404.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("not found", zap.String("path", r.URL.Path))
	h.render(w, r, http.StatusNotFound, "Page not found",
		"The page you asked for does not exist.")
}

// MethodNotAllowed renders a 405 for routes that exist under another method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusMethodNotAllowed, "Not allowed",
		"That action is not available here.")
}

// Forbidden is used as the CSRF failure handler: the form was stale or
// posted from elsewhere.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.Log.Warn("request rejected", zap.String("path", r.URL.Path),
		zap.String("method", r.Method))
	h.render(w, r, http.StatusForbidden, "Request expired",
		"Your session token was missing or out of date. Reload the page and try again.")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title, msg string) {
	// HTMX swaps would drop an error page into the grid; send plain text.
	if r.Header.Get("HX-Request") == "true" {
		http.Error(w, msg, status)
		return
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, "/dashboard"),
		Message: msg,
	}
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}
