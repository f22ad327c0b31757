// internal/app/features/dashboard/batch.go
package dashboard

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/staffboard/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleBatchAction is the placeholder batch action on the selection
// ("Batch action (e.g., email)"). It records the request under a new batch
// id and shows a notice; nothing is sent.
// POST /dashboard/batch
func (h *Handler) HandleBatchAction(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	vs := h.loadState(r)
	ret := safeReturn(r.PostForm.Get("return"))
	st := h.parseState(ret.Query(), vs.PageSize)

	var notice string
	if len(vs.Selected) == 0 {
		notice = "Select at least one employee first."
	} else {
		batchID := uuid.NewString()
		h.Metrics.BatchActions.Inc()
		h.Log.Info("dashboard: batch action requested",
			zap.String("batch_id", batchID),
			zap.String("action", "email"),
			zap.Int("count", len(vs.Selected)),
			zap.Strings("ids", vs.Selected))
		notice = fmt.Sprintf("Batch action (e.g., email) recorded for %d selected (batch %s).",
			len(vs.Selected), batchID[:8])
	}

	vm := h.buildMain(r, st, vs)
	vm.Notice = notice

	if isHTMX(r) {
		templates.RenderSnippet(w, "dashboard_main", vm)
		return
	}
	templates.Render(w, r, "dashboard_page", pageData{
		BaseVM: viewdata.NewBaseVM(r, pageTitle, "/"),
		Main:   vm,
	})
}
