// internal/app/system/limits/limits.go
package limits

import "time"

// Request body size limits for dashboard forms.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxFormSize bounds the selection, clear and batch form posts. A
	// select-all post carries no ids, so this only caps hand-built requests.
	MaxFormSize = 64 << 10 // 64 KB
)

// Export throttling defaults, per client IP.
const (
	DefaultExportLimit  = 30
	DefaultExportWindow = time.Minute
)
