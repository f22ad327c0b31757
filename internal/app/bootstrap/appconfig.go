// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// AppConfig carries everything specific to the dashboard: where the
// employee records come from, paging defaults, cookie and CSRF keys, and
// site chrome.
type AppConfig struct {
	// Dataset source: "embedded" (bundled JSON), "file" or "mongo".
	DatasetSource string
	DatasetPath   string // JSON or YAML file, used when DatasetSource is "file"

	// MongoDB configuration (only used when DatasetSource is "mongo")
	MongoURI        string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase   string // Database name within MongoDB
	MongoCollection string // Collection holding employee documents

	// Grid defaults
	PageSize        int   // Rows per page when the visitor has not picked one
	PageSizeOptions []int // Sizes offered in the page-size picker

	// View state cookie configuration
	SessionKey    string // Secret key for signing the view state cookie
	SessionName   string // Cookie name (default: staffboard-view)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection for POST routes
	CSRFKey string // 32-byte key; blank generates one per process in dev

	// Export
	ExportFilename  string // Default CSV download name
	ExportRateLimit int    // CSV downloads per client IP per minute; 0 disables

	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP. Only
	// enable behind a reverse proxy that sets them.
	TrustProxy bool

	// Site chrome
	SiteName   string
	FooterHTML string // Sanitized before display
}
