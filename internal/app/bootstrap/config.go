// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dalemusser/staffboard/internal/app/store/employees"
	"github.com/dalemusser/staffboard/internal/app/system/limits"
	"github.com/dalemusser/staffboard/internal/app/system/paging"
	"github.com/dalemusser/staffboard/internal/app/system/viewdata"
	"github.com/dalemusser/staffboard/internal/app/system/viewstate"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Staffboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: dataset_source, page_size, etc.
//   - Environment variables: STAFFBOARD_DATASET_SOURCE, STAFFBOARD_PAGE_SIZE, etc.
//   - Command-line flags: --dataset_source, --page_size, etc.
var appConfigKeys = []config.AppKey{
	{Name: "dataset_source", Default: employees.SourceEmbedded, Desc: "Employee records source: 'embedded', 'file' or 'mongo'"},
	{Name: "dataset_path", Default: "", Desc: "JSON or YAML dataset file (dataset_source=file)"},

	// MongoDB (dataset_source=mongo)
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "staffboard", Desc: "MongoDB database name"},
	{Name: "mongo_collection", Default: employees.DefaultCollection, Desc: "MongoDB collection holding employees"},

	// Grid
	{Name: "page_size", Default: paging.DefaultPageSize, Desc: "Default rows per page"},
	{Name: "page_size_options", Default: "5,10,20,50,100", Desc: "Comma-separated page sizes offered to visitors"},

	// View state cookie
	{Name: "session_key", Default: "", Desc: "View state cookie signing key (blank generates a per-process key)"},
	{Name: "session_name", Default: viewstate.DefaultSessionName, Desc: "View state cookie name"},
	{Name: "session_domain", Default: "", Desc: "View state cookie domain (blank means current host)"},

	{Name: "csrf_key", Default: "", Desc: "32-byte CSRF key (required in prod)"},

	{Name: "export_filename", Default: "employees.csv", Desc: "Default CSV export file name"},
	{Name: "export_rate_limit", Default: limits.DefaultExportLimit, Desc: "CSV exports per client IP per minute (0 disables)"},
	{Name: "trust_proxy", Default: false, Desc: "Take client IPs from X-Forwarded-For/X-Real-IP (only behind a trusted proxy)"},

	{Name: "site_name", Default: viewdata.DefaultSiteName, Desc: "Site name shown in the header"},
	{Name: "footer_html", Default: "", Desc: "Footer markup (sanitized)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STAFFBOARD_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "STAFFBOARD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	sizes, err := parseSizes(appValues.String("page_size_options"))
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		DatasetSource: strings.ToLower(strings.TrimSpace(appValues.String("dataset_source"))),
		DatasetPath:   appValues.String("dataset_path"),

		MongoURI:        appValues.String("mongo_uri"),
		MongoDatabase:   appValues.String("mongo_database"),
		MongoCollection: appValues.String("mongo_collection"),

		PageSize:        appValues.Int("page_size"),
		PageSizeOptions: sizes,

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		CSRFKey: appValues.String("csrf_key"),

		ExportFilename:  appValues.String("export_filename"),
		ExportRateLimit: appValues.Int("export_rate_limit"),
		TrustProxy:      appValues.Bool("trust_proxy"),

		SiteName:   appValues.String("site_name"),
		FooterHTML: appValues.String("footer_html"),
	}

	return coreCfg, appCfg, nil
}

// parseSizes reads a comma-separated list of positive page sizes.
func parseSizes(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("page_size_options: invalid size %q", part)
		}
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The Mongo URI is only checked when MongoDB is the dataset source.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error

	switch appCfg.DatasetSource {
	case employees.SourceEmbedded:
	case employees.SourceFile:
		if appCfg.DatasetPath == "" {
			errs = append(errs, errors.New("dataset_source=file requires dataset_path"))
		} else if _, err := employees.FormatFromPath(appCfg.DatasetPath); err != nil {
			errs = append(errs, fmt.Errorf("dataset_path: %w", err))
		}
	case employees.SourceMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			errs = append(errs, fmt.Errorf("invalid MongoDB URI: %w", err))
		}
		if appCfg.MongoDatabase == "" || appCfg.MongoCollection == "" {
			errs = append(errs, errors.New("dataset_source=mongo requires mongo_database and mongo_collection"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown dataset_source %q (want embedded, file or mongo)", appCfg.DatasetSource))
	}

	if len(appCfg.PageSizeOptions) == 0 {
		errs = append(errs, errors.New("page_size_options must list at least one size"))
	} else if !slices.Contains(appCfg.PageSizeOptions, appCfg.PageSize) {
		errs = append(errs, fmt.Errorf("page_size %d is not one of page_size_options %v",
			appCfg.PageSize, appCfg.PageSizeOptions))
	}

	if appCfg.ExportRateLimit < 0 {
		errs = append(errs, fmt.Errorf("export_rate_limit must not be negative, got %d", appCfg.ExportRateLimit))
	}
	if appCfg.CSRFKey != "" && len(appCfg.CSRFKey) != 32 {
		errs = append(errs, fmt.Errorf("csrf_key must be exactly 32 bytes, got %d", len(appCfg.CSRFKey)))
	}
	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.CSRFKey == "" {
			errs = append(errs, errors.New("csrf_key is required in prod"))
		}
		if appCfg.SessionKey == "" {
			errs = append(errs, errors.New("session_key is required in prod"))
		}
	}

	return errors.Join(errs...)
}
