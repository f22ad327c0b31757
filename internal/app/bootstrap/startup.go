// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/staffboard/internal/app/resources"
	"github.com/dalemusser/staffboard/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the dataset is
// loaded, but before the HTTP handler is built: shared templates and site
// chrome.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	viewdata.Init(viewdata.Site{
		Name:       appCfg.SiteName,
		FooterHTML: appCfg.FooterHTML,
	})

	logger.Info("staffboard ready",
		zap.String("site", appCfg.SiteName),
		zap.Int("records", deps.Dataset.Len()),
		zap.Int("page_size", appCfg.PageSize),
		zap.Ints("page_sizes", appCfg.PageSizeOptions))
	return nil
}
