// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/staffboard/internal/app/store/employees"
	"github.com/dalemusser/staffboard/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectDB loads the employee dataset from the configured source. For the
// mongo source it connects, reads the collection once and keeps the client
// for health checks.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts overridden from environment",
			zap.Int("count", n),
			zap.Duration("ping", cur.Ping),
			zap.Duration("load", cur.Load),
			zap.Duration("seed", cur.Seed))
	}

	if appCfg.DatasetSource != employees.SourceMongo {
		ds, err := loadLocalDataset(appCfg)
		if err != nil {
			logger.Error("dataset load failed", zap.String("source", appCfg.DatasetSource), zap.Error(err))
			return DBDeps{}, err
		}
		logger.Info("dataset loaded",
			zap.String("source", ds.Source()),
			zap.String("path", appCfg.DatasetPath),
			zap.Int("records", ds.Len()))
		return DBDeps{Dataset: ds}, nil
	}

	cctx, cancel := timeouts.WithTimeout(ctx, timeouts.Load(), logger, "mongo connect")
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(appCfg.MongoDatabase)
	ds, err := employees.New(db, appCfg.MongoCollection).Load(cctx)
	switch {
	case errors.Is(err, employees.ErrEmptyDataset):
		logger.Warn("mongo collection has no employees; dashboard will be empty",
			zap.String("database", appCfg.MongoDatabase),
			zap.String("collection", appCfg.MongoCollection))
	case err != nil:
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("load employees from mongo: %w", err)
	}

	logger.Info("dataset loaded",
		zap.String("source", ds.Source()),
		zap.String("database", appCfg.MongoDatabase),
		zap.String("collection", appCfg.MongoCollection),
		zap.Int("records", ds.Len()))

	return DBDeps{
		Dataset:       ds,
		MongoClient:   client,
		MongoDatabase: db,
	}, nil
}

// loadLocalDataset reads the bundled records or a dataset file.
func loadLocalDataset(appCfg AppConfig) (*employees.Dataset, error) {
	switch appCfg.DatasetSource {
	case employees.SourceEmbedded, "":
		return employees.LoadBundled()
	case employees.SourceFile:
		return employees.LoadFile(appCfg.DatasetPath)
	default:
		return nil, fmt.Errorf("unknown dataset_source %q", appCfg.DatasetSource)
	}
}

// EnsureSchema reports dataset problems and, for the mongo source, creates
// the id index. Problems are logged; they never stop startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Dataset != nil {
		issues := employees.Lint(deps.Dataset.All())
		for _, is := range issues {
			logger.Warn("dataset record issue",
				zap.Int("id", is.ID),
				zap.Int("index", is.Index),
				zap.String("field", is.Field),
				zap.String("rule", is.Rule),
				zap.String("message", is.Message))
		}
		if len(issues) > 0 {
			logger.Warn("dataset loaded with issues", zap.Int("issues", len(issues)))
		}
	}

	if deps.MongoDatabase == nil {
		return nil
	}
	ictx, cancel := timeouts.WithTimeout(ctx, timeouts.Load(), logger, "ensure indexes")
	defer cancel()
	if err := employees.New(deps.MongoDatabase, appCfg.MongoCollection).EnsureIndexes(ictx); err != nil {
		logger.Error("ensure employee indexes failed", zap.Error(err))
		return fmt.Errorf("ensure employee indexes: %w", err)
	}
	return nil
}
