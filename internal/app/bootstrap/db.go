// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/indexes"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema applies collection validators and indexes. Both are
// idempotent, so startup on an existing database is safe.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return err
	}
	logger.Info("database schema ensured")
	return nil
}
