// internal/app/bootstrap/connectdb.go
package bootstrap

import (
	"context"

	notificationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/notifications"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/notify"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and builds the backend
// dependencies the rest of the app uses: the event publisher and the
// notification cleanup worker. The worker is built here so Shutdown can
// reach it; Startup starts it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return DBDeps{}, err
	}
	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	publisher, err := notify.NewPublisher(appCfg.AMQPURL, logger)
	if err != nil {
		return DBDeps{}, err
	}

	cleanup := workers.NewNotificationCleanup(notificationstore.New(db), logger,
		appCfg.NotificationCleanupInterval, appCfg.NotificationRetention)

	return DBDeps{
		MongoClient:         client,
		MongoDatabase:       db,
		Publisher:           publisher,
		NotificationCleanup: cleanup,
	}, nil
}
