// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/notify"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for the app. The struct
// travels by value through the lifecycle hooks, so everything in it is a
// pointer.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Publisher *notify.Publisher

	NotificationCleanup *workers.NotificationCleanup
}
