// internal/testutil/db.go

// Package testutil holds shared helpers for integration and handler tests:
// a throwaway Mongo database per test, domain fixtures, and request
// builders for authenticated handler calls.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoEnvVar names the environment variable holding the test Mongo URI.
// Tests that need a database are skipped when it is unset.
const mongoEnvVar = "DRLS_TEST_MONGO_URI"

// TestContext returns a context with a generous timeout for test database
// operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB connects to the test Mongo instance and returns a database
// unique to this test. The database is dropped during cleanup. Tests are
// skipped when DRLS_TEST_MONGO_URI is not set, so the unit suite stays runnable
// without infrastructure.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(mongoEnvVar)
	if uri == "" {
		t.Skipf("skipping: %s not set", mongoEnvVar)
	}

	ctx, cancel := TestContext()
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("ping test mongo: %v", err)
	}

	name := fmt.Sprintf("drls_test_%d", time.Now().UnixNano())
	db := client.Database(name)

	t.Cleanup(func() {
		ctx, cancel := TestContext()
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test database %s: %v", name, err)
		}
		_ = client.Disconnect(ctx)
	})

	return db
}
