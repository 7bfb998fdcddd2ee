package bootstrap

import (
	"testing"
	"time"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "drls",
		JWTSecret:     "test-secret-not-for-production",
		JWTTTL:        time.Hour,
		BcryptCost:    12,
	}
}

func TestValidateConfig_AcceptsSaneConfig(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	if err := ValidateConfig(coreCfg, validAppConfig(), testLogger()); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
}

func TestValidateConfig_RejectsBrokenValues(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}

	broken := []func(*AppConfig){
		func(c *AppConfig) { c.MongoURI = "not-a-uri" },
		func(c *AppConfig) { c.JWTSecret = "" },
		func(c *AppConfig) { c.JWTTTL = 0 },
		func(c *AppConfig) { c.BcryptCost = 99 },
	}
	for i, mutate := range broken {
		cfg := validAppConfig()
		mutate(&cfg)
		if err := ValidateConfig(coreCfg, cfg, testLogger()); err == nil {
			t.Errorf("case %d: ValidateConfig accepted a broken config", i)
		}
	}
}

func TestValidateConfig_RejectsDefaultSecretInProd(t *testing.T) {
	cfg := validAppConfig()
	cfg.JWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, testLogger()); err != nil {
		t.Fatalf("dev should accept the default secret: %v", err)
	}
	if err := ValidateConfig(&config.CoreConfig{Env: "prod"}, cfg, testLogger()); err == nil {
		t.Error("prod must reject the default secret")
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	coreCfg := &config.CoreConfig{Env: "dev"}

	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, coreCfg, validAppConfig(), deps, testLogger()); err != nil {
			t.Fatalf("EnsureSchema round %d: %v", i, err)
		}
	}
}
