package config

import (
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInstance(t *testing.T) {
	t.Setenv("APP_PORT", "3001")
	t.Setenv("APP_NAME", "polluxkart-admin-test")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB_NAME", "polluxkart_test")
	t.Setenv("JWT_SECRET", "config-test-secret")
	t.Setenv("JWT_EXPIRE_MINUTES", "60")
	t.Setenv("S3_BUCKET_NAME", "pollux-media")
	// Force the documented fallbacks regardless of the host environment.
	t.Setenv("ADMIN_SETUP_KEY", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("S3_REGION", "")
	t.Setenv("S3_BASE_URL", "")

	cfg := Instance()
	if cfg.AppPort != "3001" || cfg.AppName != "polluxkart-admin-test" {
		t.Fatalf("unexpected app config %+v", cfg)
	}
	if cfg.JWTExpireMinutes != 60 {
		t.Fatalf("unexpected expiry %d", cfg.JWTExpireMinutes)
	}
	if cfg.AdminSetupKey != "POLLUXKART_INITIAL_ADMIN_2025" {
		t.Fatalf("unexpected setup key fallback %q", cfg.AdminSetupKey)
	}
	if cfg.UploadDir != "uploads" || cfg.S3Region != "ap-south-1" {
		t.Fatalf("unexpected fallbacks %+v", cfg)
	}
	if cfg.S3BaseURL != "https://pollux-media.s3.ap-south-1.amazonaws.com" {
		t.Fatalf("unexpected derived base url %q", cfg.S3BaseURL)
	}

	if Instance() != cfg {
		t.Fatal("expected a singleton")
	}
}

func TestSetInt64(t *testing.T) {
	t.Setenv("CONFIG_TEST_INT", "")
	if got := setInt64("CONFIG_TEST_INT", 5); got != 5 {
		t.Fatalf("unset: got %d", got)
	}
	t.Setenv("CONFIG_TEST_INT", "12")
	if got := setInt64("CONFIG_TEST_INT", 5); got != 12 {
		t.Fatalf("set: got %d", got)
	}
	t.Setenv("CONFIG_TEST_INT", "abc")
	if got := setInt64("CONFIG_TEST_INT", 5); got != 5 {
		t.Fatalf("invalid: got %d", got)
	}
}

func TestStructAttrs(t *testing.T) {
	type sampleCfg struct {
		Port    string `json:"port"`
		Retries int64  `json:"retries"`
		AppName string
	}
	attrs := StructAttrs("data", sampleCfg{Port: "80", Retries: 3, AppName: "x"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "data.port" || attrs[0].Value.String() != "80" {
		t.Fatalf("unexpected attr %v", attrs[0])
	}
	if attrs[1].Key != "data.retries" || attrs[1].Value.Kind() != slog.KindInt64 || attrs[1].Value.Int64() != 3 {
		t.Fatalf("unexpected attr %v", attrs[1])
	}
	// No json tag falls back to snake case.
	if attrs[2].Key != "data.app_name" {
		t.Fatalf("unexpected key %q", attrs[2].Key)
	}
}

func TestToSafeConfigDropsSecrets(t *testing.T) {
	c := &Config{
		AppName:             "polluxkart-admin",
		MongoURI:            "mongodb://user:hunter2@db",
		JWTSecret:           "super-secret",
		CloudinaryAPISecret: "cld-secret",
		AdminSetupKey:       "setup-secret",
	}

	raw, err := json.Marshal(c.ToSafeConfig())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, secret := range []string{"hunter2", "super-secret", "cld-secret", "setup-secret"} {
		if strings.Contains(string(raw), secret) {
			t.Fatalf("safe config leaks %q: %s", secret, raw)
		}
	}
	if !strings.Contains(string(raw), "polluxkart-admin") {
		t.Fatalf("safe config lost app name: %s", raw)
	}
}
