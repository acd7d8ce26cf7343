package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, k, v string) {
	t.Helper()
	old, ok := os.LookupEnv(k)
	os.Setenv(k, v)
	t.Cleanup(func() {
		if ok {
			os.Setenv(k, old)
		} else {
			os.Unsetenv(k)
		}
	})
}

func baseRequiredEnv(t *testing.T) {
	t.Helper()
	setEnv(t, "DB_ADDR", "postgres://user:pass@db:5432/app")
	for _, k := range []string{"ENV", "HTTP_ADDR", "REDIS_ADDR", "BROKER_URL",
		"STATIC_ROOT", "STATIC_SRC", "ADMIN_EMAIL", "ADMIN_USERNAME",
		"ADMIN_PASSWORD", "READY_WAIT_TIMEOUT"} {
		setEnv(t, k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_MissingDBAddr(t *testing.T) {
	baseRequiredEnv(t)
	os.Unsetenv("DB_ADDR")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	baseRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Env != "dev" {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
	if cfg.HTTPAddr != "0.0.0.0:8000" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.StaticRoot != "staticfiles" {
		t.Fatalf("unexpected static root: %q", cfg.StaticRoot)
	}
	if len(cfg.StaticSrc) != 1 || cfg.StaticSrc[0] != "static" {
		t.Fatalf("unexpected static src: %v", cfg.StaticSrc)
	}
	if cfg.AdminEmail != "admin@wss.local" {
		t.Fatalf("unexpected admin email: %q", cfg.AdminEmail)
	}
	if cfg.AdminUsername != "admin" {
		t.Fatalf("unexpected admin username: %q", cfg.AdminUsername)
	}
	if cfg.ReadyWaitTimeout != 60*time.Second {
		t.Fatalf("unexpected ready wait timeout: %v", cfg.ReadyWaitTimeout)
	}
}

func TestLoad_ProdRequiresAdminEmail(t *testing.T) {
	baseRequiredEnv(t)
	setEnv(t, "ENV", "prod")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}

	setEnv(t, "ADMIN_EMAIL", "root@wss.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AdminEmail != "root@wss.com" {
		t.Fatalf("unexpected admin email: %q", cfg.AdminEmail)
	}
}

func TestLoad_RejectsNonEmailAdmin(t *testing.T) {
	baseRequiredEnv(t)
	setEnv(t, "ADMIN_EMAIL", "not-an-email")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_RejectsNonAMQPBroker(t *testing.T) {
	baseRequiredEnv(t)
	setEnv(t, "BROKER_URL", "redis://localhost:6379/0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_StaticSrcList(t *testing.T) {
	baseRequiredEnv(t)
	setEnv(t, "STATIC_SRC", "static:assets/vendor: ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.StaticSrc) != 2 || cfg.StaticSrc[0] != "static" || cfg.StaticSrc[1] != "assets/vendor" {
		t.Fatalf("unexpected static src: %v", cfg.StaticSrc)
	}
}

func TestLoad_DurationsParsed(t *testing.T) {
	baseRequiredEnv(t)
	setEnv(t, "READY_WAIT_TIMEOUT", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReadyWaitTimeout != 90*time.Second {
		t.Fatalf("unexpected ready wait timeout: %v", cfg.ReadyWaitTimeout)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	baseRequiredEnv(t)
	setEnv(t, "READY_WAIT_TIMEOUT", "ninety")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
}
