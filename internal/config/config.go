package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// App
	Env string // dev / staging / prod

	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Infrastructure
	DBAddr    string
	DBDebug   bool
	RedisAddr string // optional: cache / task result backend
	BrokerURL string // optional: AMQP task broker

	// Startup sequencing
	ReadyWaitTimeout time.Duration

	// Static assets
	StaticRoot string
	StaticSrc  []string

	// Administrative account
	AdminEmail    string
	AdminUsername string
	AdminPassword string // empty means generate at provisioning time
}

func Load() (*Config, error) {
	cfg := &Config{
		Env: getEnv("ENV", "dev"),
		// The container contract binds the server on all interfaces, port 8000.
		HTTPAddr:      getEnv("HTTP_ADDR", "0.0.0.0:8000"),
		StaticRoot:    getEnv("STATIC_ROOT", "staticfiles"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		DBDebug:       os.Getenv("DB_DEBUG") == "true",
	}

	// The database is required at startup: the whole startup sequence exists
	// to gate on it, migrate it, and provision the admin account in it.
	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	// Redis and the AMQP broker back the task queue. They are optional at
	// startup; when set they join the readiness gate.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	cfg.BrokerURL = os.Getenv("BROKER_URL")
	if cfg.BrokerURL != "" && !strings.HasPrefix(cfg.BrokerURL, "amqp://") && !strings.HasPrefix(cfg.BrokerURL, "amqps://") {
		return nil, fmt.Errorf("BROKER_URL must be an amqp:// or amqps:// URL")
	}

	// Static asset sources: colon-separated list of directories.
	cfg.StaticSrc = splitPaths(getEnv("STATIC_SRC", "static"))

	// The sentinel admin email. A development default is acceptable; outside
	// dev the operator must supply one.
	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	if cfg.AdminEmail == "" {
		if cfg.Env != "dev" {
			return nil, fmt.Errorf("missing required env var: ADMIN_EMAIL")
		}
		cfg.AdminEmail = "admin@wss.local"
	}
	if !strings.Contains(cfg.AdminEmail, "@") {
		return nil, fmt.Errorf("ADMIN_EMAIL must be an email address, got %q", cfg.AdminEmail)
	}

	wt, err := getDuration("READY_WAIT_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.ReadyWaitTimeout = wt

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wrt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wrt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func splitPaths(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ":") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
