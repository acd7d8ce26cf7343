// Package bootstrap runs the container startup sequence: gate on external
// dependencies, connect, migrate the schema, materialize static assets,
// guarantee the administrative account, then build the HTTP server that
// main() hands control to.
package bootstrap

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/wss-platform/wss-backend/internal/config"
	"github.com/wss-platform/wss-backend/internal/infrastructure/db/postgres"
	rediscli "github.com/wss-platform/wss-backend/internal/infrastructure/redis"
	"github.com/wss-platform/wss-backend/internal/infrastructure/security"
	"github.com/wss-platform/wss-backend/internal/logger"
	"github.com/wss-platform/wss-backend/internal/metrics"
	"github.com/wss-platform/wss-backend/internal/migrate"
	"github.com/wss-platform/wss-backend/internal/readiness"
	"github.com/wss-platform/wss-backend/internal/staticfiles"
	http_handlers "github.com/wss-platform/wss-backend/internal/transport/http/handlers"
	"github.com/wss-platform/wss-backend/internal/transport/http/middleware"
	"github.com/wss-platform/wss-backend/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

type Deps struct {
	LoadConfig func() (*config.Config, error)

	WaitPostgres func(ctx context.Context, dsn string) error
	WaitRedis    func(ctx context.Context, addr string) error
	WaitRabbit   func(ctx context.Context, url string) error

	NewDB func(dsn string, debug bool) (*sql.DB, error)

	Migrate func(ctx context.Context, db *sql.DB) (int, error)

	CollectStatic func(root string, sources []string) (int, error)

	EnsureAdmin func(ctx context.Context, repo postgres.ProvisionRepo, hasher postgres.ProvisionHasher, spec postgres.AdminSpec) (postgres.AdminResult, error)

	NewRedis func(addr string) RedisClient

	NewRouter func(router.Deps) (http.Handler, error)
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var (
		db         *sql.DB
		cleanupFns []func()
	)

	// The whole readiness gate shares one deadline: a dependency that never
	// answers produces a clear failure instead of an indefinite hang.
	waitCtx, cancelWait := context.WithTimeout(context.Background(), cfg.ReadyWaitTimeout)
	defer cancelWait()

	steps := []Step{
		{Name: "wait:postgres", Run: func(context.Context) error {
			return deps.WaitPostgres(waitCtx, cfg.DBAddr)
		}},
	}

	if cfg.RedisAddr != "" {
		steps = append(steps, Step{Name: "wait:redis", Run: func(context.Context) error {
			return deps.WaitRedis(waitCtx, cfg.RedisAddr)
		}})
	}
	if cfg.BrokerURL != "" {
		steps = append(steps, Step{Name: "wait:amqp", Run: func(context.Context) error {
			return deps.WaitRabbit(waitCtx, cfg.BrokerURL)
		}})
	}

	steps = append(steps,
		Step{Name: "db:connect", Run: func(context.Context) error {
			d, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
			if err != nil {
				return err
			}
			db = d
			cleanupFns = append(cleanupFns, func() { _ = db.Close() })
			return nil
		}},

		Step{Name: "db:migrate", Run: func(ctx context.Context) error {
			n, err := deps.Migrate(ctx, db)
			if err != nil {
				return err
			}
			logger.Logger.Info().Int("applied", n).Msg("schema migrations applied")
			return nil
		}},

		Step{Name: "static:collect", Run: func(context.Context) error {
			n, err := deps.CollectStatic(cfg.StaticRoot, cfg.StaticSrc)
			if err != nil {
				return err
			}
			logger.Logger.Info().Int("files", n).Str("root", cfg.StaticRoot).Msg("static assets collected")
			return nil
		}},

		Step{Name: "admin:ensure", Run: func(ctx context.Context) error {
			repo := postgres.NewUserRepo(db)
			hasher := security.NewBcryptHasher(12)

			res, err := deps.EnsureAdmin(ctx, repo, hasher, postgres.AdminSpec{
				Email:    cfg.AdminEmail,
				Username: cfg.AdminUsername,
				Password: cfg.AdminPassword,
			})
			if err != nil {
				return err
			}

			if !res.Created {
				logger.Logger.Info().Str("email", res.Email).Msg("admin account already exists; skipping")
				return nil
			}

			metrics.AdminProvisioned()
			evt := logger.Logger.Info().Str("email", res.Email)
			if res.GeneratedPassword != "" {
				// printed exactly once; rotate after first login
				evt = evt.Str("generated_password", res.GeneratedPassword)
			}
			evt.Msg("admin account created")
			return nil
		}},
	)

	if err := runSteps(context.Background(), steps); err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// cache client for the readiness endpoint (best-effort)
	var cache http_handlers.Pinger
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr)
		cache = c
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	healthH := http_handlers.NewHealthHandler(db, cache)

	mux, err := deps.NewRouter(router.Deps{
		Health:      healthH,
		RequestIDMW: middleware.RequestID,
		MetricsMW:   middleware.Metrics,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig:    config.Load,
		WaitPostgres:  readiness.WaitPostgres,
		WaitRedis:     readiness.WaitRedis,
		WaitRabbit:    readiness.WaitRabbit,
		NewDB:         config.NewDB,
		Migrate:       migrate.Run,
		CollectStatic: staticfiles.Collect,
		EnsureAdmin:   postgres.EnsureAdmin,
		NewRedis: func(addr string) RedisClient {
			return rediscli.New(addr, "", 0)
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
