package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"

	"ai-engine/internal/inference"
	"ai-engine/internal/services/health"
	"ai-engine/internal/shared/config"
	"ai-engine/internal/shared/server"
	"ai-engine/internal/shared/storage/db"
	"ai-engine/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	StartedAt        time.Time
	Router           *gin.Engine
	Prober           *health.Prober
	HealthService    *health.Service
	InferenceService *inference.Service
	HealthHandler    *health.Handler
	InferenceHandler *inference.Handler

	// BoundAddr is the listener address once the HTTP server has started.
	BoundAddr string
}

// Build prepares every dependency and the router. It does not touch the network.
func Build(cfg config.Config) (*App, error) {
	startedAt := time.Now()

	checker, err := buildChecker(cfg)
	if err != nil {
		return nil, err
	}
	prober := health.NewProber(checker, cfg.HealthProbeInterval, nil)

	app := &App{
		Config:           cfg,
		StartedAt:        startedAt,
		Prober:           prober,
		HealthService:    health.NewService(prober, startedAt, nil),
		InferenceService: inference.NewService(inference.NewTimeSeededProvider(), nil),
	}
	app.HealthHandler = health.NewHandler(app.HealthService)
	app.InferenceHandler = inference.NewHandler(app.InferenceService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		HealthHandler:    app.HealthHandler,
		InferenceHandler: app.InferenceHandler,
	})
	return app, nil
}

func buildChecker(cfg config.Config) (health.Checker, error) {
	target := db.Target{
		URL:      cfg.DatabaseURL,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		SSLMode:  cfg.DBSSLMode,
	}
	dsn := target.DSN(cfg.DBProbeTimeout)
	if err := db.CheckDSN(dsn); err != nil {
		return nil, fmt.Errorf("database target: %w", err)
	}

	opts := db.OptionsFromEnv(db.DefaultProbeOptions())
	opts.PingTimeout = cfg.DBProbeTimeout
	return health.DBChecker{DSN: dsn, Options: opts, Password: db.PasswordOf(dsn)}, nil
}

// Module wires the API process into an fx application.
func Module(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(Build, newHTTPServer),
		fx.Invoke(registerLifecycle),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: telemetry.Logger()}
		}),
	)
}

func newHTTPServer(app *App) *http.Server {
	return &http.Server{
		Addr:              app.Config.ListenAddr(),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *App, srv *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			app.BoundAddr = ln.Addr().String()

			// The prober outlives the start context.
			app.Prober.Start(context.Background())

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					telemetry.Error("server.failed", map[string]any{"error": err})
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			telemetry.Info("server.started", map[string]any{
				"addr":    app.BoundAddr,
				"env":     app.Config.Env,
				"version": health.Version,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, app.Config.ShutdownTimeout)
			defer cancel()

			var errs error
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("shutdown http: %w", err))
			}
			app.Prober.Stop()
			if errs == nil {
				telemetry.Info("server.stopped", map[string]any{"addr": app.BoundAddr})
			}
			return errs
		},
	})
}
