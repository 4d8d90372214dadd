// pkg/hostfx/hostfx.go
package hostfx

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/RyanR100/ServiceStack/pkg/access"
	"github.com/RyanR100/ServiceStack/pkg/dispatch"
	"github.com/RyanR100/ServiceStack/pkg/hostconfig"
	"github.com/RyanR100/ServiceStack/pkg/middleware/auth"
	"github.com/RyanR100/ServiceStack/pkg/middleware/logger"
	"github.com/RyanR100/ServiceStack/pkg/middleware/metrics"
	"github.com/RyanR100/ServiceStack/pkg/route"
	"github.com/RyanR100/ServiceStack/pkg/transport/httpx"
)

// Options allow per-service env keys/defaults without code duplication.
type Options struct {
	Service       string // "orders", "billing", etc.
	ConfigEnv     string // e.g. "ORDERS_HOST_CONFIG"
	DefaultConfig string // e.g. "host.toml"
	ListenAddrEnv string // e.g. "SERVER_LISTEN_ADDRESS"
	TLSCertEnv    string // e.g. "SSL_SERVER_CERTIFICATE"
	TLSKeyEnv     string // e.g. "SSL_SERVER_KEY"
}

// ---- Config ----

func provideConfig(opts Options, log *zap.Logger) hostconfig.Config {
	cfgPath := envOr(opts.ConfigEnv, opts.DefaultConfig)
	cfg, err := hostconfig.Load(cfgPath)
	if err != nil {
		log.Fatal("host config load failed", zap.Error(err), zap.String("path", cfgPath))
	}
	if addr := envOr(opts.ListenAddrEnv, ""); addr != "" {
		cfg.Server.Listen = addr
	}
	return cfg
}

// ---- Controller ----

type controllerDeps struct {
	fx.In

	Cfg    hostconfig.Config
	Source dispatch.Source
	Log    *zap.Logger

	Factory dispatch.InstanceFactory `optional:"true"`
	Pre     dispatch.PreHook         `optional:"true"`
	Post    dispatch.PostHook        `optional:"true"`
}

// provideController runs the whole build phase: route table, evaluator,
// registry load from the caller-supplied discovery source, then freeze.
// Build failures are fatal; the process never reaches the serve phase.
func provideController(d controllerDeps) *dispatch.Controller {
	table := route.NewTable()
	evaluator := access.NewEvaluator(d.Cfg.Restrictions.Enabled)
	registry := dispatch.NewRegistry(table, evaluator, logger.DispatchObserver{Log: d.Log})

	if err := registry.Load(d.Source); err != nil {
		d.Log.Fatal("handler registration failed", zap.Error(err), zap.String("service", d.Cfg.Service))
	}
	registry.Freeze()

	d.Log.Info("dispatch build complete",
		zap.String("service", d.Cfg.Service),
		zap.Int("handlers", registry.Len()),
		zap.Int("routes", table.Len()),
		zap.Bool("restrictions", evaluator.Enabled()),
	)

	pipeline := dispatch.NewPipeline(d.Factory, d.Pre, d.Post)
	return dispatch.NewController(registry, table, evaluator, pipeline)
}

// ---- Router ----

type routerDeps struct {
	fx.In

	AuthMW *auth.Middleware
	LogMW  *logger.Middleware

	Metrics http.Handler `name:"metrics"`

	Controller *dispatch.Controller
	R          httpx.Router
}

func provideRouter(d routerDeps) http.Handler {
	return httpx.BuildHandler(httpx.BuildDeps{
		Controller: d.Controller,
		Auth:       d.AuthMW,
		LogMW:      d.LogMW,
		Metrics:    d.Metrics,
		Router:     d.R,
	})
}

// ---- Server lifecycle ----

type serverDeps struct {
	fx.In

	Opts   Options
	Cfg    hostconfig.Config
	Logger *zap.Logger
	App    http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	cert := os.Getenv(d.Opts.TLSCertEnv)
	key := os.Getenv(d.Opts.TLSKeyEnv)
	if cert == "" {
		cert = d.Cfg.Server.TLSCert
	}
	if key == "" {
		key = d.Cfg.Server.TLSKey
	}

	srv := &http.Server{
		Addr:         d.Cfg.Server.Listen,
		Handler:      d.App,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Opts.Service),
					zap.String("addr", srv.Addr),
					zap.String("cert", cert),
				)
				go func() {
					if err := srv.ListenAndServeTLS(cert, key); err != nil && err != http.ErrServerClosed {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			} else {
				d.Logger.Info("server starting (PLAINTEXT)",
					zap.String("service", d.Opts.Service),
					zap.String("addr", srv.Addr),
				)
				go func() {
					srv.TLSConfig = nil
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Opts.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---- Public Fx module ----

// Module assembles a dispatch host. The caller supplies a dispatch.Source
// (and optionally an InstanceFactory and pre/post hooks) in its own fx
// options; everything else is provided here.
func Module(opts Options) fx.Option {
	return fx.Options(
		// Supply options to DI.
		fx.Supply(opts),

		// Middleware modules
		auth.Module,
		logger.Module,

		// Metrics (named)
		fx.Provide(fx.Annotate(metrics.ProvideMetrics, fx.ResultTags(`name:"metrics"`))),

		// Router implementation
		fx.Provide(httpx.NewChi),

		// Host config + dispatch build phase
		fx.Provide(provideConfig),
		fx.Provide(provideController),

		// Router (named "app")
		fx.Provide(
			fx.Annotate(
				provideRouter,
				fx.ResultTags(`name:"app"`),
			),
		),

		// App lifecycle (starts the HTTP server)
		fx.Invoke(registerHooks),
	)
}

// ---- helpers ----

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func envOr(k, def string) string {
	if k == "" {
		return def
	}
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
