package main

import (
	"context"
	"expvar"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/todolist/app/todolist/api"
	"github.com/jrazmi/todolist/app/todolist/config"
	"github.com/jrazmi/todolist/bridge/scaffolding/mid"
	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/core/repositories/todosrepo/stores/todosmemstore"
	"github.com/jrazmi/todolist/core/repositories/todosrepo/stores/todospgxstore"
	"github.com/jrazmi/todolist/core/repositories/todosrepo/stores/todossqlitestore"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/infrastructure/sqlitedb"
	"github.com/jrazmi/todolist/infrastructure/web"
	"github.com/jrazmi/todolist/sdk/environment"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/telemetry"
)

var build = "develop"
var appName = "TODOLIST"

// storeOptions selects which Storer implementation backs the repository.
type storeOptions struct {
	Backend string `toml:"store_backend" env:"STORE_BACKEND" default:"memory"`
}

func main() {
	environment.LoadEnv()
	ctx := context.Background()

	tel := telemetry.NewTelemetry()
	log, err := logger.NewFromEnv(appName, logger.WithTraceID(tel.GetTraceID))
	if err != nil {
		fmt.Println("creating logger:", err)
		os.Exit(1)
	}

	if err := run(ctx, log, tel); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.Info(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	var storeCfg storeOptions
	configFile := environment.GetPrefixEnvOrDefault(appName, "CONFIG_FILE", "")
	if err := environment.ParseTOMLFile(configFile, &storeCfg); err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	if err := environment.ParseEnvTags(appName, &storeCfg); err != nil {
		return fmt.Errorf("store config: %w", err)
	}

	// STORE
	log.Info(ctx, "startup", "status", "initializing store", "backend", storeCfg.Backend)

	var storer todosrepo.Storer
	var readyCheck func(ctx context.Context) error

	switch storeCfg.Backend {
	case config.StoreMemory:
		storer = todosmemstore.NewStore(log)

	case config.StorePostgres:
		pool, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return fmt.Errorf("configuring postgres support: %w", err)
		}
		defer func() {
			log.Info(ctx, "shutdown", "status", "closing database connection")
			pool.Close()
		}()

		storer = todospgxstore.NewStore(log, pool)
		readyCheck = func(ctx context.Context) error {
			return postgresdb.StatusCheck(ctx, pool)
		}

	case config.StoreSQLite:
		db, err := sqlitedb.NewFromEnv(appName)
		if err != nil {
			return fmt.Errorf("configuring sqlite support: %w", err)
		}
		defer func() {
			log.Info(ctx, "shutdown", "status", "closing database connection")
			db.Close()
		}()

		store, err := todossqlitestore.NewStore(log, db)
		if err != nil {
			return fmt.Errorf("bootstrapping sqlite schema: %w", err)
		}
		storer = store
		readyCheck = func(ctx context.Context) error {
			return sqlitedb.StatusCheck(ctx, db)
		}

	default:
		return fmt.Errorf("unknown store backend %q", storeCfg.Backend)
	}

	// REPOSITORIES
	log.Info(ctx, "startup", "status", "initializing repository support")

	siteCfg := config.Todolist{
		Build:     build,
		Logger:    log,
		Telemetry: tel,
		Repositories: config.Repositories{
			Todos: todosrepo.NewRepository(log, storer),
		},
		ReadyCheck: readyCheck,
	}

	// WEB
	webHandler, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(log.Logger),
		web.WithTelemetry(tel),
		web.WithGlobalMiddleware(
			mid.Logger(log),
			mid.Errors(log),
			mid.Metrics(),
			mid.Panics(),
		),
	)
	if err != nil {
		return fmt.Errorf("webhandler: %w", err)
	}

	api.AddHandlers(webHandler, siteCfg)

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(webHandler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	if server.Config.EnableDebug {
		webHandler.HandleRaw("GET /debug/vars", expvar.Handler())
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.Info(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
