package config

import (
	"context"

	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/telemetry"
)

// site wide globals.
const (
	ApiRoute = "/api"
)

// Store backends selectable at startup.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Repositories holds the repositories this instance of the service needs.
type Repositories struct {
	Todos *todosrepo.Repository
}

// Todolist is the overall configuration for the todolist application.
type Todolist struct {
	Build     string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry

	Repositories Repositories

	// ReadyCheck pings the backing store. The readiness endpoint reports 503
	// when it fails. Nil means the backend has nothing to ping.
	ReadyCheck func(ctx context.Context) error
}
