// Package api registers the HTTP routes for the todolist service.
package api

import (
	"context"
	"net/http"
	"os"
	"runtime"

	"github.com/jrazmi/todolist/app/todolist/config"
	"github.com/jrazmi/todolist/bridge/repositories/todosrepobridge"
	"github.com/jrazmi/todolist/bridge/scaffolding/errs"
	"github.com/jrazmi/todolist/infrastructure/web"
)

// AddHandlers registers all API routes on the web handler.
func AddHandlers(wh *web.WebHandler, cfg config.Todolist) {
	group := wh.Group(config.ApiRoute)

	h := handlers{cfg: cfg}
	group.GET("/liveness", h.liveness)
	group.GET("/readiness", h.readiness)

	todosrepobridge.AddHttpRoutes(group, todosrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Todos,
	})
}

type handlers struct {
	cfg config.Todolist
}

type livenessInfo struct {
	Status     string `json:"status"`
	Build      string `json:"build"`
	Host       string `json:"host"`
	GOMAXPROCS int    `json:"GOMAXPROCS"`
}

func (h handlers) liveness(ctx context.Context, r *http.Request) web.Encoder {
	host, err := os.Hostname()
	if err != nil {
		host = "unavailable"
	}

	return web.NewJSONResponse(livenessInfo{
		Status:     "up",
		Build:      h.cfg.Build,
		Host:       host,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	})
}

func (h handlers) readiness(ctx context.Context, r *http.Request) web.Encoder {
	if h.cfg.ReadyCheck != nil {
		if err := h.cfg.ReadyCheck(ctx); err != nil {
			return errs.Newf(errs.Unavailable, "store not ready: %s", err)
		}
	}

	return web.NewJSONResponse(struct {
		Status string `json:"status"`
	}{Status: "ok"})
}
