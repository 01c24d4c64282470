package todosrepobridge

import (
	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/infrastructure/web"
	"github.com/jrazmi/todolist/sdk/logger"
)

// Config holds configuration for the todo bridge.
type Config struct {
	Log        *logger.Logger
	Repository *todosrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for todos on the given group.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Repository)

	group.GET("/todos", b.httpList, cfg.Middleware...)
	group.GET("/todos/{todo_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/todos", b.httpCreate, cfg.Middleware...)
	group.PATCH("/todos/{todo_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/todos/{todo_id}", b.httpDelete, cfg.Middleware...)
}
