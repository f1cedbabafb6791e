// Package adminapi exposes the inventory over JSON under /api.
package adminapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/inventory/internal/app"
	"github.com/talkincode/inventory/internal/inventory"
	"github.com/talkincode/inventory/internal/webserver"
)

// Init registers every admin route on the global web server
func Init() {
	registerAuthRoutes()
	registerItemRoutes()
	registerViewRoutes()
	registerExportRoutes()
	registerOprLogRoutes()
	registerMetricsRoutes()
}

func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppCtxKey).(app.AppContext)
}

func GetStore(c echo.Context) *inventory.Store {
	return GetAppContext(c).Store()
}

// operatorContext carries the logged in operator into store mutations
func operatorContext(c echo.Context) context.Context {
	name := webserver.Operator(c)
	if name == "" {
		return c.Request().Context()
	}
	return inventory.WithOperator(c.Request().Context(), name)
}
