package adminapi

import (
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/talkincode/inventory/internal/webserver"
)

func registerOprLogRoutes() {
	webserver.ApiGET("/oprlogs", listOprLogs)
}

// listOprLogs returns the newest entries first; limit defaults to 100
func listOprLogs(c echo.Context) error {
	limit := cast.ToInt(c.QueryParam("limit"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return ok(c, GetAppContext(c).OprLogs().List(limit))
}
