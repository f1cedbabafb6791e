package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/talkincode/inventory/internal/webserver"
	"github.com/talkincode/inventory/pkg/metrics"
)

func registerMetricsRoutes() {
	webserver.ApiGET("/metrics/:name", queryMetrics)
}

// queryMetrics returns the gauge series between start and end (unix
// seconds, both inclusive). The default window is the last hour up to now.
func queryMetrics(c echo.Context) error {
	end := time.Now()
	start := end.Add(-time.Hour)
	if v := c.QueryParam("start"); v != "" {
		ts, err := cast.ToInt64E(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid start", v)
		}
		start = time.Unix(ts, 0)
	}
	if v := c.QueryParam("end"); v != "" {
		ts, err := cast.ToInt64E(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid end", v)
		}
		end = time.Unix(ts, 0)
	}
	points, err := metrics.Query(c.Param("name"), start, end)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to query metrics", err.Error())
	}
	return ok(c, points)
}
