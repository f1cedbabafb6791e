package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/inventory/internal/view"
	"github.com/talkincode/inventory/internal/webserver"
)

type dashboardQuery struct {
	Search string `json:"search"`
	Status string `json:"status"`
}

type catalogQuery struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

type sortPayload struct {
	Field string `json:"field" validate:"required"`
}

func registerViewRoutes() {
	webserver.ApiGET("/dashboard", getDashboard)
	webserver.ApiPUT("/dashboard/query", queryDashboard)
	webserver.ApiPOST("/dashboard/sort", sortDashboard)

	webserver.ApiGET("/catalog", getCatalog)
	webserver.ApiPUT("/catalog/query", queryCatalog)
	webserver.ApiPOST("/catalog/sort", sortCatalog)
	webserver.ApiPOST("/catalog/reset", resetCatalog)
}

// workspace returns the session's workspace, recreating it after a restart
func workspace(c echo.Context) *view.Workspace {
	return GetAppContext(c).Workspaces().Open(webserver.WorkspaceID(c))
}

func getDashboard(c echo.Context) error {
	var st view.DashboardState
	_ = workspace(c).Dashboard(func(d *view.Dashboard) error {
		st = d.State()
		return nil
	})
	return ok(c, st)
}

func queryDashboard(c echo.Context) error {
	var q dashboardQuery
	if err := c.Bind(&q); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse query", err.Error())
	}
	var st view.DashboardState
	err := workspace(c).Dashboard(func(d *view.Dashboard) error {
		if err := d.SetStatusFilter(q.Status); err != nil {
			return err
		}
		d.SetSearch(q.Search)
		st = d.State()
		return nil
	})
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid status filter", err.Error())
	}
	return ok(c, st)
}

func sortDashboard(c echo.Context) error {
	f, err := bindSortField(c)
	if err != nil {
		return sortError(c, err)
	}
	var st view.DashboardState
	err = workspace(c).Dashboard(func(d *view.Dashboard) error {
		if err := d.RequestSort(f); err != nil {
			return err
		}
		st = d.State()
		return nil
	})
	if err != nil {
		return sortError(c, err)
	}
	return ok(c, st)
}

func getCatalog(c echo.Context) error {
	var st view.CatalogState
	_ = workspace(c).Catalog(func(cat *view.Catalog) error {
		st = cat.State()
		return nil
	})
	return ok(c, st)
}

func queryCatalog(c echo.Context) error {
	var q catalogQuery
	if err := c.Bind(&q); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse query", err.Error())
	}
	var st view.CatalogState
	err := workspace(c).Catalog(func(cat *view.Catalog) error {
		if err := cat.SetStatusFilter(q.Status); err != nil {
			return err
		}
		cat.SetCategoryFilter(q.Category)
		cat.SetSearch(q.Search)
		st = cat.State()
		return nil
	})
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid status filter", err.Error())
	}
	return ok(c, st)
}

func sortCatalog(c echo.Context) error {
	f, err := bindSortField(c)
	if err != nil {
		return sortError(c, err)
	}
	var st view.CatalogState
	err = workspace(c).Catalog(func(cat *view.Catalog) error {
		if err := cat.RequestSort(f); err != nil {
			return err
		}
		st = cat.State()
		return nil
	})
	if err != nil {
		return sortError(c, err)
	}
	return ok(c, st)
}

func resetCatalog(c echo.Context) error {
	var st view.CatalogState
	_ = workspace(c).Catalog(func(cat *view.Catalog) error {
		cat.Reset()
		st = cat.State()
		return nil
	})
	return ok(c, st)
}

func bindSortField(c echo.Context) (view.Field, error) {
	var p sortPayload
	if err := c.Bind(&p); err != nil {
		return "", err
	}
	if err := c.Validate(&p); err != nil {
		return "", err
	}
	return view.ParseField(p.Field)
}

func sortError(c echo.Context, err error) error {
	if errors.Is(err, view.ErrUnknownField) || errors.Is(err, view.ErrUnsortableField) {
		return fail(c, http.StatusBadRequest, "INVALID_SORT", "Invalid sort field", err.Error())
	}
	return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse sort request", err.Error())
}
