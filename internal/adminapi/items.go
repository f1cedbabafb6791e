package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/talkincode/inventory/internal/domain"
	"github.com/talkincode/inventory/internal/inventory"
	"github.com/talkincode/inventory/internal/view"
	"github.com/talkincode/inventory/internal/webserver"
	"github.com/talkincode/inventory/pkg/common"
)

type itemList struct {
	View  string                 `json:"view"`
	Sort  view.SortConfig        `json:"sort"`
	Items []domain.InventoryItem `json:"items"`
	Stats view.Stats             `json:"stats"`
	Total int                    `json:"total"`
	Empty bool                   `json:"empty"`
}

func registerItemRoutes() {
	webserver.ApiGET("/items", listItems)
	webserver.ApiGET("/items/:id", getItem)
	webserver.ApiPOST("/items", createItem)
	webserver.ApiPUT("/items/:id", updateItem)
	webserver.ApiDELETE("/items/:id", deleteItem)
	webserver.ApiGET("/categories", listCategories)
}

// listItems runs the filter, sort and aggregate pipeline over the current
// collection without touching any session state
func listItems(c echo.Context) error {
	cfg, err := view.LookupConfig(c.QueryParam("view"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown view", err.Error())
	}

	status := strings.TrimSpace(c.QueryParam("status"))
	if !common.IsEmptyOrAll(status) {
		st, ok := domain.ParseStatus(status)
		if !ok {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown status", status)
		}
		status = string(st)
	}
	criteria := view.Criteria{
		Search: c.QueryParam("q"),
		Equals: map[view.Field]string{
			view.FieldStatus:   status,
			view.FieldCategory: strings.TrimSpace(c.QueryParam("category")),
		},
	}

	sortCfg, err := parseSort(cfg, c.QueryParam("sort"), c.QueryParam("order"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_SORT", "Invalid sort field", err.Error())
	}

	items := view.Sort(view.Filter(GetStore(c).Snapshot(), cfg, criteria), sortCfg)
	return ok(c, itemList{
		View:  cfg.Name,
		Sort:  sortCfg,
		Items: items,
		Stats: view.Aggregate(items),
		Total: len(items),
		Empty: len(items) == 0,
	})
}

// parseSort reads sort/order query values; an empty sort falls back to the
// view default
func parseSort(cfg view.ViewConfig, field, order string) (view.SortConfig, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return cfg.DefaultSort, nil
	}
	f, err := view.ParseField(field)
	if err != nil {
		return view.SortConfig{}, err
	}
	if !cfg.CanSort(f) {
		return view.SortConfig{}, errors.Wrapf(view.ErrUnsortableField, "%q", f)
	}
	dir := view.Asc
	if strings.EqualFold(strings.TrimSpace(order), string(view.Desc)) {
		dir = view.Desc
	}
	return view.SortConfig{Field: f, Direction: dir}, nil
}

func parseID(c echo.Context) (int64, error) {
	return cast.ToInt64E(c.Param("id"))
}

func getItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid item ID", nil)
	}
	item, err := GetStore(c).Get(id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	}
	return ok(c, item)
}

func createItem(c echo.Context) error {
	var payload domain.ItemInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse item", err.Error())
	}
	item, err := GetStore(c).Create(operatorContext(c), payload)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, item)
}

func updateItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid item ID", nil)
	}
	var payload domain.ItemInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse item", err.Error())
	}
	item, err := GetStore(c).Update(operatorContext(c), id, payload)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, item)
}

func deleteItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid item ID", nil)
	}
	item, err := GetStore(c).Delete(operatorContext(c), id)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, item)
}

func listCategories(c echo.Context) error {
	return ok(c, GetStore(c).Categories())
}

func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	case errors.Is(err, inventory.ErrInvalidItem):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid item", err.Error())
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Item operation failed", err.Error())
	}
}
