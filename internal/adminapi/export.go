package adminapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/inventory/internal/export"
	"github.com/talkincode/inventory/internal/webserver"
	"go.uber.org/zap"
)

func registerExportRoutes() {
	webserver.ApiGET("/items/export", exportItems)
}

// exportItems downloads the full, unfiltered collection
func exportItems(c echo.Context) error {
	items := GetStore(c).Snapshot()

	var (
		buf         bytes.Buffer
		err         error
		filename    string
		contentType string
	)
	switch format := strings.ToLower(c.QueryParam("format")); format {
	case "", "csv":
		err = export.WriteCSV(&buf, items)
		filename, contentType = export.CSVFilename, export.CSVContentType
	case "xlsx":
		err = export.WriteXLSX(&buf, items)
		filename, contentType = export.XLSXFilename, export.XLSXContentType
	default:
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unsupported export format", format)
	}
	if err != nil {
		zap.L().Error("export failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export items", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
