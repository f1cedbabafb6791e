package export

import (
	"io"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"
	"github.com/talkincode/inventory/internal/domain"
)

// SheetName is the worksheet holding the exported rows
const SheetName = "Sheet1"

// WriteXLSX writes items as a single worksheet with the same columns as the CSV export
func WriteXLSX(w io.Writer, items []domain.InventoryItem) error {
	f := excelize.NewFile()
	for col, name := range Header {
		f.SetCellValue(SheetName, cellName(col, 1), name)
	}
	for i, it := range items {
		row := i + 2
		values := []interface{}{
			int(it.ID),
			it.Name,
			it.Category,
			it.Quantity,
			it.Price.InexactFloat64(),
			string(it.Status),
			it.Supplier,
			it.LastUpdated.String(),
			it.SKU,
			it.Description,
		}
		for col, v := range values {
			f.SetCellValue(SheetName, cellName(col, row), v)
		}
	}
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write xlsx")
	}
	return nil
}

// cellName turns a zero based column and one based row into an A1 reference
func cellName(col, row int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name + strconv.Itoa(row)
}
