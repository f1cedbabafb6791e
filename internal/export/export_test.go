package export

import (
	"bytes"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/inventory/internal/domain"
)

func sample() []domain.InventoryItem {
	return []domain.InventoryItem{
		{
			ID: 1, Name: `MacBook Pro 16"`, Category: "Electronics", Quantity: 15,
			Price: decimal.RequireFromString("2499.99"), Status: domain.StatusInStock,
			Supplier: "Apple Inc.", LastUpdated: domain.MustParseDate("2023-05-15"),
		},
		{
			ID: 5, Name: "Wireless Mouse", Category: "Electronics", Quantity: 0,
			Price: decimal.RequireFromString("59.99"), Status: domain.StatusOutOfStock,
			Supplier: "Logitech, Inc", LastUpdated: domain.MustParseDate("2023-08-01"), SKU: "LG-M1",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	want := "id,name,category,quantity,price,status,supplier,lastUpdated,sku,description\n" +
		`1,"MacBook Pro 16""","Electronics",15,2499.99,"In Stock","Apple Inc.","2023-05-15","",""` + "\n" +
		`5,"Wireless Mouse","Electronics",0,59.99,"Out of Stock","Logitech, Inc","2023-08-01","LG-M1",""`
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "id,name,category,quantity,price,status,supplier,lastUpdated,sku,description", buf.String())
}

func TestCellName(t *testing.T) {
	assert.Equal(t, "A1", cellName(0, 1))
	assert.Equal(t, "J3", cellName(9, 3))
	assert.Equal(t, "Z2", cellName(25, 2))
	assert.Equal(t, "AA7", cellName(26, 7))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "id", f.GetCellValue(SheetName, "A1"))
	assert.Equal(t, "lastUpdated", f.GetCellValue(SheetName, "H1"))
	assert.Equal(t, "MacBook Pro 16\"", f.GetCellValue(SheetName, "B2"))
	assert.Equal(t, "Out of Stock", f.GetCellValue(SheetName, "F3"))
	assert.Equal(t, "LG-M1", f.GetCellValue(SheetName, "I3"))
}
