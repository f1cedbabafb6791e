package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		qty  int
		want Status
	}{
		{0, StatusOutOfStock},
		{1, StatusLowStock},
		{5, StatusLowStock},
		{6, StatusInStock},
		{1000, StatusInStock},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveStatus(tc.qty), "quantity %d", tc.qty)
	}
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus(" low stock ")
	require.True(t, ok)
	assert.Equal(t, StatusLowStock, st)

	_, ok = ParseStatus("discontinued")
	assert.False(t, ok)
}

func TestItemValue(t *testing.T) {
	it := InventoryItem{Quantity: 3, Price: decimal.RequireFromString("0.10")}
	assert.True(t, it.Value().Equal(decimal.RequireFromString("0.30")))
	assert.Equal(t, "0.10", it.PriceDisplay())
}

func TestDateJSON(t *testing.T) {
	d := NewDate(time.Date(2023, 5, 15, 17, 45, 0, 0, time.Local))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-05-15"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d))

	assert.True(t, MustParseDate("2023-05-14").Before(d))
}

func TestInventoryItemJSON(t *testing.T) {
	it := InventoryItem{
		ID:          1,
		Name:        "Desk Lamp",
		Quantity:    7,
		Price:       decimal.RequireFromString("45.99"),
		Status:      StatusInStock,
		LastUpdated: MustParseDate("2023-06-15"),
	}
	b, err := json.Marshal(it)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":45.99`)
	assert.Contains(t, string(b), `"status":"In Stock"`)
	assert.Contains(t, string(b), `"lastUpdated":"2023-06-15"`)
}

func TestItemInputNormalize(t *testing.T) {
	in := ItemInput{Name: "  Mouse ", Category: "\tElectronics"}
	in.Normalize()
	assert.Equal(t, "Mouse", in.Name)
	assert.Equal(t, "Electronics", in.Category)
}
