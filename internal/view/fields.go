// Package view implements the derived-view pipeline shared by the dashboard
// and the catalog: filter, sort and aggregate over a snapshot of the store.
package view

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/talkincode/inventory/internal/domain"
)

// Field names an item attribute by its JSON name
type Field string

const (
	FieldID          Field = "id"
	FieldName        Field = "name"
	FieldCategory    Field = "category"
	FieldQuantity    Field = "quantity"
	FieldPrice       Field = "price"
	FieldStatus      Field = "status"
	FieldSupplier    Field = "supplier"
	FieldLastUpdated Field = "lastUpdated"
	FieldSKU         Field = "sku"
	FieldDescription Field = "description"
)

var allFields = []Field{
	FieldID, FieldName, FieldCategory, FieldQuantity, FieldPrice,
	FieldStatus, FieldSupplier, FieldLastUpdated, FieldSKU, FieldDescription,
}

// ErrUnknownField is returned for a field name no item carries
var ErrUnknownField = errors.New("unknown field")

// ParseField resolves a field by its JSON name, case-insensitively
func ParseField(s string) (Field, error) {
	s = strings.TrimSpace(s)
	for _, f := range allFields {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownField, "%q", s)
}

// Text returns the field rendered as a string, used for search and equality
func (f Field) Text(it domain.InventoryItem) string {
	switch f {
	case FieldID:
		return strconv.FormatInt(it.ID, 10)
	case FieldName:
		return it.Name
	case FieldCategory:
		return it.Category
	case FieldQuantity:
		return strconv.Itoa(it.Quantity)
	case FieldPrice:
		return it.Price.String()
	case FieldStatus:
		return string(it.Status)
	case FieldSupplier:
		return it.Supplier
	case FieldLastUpdated:
		return it.LastUpdated.String()
	case FieldSKU:
		return it.SKU
	case FieldDescription:
		return it.Description
	}
	return ""
}

// Compare is the three-way comparator over field f: strings compare
// lexicographically, numbers numerically, dates chronologically.
func Compare(a, b domain.InventoryItem, f Field) int {
	switch f {
	case FieldID:
		return cmpInt64(a.ID, b.ID)
	case FieldQuantity:
		return cmpInt64(int64(a.Quantity), int64(b.Quantity))
	case FieldPrice:
		return a.Price.Cmp(b.Price)
	case FieldLastUpdated:
		switch {
		case a.LastUpdated.Before(b.LastUpdated):
			return -1
		case b.LastUpdated.Before(a.LastUpdated):
			return 1
		}
		return 0
	default:
		return strings.Compare(f.Text(a), f.Text(b))
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
