package inventory

import (
	"io"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/talkincode/inventory/internal/domain"
)

// DefaultItems returns the demo collection loaded at startup. Status values
// are derived by Store.Load.
func DefaultItems() []domain.InventoryItem {
	return []domain.InventoryItem{
		{ID: 1, Name: `MacBook Pro 16"`, Category: "Electronics", Quantity: 15, Price: decimal.RequireFromString("2499.99"), Supplier: "Apple Inc.", LastUpdated: domain.MustParseDate("2023-05-15")},
		{ID: 2, Name: "Ergonomic Office Chair", Category: "Furniture", Quantity: 8, Price: decimal.RequireFromString("349.99"), Supplier: "Office Comfort", LastUpdated: domain.MustParseDate("2023-06-20")},
		{ID: 3, Name: `4K Monitor 27"`, Category: "Electronics", Quantity: 12, Price: decimal.RequireFromString("399.99"), Supplier: "Dell Technologies", LastUpdated: domain.MustParseDate("2023-07-10")},
		{ID: 4, Name: "Mechanical Keyboard", Category: "Electronics", Quantity: 25, Price: decimal.RequireFromString("129.99"), Supplier: "Keychron", LastUpdated: domain.MustParseDate("2023-07-25")},
		{ID: 5, Name: "Wireless Mouse", Category: "Electronics", Quantity: 0, Price: decimal.RequireFromString("59.99"), Supplier: "Logitech", LastUpdated: domain.MustParseDate("2023-08-01")},
		{ID: 6, Name: "Desk Lamp", Category: "Office Supplies", Quantity: 7, Price: decimal.RequireFromString("45.99"), Supplier: "IKEA", LastUpdated: domain.MustParseDate("2023-06-15")},
	}
}

// seedRecord is one row of a seed CSV file. Any status column is ignored.
type seedRecord struct {
	ID          int64  `csv:"id"`
	Name        string `csv:"name"`
	Category    string `csv:"category"`
	Quantity    int    `csv:"quantity"`
	Price       string `csv:"price"`
	Supplier    string `csv:"supplier"`
	LastUpdated string `csv:"lastUpdated"`
	SKU         string `csv:"sku"`
	Description string `csv:"description"`
}

// ReadSeedCSV parses items from a CSV with a header row. lastUpdated accepts
// any layout dateparse understands; rows without an id get max(id)+1.
func ReadSeedCSV(r io.Reader) ([]domain.InventoryItem, error) {
	var records []*seedRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, errors.Wrap(err, "parse seed csv")
	}

	items := make([]domain.InventoryItem, 0, len(records))
	seen := make(map[int64]bool, len(records))
	var maxID int64
	for i, rec := range records {
		line := i + 2
		if strings.TrimSpace(rec.Name) == "" || strings.TrimSpace(rec.Category) == "" {
			return nil, errors.Wrapf(ErrInvalidItem, "line %d: name and category are required", line)
		}
		if rec.Quantity < 0 {
			return nil, errors.Wrapf(ErrInvalidItem, "line %d: quantity must be >= 0", line)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec.Price))
		if err != nil || price.IsNegative() {
			return nil, errors.Wrapf(ErrInvalidItem, "line %d: bad price %q", line, rec.Price)
		}
		it := domain.InventoryItem{
			ID:          rec.ID,
			Name:        strings.TrimSpace(rec.Name),
			Category:    strings.TrimSpace(rec.Category),
			Quantity:    rec.Quantity,
			Price:       price,
			Supplier:    strings.TrimSpace(rec.Supplier),
			SKU:         strings.TrimSpace(rec.SKU),
			Description: strings.TrimSpace(rec.Description),
			LastUpdated: domain.Today(),
		}
		if s := strings.TrimSpace(rec.LastUpdated); s != "" {
			t, err := dateparse.ParseAny(s)
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidItem, "line %d: bad lastUpdated %q", line, s)
			}
			it.LastUpdated = domain.NewDate(t)
		}
		if it.ID > 0 {
			if seen[it.ID] {
				return nil, errors.Wrapf(ErrInvalidItem, "line %d: duplicate id %d", line, it.ID)
			}
			seen[it.ID] = true
			if it.ID > maxID {
				maxID = it.ID
			}
		}
		items = append(items, it)
	}

	for i := range items {
		if items[i].ID <= 0 {
			maxID++
			items[i].ID = maxID
		}
	}
	return items, nil
}
