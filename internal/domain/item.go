package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Status is the stock level of an item. It is always derived from the quantity.
type Status string

const (
	StatusInStock    Status = "In Stock"
	StatusLowStock   Status = "Low Stock"
	StatusOutOfStock Status = "Out of Stock"
)

// LowStockLimit is the highest quantity still reported as low stock
const LowStockLimit = 5

// Statuses lists every status in display order
var Statuses = []Status{StatusInStock, StatusLowStock, StatusOutOfStock}

// DeriveStatus maps a quantity onto its stock status.
// quantity == 0 is out of stock, 1..5 is low stock, anything above is in stock.
func DeriveStatus(quantity int) Status {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= LowStockLimit:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// ParseStatus accepts the display form of a status, case-insensitively
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// InventoryItem represents a single stock record
type InventoryItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"` // unit price in main currency units
	Status      Status          `json:"status"`
	Supplier    string          `json:"supplier"`
	LastUpdated Date            `json:"lastUpdated"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
}

// Value returns quantity * price
func (it InventoryItem) Value() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// PriceDisplay renders the price with two decimals
func (it InventoryItem) PriceDisplay() string {
	return it.Price.StringFixed(2)
}

// ItemInput is the create/update payload. Quantity and Price are pointers so a
// missing value can be told apart from zero.
type ItemInput struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Category    string           `json:"category" validate:"required,max=100"`
	Quantity    *int             `json:"quantity" validate:"required,min=0"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Supplier    string           `json:"supplier" validate:"omitempty,max=200"`
	SKU         string           `json:"sku" validate:"omitempty,max=64"`
	Description string           `json:"description" validate:"omitempty,max=2000"`
}

// Normalize trims the free-text fields in place
func (in *ItemInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Supplier = strings.TrimSpace(in.Supplier)
	in.SKU = strings.TrimSpace(in.SKU)
	in.Description = strings.TrimSpace(in.Description)
}

// DateLayout is the calendar date format used on the wire and in exports
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day
type Date struct {
	t time.Time
}

// NewDate truncates t to its calendar day
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar date
func Today() Date {
	return NewDate(time.Now())
}

// MustParseDate parses a YYYY-MM-DD date and panics on failure
func MustParseDate(s string) Date {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return NewDate(t)
}

func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.t = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	*d = NewDate(t)
	return nil
}
