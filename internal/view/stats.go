package view

import (
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"github.com/talkincode/inventory/internal/domain"
)

// Stats are the stat cards shown above a view
type Stats struct {
	TotalItems     int             `json:"totalItems"`    // sum of quantities
	TotalProducts  int             `json:"totalProducts"` // number of records
	TotalValue     decimal.Decimal `json:"totalValue"`
	InStock        int             `json:"inStock"`
	LowStock       int             `json:"lowStock"`
	OutOfStock     int             `json:"outOfStock"`
	AveragePrice   float64         `json:"averagePrice"`
	MedianQuantity float64         `json:"medianQuantity"`
}

// Aggregate reduces items into Stats. Empty input yields all zeros.
func Aggregate(items []domain.InventoryItem) Stats {
	st := Stats{TotalProducts: len(items), TotalValue: decimal.Zero}
	if len(items) == 0 {
		return st
	}

	prices := make(stats.Float64Data, 0, len(items))
	quantities := make(stats.Float64Data, 0, len(items))
	for _, it := range items {
		st.TotalItems += it.Quantity
		st.TotalValue = st.TotalValue.Add(it.Value())
		switch it.Status {
		case domain.StatusInStock:
			st.InStock++
		case domain.StatusLowStock:
			st.LowStock++
		case domain.StatusOutOfStock:
			st.OutOfStock++
		}
		prices = append(prices, it.Price.InexactFloat64())
		quantities = append(quantities, float64(it.Quantity))
	}

	if mean, err := prices.Mean(); err == nil {
		st.AveragePrice, _ = stats.Round(mean, 2)
	}
	if median, err := quantities.Median(); err == nil {
		st.MedianQuantity = median
	}
	return st
}

// CountByStatus returns the status counts as a map keyed by display name
func (s Stats) CountByStatus() map[domain.Status]int {
	return map[domain.Status]int{
		domain.StatusInStock:    s.InStock,
		domain.StatusLowStock:   s.LowStock,
		domain.StatusOutOfStock: s.OutOfStock,
	}
}
