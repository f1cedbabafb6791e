package view

import (
	"github.com/pkg/errors"
	"github.com/talkincode/inventory/internal/domain"
	"github.com/talkincode/inventory/pkg/common"
)

// CatalogState is what the product catalog renders
type CatalogState struct {
	Search     string                 `json:"search"`
	Category   string                 `json:"category"`
	Status     string                 `json:"status"`
	Sort       SortConfig             `json:"sort"`
	Categories []string               `json:"categories"`
	Items      []domain.InventoryItem `json:"items"`
	Stats      Stats                  `json:"stats"`
	Empty      bool                   `json:"empty"`
}

// Catalog recomputes search, category, status and sort on every change
type Catalog struct {
	source   []domain.InventoryItem
	search   string
	category string
	status   string
	sort     SortConfig
	result   []domain.InventoryItem
	stats    Stats
}

// NewCatalog returns a catalog over items with no filters applied
func NewCatalog(items []domain.InventoryItem) *Catalog {
	c := &Catalog{
		category: common.ALL,
		status:   common.ALL,
		sort:     CatalogConfig.DefaultSort,
	}
	c.SetItems(items)
	return c
}

// SetItems replaces the source collection
func (c *Catalog) SetItems(items []domain.InventoryItem) {
	c.source = items
	c.refresh()
}

// SetSearch sets the free-text query
func (c *Catalog) SetSearch(q string) {
	c.search = q
	c.refresh()
}

// SetCategoryFilter accepts any category name or "all"
func (c *Catalog) SetCategoryFilter(category string) {
	c.category = common.If(common.IsEmptyOrAll(category), common.ALL, category)
	c.refresh()
}

// SetStatusFilter accepts a status display name or "all"
func (c *Catalog) SetStatusFilter(status string) error {
	if common.IsEmptyOrAll(status) {
		c.status = common.ALL
	} else {
		st, ok := domain.ParseStatus(status)
		if !ok {
			return errors.Errorf("unknown status %q", status)
		}
		c.status = string(st)
	}
	c.refresh()
	return nil
}

// RequestSort toggles the sort on f; the result is re-sorted at once
func (c *Catalog) RequestSort(f Field) error {
	if !CatalogConfig.CanSort(f) {
		return errors.Wrapf(ErrUnsortableField, "%q", f)
	}
	c.sort = c.sort.Request(f)
	c.refresh()
	return nil
}

// Reset clears the search and both filters. The sort is kept.
func (c *Catalog) Reset() {
	c.search = ""
	c.category = common.ALL
	c.status = common.ALL
	c.refresh()
}

func (c *Catalog) refresh() {
	filtered := Filter(c.source, CatalogConfig, Criteria{
		Search: c.search,
		Equals: map[Field]string{FieldCategory: c.category, FieldStatus: c.status},
	})
	c.result = Sort(filtered, c.sort)
	c.stats = Aggregate(c.result)
}

// Categories returns the distinct categories of the source, first occurrence first
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range c.source {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

// State returns a copy of the current view
func (c *Catalog) State() CatalogState {
	items := make([]domain.InventoryItem, len(c.result))
	copy(items, c.result)
	return CatalogState{
		Search:     c.search,
		Category:   c.category,
		Status:     c.status,
		Sort:       c.sort,
		Categories: c.Categories(),
		Items:      items,
		Stats:      c.stats,
		Empty:      len(items) == 0,
	}
}
