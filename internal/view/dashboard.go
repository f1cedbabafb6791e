package view

import (
	"github.com/pkg/errors"
	"github.com/talkincode/inventory/internal/domain"
	"github.com/talkincode/inventory/pkg/common"
)

// DashboardState is what the dashboard renders
type DashboardState struct {
	Search string                 `json:"search"`
	Status string                 `json:"status"`
	Sort   SortConfig             `json:"sort"`
	Items  []domain.InventoryItem `json:"items"`
	Stats  Stats                  `json:"stats"`
	Empty  bool                   `json:"empty"`
}

// Dashboard keeps the filtered list of the dashboard. Any change to the
// source, the search or the status filter rebuilds the list from the source
// in store order; sorting only happens on RequestSort and reorders the
// current list in place.
type Dashboard struct {
	source   []domain.InventoryItem
	search   string
	status   string
	sort     SortConfig
	filtered []domain.InventoryItem
	stats    Stats
}

// NewDashboard returns a dashboard over items with no filters applied
func NewDashboard(items []domain.InventoryItem) *Dashboard {
	d := &Dashboard{status: common.ALL, sort: SortConfig{Direction: Asc}}
	d.SetItems(items)
	return d
}

// SetItems replaces the source collection
func (d *Dashboard) SetItems(items []domain.InventoryItem) {
	d.source = items
	d.refilter()
}

// SetSearch sets the free-text query
func (d *Dashboard) SetSearch(q string) {
	d.search = q
	d.refilter()
}

// SetStatusFilter accepts a status display name or "all"
func (d *Dashboard) SetStatusFilter(status string) error {
	if common.IsEmptyOrAll(status) {
		d.status = common.ALL
	} else {
		st, ok := domain.ParseStatus(status)
		if !ok {
			return errors.Errorf("unknown status %q", status)
		}
		d.status = string(st)
	}
	d.refilter()
	return nil
}

// RequestSort toggles the sort on f and reorders the current list
func (d *Dashboard) RequestSort(f Field) error {
	if !DashboardConfig.CanSort(f) {
		return errors.Wrapf(ErrUnsortableField, "%q", f)
	}
	d.sort = d.sort.Request(f)
	d.filtered = Sort(d.filtered, d.sort)
	return nil
}

func (d *Dashboard) refilter() {
	d.filtered = Filter(d.source, DashboardConfig, Criteria{
		Search: d.search,
		Equals: map[Field]string{FieldStatus: d.status},
	})
	d.stats = Aggregate(d.filtered)
}

// State returns a copy of the current view
func (d *Dashboard) State() DashboardState {
	items := make([]domain.InventoryItem, len(d.filtered))
	copy(items, d.filtered)
	return DashboardState{
		Search: d.search,
		Status: d.status,
		Sort:   d.sort,
		Items:  items,
		Stats:  d.stats,
		Empty:  len(items) == 0,
	}
}
