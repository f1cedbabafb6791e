package view

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/talkincode/inventory/internal/domain"
	"github.com/talkincode/inventory/pkg/common"
	"golang.org/x/text/cases"
)

var (
	ErrUnsortableField = errors.New("field is not sortable in this view")
	ErrUnknownView     = errors.New("unknown view")
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortConfig is the active sort key and direction. A zero value means unsorted.
type SortConfig struct {
	Field     Field     `json:"key"`
	Direction Direction `json:"direction"`
}

// Active reports whether a sort key is set
func (s SortConfig) Active() bool {
	return s.Field != ""
}

// Request returns the config after a user asks to sort by f: the active
// ascending field flips to descending, anything else starts ascending.
func (s SortConfig) Request(f Field) SortConfig {
	if s.Field == f && s.Direction == Asc {
		return SortConfig{Field: f, Direction: Desc}
	}
	return SortConfig{Field: f, Direction: Asc}
}

// ViewConfig describes which fields a view searches, filters on and sorts by
type ViewConfig struct {
	Name           string
	SearchFields   []Field
	EqualityFields []Field
	SortableFields []Field
	// SearchFirst applies the search before the equality filters
	SearchFirst bool
	DefaultSort SortConfig
}

var sortable = []Field{FieldName, FieldCategory, FieldQuantity, FieldPrice, FieldStatus}

// DashboardConfig applies the status filter and then searches name,
// category, status and supplier.
var DashboardConfig = ViewConfig{
	Name:           "dashboard",
	SearchFields:   []Field{FieldName, FieldCategory, FieldStatus, FieldSupplier},
	EqualityFields: []Field{FieldStatus},
	SortableFields: sortable,
}

// CatalogConfig searches name, sku and description, then filters by
// category and status. Results are kept sorted, by name unless told otherwise.
var CatalogConfig = ViewConfig{
	Name:           "catalog",
	SearchFields:   []Field{FieldName, FieldSKU, FieldDescription},
	EqualityFields: []Field{FieldCategory, FieldStatus},
	SortableFields: sortable,
	SearchFirst:    true,
	DefaultSort:    SortConfig{Field: FieldName, Direction: Asc},
}

// LookupConfig returns the view configuration registered under name
func LookupConfig(name string) (ViewConfig, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DashboardConfig.Name:
		return DashboardConfig, nil
	case CatalogConfig.Name, "product", "products":
		return CatalogConfig, nil
	}
	return ViewConfig{}, errors.Wrapf(ErrUnknownView, "%q", name)
}

// CanSort reports whether the view may be sorted by f
func (c ViewConfig) CanSort(f Field) bool {
	return containsField(c.SortableFields, f)
}

func containsField(fields []Field, f Field) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

// Criteria is the user's current search text and equality constraints.
// An equality value of "" or "all" means no constraint.
type Criteria struct {
	Search string
	Equals map[Field]string
}

// Filter returns the items matching c under cfg, in their original order.
// Equality constraints on fields cfg does not filter on are ignored.
func Filter(items []domain.InventoryItem, cfg ViewConfig, c Criteria) []domain.InventoryItem {
	out := make([]domain.InventoryItem, len(items))
	copy(out, items)

	if cfg.SearchFirst {
		out = searchStage(out, cfg.SearchFields, c.Search)
	}
	for _, f := range cfg.EqualityFields {
		want, ok := c.Equals[f]
		if !ok || common.IsEmptyOrAll(want) {
			continue
		}
		out = keep(out, func(it domain.InventoryItem) bool {
			return f.Text(it) == want
		})
	}
	if !cfg.SearchFirst {
		out = searchStage(out, cfg.SearchFields, c.Search)
	}
	return out
}

func searchStage(items []domain.InventoryItem, fields []Field, query string) []domain.InventoryItem {
	if query == "" {
		return items
	}
	fold := cases.Fold()
	needle := fold.String(query)
	return keep(items, func(it domain.InventoryItem) bool {
		for _, f := range fields {
			if strings.Contains(fold.String(f.Text(it)), needle) {
				return true
			}
		}
		return false
	})
}

func keep(items []domain.InventoryItem, pred func(domain.InventoryItem) bool) []domain.InventoryItem {
	out := items[:0]
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Sort returns a new slice ordered by s. Equal keys keep their input order.
// An inactive config returns an unchanged copy.
func Sort(items []domain.InventoryItem, s SortConfig) []domain.InventoryItem {
	out := make([]domain.InventoryItem, len(items))
	copy(out, items)
	if !s.Active() {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := Compare(out[i], out[j], s.Field)
		if s.Direction == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}
