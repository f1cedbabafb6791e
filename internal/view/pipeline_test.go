package view

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/inventory/internal/domain"
	"github.com/talkincode/inventory/internal/inventory"
)

func seedItems(t *testing.T) []domain.InventoryItem {
	t.Helper()
	s := inventory.NewStore(nil)
	s.Load(inventory.DefaultItems())
	return s.Snapshot()
}

func ids(items []domain.InventoryItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestSearchMouseOnDashboard(t *testing.T) {
	got := Filter(seedItems(t), DashboardConfig, Criteria{Search: "MoUsE"})
	require.Len(t, got, 1)
	assert.Equal(t, "Wireless Mouse", got[0].Name)
	assert.Equal(t, domain.StatusOutOfStock, got[0].Status)
}

func TestDashboardSearchFields(t *testing.T) {
	items := seedItems(t)

	assert.Equal(t, []int64{1}, ids(Filter(items, DashboardConfig, Criteria{Search: "apple"})), "supplier")
	assert.Equal(t, []int64{2}, ids(Filter(items, DashboardConfig, Criteria{Search: "furniture"})), "category")
	assert.Equal(t, []int64{5}, ids(Filter(items, DashboardConfig, Criteria{Search: "out of"})), "status")
}

func TestCatalogSearchFields(t *testing.T) {
	items := seedItems(t)
	items[2].SKU = "MON-27-4K"
	items[3].Description = "Hot-swappable switches"

	assert.Equal(t, []int64{3}, ids(Filter(items, CatalogConfig, Criteria{Search: "mon-27"})))
	assert.Equal(t, []int64{4}, ids(Filter(items, CatalogConfig, Criteria{Search: "SWAPPABLE"})))
	// supplier is not searched by the catalog
	assert.Empty(t, Filter(items, CatalogConfig, Criteria{Search: "logitech"}))
}

func TestEqualityFilters(t *testing.T) {
	items := seedItems(t)

	got := Filter(items, DashboardConfig, Criteria{Equals: map[Field]string{FieldStatus: "In Stock"}})
	assert.Equal(t, []int64{1, 2, 3, 4, 6}, ids(got))

	got = Filter(items, CatalogConfig, Criteria{Equals: map[Field]string{
		FieldCategory: "Electronics",
		FieldStatus:   "Out of Stock",
	}})
	assert.Equal(t, []int64{5}, ids(got))

	got = Filter(items, CatalogConfig, Criteria{Equals: map[Field]string{FieldCategory: "all", FieldStatus: ""}})
	assert.Len(t, got, len(items))

	// the dashboard has no category filter
	got = Filter(items, DashboardConfig, Criteria{Equals: map[Field]string{FieldCategory: "Furniture"}})
	assert.Len(t, got, len(items))
}

func TestFilterEmptyResult(t *testing.T) {
	got := Filter(seedItems(t), DashboardConfig, Criteria{Search: "does-not-exist"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterIdempotent(t *testing.T) {
	items := seedItems(t)
	for _, cfg := range []ViewConfig{DashboardConfig, CatalogConfig} {
		c := Criteria{Search: "e", Equals: map[Field]string{FieldStatus: "In Stock", FieldCategory: "Electronics"}}
		once := Filter(items, cfg, c)
		twice := Filter(once, cfg, c)
		assert.Equal(t, once, twice, cfg.Name)
	}
}

func TestFilterDoesNotTouchInput(t *testing.T) {
	items := seedItems(t)
	before := ids(items)
	_ = Filter(items, DashboardConfig, Criteria{Search: "desk"})
	assert.Equal(t, before, ids(items))
}

func TestSortRequestToggle(t *testing.T) {
	var s SortConfig
	s = s.Request(FieldName)
	assert.Equal(t, SortConfig{FieldName, Asc}, s)
	s = s.Request(FieldName)
	assert.Equal(t, SortConfig{FieldName, Desc}, s)
	s = s.Request(FieldName)
	assert.Equal(t, SortConfig{FieldName, Asc}, s)
	s = s.Request(FieldPrice)
	assert.Equal(t, SortConfig{FieldPrice, Asc}, s)
}

func TestSortByField(t *testing.T) {
	items := seedItems(t)

	byPrice := Sort(items, SortConfig{FieldPrice, Asc})
	assert.Equal(t, []int64{6, 5, 4, 2, 3, 1}, ids(byPrice))

	byQtyDesc := Sort(items, SortConfig{FieldQuantity, Desc})
	assert.Equal(t, []int64{4, 1, 3, 2, 6, 5}, ids(byQtyDesc))

	byName := Sort(items, SortConfig{FieldName, Asc})
	assert.Equal(t, []int64{3, 6, 2, 1, 4, 5}, ids(byName))

	byDate := Sort(items, SortConfig{FieldLastUpdated, Asc})
	assert.Equal(t, []int64{1, 6, 2, 3, 4, 5}, ids(byDate))
}

func TestSortStableOnTies(t *testing.T) {
	items := seedItems(t)
	got := Sort(items, SortConfig{FieldCategory, Asc})
	// electronics keep their store order
	assert.Equal(t, []int64{1, 3, 4, 5, 2, 6}, ids(got))

	got = Sort(items, SortConfig{FieldCategory, Desc})
	assert.Equal(t, []int64{6, 2, 1, 3, 4, 5}, ids(got))
}

func TestSortPreservesMultiset(t *testing.T) {
	items := seedItems(t)
	for _, f := range sortable {
		for _, dir := range []Direction{Asc, Desc} {
			got := ids(Sort(items, SortConfig{f, dir}))
			want := ids(items)
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
			assert.Equal(t, want, got, "%s %s", f, dir)
		}
	}
}

func TestToggleTwiceRestoresOrder(t *testing.T) {
	items := seedItems(t)
	var s SortConfig
	s = s.Request(FieldPrice)
	first := Sort(items, s)
	s = s.Request(FieldPrice)
	s = s.Request(FieldPrice)
	again := Sort(Sort(first, SortConfig{FieldPrice, Desc}), s)
	assert.Equal(t, ids(first), ids(again))
}

func TestSortInactiveCopies(t *testing.T) {
	items := seedItems(t)
	got := Sort(items, SortConfig{})
	assert.Equal(t, ids(items), ids(got))
	got[0].Name = "x"
	assert.NotEqual(t, "x", items[0].Name)
}

func TestCompareDecimalPrecision(t *testing.T) {
	a := domain.InventoryItem{Price: decimal.RequireFromString("0.1")}
	b := domain.InventoryItem{Price: decimal.RequireFromString("0.10000001")}
	assert.Equal(t, -1, Compare(a, b, FieldPrice))
	assert.Equal(t, 0, Compare(a, a, FieldPrice))
}

func TestParseField(t *testing.T) {
	f, err := ParseField("LastUpdated")
	require.NoError(t, err)
	assert.Equal(t, FieldLastUpdated, f)

	_, err = ParseField("colour")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestLookupConfig(t *testing.T) {
	cfg, err := LookupConfig("")
	require.NoError(t, err)
	assert.Equal(t, "dashboard", cfg.Name)

	cfg, err = LookupConfig("Catalog")
	require.NoError(t, err)
	assert.True(t, cfg.SearchFirst)

	_, err = LookupConfig("login")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestCanSort(t *testing.T) {
	assert.True(t, DashboardConfig.CanSort(FieldQuantity))
	assert.True(t, CatalogConfig.CanSort(FieldStatus))
	assert.False(t, CatalogConfig.CanSort(FieldSKU))
	assert.False(t, DashboardConfig.CanSort(FieldSupplier))
}
