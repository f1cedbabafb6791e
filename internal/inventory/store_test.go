package inventory

import (
	"context"
	"strings"
	"testing"
	"time"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/inventory/internal/domain"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func input(name, category string, qty int, price string) domain.ItemInput {
	return domain.ItemInput{Name: name, Category: category, Quantity: intPtr(qty), Price: decPtr(price)}
}

func seeded(t *testing.T) *Store {
	t.Helper()
	s := NewStore(nil)
	s.Load(DefaultItems())
	return s
}

func TestCreateInEmptyStore(t *testing.T) {
	s := NewStore(nil)
	fixed := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })

	item, err := s.Create(context.Background(), input("Cable", "Electronics", 5, "10.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, domain.StatusLowStock, item.Status)
	assert.True(t, item.Value().Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, "2024-03-09", item.LastUpdated.String())
	assert.Equal(t, 1, s.Len())
}

func TestCreateAssignsMaxPlusOne(t *testing.T) {
	s := NewStore(nil)
	s.Load([]domain.InventoryItem{{ID: 4, Name: "a", Category: "x"}, {ID: 9, Name: "b", Category: "x"}})

	item, err := s.Create(context.Background(), input("c", "x", 1, "1"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), item.ID)
}

func TestCreateValidation(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	cases := map[string]domain.ItemInput{
		"missing name":     {Category: "x", Quantity: intPtr(1), Price: decPtr("1")},
		"blank name":       {Name: "   ", Category: "x", Quantity: intPtr(1), Price: decPtr("1")},
		"missing category": {Name: "a", Quantity: intPtr(1), Price: decPtr("1")},
		"missing quantity": {Name: "a", Category: "x", Price: decPtr("1")},
		"missing price":    {Name: "a", Category: "x", Quantity: intPtr(1)},
		"negative qty":     {Name: "a", Category: "x", Quantity: intPtr(-1), Price: decPtr("1")},
		"negative price":   {Name: "a", Category: "x", Quantity: intPtr(1), Price: decPtr("-0.01")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(ctx, in)
			assert.ErrorIs(t, err, ErrInvalidItem)
		})
	}
	assert.Equal(t, 0, s.Len())
}

func TestCreateZeroQuantityIsValid(t *testing.T) {
	s := NewStore(nil)
	item, err := s.Create(context.Background(), input("a", "x", 0, "0"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfStock, item.Status)
}

func TestUpdateRederivesStatus(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	before, err := s.Get(1)
	require.NoError(t, err)
	require.Equal(t, domain.StatusInStock, before.Status)

	updated, err := s.Update(ctx, 1, input(before.Name, before.Category, 2, "2499.99"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLowStock, updated.Status)
	assert.Equal(t, domain.Today(), updated.LastUpdated)

	updated, err = s.Update(ctx, 1, input(before.Name, before.Category, 0, "2499.99"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfStock, updated.Status)

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, 6, s.Len())
}

func TestUpdateUnknownID(t *testing.T) {
	s := seeded(t)
	_, err := s.Update(context.Background(), 99, input("a", "x", 1, "1"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusInvariantHoldsAfterMutations(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	for q := 0; q <= 8; q++ {
		_, err := s.Create(ctx, input("n", "c", q, "1"))
		require.NoError(t, err)
	}
	_, err := s.Update(ctx, 2, input("chair", "Furniture", 3, "1"))
	require.NoError(t, err)

	for _, it := range s.Snapshot() {
		assert.Equal(t, domain.DeriveStatus(it.Quantity), it.Status, "item %d", it.ID)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s := seeded(t)
	before := s.Snapshot()

	removed, err := s.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed.ID)

	after := s.Snapshot()
	require.Len(t, after, len(before)-1)
	var expected []domain.InventoryItem
	for _, it := range before {
		if it.ID != 3 {
			expected = append(expected, it)
		}
	}
	assert.Equal(t, expected, after)

	_, err = s.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := seeded(t)
	snap := s.Snapshot()
	snap[0].Name = "changed"
	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, `MacBook Pro 16"`, got.Name)
}

func TestLoadDerivesStatus(t *testing.T) {
	s := seeded(t)
	chair, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInStock, chair.Status)
	mouse, err := s.Get(5)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfStock, mouse.Status)
}

func TestCategoriesGrowOnly(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	assert.Equal(t, []string{"Electronics", "Furniture", "Office Supplies"}, s.Categories())

	_, err := s.Create(ctx, input("Stapler", "Stationery", 3, "4.5"))
	require.NoError(t, err)
	_, err = s.Update(ctx, 2, input("Chair", "Seating", 3, "100"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Furniture", "Office Supplies", "Seating", "Stationery"}, s.Categories())

	_, err = s.Delete(ctx, 6)
	require.NoError(t, err)
	assert.Contains(t, s.Categories(), "Office Supplies")
}

func TestMutationsPublishEvents(t *testing.T) {
	bus := EventBus.New()
	s := NewStore(bus)
	var events []domain.StoreEvent
	require.NoError(t, SubscribeAll(bus, func(ev domain.StoreEvent) {
		events = append(events, ev)
	}))

	ctx := WithOperator(context.Background(), "alice")
	created, err := s.Create(ctx, input("a", "x", 1, "1"))
	require.NoError(t, err)
	_, err = s.Update(ctx, created.ID, input("b", "x", 9, "1"))
	require.NoError(t, err)
	_, err = s.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, domain.ActionCreate, events[0].Action)
	assert.Equal(t, "alice", events[0].Operator)
	assert.True(t, events[0].NewCategory)
	assert.False(t, events[1].NewCategory)
	assert.Equal(t, domain.ActionUpdate, events[1].Action)
	require.NotNil(t, events[1].Previous)
	assert.Equal(t, "a", events[1].Previous.Name)
	assert.Equal(t, "b", events[1].Item.Name)
	assert.Equal(t, domain.ActionDelete, events[2].Action)
	assert.Equal(t, "system", events[2].Operator)
}

func TestReadSeedCSV(t *testing.T) {
	data := `id,name,category,quantity,price,status,supplier,lastUpdated
1,"Desk Lamp",Office Supplies,7,45.99,"Low Stock",IKEA,2023-06-15
,"Pen",Office Supplies,0,1.5,,Bic,"June 3, 2023"
`
	items, err := ReadSeedCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "2023-06-15", items[0].LastUpdated.String())
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, "2023-06-03", items[1].LastUpdated.String())
	assert.True(t, items[1].Price.Equal(decimal.RequireFromString("1.5")))

	s := NewStore(nil)
	s.Load(items)
	lamp, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInStock, lamp.Status)
}

func TestReadSeedCSVErrors(t *testing.T) {
	cases := map[string]string{
		"bad price":    "id,name,category,quantity,price\n1,a,b,1,abc\n",
		"no name":      "id,name,category,quantity,price\n1,,b,1,1\n",
		"negative qty": "id,name,category,quantity,price\n1,a,b,-2,1\n",
		"duplicate id": "id,name,category,quantity,price\n1,a,b,1,1\n1,c,d,1,1\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSeedCSV(strings.NewReader(data))
			assert.ErrorIs(t, err, ErrInvalidItem)
		})
	}
}
