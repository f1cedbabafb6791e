package inventory

import (
	"context"
	"sync"
	"time"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/talkincode/inventory/internal/domain"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no item carries the requested id
	ErrNotFound = errors.New("inventory item not found")
	// ErrInvalidItem is returned when a create/update payload is incomplete
	ErrInvalidItem = errors.New("invalid inventory item")
)

// Snapshotter exposes a read-only copy of the collection
type Snapshotter interface {
	Snapshot() []domain.InventoryItem
}

// Mutator changes the collection
type Mutator interface {
	Create(ctx context.Context, in domain.ItemInput) (domain.InventoryItem, error)
	Update(ctx context.Context, id int64, in domain.ItemInput) (domain.InventoryItem, error)
	Delete(ctx context.Context, id int64) (domain.InventoryItem, error)
}

// Store owns the ordered item collection. Every mutation builds a new slice
// and swaps it in, so slices handed out by Snapshot are never written.
type Store struct {
	mu         sync.RWMutex
	items      []domain.InventoryItem
	categories *CategorySet
	bus        EventBus.Bus
	validate   *validator.Validate
	now        func() time.Time
}

var (
	_ Snapshotter = (*Store)(nil)
	_ Mutator     = (*Store)(nil)
)

// NewStore creates an empty store publishing to bus. bus may be nil.
func NewStore(bus EventBus.Bus) *Store {
	return &Store{
		categories: NewCategorySet(),
		bus:        bus,
		validate:   validator.New(),
		now:        time.Now,
	}
}

// SetClock replaces the time source used to stamp lastUpdated
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Load replaces the whole collection, e.g. with seed data. Status is
// re-derived for every record and the category set is extended.
func (s *Store) Load(items []domain.InventoryItem) {
	next := make([]domain.InventoryItem, len(items))
	for i, it := range items {
		it.Status = domain.DeriveStatus(it.Quantity)
		next[i] = it
		s.categories.Add(it.Category)
	}
	s.mu.Lock()
	s.items = next
	s.mu.Unlock()
}

// Snapshot returns a copy of the collection in store order
func (s *Store) Snapshot() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.InventoryItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the item with the given id
func (s *Store) Get(id int64) (domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.InventoryItem{}, ErrNotFound
}

// Categories returns the known category names in ascending order
func (s *Store) Categories() []string {
	return s.categories.List()
}

// Validate checks that name, category, quantity and price are present and
// that quantity and price are not negative.
func (s *Store) Validate(in *domain.ItemInput) error {
	in.Normalize()
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.Wrapf(ErrInvalidItem, "%s failed on %s", fe.Field(), fe.Tag())
		}
		return errors.Wrap(ErrInvalidItem, err.Error())
	}
	if in.Price.IsNegative() {
		return errors.Wrap(ErrInvalidItem, "Price must be >= 0")
	}
	return nil
}

// Create appends a new item with id = max(id)+1 (1 for an empty store)
func (s *Store) Create(ctx context.Context, in domain.ItemInput) (domain.InventoryItem, error) {
	if err := s.Validate(&in); err != nil {
		return domain.InventoryItem{}, err
	}

	s.mu.Lock()
	var maxID int64
	for _, it := range s.items {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	item := s.build(maxID+1, in)
	next := make([]domain.InventoryItem, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.items = append(next, item)
	s.mu.Unlock()

	novel := s.categories.Add(item.Category)
	s.publish(ctx, domain.ActionCreate, item, nil, novel)
	return item, nil
}

// Update replaces the editable fields of the item with the given id
func (s *Store) Update(ctx context.Context, id int64, in domain.ItemInput) (domain.InventoryItem, error) {
	if err := s.Validate(&in); err != nil {
		return domain.InventoryItem{}, err
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.InventoryItem{}, ErrNotFound
	}
	previous := s.items[idx]
	item := s.build(id, in)
	next := make([]domain.InventoryItem, len(s.items))
	copy(next, s.items)
	next[idx] = item
	s.items = next
	s.mu.Unlock()

	novel := s.categories.Add(item.Category)
	s.publish(ctx, domain.ActionUpdate, item, &previous, novel)
	return item, nil
}

// Delete removes the item with the given id and returns it
func (s *Store) Delete(ctx context.Context, id int64) (domain.InventoryItem, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.InventoryItem{}, ErrNotFound
	}
	removed := s.items[idx]
	next := make([]domain.InventoryItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.items = next
	s.mu.Unlock()

	s.publish(ctx, domain.ActionDelete, removed, nil, false)
	return removed, nil
}

// build assembles a stored record; status is always derived here
func (s *Store) build(id int64, in domain.ItemInput) domain.InventoryItem {
	return domain.InventoryItem{
		ID:          id,
		Name:        in.Name,
		Category:    in.Category,
		Quantity:    *in.Quantity,
		Price:       *in.Price,
		Status:      domain.DeriveStatus(*in.Quantity),
		Supplier:    in.Supplier,
		LastUpdated: domain.NewDate(s.now()),
		SKU:         in.SKU,
		Description: in.Description,
	}
}

func (s *Store) indexOf(id int64) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) publish(ctx context.Context, action string, item domain.InventoryItem, previous *domain.InventoryItem, newCategory bool) {
	if s.bus == nil {
		return
	}
	defer func() {
		if err := recover(); err != nil {
			zap.L().Error("inventory event handler panic",
				zap.String("action", action),
				zap.Int64("id", item.ID),
				zap.Any("error", err))
		}
	}()
	s.bus.Publish(topicFor(action), domain.StoreEvent{
		Action:      action,
		Item:        item,
		Previous:    previous,
		NewCategory: newCategory,
		Operator:    OperatorFrom(ctx),
		At:          s.now(),
	})
}
