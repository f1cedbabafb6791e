package metrics

import (
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
)

// Gauge names recorded by the background jobs
const (
	InventoryTotalValue = "inventory_total_value"
	InventoryTotalItems = "inventory_total_items"
	InventoryInStock    = "inventory_in_stock"
	InventoryLowStock   = "inventory_low_stock"
	InventoryOutOfStock = "inventory_out_of_stock"
	ProcessMemUse       = "inventory_memuse"
)

// Point is one recorded gauge sample
type Point struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

var (
	mu      sync.RWMutex
	storage tstorage.Storage
)

// InitMetrics opens the in-memory time series storage. Calling it again
// replaces the previous storage.
func InitMetrics() error {
	s, err := tstorage.NewStorage(
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithPartitionDuration(time.Hour),
	)
	if err != nil {
		return errors.Wrap(err, "open metrics storage")
	}
	mu.Lock()
	old := storage
	storage = s
	mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// SetGauge records value for name at the current time
func SetGauge(name string, value float64) {
	_ = SetGaugeAt(name, value, time.Now())
}

// SetGaugeAt records value for name at ts
func SetGaugeAt(name string, value float64, ts time.Time) error {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return errors.New("metrics not initialized")
	}
	return storage.InsertRows([]tstorage.Row{{
		Metric:    name,
		DataPoint: tstorage.DataPoint{Timestamp: ts.Unix(), Value: value},
	}})
}

// Query returns the samples of name recorded in [start, end]. Timestamps
// have second precision, so a sample taken in the same second as end is kept.
func Query(name string, start, end time.Time) ([]Point, error) {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return nil, errors.New("metrics not initialized")
	}
	points, err := storage.Select(name, nil, start.Unix(), end.Unix()+1)
	if errors.Is(err, tstorage.ErrNoDataPoints) {
		return []Point{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", name)
	}
	result := make([]Point, 0, len(points))
	for _, p := range points {
		result = append(result, Point{Timestamp: p.Timestamp, Value: p.Value})
	}
	return result, nil
}

// Close releases the storage
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
