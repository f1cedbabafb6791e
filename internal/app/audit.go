package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/talkincode/inventory/internal/domain"
	"github.com/talkincode/inventory/pkg/common"
)

// AuditLog keeps the most recent operation log entries in memory
type AuditLog struct {
	mu       sync.RWMutex
	capacity int
	entries  []domain.OprLog
}

// NewAuditLog keeps at most capacity entries; capacity <= 0 means 1000
func NewAuditLog(capacity int) *AuditLog {
	if capacity <= 0 {
		capacity = 1000
	}
	return &AuditLog{capacity: capacity}
}

// Append stores e, assigning an id and time when missing. The oldest entry
// is dropped once the log is full.
func (l *AuditLog) Append(e domain.OprLog) domain.OprLog {
	if e.ID == 0 {
		e.ID = common.UUIDint64()
	}
	if e.OptTime.IsZero() {
		e.OptTime = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) >= l.capacity {
		l.entries = append(l.entries[:0:0], l.entries[len(l.entries)-l.capacity+1:]...)
	}
	l.entries = append(l.entries, e)
	return e
}

// Record appends an entry for a non-store action such as login
func (l *AuditLog) Record(operator, action, desc string) domain.OprLog {
	return l.Append(domain.OprLog{OprName: operator, OptAction: action, OptDesc: desc})
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (l *AuditLog) List(limit int) []domain.OprLog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := len(l.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.OprLog, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Prune drops entries older than before and reports how many were removed
func (l *AuditLog) Prune(before time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.entries[:0:0]
	for _, e := range l.entries {
		if !e.OptTime.Before(before) {
			kept = append(kept, e)
		}
	}
	removed := len(l.entries) - len(kept)
	l.entries = kept
	return removed
}

func (l *AuditLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func describe(ev domain.StoreEvent) string {
	var desc string
	switch {
	case ev.Action == domain.ActionUpdate && ev.Previous != nil && ev.Previous.Quantity != ev.Item.Quantity:
		desc = fmt.Sprintf("update %s quantity %d -> %d", ev.Item.Name, ev.Previous.Quantity, ev.Item.Quantity)
	default:
		desc = fmt.Sprintf("%s %s", ev.Action, ev.Item.Name)
	}
	if ev.NewCategory {
		desc += fmt.Sprintf(" (new category %s)", ev.Item.Category)
	}
	return desc
}
