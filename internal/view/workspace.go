package view

import (
	"sync"

	"github.com/talkincode/inventory/internal/inventory"
)

// Workspace is one session's dashboard and catalog
type Workspace struct {
	ID        int64
	mu        sync.Mutex
	dashboard *Dashboard
	catalog   *Catalog
}

// Dashboard runs fn with exclusive access to the dashboard
func (w *Workspace) Dashboard(fn func(d *Dashboard) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(w.dashboard)
}

// Catalog runs fn with exclusive access to the catalog
func (w *Workspace) Catalog(fn func(c *Catalog) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(w.catalog)
}

func (w *Workspace) refresh(src inventory.Snapshotter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dashboard.SetItems(src.Snapshot())
	w.catalog.SetItems(src.Snapshot())
}

// Workspaces tracks the open workspaces and keeps them in step with the store
type Workspaces struct {
	mu     sync.RWMutex
	source inventory.Snapshotter
	open   map[int64]*Workspace
}

// NewWorkspaces returns an empty registry backed by source
func NewWorkspaces(source inventory.Snapshotter) *Workspaces {
	return &Workspaces{source: source, open: make(map[int64]*Workspace)}
}

// Open returns the workspace for id, creating it from a fresh snapshot
func (ws *Workspaces) Open(id int64) *Workspace {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if w, ok := ws.open[id]; ok {
		return w
	}
	w := &Workspace{
		ID:        id,
		dashboard: NewDashboard(ws.source.Snapshot()),
		catalog:   NewCatalog(ws.source.Snapshot()),
	}
	ws.open[id] = w
	return w
}

// Get returns the workspace for id if it is open
func (ws *Workspaces) Get(id int64) (*Workspace, bool) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	w, ok := ws.open[id]
	return w, ok
}

// Close drops the workspace for id
func (ws *Workspaces) Close(id int64) {
	ws.mu.Lock()
	delete(ws.open, id)
	ws.mu.Unlock()
}

// Len reports the number of open workspaces
func (ws *Workspaces) Len() int {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return len(ws.open)
}

// Refresh pushes the current store contents into every open workspace
func (ws *Workspaces) Refresh() {
	ws.mu.RLock()
	open := make([]*Workspace, 0, len(ws.open))
	for _, w := range ws.open {
		open = append(open, w)
	}
	ws.mu.RUnlock()
	for _, w := range open {
		w.refresh(ws.source)
	}
}
