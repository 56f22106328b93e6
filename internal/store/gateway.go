package store

import (
	"sync"

	"github.com/charmbracelet/log"

	"paneldeck/internal/layout"
)

// Catalog describes a registered panel for persistence.
type Catalog func(id string) (kind, title string)

// Restore registers the descriptors' ids on g in order with default weight.
// Ids already present are left where they are.
func Restore(g *layout.Group, descs []Descriptor) {
	for _, d := range descs {
		g.Register(d.ID)
	}
}

// Gateway saves the group's panel list whenever its order or membership
// changes. Weight changes are never saved.
type Gateway struct {
	store   *Store
	group   *layout.Group
	catalog Catalog
	logger  *log.Logger

	mu       sync.Mutex
	viewMode string
	lastErr  error
	cancel   func()
}

// NewGateway subscribes to g and returns a gateway writing to s.
func NewGateway(s *Store, g *layout.Group, catalog Catalog, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.Default()
	}
	gw := &Gateway{store: s, group: g, catalog: catalog, logger: logger}
	gw.cancel = g.Subscribe(gw.onChange)
	return gw
}

func (gw *Gateway) onChange(c layout.Change) {
	switch c.Kind {
	case layout.ChangeOrder, layout.ChangeMembership:
		gw.Flush()
	}
}

// RestoreViewMode records a view mode loaded from disk without saving.
func (gw *Gateway) RestoreViewMode(mode string) {
	gw.mu.Lock()
	gw.viewMode = mode
	gw.mu.Unlock()
}

// SetViewMode records the view mode and saves.
func (gw *Gateway) SetViewMode(mode string) {
	gw.mu.Lock()
	gw.viewMode = mode
	gw.mu.Unlock()
	gw.Flush()
}

// Current builds the State for the group as it is now.
func (gw *Gateway) Current() State {
	gw.mu.Lock()
	mode := gw.viewMode
	gw.mu.Unlock()
	ids := gw.group.Order()
	st := State{Panels: make([]Descriptor, 0, len(ids)), ViewMode: mode}
	for _, id := range ids {
		d := Descriptor{ID: id}
		if gw.catalog != nil {
			d.Kind, d.Title = gw.catalog(id)
		}
		st.Panels = append(st.Panels, d)
	}
	return st
}

// Flush saves the current state. Errors are logged and kept for Err.
func (gw *Gateway) Flush() {
	err := gw.store.Save(gw.Current())
	if err != nil {
		gw.logger.Error("save panel state", "path", gw.store.Path(), "err", err)
	}
	gw.mu.Lock()
	gw.lastErr = err
	gw.mu.Unlock()
}

// Err returns the error from the most recent save.
func (gw *Gateway) Err() error {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	return gw.lastErr
}

// Close stops listening to the group.
func (gw *Gateway) Close() {
	if gw.cancel != nil {
		gw.cancel()
		gw.cancel = nil
	}
}
