package ui

// FocusManager tracks which panel has keyboard focus and rotates it in
// layout order.
type FocusManager struct {
	Current  string   // ID of the focused panel; "" when there are none
	Order    []string // Panel ids in layout order
	OnChange func(from, to string)
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}

func (f *FocusManager) index() int {
	for i, id := range f.Order {
		if id == f.Current {
			return i
		}
	}
	return -1
}

// Next moves focus to the following panel, wrapping at the end.
func (f *FocusManager) Next() string {
	if len(f.Order) == 0 {
		return ""
	}
	f.set(f.Order[(f.index()+1)%len(f.Order)])
	return f.Current
}

// Prev moves focus to the preceding panel, wrapping at the start.
func (f *FocusManager) Prev() string {
	if len(f.Order) == 0 {
		return ""
	}
	i := f.index() - 1
	if i < 0 {
		i = len(f.Order) - 1
	}
	f.set(f.Order[i])
	return f.Current
}

// SetFocus focuses id. Returns false if id is not in Order.
func (f *FocusManager) SetFocus(id string) bool {
	for _, o := range f.Order {
		if o == id {
			f.set(id)
			return true
		}
	}
	return false
}

// Sync replaces Order after panels were added, removed or reordered. Focus
// stays on the current panel if it survived; otherwise it moves to the panel
// now at the old position (or the new last panel).
func (f *FocusManager) Sync(order []string) {
	oldIdx := f.index()
	f.Order = append(f.Order[:0:0], order...)
	if f.index() >= 0 {
		return
	}
	switch {
	case len(order) == 0:
		f.set("")
	case oldIdx < 0:
		f.set(order[0])
	case oldIdx >= len(order):
		f.set(order[len(order)-1])
	default:
		f.set(order[oldIdx])
	}
}
