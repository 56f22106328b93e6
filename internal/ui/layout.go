package ui

import (
	"math"
	"sort"

	"paneldeck/internal/layout"
)

// MinPanelCells is the smallest extent a panel is drawn at when space allows:
// two border cells plus two content cells.
const MinPanelCells = 4

// Rect is a cell rectangle. X/Y are the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Distribute splits total cells among weights in proportion, like
// flex-grow. Entries whose share falls below min are raised to min and the
// cells they take come out of the others in proportion to their weights.
// Largest-remainder rounding makes the result always sum to total. Negative
// and non-finite weights count as zero.
func Distribute(total int, weights []float64, min int) []int {
	n := len(weights)
	out := make([]int, n)
	if n == 0 || total <= 0 {
		return out
	}
	if min < 0 {
		min = 0
	}
	if min*n > total {
		min = total / n
	}
	ws := make([]float64, n)
	var sum float64
	for i, w := range weights {
		if w > 0 && !math.IsInf(w, 0) {
			ws[i] = w
			sum += w
		}
	}
	if sum <= 0 {
		for i := range out {
			out[i] = total / n
			if i < total%n {
				out[i]++
			}
		}
		return out
	}

	// Pin entries below min until the proportional split of what is left
	// gives every free entry at least min.
	pinned := make([]bool, n)
	free, freeSum := total, sum
	for {
		changed := false
		for i, w := range ws {
			if pinned[i] {
				continue
			}
			if freeSum <= 0 || float64(free)*w/freeSum < float64(min) {
				pinned[i] = true
				free -= min
				freeSum -= w
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	type rem struct {
		i    int
		frac float64
	}
	var rems []rem
	used := 0
	for i, w := range ws {
		if pinned[i] {
			out[i] = min
			continue
		}
		exact := float64(free) * w / freeSum
		whole := int(math.Floor(exact))
		out[i] = whole
		used += whole
		rems = append(rems, rem{i: i, frac: exact - float64(whole)})
	}
	if len(rems) == 0 {
		// Everything pinned: hand the leftover out front to back.
		for k := 0; k < free; k++ {
			out[k%n]++
		}
		return out
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for k := 0; k < free-used; k++ {
		out[rems[k%len(rems)].i]++
	}
	return out
}

// slot is one panel's placement on screen.
type slot struct {
	ID    string
	Frame Rect // including border
	Title Rect // title row inside the border
}

// divider is the grab handle between Before and After.
type divider struct {
	Before, After string
	Rect          Rect
}

// geometry is the hit-test model for one rendered frame.
type geometry struct {
	Axis     layout.Axis
	Body     Rect
	Slots    []slot
	Dividers []divider
}

// computeGeometry lays out ids with weights inside body. Dividers take one
// cell between adjacent panels.
func computeGeometry(axis layout.Axis, body Rect, ids []string, weights []float64) geometry {
	g := geometry{Axis: axis, Body: body}
	n := len(ids)
	if n == 0 || body.W <= 0 || body.H <= 0 {
		return g
	}
	extent := body.W
	if axis == layout.Vertical {
		extent = body.H
	}
	sizes := Distribute(extent-(n-1), weights, MinPanelCells)

	pos := 0
	for i, id := range ids {
		var frame Rect
		if axis == layout.Horizontal {
			frame = Rect{X: body.X + pos, Y: body.Y, W: sizes[i], H: body.H}
		} else {
			frame = Rect{X: body.X, Y: body.Y + pos, W: body.W, H: sizes[i]}
		}
		title := Rect{X: frame.X, Y: frame.Y, W: frame.W, H: 2}
		if frame.H < 2 {
			title.H = frame.H
		}
		g.Slots = append(g.Slots, slot{ID: id, Frame: frame, Title: title})
		pos += sizes[i]
		if i < n-1 {
			var d Rect
			if axis == layout.Horizontal {
				d = Rect{X: body.X + pos, Y: body.Y, W: 1, H: body.H}
			} else {
				d = Rect{X: body.X, Y: body.Y + pos, W: body.W, H: 1}
			}
			g.Dividers = append(g.Dividers, divider{Before: id, After: ids[i+1], Rect: d})
			pos++
		}
	}
	return g
}

func (g geometry) dividerAt(x, y int) (divider, bool) {
	for _, d := range g.Dividers {
		if d.Rect.Contains(x, y) {
			return d, true
		}
	}
	return divider{}, false
}

func (g geometry) slotAt(x, y int) (slot, bool) {
	for _, s := range g.Slots {
		if s.Frame.Contains(x, y) {
			return s, true
		}
	}
	return slot{}, false
}

func (g geometry) titleAt(x, y int) (slot, bool) {
	for _, s := range g.Slots {
		if s.Title.Contains(x, y) {
			return s, true
		}
	}
	return slot{}, false
}

func (g geometry) slot(id string) (slot, bool) {
	for _, s := range g.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return slot{}, false
}
