package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		from, to int
		want     []string
	}{
		{"forward", []string{"A", "B", "C", "D"}, 0, 2, []string{"B", "C", "A", "D"}},
		{"backward", []string{"A", "B", "C", "D"}, 3, 1, []string{"A", "D", "B", "C"}},
		{"adjacent swap forward", []string{"A", "B", "C"}, 0, 1, []string{"B", "A", "C"}},
		{"adjacent swap backward", []string{"A", "B", "C"}, 2, 1, []string{"A", "C", "B"}},
		{"to end", []string{"A", "B", "C"}, 0, 2, []string{"B", "C", "A"}},
		{"to front", []string{"A", "B", "C"}, 2, 0, []string{"C", "A", "B"}},
		{"same index", []string{"A", "B"}, 1, 1, []string{"A", "B"}},
		{"out of range", []string{"A", "B"}, 0, 5, []string{"A", "B"}},
		{"negative", []string{"A", "B"}, -1, 0, []string{"A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]string(nil), tt.ids...)
			got := Move(in, tt.from, tt.to)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Move(%v, %d, %d) mismatch (-want +got):\n%s", tt.ids, tt.from, tt.to, diff)
			}
			assert.Equal(t, tt.ids, in, "Move must not modify its input")
		})
	}
}

func TestReorder_Correctness(t *testing.T) {
	g := newTestGroup("A", "B", "C", "D")
	r := NewReorder(g)

	require.True(t, r.BeginReorder("A"))
	r.OnHoverTarget("C")
	require.NoError(t, r.Commit())

	if diff := cmp.Diff([]string{"B", "C", "A", "D"}, g.Order()); diff != "" {
		t.Errorf("order after commit (-want +got):\n%s", diff)
	}
	assert.Equal(t, Idle, r.State())
}

func TestReorder_PreviewIsNotCommitted(t *testing.T) {
	g := newTestGroup("A", "B", "C")
	r := NewReorder(g)
	require.True(t, r.BeginReorder("C"))
	r.OnHoverTarget("A")

	pending, ok := r.Pending()
	require.True(t, ok)
	assert.Equal(t, []string{"C", "A", "B"}, pending)
	assert.Equal(t, []string{"A", "B", "C"}, g.Order(), "hovering must not touch the group")
}

func TestReorder_CancelIsIdempotent(t *testing.T) {
	g := newTestGroup("A", "B", "C", "D")
	before := g.Order()
	r := NewReorder(g)

	require.True(t, r.BeginReorder("B"))
	r.OnHoverTarget("D")
	r.OnHoverTarget("A")
	r.Cancel()

	assert.Equal(t, before, g.Order())
	assert.Equal(t, Idle, r.State())
	_, ok := r.Pending()
	assert.False(t, ok)
}

func TestReorder_BeginCancelWithoutHover(t *testing.T) {
	g := newTestGroup("A", "B")
	r := NewReorder(g)
	require.True(t, r.BeginReorder("A"))
	assert.Equal(t, []string{"A", "B"}, r.Origin())
	r.Cancel()
	assert.Equal(t, []string{"A", "B"}, g.Order())
}

func TestReorder_BeginGuards(t *testing.T) {
	g := newTestGroup("A", "B")
	r := NewReorder(g)

	assert.False(t, r.BeginReorder("nope"))
	assert.Equal(t, Idle, r.State())

	require.True(t, r.BeginReorder("A"))
	assert.False(t, r.BeginReorder("B"), "begin while active is ignored")
	assert.Equal(t, "A", r.Dragged())
}

func TestReorder_HoverSelfOrUnknownClearsPreview(t *testing.T) {
	g := newTestGroup("A", "B", "C")
	r := NewReorder(g)
	require.True(t, r.BeginReorder("A"))

	r.OnHoverTarget("B")
	_, ok := r.Pending()
	require.True(t, ok)

	r.OnHoverTarget("A")
	_, ok = r.Pending()
	assert.False(t, ok, "hovering own slot clears the preview")

	r.OnHoverTarget("C")
	r.OnHoverTarget("missing")
	_, ok = r.Pending()
	assert.False(t, ok, "hovering an unknown id clears the preview")

	require.NoError(t, r.Commit())
	assert.Equal(t, []string{"A", "B", "C"}, g.Order(), "commit without preview leaves order unchanged")
}

func TestReorder_AdjacentIsSwap(t *testing.T) {
	g := newTestGroup("A", "B", "C")
	r := NewReorder(g)
	require.True(t, r.BeginReorder("B"))
	r.OnHoverTarget("C")
	require.NoError(t, r.Commit())
	assert.Equal(t, []string{"A", "C", "B"}, g.Order())
}

func TestReorder_LastHoverWins(t *testing.T) {
	g := newTestGroup("A", "B", "C", "D")
	r := NewReorder(g)
	require.True(t, r.BeginReorder("D"))
	r.OnHoverTarget("A")
	r.OnHoverTarget("B")
	require.NoError(t, r.Commit())
	assert.Equal(t, []string{"A", "D", "B", "C"}, g.Order())
}

func TestReorder_CommitRejectedWhenMembershipChanged(t *testing.T) {
	g := newTestGroup("A", "B", "C")
	rec := &recorder{}
	r := NewReorder(g, WithReorderObserver(rec), WithReorderCapture(rec))
	require.True(t, r.BeginReorder("A"))
	r.OnHoverTarget("C")
	g.Register("D")

	err := r.Commit()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPermutation))
	assert.Equal(t, []string{"A", "B", "C", "D"}, g.Order())
	assert.Equal(t, Idle, r.State())
	assert.Equal(t, []Outcome{OutcomeAborted}, rec.ended)
	assert.Equal(t, 1, rec.released)
}

func TestReorder_PreviewUsesOrderAtBegin(t *testing.T) {
	g := newTestGroup("A", "B", "C")
	r := NewReorder(g)
	require.True(t, r.BeginReorder("A"))

	g.Register("D")
	r.OnHoverTarget("D")
	_, ok := r.Pending()
	assert.False(t, ok, "a panel added mid-drag is not a drop target")

	r.OnHoverTarget("C")
	pending, ok := r.Pending()
	require.True(t, ok)
	assert.Equal(t, []string{"B", "C", "A"}, pending)
	assert.Equal(t, []string{"A", "B", "C"}, r.Origin())

	err := r.Commit()
	assert.True(t, errors.Is(err, ErrInvalidPermutation))
	assert.Equal(t, []string{"A", "B", "C", "D"}, g.Order())
}

func TestReorder_CommitAndCancelWhenIdle(t *testing.T) {
	g := newTestGroup("A", "B")
	rec := &recorder{}
	r := NewReorder(g, WithReorderObserver(rec))
	assert.NoError(t, r.Commit())
	r.Cancel()
	r.OnHoverTarget("B")
	assert.Empty(t, rec.ended)
	assert.Equal(t, []string{"A", "B"}, g.Order())
}

func TestReorder_CaptureAndObserver(t *testing.T) {
	g := newTestGroup("A", "B")
	rec := &recorder{}
	r := NewReorder(g, WithReorderObserver(rec), WithReorderCapture(rec))

	require.True(t, r.BeginReorder("A"))
	r.OnHoverTarget("B")
	require.NoError(t, r.Commit())

	require.True(t, r.BeginReorder("B"))
	r.Close()

	assert.Equal(t, []SessionKind{SessionReorder, SessionReorder}, rec.started)
	assert.Equal(t, []Outcome{OutcomeCommitted, OutcomeCancelled}, rec.ended)
	assert.Equal(t, 2, rec.acquired)
	assert.Equal(t, 2, rec.released)
}

func TestReorder_SatisfiesReorderer(t *testing.T) {
	var ro Reorderer = NewReorder(newTestGroup("A", "B", "C"))
	require.True(t, ro.BeginReorder("C"))
	ro.OnHoverTarget("A")
	require.NoError(t, ro.Commit())
}

func TestSessionStrings(t *testing.T) {
	assert.Equal(t, "Active", Active.String())
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "resize", SessionResize.String())
	assert.Equal(t, "reorder", SessionReorder.String())
	assert.Equal(t, "cancelled", OutcomeCancelled.String())
	assert.Equal(t, "aborted", OutcomeAborted.String())
	assert.Equal(t, "order", ChangeOrder.String())
	assert.Equal(t, "vertical", Vertical.String())
}
