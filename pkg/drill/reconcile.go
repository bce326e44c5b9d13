package drill

import (
	"fmt"

	"github.com/vanderheijden86/drillist/pkg/path"
)

// OpKind distinguishes structural edit kinds.
type OpKind int

const (
	// OpInsert adds a row.
	OpInsert OpKind = iota
	// OpRemove removes a row.
	OpRemove
)

// Op is one structural edit in per-zone coordinates. For removals Row is the
// row's index within its zone before the transition; for insertions it is the
// index within its zone after the transition.
type Op struct {
	Kind OpKind
	Zone Zone
	Row  int
	Anim Anim
}

// Repaint names the one pivot row whose content changes in place after the
// structural edits commit. Row is in post-transition zone coordinates.
type Repaint struct {
	Zone Zone
	Row  int
	Path path.Path
	Role Role
	Anim Anim
}

// Batch is the full set of edits for one navigation transition. Ops are
// ordered removals-first; the whole batch is applied as one atomic animation
// group so intermediate states are never rendered.
type Batch struct {
	Ops     []Op
	Repaint *Repaint
}

// Empty reports whether the batch carries no work.
func (b Batch) Empty() bool {
	return len(b.Ops) == 0 && b.Repaint == nil
}

// ChildCounter reports the number of children under a path. It must be
// deterministic within one transition.
type ChildCounter func(p path.Path) int

// Reconciler computes the minimal structural edits between two selection
// states. It is stateless apart from the child-count callback and performs no
// I/O; both inputs and output are plain values, which keeps it trivially
// testable.
type Reconciler struct {
	ChildCount ChildCounter
}

// Diff computes the batch transforming the displayed list for prev into the
// one for next. The pair must be reachable by a single navigation gesture:
// next a proper prefix of prev (ascend), or prev plus exactly one index
// (descend). Equal paths yield an empty batch (re-tap produces no structural
// work). Any other pair is a programming error: incremental diffing is only
// defined for gesture transitions, full replacement goes through a reload.
func (r Reconciler) Diff(prev, next path.Path) Batch {
	switch {
	case prev.Equal(next):
		return Batch{}
	case next.Len() < prev.Len() && prev.HasPrefix(next):
		return r.ascend(prev, next)
	case next.Len() == prev.Len()+1 && next.HasPrefix(prev):
		return r.descend(prev, next)
	default:
		panic(fmt.Sprintf("drill: %s -> %s is not a single navigation gesture", prev, next))
	}
}

// ascend handles a tap on an ancestor row: next is a proper prefix of prev.
func (r Reconciler) ascend(prev, next path.Path) Batch {
	d := next.Len()
	var b Batch

	// Ancestor rows below the landing depth collapse away, together with
	// every child row of the old selection.
	b.appendRange(OpRemove, ZoneAncestors, d, prev.Len(), AnimCollapseUp)
	b.appendRange(OpRemove, ZoneDescendants, 0, r.ChildCount(prev), AnimCollapseUp)

	if d == 0 {
		// Landing back at the root: the pivot cell survives and is repainted
		// as the root sibling it already shows, so only the other siblings
		// are inserted around it. Rows above slide in, rows below fade in.
		landing := prev.Head()
		rootCount := r.ChildCount(path.Root)
		b.appendRange(OpInsert, ZonePivot, 0, landing, AnimRevealDown)
		b.appendRange(OpInsert, ZonePivot, landing+1, rootCount, AnimFadeIn)
		b.Repaint = &Repaint{
			Zone: ZonePivot,
			Row:  landing,
			Path: path.New(landing),
			Role: RoleRoot,
			Anim: AnimCrossFade,
		}
		return b
	}

	// Still inside a subtree: the landing ancestor's children fade in and
	// the surviving pivot cell is repainted as the new current selection.
	b.appendRange(OpInsert, ZoneDescendants, 0, r.ChildCount(next), AnimFadeIn)
	b.Repaint = &Repaint{
		Zone: ZonePivot,
		Row:  0,
		Path: next,
		Role: RoleCurrent,
		Anim: AnimCrossFade,
	}
	return b
}

// descend handles a tap on a root sibling or child row: next is prev plus one
// trailing index.
func (r Reconciler) descend(prev, next path.Path) Batch {
	var b Batch

	if prev.IsRoot() {
		// Leaving root browsing: every sibling except the tapped one goes
		// away, and the tapped row survives as the pivot.
		landing := next.Head()
		rootCount := r.ChildCount(path.Root)
		b.appendRange(OpRemove, ZonePivot, 0, landing, AnimCollapseUp)
		b.appendRange(OpRemove, ZonePivot, landing+1, rootCount, AnimFadeOut)
	} else {
		// Deeper into a subtree: the old children leave, replaced wholesale
		// by the tapped child's children.
		b.appendRange(OpRemove, ZoneDescendants, 0, r.ChildCount(prev), AnimFadeOut)
	}

	// The now-collapsed previous selection becomes the newest ancestor row.
	b.appendRange(OpInsert, ZoneAncestors, prev.Len(), prev.Len()+1, AnimRevealDown)
	b.appendRange(OpInsert, ZoneDescendants, 0, r.ChildCount(next), AnimFadeIn)
	b.Repaint = &Repaint{
		Zone: ZonePivot,
		Row:  0,
		Path: next,
		Role: RoleCurrent,
		Anim: AnimCrossFade,
	}
	return b
}

// appendRange appends one op per row in [from, to), all of the same kind,
// zone, and animation. Every zone's edits flow through here; the per-case
// logic above only decides ranges and hints.
func (b *Batch) appendRange(kind OpKind, zone Zone, from, to int, anim Anim) {
	for row := from; row < to; row++ {
		b.Ops = append(b.Ops, Op{Kind: kind, Zone: zone, Row: row, Anim: anim})
	}
}
