package drill

import "github.com/vanderheijden86/drillist/pkg/path"

// DataSource is the consumer-supplied tree. ChildCount must be deterministic
// for a given tree snapshot within one transition; the reconciler may query
// the same path more than once and assumes stable answers.
type DataSource interface {
	// ChildCount reports the number of children under the node at p.
	// Called for arbitrary paths including the root.
	ChildCount(p path.Path) int

	// Paint fills a reusable row surface with content for the node at p,
	// rendered in the given role. The surface is recycled across roles and
	// paths and must not be assumed fresh.
	Paint(w RowWriter, p path.Path, role Role)
}

// Delegate receives selection notifications from the widget. All methods are
// invoked synchronously on the widget's goroutine.
type Delegate interface {
	// SelectionChanged fires after every committed path mutation, including
	// full replacement via Widget.SetSelection.
	SelectionChanged(p path.Path)

	// ReselectCurrent fires when the pivot row is tapped while already
	// descended; the selection did not change.
	ReselectCurrent()
}

// RowWriter is the reusable row surface handed to DataSource.Paint. A
// concrete list primitive backs it with whatever cell representation it
// renders from.
type RowWriter interface {
	SetRole(role Role)
	SetTitle(title string)
	SetDetail(detail string)
}

// RowProvider is how a list primitive pulls row content. The primitive holds
// this as a non-owning reference: it may be cleared at any time, and a nil
// provider means zero rows.
type RowProvider interface {
	// RowCount reports the current flat row count across all zones.
	RowCount() int

	// PaintRow fills w with content for the flat row index. The index must
	// be within [0, RowCount()).
	PaintRow(w RowWriter, row int)
}

// RowEdit is one structural edit in flat-list coordinates. Removal indices
// refer to rows as laid out before the transition; insertion indices refer to
// the layout after it.
type RowEdit struct {
	Row  int
	Anim Anim
}

// RowRepaint names the single row (if any) whose content must be replaced in
// place, without structural change, after the edits commit.
type RowRepaint struct {
	Row  int
	Anim Anim
}

// RowBatch is one atomic group of structural edits. The primitive must apply
// all removals (in descending row order), then all insertions (ascending),
// then the repaint, without rendering any intermediate state, and must
// preserve the identity of surviving in-view rows.
type RowBatch struct {
	Removes []RowEdit
	Inserts []RowEdit
	Repaint *RowRepaint
}

// Empty reports whether the batch carries no work.
func (b RowBatch) Empty() bool {
	return len(b.Removes) == 0 && len(b.Inserts) == 0 && b.Repaint == nil
}

// ListPrimitive is the external scrollable-list collaborator: it owns row
// virtualization and animation playback, and pulls row content back through a
// RowProvider. The widget never destroys and recreates it; all structural
// change flows through Apply.
type ListPrimitive interface {
	// Apply executes one atomic batch of structural edits. The logical row
	// state must be consistent with the provider the moment Apply returns,
	// even if animation playback continues asynchronously.
	Apply(batch RowBatch)

	// ReloadAll discards all row content and repopulates from the provider.
	// Used for full selection replacement, never for incremental navigation.
	ReloadAll()
}
