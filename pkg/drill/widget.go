package drill

import (
	"fmt"
	"time"

	"github.com/vanderheijden86/drillist/pkg/debug"
	"github.com/vanderheijden86/drillist/pkg/path"
)

// DefaultRowHeight is the row height (in lines) used when none is configured.
const DefaultRowHeight = 1

// DefaultRowKind is the reuse key for row surfaces when none is configured.
const DefaultRowKind = "drillist/row"

// Widget ties navigation state and the reconciler to the external
// collaborators: the data source that answers child counts and paints rows,
// the delegate that hears about selection changes, and the list primitive
// that executes structural edits.
//
// The widget is the list primitive's RowProvider. A widget with no data
// source attached reports zero rows everywhere; that is a valid transient
// configuration state, not an error.
type Widget struct {
	state *State
	list  ListPrimitive

	source DataSource

	rowHeight int
	rowKind   string
}

// New returns a widget selecting the root, with no collaborators attached.
func New() *Widget {
	return &Widget{
		state:     NewState(nil),
		rowHeight: DefaultRowHeight,
		rowKind:   DefaultRowKind,
	}
}

// SetDataSource attaches (or detaches, with nil) the tree. The caller should
// follow with a reload on the list primitive, as all row counts change.
func (w *Widget) SetDataSource(s DataSource) {
	w.source = s
}

// SetDelegate attaches the selection-notification target. May be nil.
func (w *Widget) SetDelegate(d Delegate) {
	w.state.SetDelegate(d)
}

// SetList attaches the scrollable-list collaborator. May be nil, in which
// case transitions update logical state but emit no edits.
func (w *Widget) SetList(l ListPrimitive) {
	w.list = l
}

// RowHeight returns the configured row height in lines.
func (w *Widget) RowHeight() int {
	return w.rowHeight
}

// SetRowHeight configures the row height in lines. Values below 1 are a
// programming error.
func (w *Widget) SetRowHeight(h int) {
	if h < 1 {
		panic(fmt.Sprintf("drill: row height %d out of range", h))
	}
	w.rowHeight = h
}

// RowKind returns the reuse key under which the list primitive pools row
// surfaces. A single concrete kind is used across all roles and zones.
func (w *Widget) RowKind() string {
	return w.rowKind
}

// SetRowKind configures the row-surface reuse key.
func (w *Widget) SetRowKind(kind string) {
	if kind == "" {
		panic("drill: empty row kind")
	}
	w.rowKind = kind
}

// Selection returns the currently selected path.
func (w *Widget) Selection() path.Path {
	return w.state.Path()
}

// SetSelection replaces the selection wholesale and reloads every zone. No
// incremental edits are emitted; replacement never diffs.
func (w *Widget) SetSelection(p path.Path) {
	w.state.SetPath(p)
	debug.Log("selection replaced: %s", p)
	if w.list != nil {
		w.list.ReloadAll()
	}
}

// childCount queries the data source, reporting zero with none attached.
func (w *Widget) childCount(p path.Path) int {
	if w.source == nil {
		return 0
	}
	return w.source.ChildCount(p)
}

// zoneCounts returns the per-zone row counts the given selection displays.
func (w *Widget) zoneCounts(p path.Path) (ancestors, pivot, descendants int) {
	if w.source == nil {
		return 0, 0, 0
	}
	if p.IsRoot() {
		return 0, w.childCount(path.Root), 0
	}
	return p.Len(), 1, w.childCount(p)
}

// ZoneRowCount reports how many rows the given zone currently displays.
func (w *Widget) ZoneRowCount(z Zone) int {
	a, p, d := w.zoneCounts(w.state.Path())
	switch z {
	case ZoneAncestors:
		return a
	case ZonePivot:
		return p
	case ZoneDescendants:
		return d
	default:
		panic(fmt.Sprintf("drill: unknown zone %d", int(z)))
	}
}

// RowCount implements RowProvider: the flat row count across all zones.
func (w *Widget) RowCount() int {
	a, p, d := w.zoneCounts(w.state.Path())
	return a + p + d
}

// resolve maps a flat row index to its zone and index within that zone.
func (w *Widget) resolve(row int) (Zone, int) {
	a, p, d := w.zoneCounts(w.state.Path())
	switch {
	case row < 0 || row >= a+p+d:
		panic(fmt.Sprintf("drill: row %d out of range [0,%d)", row, a+p+d))
	case row < a:
		return ZoneAncestors, row
	case row < a+p:
		return ZonePivot, row - a
	default:
		return ZoneDescendants, row - a - p
	}
}

// RowAt returns the tree path and role the given flat row represents.
func (w *Widget) RowAt(row int) (path.Path, Role) {
	sel := w.state.Path()
	zone, idx := w.resolve(row)
	switch zone {
	case ZoneAncestors:
		return sel.Prefix(idx), RoleUpward
	case ZonePivot:
		if sel.IsRoot() {
			return path.New(idx), RoleRoot
		}
		return sel, RoleCurrent
	case ZoneDescendants:
		return sel.Append(idx), RoleDownward
	default:
		panic(fmt.Sprintf("drill: unknown zone %d", int(zone)))
	}
}

// PaintRow implements RowProvider: it resolves the flat row and delegates
// content to the data source.
func (w *Widget) PaintRow(rw RowWriter, row int) {
	if w.source == nil {
		panic(fmt.Sprintf("drill: paint row %d with no data source attached", row))
	}
	p, role := w.RowAt(row)
	rw.SetRole(role)
	w.source.Paint(rw, p, role)
}

// Tap processes a user tap on the given flat row: it resolves the zone,
// applies the corresponding navigation primitive, and drives the resulting
// edits into the list primitive. Dispatch is exhaustive over the three
// zones; an index outside the displayed rows is a programming error.
func (w *Widget) Tap(row int) {
	prev := w.state.Path()
	zone, idx := w.resolve(row)

	var next path.Path
	switch zone {
	case ZoneAncestors:
		// The tapped ancestor row names the new path: its own prefix.
		next = w.state.AscendTo(idx)
	case ZonePivot:
		if !prev.IsRoot() {
			// Re-tap of the current selection: notify only, no edits.
			w.state.ReselectCurrent()
			debug.Log("reselect: %s", prev)
			return
		}
		next = w.state.DescendInto(idx)
	case ZoneDescendants:
		next = w.state.DescendInto(idx)
	default:
		panic(fmt.Sprintf("drill: unknown zone %d", int(zone)))
	}

	rec := Reconciler{ChildCount: w.childCount}
	start := time.Now()
	batch := rec.Diff(prev, next)
	debug.LogTiming("diff", time.Since(start))
	debug.Log("transition %s -> %s: %d ops", prev, next, len(batch.Ops))
	debug.LogJSON("batch", batch)
	w.apply(prev, next, batch)
}

// apply translates a per-zone batch into flat-list coordinates and submits it
// to the list primitive as one atomic group. Removal indices are resolved
// against the zone offsets before the transition, insertion and repaint
// indices against the offsets after it.
func (w *Widget) apply(prev, next path.Path, batch Batch) {
	if w.list == nil || batch.Empty() {
		return
	}

	preA, preP, _ := w.zoneCounts(prev)
	postA, postP, _ := w.zoneCounts(next)
	preOffset := zoneOffsets(preA, preP)
	postOffset := zoneOffsets(postA, postP)

	var flat RowBatch
	for _, op := range batch.Ops {
		switch op.Kind {
		case OpRemove:
			flat.Removes = append(flat.Removes, RowEdit{Row: preOffset(op.Zone) + op.Row, Anim: op.Anim})
		case OpInsert:
			flat.Inserts = append(flat.Inserts, RowEdit{Row: postOffset(op.Zone) + op.Row, Anim: op.Anim})
		default:
			panic(fmt.Sprintf("drill: unknown op kind %d", int(op.Kind)))
		}
	}
	if rp := batch.Repaint; rp != nil {
		flat.Repaint = &RowRepaint{Row: postOffset(rp.Zone) + rp.Row, Anim: rp.Anim}
	}
	w.list.Apply(flat)
}

// zoneOffsets returns the flat offset of each zone given the ancestor and
// pivot row counts.
func zoneOffsets(ancestors, pivot int) func(Zone) int {
	return func(z Zone) int {
		switch z {
		case ZoneAncestors:
			return 0
		case ZonePivot:
			return ancestors
		case ZoneDescendants:
			return ancestors + pivot
		default:
			panic(fmt.Sprintf("drill: unknown zone %d", int(z)))
		}
	}
}
