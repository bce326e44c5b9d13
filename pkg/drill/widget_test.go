package drill_test

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/drillist/pkg/drill"
	"github.com/vanderheijden86/drillist/pkg/path"
)

// fakeWriter captures what a paint call produced.
type fakeWriter struct {
	role   drill.Role
	title  string
	detail string
}

func (w *fakeWriter) SetRole(r drill.Role)    { w.role = r }
func (w *fakeWriter) SetTitle(title string)   { w.title = title }
func (w *fakeWriter) SetDetail(detail string) { w.detail = detail }

// fakeList is a shadow list primitive: it maintains the displayed rows as
// strings, applying batches with the exact contract a real list uses
// (removals descending against the old layout, insertions ascending against
// the new one, repaint last). Comparing it against a fresh pull of every row
// is how the incremental protocol is validated.
type fakeList struct {
	provider drill.RowProvider
	rows     []string

	applies   int
	reloads   int
	lastBatch drill.RowBatch
}

func (f *fakeList) render(row int) string {
	var w fakeWriter
	f.provider.PaintRow(&w, row)
	return fmt.Sprintf("%s|%s", w.title, w.role)
}

func (f *fakeList) Apply(b drill.RowBatch) {
	f.applies++
	f.lastBatch = b

	removes := append([]drill.RowEdit(nil), b.Removes...)
	for i := 0; i < len(removes); i++ {
		for j := i + 1; j < len(removes); j++ {
			if removes[j].Row > removes[i].Row {
				removes[i], removes[j] = removes[j], removes[i]
			}
		}
	}
	for _, e := range removes {
		f.rows = append(f.rows[:e.Row], f.rows[e.Row+1:]...)
	}

	inserts := append([]drill.RowEdit(nil), b.Inserts...)
	for i := 0; i < len(inserts); i++ {
		for j := i + 1; j < len(inserts); j++ {
			if inserts[j].Row < inserts[i].Row {
				inserts[i], inserts[j] = inserts[j], inserts[i]
			}
		}
	}
	for _, e := range inserts {
		f.rows = append(f.rows, "")
		copy(f.rows[e.Row+1:], f.rows[e.Row:])
		f.rows[e.Row] = "" // painted below, once the structure settles
	}
	for _, e := range inserts {
		f.rows[e.Row] = f.render(e.Row)
	}

	if b.Repaint != nil {
		f.rows[b.Repaint.Row] = f.render(b.Repaint.Row)
	}
}

func (f *fakeList) ReloadAll() {
	f.reloads++
	f.rows = f.rows[:0]
	for row := 0; row < f.provider.RowCount(); row++ {
		f.rows = append(f.rows, f.render(row))
	}
}

// snapshot pulls every row fresh, the way a full reload would.
func snapshot(p drill.RowProvider) []string {
	f := fakeList{provider: p}
	out := make([]string, 0, p.RowCount())
	for row := 0; row < p.RowCount(); row++ {
		out = append(out, f.render(row))
	}
	return out
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestWidget(src drill.DataSource, del drill.Delegate) (*drill.Widget, *fakeList) {
	w := drill.New()
	w.SetDataSource(src)
	w.SetDelegate(del)
	list := &fakeList{provider: w}
	w.SetList(list)
	list.ReloadAll()
	return w, list
}

// TestWidgetScenario walks the reference scenario: root [A,B,C], A has
// [A1,A2]. Tap root sibling 0, then tap the ancestor row back to the root.
func TestWidgetScenario(t *testing.T) {
	w, list := newTestWidget(abcTree(), nil)

	if got := w.RowCount(); got != 3 {
		t.Fatalf("initial rows = %d, want 3 root siblings", got)
	}

	// Tap A.
	w.Tap(0)
	if !w.Selection().Equal(path.New(0)) {
		t.Fatalf("selection = %s, want /0", w.Selection())
	}
	if got := w.ZoneRowCount(drill.ZoneAncestors); got != 1 {
		t.Errorf("ancestor rows = %d, want 1", got)
	}
	if got := w.ZoneRowCount(drill.ZonePivot); got != 1 {
		t.Errorf("pivot rows = %d, want 1", got)
	}
	if got := w.ZoneRowCount(drill.ZoneDescendants); got != 2 {
		t.Errorf("descendant rows = %d, want 2 (A1, A2)", got)
	}

	// The pivot row was repainted in place, not reinserted: flat row 1.
	if list.lastBatch.Repaint == nil || list.lastBatch.Repaint.Row != 1 {
		t.Errorf("repaint = %+v, want flat row 1", list.lastBatch.Repaint)
	}
	for _, e := range list.lastBatch.Inserts {
		if e.Row == 1 {
			t.Error("pivot row was reinserted instead of repainted")
		}
	}
	if !equalRows(list.rows, snapshot(w)) {
		t.Errorf("rows after descend = %v, want %v", list.rows, snapshot(w))
	}

	// Tap the ancestor row representing the root.
	w.Tap(0)
	if !w.Selection().IsRoot() {
		t.Fatalf("selection = %s, want root", w.Selection())
	}
	if got := w.ZoneRowCount(drill.ZonePivot); got != 3 {
		t.Errorf("pivot rows = %d, want 3 after returning to root", got)
	}
	if got := w.ZoneRowCount(drill.ZoneAncestors); got != 0 {
		t.Errorf("ancestor rows = %d, want 0", got)
	}
	if got := w.ZoneRowCount(drill.ZoneDescendants); got != 0 {
		t.Errorf("descendant rows = %d, want 0", got)
	}
	if !equalRows(list.rows, snapshot(w)) {
		t.Errorf("rows after ascend = %v, want %v", list.rows, snapshot(w))
	}
}

func TestWidgetDescendAscendRoundTrip(t *testing.T) {
	w, list := newTestWidget(abcTree(), nil)
	before := append([]string(nil), list.rows...)

	w.Tap(0) // descend into A
	w.Tap(0) // ascend back to root

	if !equalRows(list.rows, before) {
		t.Errorf("round trip changed the displayed rows: %v -> %v", before, list.rows)
	}
}

func TestWidgetReselectFiresOnceWithZeroOps(t *testing.T) {
	del := &recordingDelegate{}
	w, list := newTestWidget(abcTree(), del)

	w.Tap(0) // descend into A; pivot is flat row 1
	appliesBefore := list.applies

	w.Tap(1) // pivot re-tap
	if del.reselected != 1 {
		t.Errorf("reselect notifications = %d, want 1", del.reselected)
	}
	if list.applies != appliesBefore {
		t.Errorf("re-tap emitted %d structural batches, want 0", list.applies-appliesBefore)
	}
	if len(del.changed) != 1 {
		t.Errorf("selection-changed notifications = %d, want 1 (descend only)", len(del.changed))
	}
}

func TestWidgetSetSelectionReloadsWithoutIncrementalOps(t *testing.T) {
	w, list := newTestWidget(abcTree(), nil)
	applies, reloads := list.applies, list.reloads

	w.SetSelection(path.New(0, 1))

	if list.applies != applies {
		t.Errorf("replacement emitted %d incremental batches, want 0", list.applies-applies)
	}
	if list.reloads != reloads+1 {
		t.Errorf("replacement reloads = %d, want exactly one more", list.reloads-reloads)
	}
	if !equalRows(list.rows, snapshot(w)) {
		t.Errorf("rows after replacement = %v, want %v", list.rows, snapshot(w))
	}
}

func TestWidgetNoDataSourceReportsZeroRows(t *testing.T) {
	w := drill.New()
	if got := w.RowCount(); got != 0 {
		t.Errorf("RowCount with no source = %d, want 0", got)
	}
	for _, z := range []drill.Zone{drill.ZoneAncestors, drill.ZonePivot, drill.ZoneDescendants} {
		if got := w.ZoneRowCount(z); got != 0 {
			t.Errorf("ZoneRowCount(%s) = %d, want 0", z, got)
		}
	}
}

func TestWidgetLeafHasNoDescendantRows(t *testing.T) {
	w, _ := newTestWidget(abcTree(), nil)
	w.SetSelection(path.New(1)) // B, childless

	if got := w.ZoneRowCount(drill.ZoneDescendants); got != 0 {
		t.Errorf("descendant rows of a leaf = %d, want 0", got)
	}
	// Ancestor row + pivot row only: no flat index can name a descend.
	if got := w.RowCount(); got != 2 {
		t.Errorf("rows = %d, want 2", got)
	}
}

func TestWidgetTapOutOfRangePanics(t *testing.T) {
	w, _ := newTestWidget(abcTree(), nil)
	defer func() {
		if recover() == nil {
			t.Error("tap past the last row did not panic")
		}
	}()
	w.Tap(w.RowCount())
}

// TestWidgetRandomWalkConsistency drives random taps through random trees
// and checks, after every transition, that the incrementally maintained rows
// equal a fresh pull of every row, and that the descendant zone always
// matches the data source's child count.
func TestWidgetRandomWalkConsistency(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree, _ := genTree(t)
		w, list := newTestWidget(tree, nil)

		steps := rapid.IntRange(1, 25).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			count := w.RowCount()
			if count == 0 {
				break
			}
			w.Tap(rapid.IntRange(0, count-1).Draw(t, "row"))

			if !equalRows(list.rows, snapshot(w)) {
				t.Fatalf("step %d: rows diverged from snapshot\n got %v\nwant %v", i, list.rows, snapshot(w))
			}
			sel := w.Selection()
			if !sel.IsRoot() {
				if got, want := w.ZoneRowCount(drill.ZoneDescendants), tree.ChildCount(sel); got != want {
					t.Fatalf("step %d: descendant rows = %d, want ChildCount(%s) = %d", i, got, sel, want)
				}
			}
		}
	})
}
