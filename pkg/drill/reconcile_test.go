package drill_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/drillist/pkg/drill"
	"github.com/vanderheijden86/drillist/pkg/path"
	"github.com/vanderheijden86/drillist/pkg/treedata"
)

// abcTree is the reference shape used across tests: root children A, B, C,
// where A has children A1 and A2.
func abcTree() *treedata.Tree {
	return treedata.New(
		&treedata.Node{Title: "A", Children: []*treedata.Node{
			{Title: "A1"},
			{Title: "A2"},
		}},
		&treedata.Node{Title: "B"},
		&treedata.Node{Title: "C"},
	)
}

func countOps(b drill.Batch, kind drill.OpKind, zone drill.Zone) int {
	n := 0
	for _, op := range b.Ops {
		if op.Kind == kind && op.Zone == zone {
			n++
		}
	}
	return n
}

func TestDiffEqualPathsIsEmpty(t *testing.T) {
	rec := drill.Reconciler{ChildCount: abcTree().ChildCount}
	b := rec.Diff(path.New(0), path.New(0))
	if !b.Empty() {
		t.Errorf("diff of equal paths produced %d ops", len(b.Ops))
	}
}

func TestDiffDescendFromRoot(t *testing.T) {
	rec := drill.Reconciler{ChildCount: abcTree().ChildCount}
	b := rec.Diff(path.Root, path.New(0))

	// Siblings B and C leave the pivot zone; the tapped row survives.
	if got := countOps(b, drill.OpRemove, drill.ZonePivot); got != 2 {
		t.Errorf("pivot removals = %d, want 2", got)
	}
	// The collapsed root prefix becomes the single ancestor row.
	if got := countOps(b, drill.OpInsert, drill.ZoneAncestors); got != 1 {
		t.Errorf("ancestor insertions = %d, want 1", got)
	}
	// A1 and A2 fade in below.
	if got := countOps(b, drill.OpInsert, drill.ZoneDescendants); got != 2 {
		t.Errorf("descendant insertions = %d, want 2", got)
	}

	if b.Repaint == nil {
		t.Fatal("descend produced no pivot repaint")
	}
	if b.Repaint.Zone != drill.ZonePivot || b.Repaint.Row != 0 {
		t.Errorf("repaint at %s[%d], want pivot[0]", b.Repaint.Zone, b.Repaint.Row)
	}
	if b.Repaint.Role != drill.RoleCurrent {
		t.Errorf("repaint role = %s, want current", b.Repaint.Role)
	}
	if !b.Repaint.Path.Equal(path.New(0)) {
		t.Errorf("repaint path = %s, want /0", b.Repaint.Path)
	}
}

func TestDiffDescendAnimSplit(t *testing.T) {
	// Tapping the middle root sibling: the row above collapses upward, the
	// row below fades out.
	rec := drill.Reconciler{ChildCount: abcTree().ChildCount}
	b := rec.Diff(path.Root, path.New(1))

	var above, below drill.Anim
	for _, op := range b.Ops {
		if op.Kind != drill.OpRemove || op.Zone != drill.ZonePivot {
			continue
		}
		switch op.Row {
		case 0:
			above = op.Anim
		case 2:
			below = op.Anim
		default:
			t.Errorf("unexpected pivot removal at row %d", op.Row)
		}
	}
	if above != drill.AnimCollapseUp {
		t.Errorf("row above landing animated %s, want collapse-up", above)
	}
	if below != drill.AnimFadeOut {
		t.Errorf("row below landing animated %s, want fade-out", below)
	}
}

func TestDiffAscendToRoot(t *testing.T) {
	rec := drill.Reconciler{ChildCount: abcTree().ChildCount}
	b := rec.Diff(path.New(0), path.Root)

	if got := countOps(b, drill.OpRemove, drill.ZoneAncestors); got != 1 {
		t.Errorf("ancestor removals = %d, want 1", got)
	}
	if got := countOps(b, drill.OpRemove, drill.ZoneDescendants); got != 2 {
		t.Errorf("descendant removals = %d, want 2", got)
	}
	// Root has 3 children; the surviving pivot row covers the landing index,
	// so only 2 sibling rows are inserted.
	if got := countOps(b, drill.OpInsert, drill.ZonePivot); got != 2 {
		t.Errorf("pivot insertions = %d, want 2", got)
	}

	if b.Repaint == nil {
		t.Fatal("ascend produced no pivot repaint")
	}
	if b.Repaint.Role != drill.RoleRoot {
		t.Errorf("repaint role = %s, want root", b.Repaint.Role)
	}
	if b.Repaint.Row != 0 {
		t.Errorf("repaint pivot row = %d, want landing index 0", b.Repaint.Row)
	}
}

func TestDiffAscendWithinSubtree(t *testing.T) {
	tree := treedata.New(
		&treedata.Node{Title: "A", Children: []*treedata.Node{
			{Title: "A1", Children: []*treedata.Node{{Title: "A1a"}, {Title: "A1b"}, {Title: "A1c"}}},
			{Title: "A2"},
		}},
	)
	rec := drill.Reconciler{ChildCount: tree.ChildCount}

	// From /0/0/1 back up to /0: the landing ancestor keeps its two
	// children, and the pivot repaints with the full new path.
	prev := path.New(0, 0, 1)
	next := path.New(0)
	b := rec.Diff(prev, next)

	if got := countOps(b, drill.OpRemove, drill.ZoneAncestors); got != 2 {
		t.Errorf("ancestor removals = %d, want 2", got)
	}
	if got := countOps(b, drill.OpInsert, drill.ZoneDescendants); got != 2 {
		t.Errorf("descendant insertions = %d, want 2", got)
	}
	if got := countOps(b, drill.OpInsert, drill.ZonePivot); got != 0 {
		t.Errorf("pivot insertions = %d, want 0 when landing inside a subtree", got)
	}

	if b.Repaint == nil {
		t.Fatal("no pivot repaint")
	}
	if !b.Repaint.Path.Equal(next) {
		t.Errorf("repaint path = %s, want %s (full new selection)", b.Repaint.Path, next)
	}
	if b.Repaint.Role != drill.RoleCurrent {
		t.Errorf("repaint role = %s, want current", b.Repaint.Role)
	}
}

func TestDiffNonGesturePanics(t *testing.T) {
	rec := drill.Reconciler{ChildCount: abcTree().ChildCount}
	defer func() {
		if recover() == nil {
			t.Error("diff of sibling-to-sibling transition did not panic")
		}
	}()
	rec.Diff(path.New(0), path.New(1))
}

func TestDiffSkipLevelDescendPanics(t *testing.T) {
	rec := drill.Reconciler{ChildCount: abcTree().ChildCount}
	defer func() {
		if recover() == nil {
			t.Error("two-level descend did not panic")
		}
	}()
	rec.Diff(path.Root, path.New(0, 1))
}

// TestAscendToRootClosedForm checks the op counts for ascend(0) against the
// closed form: L ancestor removals, childCount(prev) descendant removals,
// rootChildCount-1 pivot insertions split around the landing index.
func TestAscendToRootClosedForm(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree, leaves := genTree(t)
		if len(leaves) == 0 {
			t.Skip("tree with no non-root nodes")
		}
		prev := leaves[rapid.IntRange(0, len(leaves)-1).Draw(t, "node")]

		rec := drill.Reconciler{ChildCount: tree.ChildCount}
		b := rec.Diff(prev, path.Root)

		L := prev.Len()
		rootCount := tree.ChildCount(path.Root)
		if got := countOps(b, drill.OpRemove, drill.ZoneAncestors); got != L {
			t.Fatalf("ancestor removals = %d, want %d", got, L)
		}
		if got := countOps(b, drill.OpRemove, drill.ZoneDescendants); got != tree.ChildCount(prev) {
			t.Fatalf("descendant removals = %d, want %d", got, tree.ChildCount(prev))
		}
		if got := countOps(b, drill.OpInsert, drill.ZonePivot); got != rootCount-1 {
			t.Fatalf("pivot insertions = %d, want %d", got, rootCount-1)
		}

		// Split sides around the surviving row.
		landing := prev.Head()
		for _, op := range b.Ops {
			if op.Kind != drill.OpInsert || op.Zone != drill.ZonePivot {
				continue
			}
			if op.Row == landing {
				t.Fatalf("insertion at the landing index %d; that row must survive", landing)
			}
			if op.Row < landing && op.Anim != drill.AnimRevealDown {
				t.Fatalf("row %d above landing animated %s", op.Row, op.Anim)
			}
			if op.Row > landing && op.Anim != drill.AnimFadeIn {
				t.Fatalf("row %d below landing animated %s", op.Row, op.Anim)
			}
		}
	})
}

// genTree draws a random small tree and returns it along with every non-root
// path in it.
func genTree(t *rapid.T) (*treedata.Tree, []path.Path) {
	var paths []path.Path
	var build func(p path.Path, depth int) *treedata.Node

	build = func(p path.Path, depth int) *treedata.Node {
		n := &treedata.Node{Title: rapid.StringMatching(`n[0-9]{4}`).Draw(t, "title")}
		if depth >= 3 {
			return n
		}
		kids := rapid.IntRange(0, 3).Draw(t, "kids")
		for i := 0; i < kids; i++ {
			child := p.Append(i)
			paths = append(paths, child)
			n.Children = append(n.Children, build(child, depth+1))
		}
		return n
	}

	rootKids := rapid.IntRange(1, 4).Draw(t, "rootKids")
	roots := make([]*treedata.Node, 0, rootKids)
	for i := 0; i < rootKids; i++ {
		p := path.New(i)
		paths = append(paths, p)
		roots = append(roots, build(p, 1))
	}
	return treedata.New(roots...), paths
}
