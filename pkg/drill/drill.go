// Package drill implements the navigation core of drillist: a hierarchical
// dataset presented as one flat scrollable list, where moving into a node's
// children or back to its ancestors is expressed as batched row
// insertions/deletions instead of screen transitions.
//
// The package is deliberately split along the seam that matters:
//
//   - State owns the single source of truth, the selected Path, and nothing
//     else. Every derived quantity (ancestor count, sibling counts, child
//     counts) is recomputed from the path plus DataSource queries.
//   - Reconciler is a pure diff: previous path + new path + child counts in,
//     ordered structural edits with animation hints out. It never touches the
//     list primitive and holds no state.
//   - Widget glues State and Reconciler to the external collaborators and
//     translates per-zone row indices to flat list indices.
//
// Rendering, scrolling, and animation playback live behind the ListPrimitive
// interface; pkg/listview provides a Bubble Tea implementation.
package drill

import "fmt"

// Zone identifies one of the three disjoint regions of the displayed list,
// concatenated in fixed order: ancestors above, the pivot, descendants below.
type Zone int

const (
	// ZoneAncestors holds one row per proper prefix of the selected path,
	// topmost ancestor first. Row count equals the selected path's length.
	ZoneAncestors Zone = iota
	// ZonePivot holds all root-level sibling rows while the selection is the
	// root, and exactly one "current" row once descended.
	ZonePivot
	// ZoneDescendants holds one row per child of the selected path, in child
	// order. Empty while the selection is the root.
	ZoneDescendants
)

// String returns the zone name for debug output.
func (z Zone) String() string {
	switch z {
	case ZoneAncestors:
		return "ancestors"
	case ZonePivot:
		return "pivot"
	case ZoneDescendants:
		return "descendants"
	default:
		panic(fmt.Sprintf("drill: unknown zone %d", int(z)))
	}
}

// Role is the semantic purpose a row is painted with. It is derived from the
// row's zone and the current sub-mode, never stored.
type Role int

const (
	// RoleUpward marks an ancestor row.
	RoleUpward Role = iota
	// RoleRoot marks a root-level sibling row while browsing at the root.
	RoleRoot
	// RoleCurrent marks the single pivot row once descended.
	RoleCurrent
	// RoleDownward marks a child row of the current selection.
	RoleDownward
)

// String returns the role name for debug output.
func (r Role) String() string {
	switch r {
	case RoleUpward:
		return "upward"
	case RoleRoot:
		return "root"
	case RoleCurrent:
		return "current"
	case RoleDownward:
		return "downward"
	default:
		panic(fmt.Sprintf("drill: unknown role %d", int(r)))
	}
}

// Anim is the animation hint attached to a structural edit. The list
// primitive decides how (or whether) to play it; the hint only records the
// direction the edit reads best in.
type Anim int

const (
	// AnimNone plays no animation.
	AnimNone Anim = iota
	// AnimCollapseUp slides rows upward as they leave.
	AnimCollapseUp
	// AnimRevealDown slides rows downward into place as they appear.
	AnimRevealDown
	// AnimFadeIn fades appearing rows in.
	AnimFadeIn
	// AnimFadeOut fades leaving rows out.
	AnimFadeOut
	// AnimCrossFade cross-fades a row repainted in place.
	AnimCrossFade
)

// String returns the animation hint name for debug output.
func (a Anim) String() string {
	switch a {
	case AnimNone:
		return "none"
	case AnimCollapseUp:
		return "collapse-up"
	case AnimRevealDown:
		return "reveal-down"
	case AnimFadeIn:
		return "fade-in"
	case AnimFadeOut:
		return "fade-out"
	case AnimCrossFade:
		return "cross-fade"
	default:
		panic(fmt.Sprintf("drill: unknown anim %d", int(a)))
	}
}
