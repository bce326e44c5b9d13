package drill

import (
	"fmt"

	"github.com/vanderheijden86/drillist/pkg/path"
)

// State owns the single source of truth: the currently selected path. It is a
// thin invariant-preserving wrapper; the interesting work happens in the
// Reconciler. Side effects are strictly ordered on every mutation: store the
// new path, notify the delegate, then the caller drives reconciliation.
//
// State is single-threaded by design. There is exactly one mutator (the
// widget) and all readers are synchronous callbacks, so no locking is needed.
type State struct {
	current  path.Path
	delegate Delegate
}

// NewState returns a State selecting the root. The delegate may be nil.
func NewState(delegate Delegate) *State {
	return &State{delegate: delegate}
}

// Path returns the currently selected path.
func (s *State) Path() path.Path {
	return s.current
}

// SetDelegate replaces the notification target. A nil delegate silences
// notifications.
func (s *State) SetDelegate(d Delegate) {
	s.delegate = d
}

// SetPath replaces the selection wholesale. No diffing is attempted; the
// caller must trigger a full reload of all three zones.
func (s *State) SetPath(p path.Path) {
	s.current = p
	s.notifyChanged()
}

// DescendInto moves the selection one level deeper into the given child and
// returns the new path. Index bounds against the data source are the
// caller's responsibility; only negative indices are rejected here.
func (s *State) DescendInto(child int) path.Path {
	if child < 0 {
		panic(fmt.Sprintf("drill: descend into negative child index %d", child))
	}
	s.current = s.current.Append(child)
	s.notifyChanged()
	return s.current
}

// AscendTo truncates the selection to the given ancestor depth and returns
// the new path. The depth must lie in [0, Path().Len()); anything else is a
// programming error, not a recoverable failure, because silently clamping
// would desynchronize the displayed rows from the logical path.
func (s *State) AscendTo(depth int) path.Path {
	if depth < 0 || depth >= s.current.Len() {
		panic(fmt.Sprintf("drill: ascend depth %d out of range for path %s", depth, s.current))
	}
	s.current = s.current.Prefix(depth)
	s.notifyChanged()
	return s.current
}

// ReselectCurrent signals that the already-selected item was tapped again.
// The path does not change and no structural work follows.
func (s *State) ReselectCurrent() {
	if s.delegate != nil {
		s.delegate.ReselectCurrent()
	}
}

func (s *State) notifyChanged() {
	if s.delegate != nil {
		s.delegate.SelectionChanged(s.current)
	}
}
