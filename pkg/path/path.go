// Package path defines the immutable tree-path value used throughout
// drillist.
//
// A Path is an ordered sequence of child indices locating a node from the
// tree root; the empty path is the root itself. Paths are values: every
// derivation (Append, Prefix, Parent) returns a fresh Path and never aliases
// the receiver's backing array, so a Path handed to a collaborator can be
// retained without defensive copying on their side.
package path

import (
	"fmt"
	"strings"
)

// Path locates a tree node as the sequence of child indices chosen at each
// depth. The zero value is the root.
type Path struct {
	indices []int
}

// Root is the empty path.
var Root = Path{}

// New builds a path from the given child indices. Negative indices are a
// programming error.
func New(indices ...int) Path {
	for i, idx := range indices {
		if idx < 0 {
			panic(fmt.Sprintf("path: negative child index %d at depth %d", idx, i))
		}
	}
	if len(indices) == 0 {
		return Root
	}
	owned := make([]int, len(indices))
	copy(owned, indices)
	return Path{indices: owned}
}

// Len returns the depth of the path. The root has length 0.
func (p Path) Len() int {
	return len(p.indices)
}

// IsRoot reports whether the path is the empty root path.
func (p Path) IsRoot() bool {
	return len(p.indices) == 0
}

// At returns the child index chosen at the given depth.
func (p Path) At(depth int) int {
	if depth < 0 || depth >= len(p.indices) {
		panic(fmt.Sprintf("path: depth %d out of range for path of length %d", depth, len(p.indices)))
	}
	return p.indices[depth]
}

// Head returns the first-level child index. Panics on the root path.
func (p Path) Head() int {
	return p.At(0)
}

// Last returns the deepest child index. Panics on the root path.
func (p Path) Last() int {
	return p.At(len(p.indices) - 1)
}

// Append returns a new path one level deeper, descending into child.
func (p Path) Append(child int) Path {
	if child < 0 {
		panic(fmt.Sprintf("path: negative child index %d", child))
	}
	owned := make([]int, len(p.indices)+1)
	copy(owned, p.indices)
	owned[len(p.indices)] = child
	return Path{indices: owned}
}

// Prefix returns the path truncated to the given length.
func (p Path) Prefix(length int) Path {
	if length < 0 || length > len(p.indices) {
		panic(fmt.Sprintf("path: prefix length %d out of range for path of length %d", length, len(p.indices)))
	}
	if length == 0 {
		return Root
	}
	owned := make([]int, length)
	copy(owned, p.indices[:length])
	return Path{indices: owned}
}

// Parent returns the path one level up. Panics on the root path.
func (p Path) Parent() Path {
	if p.IsRoot() {
		panic("path: root has no parent")
	}
	return p.Prefix(len(p.indices) - 1)
}

// Equal reports whether two paths name the same node.
func (p Path) Equal(other Path) bool {
	if len(p.indices) != len(other.indices) {
		return false
	}
	for i, idx := range p.indices {
		if other.indices[i] != idx {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a (not necessarily proper) prefix of p.
func (p Path) HasPrefix(prefix Path) bool {
	if prefix.Len() > p.Len() {
		return false
	}
	for i, idx := range prefix.indices {
		if p.indices[i] != idx {
			return false
		}
	}
	return true
}

// Indices returns a copy of the underlying index sequence.
func (p Path) Indices() []int {
	if len(p.indices) == 0 {
		return nil
	}
	owned := make([]int, len(p.indices))
	copy(owned, p.indices)
	return owned
}

// MarshalJSON encodes the path as its index array, so structured debug
// output of transition batches stays readable.
func (p Path) MarshalJSON() ([]byte, error) {
	indices := p.indices
	if indices == nil {
		indices = []int{}
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, idx := range indices {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", idx)
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}

// String renders the path as "/" for the root and "/0/2/1" otherwise.
func (p Path) String() string {
	if p.IsRoot() {
		return "/"
	}
	var b strings.Builder
	for _, idx := range p.indices {
		fmt.Fprintf(&b, "/%d", idx)
	}
	return b.String()
}
