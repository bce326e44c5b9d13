// Package treedata provides an in-memory tree that backs drillist widgets in
// the demo binary and in tests. Trees are small, fully materialized, and
// loadable from YAML or JSON fixture files.
package treedata

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/drillist/pkg/debug"
	"github.com/vanderheijden86/drillist/pkg/drill"
	"github.com/vanderheijden86/drillist/pkg/path"
)

// Node is one tree node. Children are ordered; child indices in a path refer
// to positions in this slice.
type Node struct {
	Title    string  `yaml:"title" json:"title"`
	Detail   string  `yaml:"detail,omitempty" json:"detail,omitempty"`
	Children []*Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// Tree is a forest of root nodes implementing drill.DataSource.
type Tree struct {
	Roots []*Node `yaml:"roots" json:"roots"`
}

// New builds a tree from the given root nodes.
func New(roots ...*Node) *Tree {
	return &Tree{Roots: roots}
}

// Load reads a tree fixture from disk, decoding by file extension:
// .yaml/.yml via yaml.v3, .json via goccy/go-json.
func Load(file string) (*Tree, error) {
	defer debug.LogEnterExit("treedata load")()
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read tree fixture: %w", err)
	}
	return Decode(data, file)
}

// Decode parses fixture bytes, using name's extension to pick the format.
func Decode(data []byte, name string) (*Tree, error) {
	var t Tree
	switch {
	case strings.HasSuffix(name, ".json"):
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported tree fixture format: %s", name)
	}
	return &t, nil
}

// Node returns the node at p, or nil if any index along the way is out of
// range. The root path returns nil: the forest itself has no node.
func (t *Tree) Node(p path.Path) *Node {
	if t == nil || p.IsRoot() {
		return nil
	}
	level := t.Roots
	var n *Node
	for depth := 0; depth < p.Len(); depth++ {
		idx := p.At(depth)
		if idx >= len(level) {
			return nil
		}
		n = level[idx]
		level = n.Children
	}
	return n
}

// ChildCount implements drill.DataSource.
func (t *Tree) ChildCount(p path.Path) int {
	if t == nil {
		return 0
	}
	if p.IsRoot() {
		return len(t.Roots)
	}
	n := t.Node(p)
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Paint implements drill.DataSource. The title is decorated per role so the
// zone structure stays legible in a plain single-line row.
func (t *Tree) Paint(w drill.RowWriter, p path.Path, role drill.Role) {
	if p.IsRoot() {
		// The collapsed root prefix shown as the topmost ancestor row.
		w.SetTitle("◂ top")
		w.SetDetail("")
		return
	}
	n := t.Node(p)
	if n == nil {
		w.SetTitle("")
		w.SetDetail("")
		return
	}

	switch role {
	case drill.RoleUpward:
		w.SetTitle("◂ " + n.Title)
	case drill.RoleRoot:
		w.SetTitle(n.Title)
	case drill.RoleCurrent:
		w.SetTitle("▾ " + n.Title)
	case drill.RoleDownward:
		w.SetTitle("  " + n.Title)
	default:
		panic(fmt.Sprintf("treedata: unknown role %d", int(role)))
	}
	w.SetDetail(n.Detail)
}
