package listview

import (
	"time"

	"github.com/vanderheijden86/drillist/pkg/drill"
)

// cell is one reusable row surface. Cells survive structural edits when their
// row survives, which is what keeps animation continuity: the reconciler's
// repaint replaces a surviving cell's content without replacing the cell.
type cell struct {
	kind   string
	role   drill.Role
	title  string
	detail string

	// anim is the hint the cell entered (or was repainted) with; cleared
	// once animUntil passes.
	anim      drill.Anim
	animUntil time.Time
}

// SetRole implements drill.RowWriter.
func (c *cell) SetRole(role drill.Role) { c.role = role }

// SetTitle implements drill.RowWriter.
func (c *cell) SetTitle(title string) { c.title = title }

// SetDetail implements drill.RowWriter.
func (c *cell) SetDetail(detail string) { c.detail = detail }

// cellPool recycles cells by kind so a transition that removes and inserts
// rows reuses surfaces instead of allocating fresh ones. The widget's single
// row kind means one bucket in practice, but the pool does not assume it.
type cellPool struct {
	free map[string][]*cell
}

func newCellPool() *cellPool {
	return &cellPool{free: make(map[string][]*cell)}
}

// get returns a recycled cell of the given kind, or a fresh one. Recycled
// cells keep stale content on purpose: painters must not assume a fresh
// surface.
func (p *cellPool) get(kind string) *cell {
	bucket := p.free[kind]
	if n := len(bucket); n > 0 {
		c := bucket[n-1]
		p.free[kind] = bucket[:n-1]
		return c
	}
	return &cell{kind: kind}
}

// put returns a cell to the pool.
func (p *cellPool) put(c *cell) {
	c.anim = drill.AnimNone
	c.animUntil = time.Time{}
	p.free[c.kind] = append(p.free[c.kind], c)
}
