// Package listview renders a drillist widget inside a Bubble Tea program.
//
// The Model is the concrete ListPrimitive collaborator: it owns the flat row
// surfaces, executes structural edit batches atomically, and plays animation
// hints as short-lived style accents. Row content is pulled through a
// drill.RowProvider the model holds as a non-owning reference; clearing the
// provider leaves an inert, empty list.
package listview

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/drillist/pkg/drill"
)

// AnimDuration is how long a row keeps its transient animation accent.
const AnimDuration = 180 * time.Millisecond

// animTickMsg drives accent expiry.
type animTickMsg time.Time

// Option configures a Model at construction time.
type Option func(*Model)

// WithTheme overrides the default theme.
func WithTheme(t Theme) Option {
	return func(m *Model) { m.theme = t }
}

// WithRowHeight sets the rendered height of every row in lines. Heights
// above 1 reserve the extra lines for the detail text.
func WithRowHeight(h int) Option {
	return func(m *Model) {
		if h >= 1 {
			m.rowHeight = h
		}
	}
}

// WithSize sets the initial viewport size, for programs that know their
// dimensions before the first WindowSizeMsg arrives.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width, m.height = width, height
	}
}

// Model is a scrollable flat list of reusable row cells. It implements both
// tea.Model (pointer receivers; the same instance flows through Update) and
// drill.ListPrimitive.
type Model struct {
	provider drill.RowProvider
	onTap    func(row int)
	rowKind  string

	theme     Theme
	rowHeight int

	rows   []*cell
	pool   *cellPool
	cursor int

	vp            viewport.Model
	width, height int

	animating bool
}

// New returns a list pulling rows from the given provider. The provider may
// be nil; attach one later with SetProvider.
func New(provider drill.RowProvider, opts ...Option) *Model {
	m := &Model{
		provider:  provider,
		rowKind:   drill.DefaultRowKind,
		theme:     DefaultTheme(),
		rowHeight: drill.DefaultRowHeight,
		pool:      newCellPool(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.vp = viewport.New(m.width, m.height)
	if provider != nil {
		m.ReloadAll()
	}
	return m
}

// Attach wires a drill.Widget and a new list together: the widget becomes
// the list's row provider and tap target, and the list becomes the widget's
// ListPrimitive. This is the usual way to construct both.
func Attach(w *drill.Widget, opts ...Option) *Model {
	m := New(w, append([]Option{WithRowHeight(w.RowHeight())}, opts...)...)
	m.rowKind = w.RowKind()
	m.onTap = w.Tap
	w.SetList(m)
	m.ReloadAll()
	return m
}

// SetProvider replaces the row provider. A nil provider empties the list;
// the reference is non-owning and may be cleared at any time.
func (m *Model) SetProvider(p drill.RowProvider) {
	m.provider = p
	m.ReloadAll()
}

// SetOnTap sets the callback invoked when a row is activated.
func (m *Model) SetOnTap(fn func(row int)) {
	m.onTap = fn
}

// Tap activates the given flat row and returns the command that expires any
// animation accents the resulting transition started. It is the entry point
// for programmatic taps (an app-level "go up" binding, say); the caller must
// run the returned command or the accents linger past their window.
func (m *Model) Tap(row int) tea.Cmd {
	if m.onTap == nil || row < 0 || row >= len(m.rows) {
		return nil
	}
	m.onTap(row)
	if m.animating {
		return animTick()
	}
	return nil
}

// Cursor returns the flat index of the row under the selection bar.
func (m *Model) Cursor() int {
	return m.cursor
}

// RowCount returns the number of rows currently displayed.
func (m *Model) RowCount() int {
	return len(m.rows)
}

// SetSize resizes the list.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.vp.Width = width
	m.vp.Height = height
	m.refresh()
}

// ReloadAll implements drill.ListPrimitive: discard all rows and repopulate
// from the provider. Existing cells go back to the pool first, so surfaces
// are recycled even across a full reload.
func (m *Model) ReloadAll() {
	for _, c := range m.rows {
		m.pool.put(c)
	}
	m.rows = m.rows[:0]

	if m.provider != nil {
		count := m.provider.RowCount()
		for row := 0; row < count; row++ {
			c := m.pool.get(m.rowKind)
			m.provider.PaintRow(c, row)
			m.rows = append(m.rows, c)
		}
	}
	m.clampCursor()
	m.refresh()
}

// Apply implements drill.ListPrimitive. Removals are applied in descending
// row order against the pre-transition layout, then insertions ascending
// against the post-transition layout, then the single in-place repaint.
// Surviving cells keep their identity throughout. The logical row state is
// consistent the moment this returns; only the accent playback is deferred.
func (m *Model) Apply(batch drill.RowBatch) {
	if m.provider == nil {
		// Provider cleared under us: no widget, emit nothing.
		return
	}

	now := time.Now()

	removes := append([]drill.RowEdit(nil), batch.Removes...)
	sort.Slice(removes, func(i, j int) bool { return removes[i].Row > removes[j].Row })
	for _, e := range removes {
		m.pool.put(m.rows[e.Row])
		m.rows = append(m.rows[:e.Row], m.rows[e.Row+1:]...)
	}

	inserts := append([]drill.RowEdit(nil), batch.Inserts...)
	sort.Slice(inserts, func(i, j int) bool { return inserts[i].Row < inserts[j].Row })
	for _, e := range inserts {
		c := m.pool.get(m.rowKind)
		c.anim = e.Anim
		c.animUntil = now.Add(AnimDuration)
		m.rows = append(m.rows, nil)
		copy(m.rows[e.Row+1:], m.rows[e.Row:])
		m.rows[e.Row] = c
	}
	// Insertion indices are final post-transition positions, so content can
	// be pulled only after the structure settles.
	for _, e := range inserts {
		m.provider.PaintRow(m.rows[e.Row], e.Row)
	}

	if rp := batch.Repaint; rp != nil {
		c := m.rows[rp.Row]
		m.provider.PaintRow(c, rp.Row)
		c.anim = rp.Anim
		c.animUntil = now.Add(AnimDuration)
	}

	m.animating = len(inserts) > 0 || batch.Repaint != nil
	m.clampCursor()
	m.refresh()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case animTickMsg:
		m.expireAnims(time.Time(msg))
		if m.animating {
			return m, animTick()
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home", "g":
		m.cursor = 0
		m.refresh()
	case "end", "G":
		m.cursor = len(m.rows) - 1
		m.clampCursor()
		m.refresh()
	case "enter", "l", "right":
		return m, m.Tap(m.cursor)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	return m.vp.View()
}

func animTick() tea.Cmd {
	return tea.Tick(AnimDuration, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// expireAnims clears accents whose window has passed.
func (m *Model) expireAnims(now time.Time) {
	live := false
	for _, c := range m.rows {
		if c.anim == drill.AnimNone {
			continue
		}
		if !now.Before(c.animUntil) {
			c.anim = drill.AnimNone
			c.animUntil = time.Time{}
		} else {
			live = true
		}
	}
	m.animating = live
	m.refresh()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.refresh()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// refresh re-renders all rows into the viewport and keeps the cursor row in
// view.
func (m *Model) refresh() {
	var b strings.Builder
	for i, c := range m.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderRow(c, i == m.cursor))
	}
	m.vp.SetContent(b.String())
	m.scrollCursorIntoView()
}

func (m *Model) scrollCursorIntoView() {
	if m.vp.Height <= 0 {
		return
	}
	top := m.cursor * m.rowHeight
	bottom := top + m.rowHeight - 1
	if top < m.vp.YOffset {
		m.vp.SetYOffset(top)
	} else if bottom >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(bottom - m.vp.Height + 1)
	}
}

// renderRow renders one cell as rowHeight lines, truncated to the list
// width.
func (m *Model) renderRow(c *cell, underCursor bool) string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	style := m.roleStyle(c.role)
	switch c.anim {
	case drill.AnimFadeIn, drill.AnimRevealDown:
		style = style.Inherit(m.theme.Appearing)
	case drill.AnimCrossFade:
		style = style.Inherit(m.theme.Repainted)
	}
	if underCursor {
		style = style.Inherit(m.theme.Cursor)
	}

	lines := make([]string, 0, m.rowHeight)
	lines = append(lines, style.Render(padTo(c.title, width)))
	for extra := 1; extra < m.rowHeight; extra++ {
		detail := ""
		if extra == 1 {
			detail = c.detail
		}
		lines = append(lines, m.theme.Detail.Render(padTo("    "+detail, width)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) roleStyle(role drill.Role) lipgloss.Style {
	switch role {
	case drill.RoleUpward:
		return m.theme.Upward
	case drill.RoleRoot:
		return m.theme.Root
	case drill.RoleCurrent:
		return m.theme.Current
	case drill.RoleDownward:
		return m.theme.Downward
	default:
		panic(fmt.Sprintf("listview: unknown role %d", int(role)))
	}
}

// padTo truncates or pads s to exactly width display cells.
func padTo(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
