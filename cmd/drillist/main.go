// Command drillist is a demo browser for the drill-down list widget: it
// loads a tree fixture (YAML or JSON) and lets you navigate it as a single
// flat list with animated row transitions.
//
// Usage:
//
//	drillist [options] <tree.yaml|tree.json>
//
// Keys: up/down or j/k to move, enter/l to drill in or back out via an
// ancestor row, h/esc to go up one level, y to copy the selected path, q to
// quit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/drillist/pkg/config"
	"github.com/vanderheijden86/drillist/pkg/debug"
	"github.com/vanderheijden86/drillist/pkg/drill"
	"github.com/vanderheijden86/drillist/pkg/listview"
	"github.com/vanderheijden86/drillist/pkg/path"
	"github.com/vanderheijden86/drillist/pkg/treedata"
	"github.com/vanderheijden86/drillist/pkg/version"
	"github.com/vanderheijden86/drillist/pkg/watcher"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Config file path")
	rowHeight := flag.Int("row-height", 0, "Lines per row (overrides config)")
	noWatch := flag.Bool("no-watch", false, "Disable fixture live reload")
	debugFlag := flag.Bool("debug", false, "Enable debug logging on stderr")
	versionFlag := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *debugFlag {
		debug.SetEnabled(true)
	}

	if *help {
		fmt.Println("Usage: drillist [options] <tree.yaml|tree.json>")
		fmt.Println("\nA demo browser for the drill-down list widget.")
		flag.PrintDefaults()
		return
	}
	if *versionFlag {
		fmt.Println("drillist", version.Version)
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "drillist: exactly one tree fixture argument required")
		os.Exit(2)
	}
	fixture := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drillist: %v\n", err)
		os.Exit(1)
	}
	if *rowHeight > 0 {
		cfg.UI.RowHeight = *rowHeight
	}
	debug.Dump("config", cfg)

	tree, err := treedata.Load(fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drillist: %v\n", err)
		os.Exit(1)
	}

	widget := drill.New()
	widget.SetDataSource(tree)
	widget.SetRowHeight(cfg.UI.RowHeight)

	// Size the list before the first WindowSizeMsg arrives so the initial
	// frame is not a single-cell viewport.
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	list := listview.Attach(widget,
		listview.WithTheme(cfg.Theme()),
		listview.WithSize(width, height-chromeLines),
	)

	var fw *watcher.Watcher
	if !*noWatch {
		fw, err = watcher.New(fixture)
		if err == nil {
			err = fw.Start()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "drillist: watch %s: %v\n", fixture, err)
			os.Exit(1)
		}
		defer fw.Stop()
	}

	app := newApp(widget, list, fixture, fw)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "drillist: %v\n", err)
		os.Exit(1)
	}
}

// chromeLines is the vertical space the app reserves around the list: one
// header line and one status line.
const chromeLines = 2

// fixtureChangedMsg reports that the watched fixture file was rewritten.
type fixtureChangedMsg struct{}

// watchErrMsg carries a watcher error into the Update loop.
type watchErrMsg struct{ err error }

type app struct {
	widget  *drill.Widget
	list    *listview.Model
	fixture string
	fw      *watcher.Watcher

	width  int
	status string
}

func newApp(widget *drill.Widget, list *listview.Model, fixture string, fw *watcher.Watcher) *app {
	return &app{
		widget:  widget,
		list:    list,
		fixture: fixture,
		fw:      fw,
	}
}

// waitForChange blocks on the watcher until the fixture changes. Re-issued
// after every received message so reloads keep flowing.
func (a *app) waitForChange() tea.Cmd {
	if a.fw == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-a.fw.Changed():
			return fixtureChangedMsg{}
		case err := <-a.fw.Errors():
			return watchErrMsg{err: err}
		}
	}
}

func (a *app) Init() tea.Cmd {
	return a.waitForChange()
}

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.list.SetSize(msg.Width, msg.Height-chromeLines)
		return a, nil

	case fixtureChangedMsg:
		a.reloadFixture()
		return a, a.waitForChange()

	case watchErrMsg:
		a.status = fmt.Sprintf("watch: %v", msg.err)
		return a, a.waitForChange()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "h", "esc", "left":
			return a, a.ascendOne()
		case "y":
			a.copySelection()
			return a, nil
		}
	}

	_, cmd := a.list.Update(msg)
	return a, cmd
}

func (a *app) View() string {
	sel := a.widget.Selection()
	header := fmt.Sprintf(" %s — %s", a.fixture, sel)
	status := a.status
	if status == "" {
		status = fmt.Sprintf(" %d rows  ·  enter drill  ·  h up  ·  y copy  ·  q quit", a.list.RowCount())
	}
	return header + "\n" + a.list.View() + "\n" + status
}

// ascendOne moves the selection to its parent by tapping the deepest
// ancestor row, so the transition animates like any other. The returned
// command runs the list's accent expiry.
func (a *app) ascendOne() tea.Cmd {
	sel := a.widget.Selection()
	if sel.IsRoot() {
		return nil
	}
	// Ancestor rows occupy flat indices [0, len); the deepest one is the
	// parent prefix.
	return a.list.Tap(sel.Len() - 1)
}

func (a *app) copySelection() {
	p := a.widget.Selection()
	if err := clipboard.WriteAll(p.String()); err != nil {
		a.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	a.status = fmt.Sprintf("copied %s", p)
}

// reloadFixture re-reads the tree file and replaces the selection wholesale.
// Replacement never diffs: the data underneath changed shape, so every zone
// reloads.
func (a *app) reloadFixture() {
	debug.Section("fixture reload")
	tree, err := treedata.Load(a.fixture)
	if err != nil {
		a.status = fmt.Sprintf("reload failed: %v", err)
		return
	}
	debug.Log("fixture reloaded: %s", a.fixture)
	a.widget.SetDataSource(tree)
	a.widget.SetSelection(path.Root)
	a.status = "fixture reloaded"
}
