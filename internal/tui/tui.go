// Package tui renders Egress 1 (the live snapshot map) as an interactive
// terminal table, refreshed on a timer.
package tui

import (
	"fmt"
	"time"

	"github.com/awesome-gocui/gocui"
	. "github.com/logrusorgru/aurora"

	"jet1090/internal/aggregator"
)

// UI owns the gocui session and a reference to the state map it renders.
type UI struct {
	gui    *gocui.Gui
	states *aggregator.StateMap
}

// New creates a terminal UI bound to states. Call Run to start it; Run
// blocks until the user quits (Ctrl-C or q) or the caller closes done.
func New(states *aggregator.StateMap) (*UI, error) {
	g, err := gocui.NewGui(gocui.OutputNormal, false)
	if err != nil {
		return nil, fmt.Errorf("tui: init gui: %w", err)
	}

	ui := &UI{gui: g, states: states}
	g.SetManagerFunc(ui.layout)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		g.Close()
		return nil, fmt.Errorf("tui: bind quit key: %w", err)
	}
	if err := g.SetKeybinding("", 'q', gocui.ModNone, quit); err != nil {
		g.Close()
		return nil, fmt.Errorf("tui: bind quit key: %w", err)
	}

	return ui, nil
}

// Run starts the refresh ticker and the gocui main loop. It returns when
// the user quits (Ctrl-C or q) or done is closed.
func (ui *UI) Run(done <-chan struct{}) error {
	defer ui.gui.Close()

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ui.gui.Update(ui.render)
			case <-done:
				ui.gui.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
				return
			case <-stop:
				return
			}
		}
	}()
	defer close(stop)

	if err := ui.gui.MainLoop(); err != nil && !gocui.IsQuit(err) {
		return fmt.Errorf("tui: main loop: %w", err)
	}
	return nil
}

func (ui *UI) layout(g *gocui.Gui) error {
	const maxX = 100
	_, maxY := g.Size()

	v, err := g.SetView("status", 0, 0, maxX-2, 2, 0)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = " STATUS "
	fmt.Fprintln(v, " AIRCRAFT: --  LAST UPDATE: 0000-00-00 00:00:00")

	v, err = g.SetView("list", 0, 3, maxX-2, maxY-1, 0)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = " AIRCRAFT "
	return nil
}

func (ui *UI) render(g *gocui.Gui) error {
	status, err := g.View("status")
	if err != nil {
		return nil
	}
	status.Clear()

	entries := ui.states.Snapshots()
	fmt.Fprintf(status, " AIRCRAFT: %02d  LAST UPDATE: %s\n",
		Green(len(entries)),
		Bold(Green(time.Now().Format("2006-01-02 15:04:05"))))

	list, err := g.View("list")
	if err != nil {
		return nil
	}
	list.Clear()

	fmt.Fprintln(list, " ICAO    CALLSIGN   SQUAWK   ALT    SPD    HDG      LAT      LON")
	fmt.Fprintln(list, " =================================================================")

	for _, e := range entries {
		fmt.Fprintln(list, Sprintf(Yellow(" %6s  %-9s  %-6s  %-5s  %-5s  %-5s  %7s  %8s"),
			e.ICAO,
			strOr(e.Snapshot.Callsign, ""),
			intOr(e.Snapshot.Squawk, "----"),
			intOr(e.Snapshot.Altitude, "-----"),
			floatOr(e.Snapshot.GroundSpeed, "----"),
			floatOr(e.Snapshot.Track, "---"),
			floatOrPrecise(e.Snapshot.Latitude),
			floatOrPrecise(e.Snapshot.Longitude)))
	}

	return nil
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def string) string {
	if p == nil {
		return def
	}
	return fmt.Sprintf("%d", *p)
}

func floatOr(p *float64, def string) string {
	if p == nil {
		return def
	}
	return fmt.Sprintf("%.0f", *p)
}

func floatOrPrecise(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *p)
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
