package view

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-trench/model"
	"github.com/sheikhrachel/go-trench/utils"
)

const (
	viewHeader = "header"
	viewStatus = "status"
	viewBoard  = "board"
	viewHelp   = "help"

	leftColumnWidth = 30
	minWindowHeight = 12
)

// Simulation is what the console UI drives.
type Simulation interface {
	Step() error
	Store() *model.CellStore
	Generation() int
	Stats() *utils.Stats
	Renderer() *model.TerminalRenderer
}

type keyBinding struct {
	key     interface{}
	name    string
	descr   string
	handler func(v *gocui.View) error
}

// ConsoleUI steps through generations one key press at a time.
type ConsoleUI struct {
	sim     Simulation
	target  int
	g       *gocui.Gui
	k       []keyBinding
	lastErr error
}

// NewConsoleUI opens the terminal. target is the generation the run key
// advances to.
func NewConsoleUI(sim Simulation, target int) (*ConsoleUI, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to open terminal")
	}

	t := &ConsoleUI{sim: sim, target: target, g: g}
	t.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit},
		{'q', "Q", "Exit", t.cmdQuit},
		{'n', "N", "Next step", t.cmdNextStep},
		{'r', "R", fmt.Sprintf("Run to generation %d", target), t.cmdRunToTarget},
	}
	g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(); err != nil {
		g.Close()
		return nil, err
	}
	return t, nil
}

func (t *ConsoleUI) initKeyBindings() error {
	for _, kb := range t.k {
		h := kb.handler
		if err := t.g.SetKeybinding("", kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			return errors.Wrapf(err, "[initKeyBindings] failed to bind %s", kb.name)
		}
	}
	return nil
}

// Start runs the UI until the user quits.
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Start] main loop failed")
	}
	return t.lastErr
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView(viewHeader, -1, -1, maxX, 1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
		fmt.Fprint(v, " Trench map: infinite image enhancement")
	}

	if maxY < minWindowHeight || maxX <= leftColumnWidth+2 {
		_ = g.DeleteView(viewStatus)
		_ = g.DeleteView(viewBoard)
		_ = g.DeleteView(viewHelp)
		return nil
	}

	if v, err := g.SetView(viewStatus, 0, 1, leftColumnWidth, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}
	if v, err := g.SetView(viewBoard, leftColumnWidth+1, 1, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Board"
	}
	if v, err := g.SetView(viewHelp, -1, maxY-3, maxX, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		fmt.Fprintln(v, t.helpLine())
	}

	t.renderStatus(g)
	t.renderBoard(g)
	return nil
}

func (t *ConsoleUI) helpLine() string {
	var b bytes.Buffer
	b.WriteString(" KEYBINDINGS: ")
	for i, k := range t.k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, err := g.View(viewStatus)
	if err != nil {
		return
	}
	v.Clear()

	store := t.sim.Store()
	st := t.sim.Stats()
	lit := "unbounded"
	if count, err := store.LiveCount(); err == nil {
		lit = fmt.Sprintf("%d", count)
	}

	fmt.Fprintln(v, renderProp("Generation", "%d", t.sim.Generation()))
	fmt.Fprintln(v, renderProp("Lit", "%s", lit))
	fmt.Fprintln(v, renderProp("Active", "%d", store.Len()))
	fmt.Fprintln(v, renderProp("Background", "%v", store.Background()))
	fmt.Fprintln(v, renderProp("Box area", "%d", st.BoundingBoxSize))
	fmt.Fprintln(v, renderProp("Step time", "%v", st.LastStepTime.Round(time.Microsecond)))
	if t.lastErr != nil {
		fmt.Fprintln(v, aurora.Red(t.lastErr.Error()).String())
	}
}

// renderBoard draws the part of the plane that fits the view, centred on
// the active region.
func (t *ConsoleUI) renderBoard(g *gocui.Gui) {
	v, err := g.View(viewBoard)
	if err != nil {
		return
	}
	v.Clear()

	w, h := v.Size()
	if w <= 0 || h <= 0 {
		return
	}
	store := t.sim.Store()
	centre := model.Coord{}
	if b, err := store.Bounds(); err == nil {
		centre = model.Coord{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
	}
	window := model.Bounds{
		MinX: centre.X - w/2,
		MaxX: centre.X - w/2 + w - 1,
		MinY: centre.Y - h/2,
		MaxY: centre.Y - h/2 + h - 1,
	}

	r := *t.sim.Renderer()
	r.RowNumbers = false
	board := r.RenderWithin(store, window)
	fmt.Fprint(v, strings.TrimSuffix(board, "\n"))
}

func renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextStep(_ *gocui.View) error {
	t.step()
	return nil
}

func (t *ConsoleUI) cmdRunToTarget(_ *gocui.View) error {
	for t.lastErr == nil && t.sim.Generation() < t.target {
		t.step()
	}
	return nil
}

func (t *ConsoleUI) step() {
	if t.lastErr != nil {
		return
	}
	t.lastErr = t.sim.Step()
}
