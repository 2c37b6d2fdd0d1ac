package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/geobook/geobook/internal/screens"
	"github.com/geobook/geobook/pkg/mapview"
)

// ListView renders the list screen's projection as numbered rows.
type ListView struct {
	out    io.Writer
	screen *screens.ListScreen
}

// NewListView creates a ListView writing to out. Bind attaches the
// screen once it exists; the two reference each other.
func NewListView(out io.Writer) *ListView {
	return &ListView{out: out}
}

// Bind attaches the list screen whose rows are rendered.
func (v *ListView) Bind(screen *screens.ListScreen) {
	v.screen = screen
}

// Reload redraws every row.
func (v *ListView) Reload() {
	if v.screen == nil {
		return
	}
	fmt.Fprintf(v.out, "saved locations (%d):\n", v.screen.Count())
	for i := 0; i < v.screen.Count(); i++ {
		fmt.Fprintf(v.out, "  %d. %s\n", i+1, v.screen.Title(i))
	}
}

// Dialogs presents blocking error dialogs on the terminal: the message
// is shown and the user must press enter to dismiss it.
type Dialogs struct {
	out io.Writer
	in  *bufio.Reader
}

// NewDialogs creates a Dialogs presenter.
func NewDialogs(out io.Writer, in *bufio.Reader) *Dialogs {
	return &Dialogs{out: out, in: in}
}

// Present shows the message and blocks until dismissed.
func (d *Dialogs) Present(message string) {
	fmt.Fprintf(d.out, "error: %s (press enter)\n", message)
	_, _ = d.in.ReadString('\n')
}

// Console is the line-oriented front end driving the screens.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	logger zerolog.Logger

	navigator *screens.Navigator
	list      *screens.ListScreen
	mapWidget *MapWidget

	// the editor currently on top of the stack, nil on the list screen
	editor *screens.EditorScreen
}

// New creates a Console over the given reader and writer.
func New(in *bufio.Reader, out io.Writer, navigator *screens.Navigator,
	mapWidget *MapWidget, logger zerolog.Logger) *Console {
	return &Console{
		in:        in,
		out:       out,
		navigator: navigator,
		mapWidget: mapWidget,
		logger:    logger,
	}
}

// BindList attaches the root list screen.
func (c *Console) BindList(list *screens.ListScreen) {
	c.list = list
}

// EditorOpened records the editor now on top of the stack.
func (c *Console) EditorOpened(editor *screens.EditorScreen) {
	c.editor = editor
}

// Run reads commands until quit or EOF.
func (c *Console) Run() {
	fmt.Fprintln(c.out, `geobook - type "help" for commands`)

	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if err != nil {
			return
		}

		if quit := c.dispatch(strings.TrimSpace(line)); quit {
			return
		}
	}
}

func (c *Console) dispatch(line string) bool {
	if line == "" {
		return false
	}

	cmd, rest := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		cmd, rest = line[:i], strings.TrimSpace(line[i+1:])
	}

	switch cmd {
	case "help":
		c.printHelp()
	case "list":
		if c.editor == nil && c.list != nil {
			c.list.Activate()
		}
	case "add":
		c.requireList(func() { c.list.Add() })
	case "view":
		c.withRow(rest, func(i int) {
			if err := c.list.Select(i); err != nil {
				fmt.Fprintln(c.out, err)
			}
		})
	case "del":
		c.withRow(rest, func(i int) {
			if err := c.list.Delete(i); err != nil {
				fmt.Fprintln(c.out, err)
			}
		})
	case "title":
		c.requireEditor(func(e *screens.EditorScreen) { e.SetTitle(rest) })
	case "subtitle":
		c.requireEditor(func(e *screens.EditorScreen) { e.SetSubtitle(rest) })
	case "pin":
		c.requireEditor(func(e *screens.EditorScreen) { c.pin(rest) })
	case "save":
		c.requireEditor(func(e *screens.EditorScreen) {
			if err := e.Save(); err != nil {
				fmt.Fprintln(c.out, "save failed, see log")
			}
		})
	case "route":
		c.requireEditor(func(e *screens.EditorScreen) { c.mapWidget.TapCallout() })
	case "back":
		c.requireEditor(func(e *screens.EditorScreen) { c.closeEditor() })
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(c.out, "unknown command %q\n", cmd)
	}
	return false
}

// CloseEditor pops the editor, landing back on the list screen.
func (c *Console) closeEditor() {
	if err := c.navigator.Pop(); err != nil {
		c.logger.Error().Err(err).Msg("Failed to close editor")
		return
	}
	c.editor = nil
}

// EditorClosed is invoked when the editor closed itself after a save.
func (c *Console) EditorClosed() {
	c.editor = nil
}

// pin parses "lat lng [seconds]" and simulates the press gesture.
func (c *Console) pin(args string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		fmt.Fprintln(c.out, "usage: pin <latitude> <longitude> [held-seconds]")
		return
	}

	latitude, err1 := strconv.ParseFloat(fields[0], 64)
	longitude, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil {
		fmt.Fprintln(c.out, "usage: pin <latitude> <longitude> [held-seconds]")
		return
	}

	held := 3 * time.Second
	if len(fields) > 2 {
		if secs, err := strconv.ParseFloat(fields[2], 64); err == nil {
			held = time.Duration(secs * float64(time.Second))
		}
	}

	c.mapWidget.Press(mapview.Coordinate{Latitude: latitude, Longitude: longitude}, held)
}

func (c *Console) requireList(fn func()) {
	if c.editor != nil {
		fmt.Fprintln(c.out, "close the editor first (back)")
		return
	}
	if c.list != nil {
		fn()
	}
}

func (c *Console) requireEditor(fn func(*screens.EditorScreen)) {
	if c.editor == nil {
		fmt.Fprintln(c.out, "no editor open")
		return
	}
	fn(c.editor)
}

// withRow parses a 1-based row number and runs fn on the 0-based index.
func (c *Console) withRow(arg string, fn func(int)) {
	if c.editor != nil {
		fmt.Fprintln(c.out, "close the editor first (back)")
		return
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(c.out, "expected a row number")
		return
	}
	fn(n - 1)
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `commands:
  list                      show saved locations
  add                       create a new location
  view <n>                  show location n
  del <n>                   delete location n
  title <text>              set the title field
  subtitle <text>           set the subtitle field
  pin <lat> <lng> [secs]    long-press the map
  save                      save the new location
  route                     open directions to the shown location
  back                      close the editor
  quit                      exit
`)
}
