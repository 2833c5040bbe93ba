// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is executed and fed back
// until the model settles, so dashboard tests need no tea.Program and no
// goroutines of their own. Cmds that block (cursor blink timers) are given a
// short deadline and dropped.
package teatest

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds Cmd chains so a model that keeps emitting messages
// cannot hang a test.
const MaxDrainDepth = 100

// cmdTimeout separates message factories and store calls (microseconds)
// from cursor blink Cmds (about half a second).
const cmdTimeout = 10 * time.Millisecond

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.Quit has been returned. The runtime normally
	// swallows tea.QuitMsg, so the driver records it itself.
	Quitting bool

	timeout time.Duration
}

// Option configures the Driver during construction.
type Option func(*Driver)

// New creates a Driver for the given model. Call DrainInit next to run the
// model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, timeout: cmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// WithCmdTimeout raises the per-Cmd deadline for models whose Cmds do real
// I/O, such as writes to a SQLite store.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.timeout = timeout
	}
}

// DrainInit runs Init and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches a message and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

func (d *Driver) press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.press(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.press(tea.KeyEsc) }
func (d *Driver) PressSpace() { d.T.Helper(); d.press(tea.KeySpace) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.press(tea.KeyCtrlC) }
func (d *Driver) PressUp()    { d.T.Helper(); d.press(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.press(tea.KeyDown) }

// PressDownN moves down n rows.
func (d *Driver) PressDownN(n int) {
	d.T.Helper()
	for range n {
		d.PressDown()
	}
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View returns the rendered model.
func (d *Driver) View() string {
	return d.Model.View()
}

// PlainView returns the rendered model with styling removed.
func (d *Driver) PlainView() string {
	return ansiSeq.ReplaceAllString(d.Model.View(), "")
}

// RequireView fails the test unless the plain view contains every substring.
func (d *Driver) RequireView(subs ...string) {
	d.T.Helper()
	view := d.PlainView()
	for _, s := range subs {
		if !strings.Contains(view, s) {
			d.T.Fatalf("view does not contain %q:\n%s", s, view)
		}
	}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd, d.timeout)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(m)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

// runWithTimeout returns nil when cmd has not produced a message in time.
func runWithTimeout(cmd tea.Cmd, timeout time.Duration) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink message types of bubbles/cursor.
func isCursorBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
