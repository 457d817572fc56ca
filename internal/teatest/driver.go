// Package teatest runs bubbletea models without a terminal. Messages go
// straight to Update and the Cmds it returns are executed inline, so a test
// can type into the calculator and read the recomputed plan immediately.
package teatest

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxSteps bounds how many messages one Send may process.
const MaxSteps = 100

// Cursor blink Cmds sleep on a timer for roughly half a second; anything the
// calculator returns itself finishes well inside this window.
const cmdTimeout = 10 * time.Millisecond

type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting records a tea.QuitMsg produced by the model. The real program
	// loop swallows that message, so the model never sees it.
	Quitting bool
}

type Option func(*Driver)

func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init())
}

// Send feeds msg to Update and runs whatever follows from it.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd)
}

func (d *Driver) press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressEnter()    { d.press(tea.KeyEnter) }
func (d *Driver) PressEsc()      { d.press(tea.KeyEsc) }
func (d *Driver) PressTab()      { d.press(tea.KeyTab) }
func (d *Driver) PressShiftTab() { d.press(tea.KeyShiftTab) }
func (d *Driver) PressUp()       { d.press(tea.KeyUp) }
func (d *Driver) PressDown()     { d.press(tea.KeyDown) }

// PressBackspace erases n characters from the focused input.
func (d *Driver) PressBackspace(n int) {
	d.T.Helper()
	for i := 0; i < n; i++ {
		d.press(tea.KeyBackspace)
	}
}

// Type enters s one rune at a time, the way a user would.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (d *Driver) View() string { return d.Model.View() }

// PlainView is View without colour or cursor escapes.
func (d *Driver) PlainView() string { return StripANSI(d.Model.View()) }

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// run executes pending Cmds breadth first. Batches are flattened into the
// queue, blink ticks are dropped and a quit stops further delivery.
func (d *Driver) run(first tea.Cmd) {
	d.T.Helper()
	queue := []tea.Cmd{first}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= MaxSteps {
			d.T.Logf("teatest: stopped after %d steps", MaxSteps)
			return
		}
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}

		switch msg := await(cmd).(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			d.Quitting = true
			return
		default:
			if isBlink(msg) {
				continue
			}
			var next tea.Cmd
			d.Model, next = d.Model.Update(msg)
			queue = append(queue, next)
		}
	}
}

// await returns nil for Cmds that are still blocked after cmdTimeout.
func await(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// bubbles/cursor keeps its initial blink message unexported, so match on the
// type name.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
