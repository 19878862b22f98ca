// Package terminal hosts the backdrop in a text terminal: tcell supplies pointer and resize events,
// and a point-plotting backend draws frames as glyphs.
package terminal

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine"
	"github.com/gdamore/tcell/v2"
)

// Terminal is an engine.Host backed by a tcell screen.
// Surface sizes and pointer positions are reported in half-cell pixels: one column wide, half a
// row tall, which keeps the projection close to square on common terminal fonts.
type Terminal interface {
	engine.Host

	// Backend returns the renderer backend that draws onto this terminal.
	//
	// Returns:
	//   - *Backend: the backend
	Backend() *Backend

	// Screen returns the underlying tcell screen.
	//
	// Returns:
	//   - tcell.Screen: the screen
	Screen() tcell.Screen
}

type terminalImpl struct {
	mu *sync.Mutex

	screen  tcell.Screen
	backend *Backend
	glyphs  string

	width, height int

	onMouseMove func(x, y float64)
	onResize    func(width, height int)

	closing   atomic.Bool
	closeOnce sync.Once
}

var _ Terminal = &terminalImpl{}

// NewTerminal initializes a screen, enables mouse motion reporting and sizes the backend to it.
// Without WithScreen the real terminal is opened.
//
// Parameters:
//   - options: functional options to configure the terminal
//
// Returns:
//   - Terminal: the terminal host
//   - error: an error if the screen cannot be created or initialized
func NewTerminal(options ...TerminalBuilderOption) (Terminal, error) {
	t := &terminalImpl{mu: &sync.Mutex{}}
	for _, opt := range options {
		opt(t)
	}
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to create terminal screen: %w", err)
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()

	t.backend = NewBackend(t.screen, t.glyphs)
	cols, rows := t.screen.Size()
	t.width, t.height = cols, rows*2
	t.backend.ConfigureSurface(t.width, t.height)
	return t, nil
}

func (t *terminalImpl) Backend() *Backend {
	return t.backend
}

func (t *terminalImpl) Screen() tcell.Screen {
	return t.screen
}

func (t *terminalImpl) SetMouseMoveCallback(cb func(x, y float64)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onMouseMove = cb
}

func (t *terminalImpl) SetResizeCallback(cb func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResize = cb
}

func (t *terminalImpl) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

func (t *terminalImpl) ProcessMessages() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil || t.closing.Load() {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if quitKey(ev) {
				common.Logger().Debug("terminal quit requested", "key", ev.Name())
				t.RequestClose()
				return
			}
		case *tcell.EventResize:
			cols, rows := ev.Size()
			t.screen.Sync()
			t.resize(cols, rows)
		case *tcell.EventMouse:
			col, row := ev.Position()
			t.move(col, row)
		}
	}
}

// quitKey reports whether ev is Escape, Ctrl-C or a plain q.
func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func (t *terminalImpl) resize(cols, rows int) {
	t.mu.Lock()
	t.width, t.height = cols, rows*2
	width, height := t.width, t.height
	cb := t.onResize
	t.mu.Unlock()

	t.backend.ConfigureSurface(width, height)
	if cb != nil {
		cb(width, height)
	}
}

// move reports the center of the cell under the pointer in half-cell pixels.
func (t *terminalImpl) move(col, row int) {
	t.mu.Lock()
	cb := t.onMouseMove
	t.mu.Unlock()
	if cb != nil {
		cb(float64(col)+0.5, (float64(row)+0.5)*2)
	}
}

func (t *terminalImpl) RequestClose() {
	if t.closing.CompareAndSwap(false, true) {
		// wake PollEvent; a full queue already guarantees a wakeup
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

func (t *terminalImpl) Close() error {
	t.closing.Store(true)
	t.closeOnce.Do(func() {
		t.screen.Fini()
	})
	return nil
}
