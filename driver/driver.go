package driver

import (
	"sync"
	"time"

	"github.com/coreterm/vtcore/backend"
	"github.com/coreterm/vtcore/keys"
	"github.com/coreterm/vtcore/screen"
)

// State is the process driver's lifecycle state.
type State int

const (
	StateRunning State = iota
	StateSuspended
	StateTerminated
)

// readLimit bounds how many code points a single drain feeds to the
// screen, so one callback invocation can't block the scheduler's loop on
// an arbitrarily large chunk of child output.
const readLimit = 4096

// backpressureDelay is how long an unfocused pane's reader stays
// disconnected between drains: roughly one drain per second, bounding a
// runaway unfocused process to that rate regardless of how much output it
// produces.
const backpressureDelay = time.Second

// HasPriority reports whether the driver's pane currently holds UI focus.
// Read callbacks are fed to the screen synchronously when true; otherwise
// they're paced by backpressureDelay.
type HasPriority func() bool

// ProcessDriver wires a Backend to a Screen: it feeds arriving bytes to
// the screen's parser, translates abstract key presses and pasted text
// into child input, and implements the cooperative backpressure that
// keeps an unfocused, runaway pane from starving the scheduler.
type ProcessDriver struct {
	mu    sync.Mutex
	state State

	backend     backend.Backend
	screen      *screen.Screen
	sched       *Scheduler
	hasPriority HasPriority
	invalidate  func()

	doneCallback func()
	suspended    bool
}

// New builds a driver over an already-constructed backend and screen.
// hasPriority and invalidate may be nil (treated as "always has priority"
// and a no-op, respectively). The screen's response provider is pointed at
// the backend so DSR/DA and mouse reports reach the child
// automatically.
func New(sched *Scheduler, scr *screen.Screen, be backend.Backend, hasPriority HasPriority, invalidate func()) *ProcessDriver {
	if hasPriority == nil {
		hasPriority = func() bool { return true }
	}
	if invalidate == nil {
		invalidate = func() {}
	}

	d := &ProcessDriver{
		backend:     be,
		screen:      scr,
		sched:       sched,
		hasPriority: hasPriority,
		invalidate:  invalidate,
	}

	scr.SetResponseProvider(backendWriter{be})
	be.AddInputReadyCallback(func() { d.read() })

	return d
}

// Start sets the initial 120x24 geometry, starts the backend, and connects
// its reader. Mirrors the startup sequence: size first, then start, then
// connect_reader.
func (d *ProcessDriver) Start(argv []string, dir string, env []string) error {
	d.screen.Resize(24, 120)

	if err := d.backend.Start(argv, dir, env); err != nil {
		d.mu.Lock()
		d.state = StateTerminated
		d.mu.Unlock()
		return err
	}

	d.backend.ConnectReader()

	d.mu.Lock()
	d.state = StateRunning
	d.mu.Unlock()

	go d.awaitTermination()
	return nil
}

func (d *ProcessDriver) awaitTermination() {
	<-d.backend.Ready()
	d.sched.Post(func() {
		d.mu.Lock()
		d.state = StateTerminated
		cb := d.doneCallback
		d.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

// OnDone registers a callback invoked once, on the scheduler, after the
// backend's child has terminated and its resources are reclaimed.
func (d *ProcessDriver) OnDone(cb func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doneCallback = cb
}

// read is the backend's input-ready callback. It always runs on the
// scheduler, never on the goroutine that read bytes off the backend.
func (d *ProcessDriver) read() {
	text := d.backend.ReadText(readLimit)

	if d.backend.Closed() {
		d.backend.DisconnectReader()
		return
	}
	if text == "" {
		return
	}

	process := func() {
		d.screen.WriteString(text)
		d.invalidate()
	}

	if d.hasPriority() {
		process()
		return
	}

	// Unfocused: disconnect now and defer the drain, so a single firehose
	// pane can't starve panes that do have focus. The reader only comes
	// back once this deferred drain actually runs.
	d.backend.DisconnectReader()
	time.AfterFunc(backpressureDelay, func() {
		d.sched.Post(func() {
			process()
			d.mu.Lock()
			suspended := d.suspended
			d.mu.Unlock()
			if !suspended {
				d.backend.ConnectReader()
			}
		})
	})
}

// Suspend disconnects the reader, e.g. while the pane is in scrollback or
// copy mode. Idempotent.
func (d *ProcessDriver) Suspend() {
	d.mu.Lock()
	if d.suspended {
		d.mu.Unlock()
		return
	}
	d.suspended = true
	d.mu.Unlock()

	d.backend.DisconnectReader()
}

// Resume reconnects the reader after Suspend. Idempotent.
func (d *ProcessDriver) Resume() {
	d.mu.Lock()
	if !d.suspended {
		d.mu.Unlock()
		return
	}
	d.suspended = false
	d.mu.Unlock()

	d.backend.ConnectReader()
}

// WriteInput sends text to the child, wrapping it in bracketed-paste
// markers when paste is true and the screen currently has bracketed paste
// enabled.
func (d *ProcessDriver) WriteInput(text string, paste bool) {
	if paste && d.screen.HasMode(screen.ModeBracketedPaste) {
		text = "\x1b[200~" + text + "\x1b[201~"
	}
	d.backend.WriteText(text)
}

// WriteKey translates an abstract key through the key translator, using
// the screen's current cursor-key application mode (DECCKM), and writes
// the result. Keys with no mapping write nothing.
func (d *ProcessDriver) WriteKey(key keys.Key) {
	seq := keys.Translate(key, d.screen.HasMode(screen.ModeCursorKeys))
	if len(seq) == 0 {
		return
	}
	d.backend.WriteBytes(seq)
}

// WriteRune writes a single printable character as typed input.
func (d *ProcessDriver) WriteRune(r rune) {
	d.backend.WriteBytes(keys.TranslateRune(r))
}

// SetSize propagates new dimensions to both the screen and the backend.
func (d *ProcessDriver) SetSize(rows, cols int) error {
	d.screen.Resize(rows, cols)
	return d.backend.SetSize(cols, rows)
}

// Kill terminates the child process.
func (d *ProcessDriver) Kill() error {
	return d.backend.Kill()
}

// State reports the driver's current lifecycle state.
func (d *ProcessDriver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// backendWriter adapts a backend.Backend to the screen's io.Writer-shaped
// ResponseProvider, so DSR/DA/mouse reports reach the child directly.
type backendWriter struct {
	b backend.Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	w.b.WriteBytes(p)
	return len(p), nil
}
