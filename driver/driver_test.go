package driver

import (
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/danielgatis/go-ansicode"

	"github.com/coreterm/vtcore/backend"
	"github.com/coreterm/vtcore/keys"
	"github.com/coreterm/vtcore/screen"
)

var _ backend.Backend = (*fakeBackend)(nil)

// fakeBackend is an in-memory backend.Backend double: it never spawns a
// real process. Tests push bytes into pending and trigger callbacks
// directly instead of going through a pty.
type fakeBackend struct {
	mu        sync.Mutex
	pending   []byte
	callbacks []func()
	connected bool
	closed    bool
	written   []byte
}

func (f *fakeBackend) Start(argv []string, dir string, env []string) error { return nil }

func (f *fakeBackend) AddInputReadyCallback(cb func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = append(f.callbacks, cb)
}

func (f *fakeBackend) ConnectReader() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = true
}

func (f *fakeBackend) DisconnectReader() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
}

func (f *fakeBackend) push(data string) {
	f.mu.Lock()
	f.pending = append(f.pending, data...)
	cbs := append([]func(){}, f.callbacks...)
	f.mu.Unlock()
	for _, cb := range cbs {
		cb()
	}
}

func (f *fakeBackend) ReadText(limit int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pending) == 0 {
		return ""
	}
	n := len(f.pending)
	if n > limit {
		n = limit
	}
	s := string(f.pending[:n])
	f.pending = f.pending[n:]
	return s
}

func (f *fakeBackend) WriteText(s string)  { f.WriteBytes([]byte(s)) }
func (f *fakeBackend) WriteBytes(b []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, b...)
}

func (f *fakeBackend) SetSize(width, height int) error    { return nil }
func (f *fakeBackend) Kill() error                        { return nil }
func (f *fakeBackend) SendSignal(sig syscall.Signal) error { return nil }
func (f *fakeBackend) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
func (f *fakeBackend) GetName() string       { return "" }
func (f *fakeBackend) GetCwd() string        { return "" }
func (f *fakeBackend) Ready() <-chan struct{} { return make(chan struct{}) }
func (f *fakeBackend) ExitCode() int         { return 0 }

func (f *fakeBackend) isConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeBackend) writtenString() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.written)
}

func newTestDriver(hasPriority HasPriority) (*ProcessDriver, *fakeBackend, *screen.Screen) {
	scr := screen.New()
	be := &fakeBackend{connected: true}
	sched := NewScheduler()
	go sched.Run()
	d := New(sched, scr, be, hasPriority, nil)
	return d, be, scr
}

func TestReadFeedsScreenSynchronouslyWhenFocused(t *testing.T) {
	d, be, scr := newTestDriver(func() bool { return true })
	_ = d

	be.push("Hello")

	deadline := time.Now().Add(time.Second)
	for scr.LineContent(0) == "" && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if got := scr.LineContent(0); got != "Hello" {
		t.Errorf("row 0 = %q, want %q", got, "Hello")
	}
}

func TestReadPacesUnfocusedOutput(t *testing.T) {
	d, be, _ := newTestDriver(func() bool { return false })
	_ = d

	be.push("X")

	deadline := time.Now().Add(200 * time.Millisecond)
	for be.isConnected() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if be.isConnected() {
		t.Errorf("expected reader to be disconnected immediately after an unfocused drain")
	}
}

func TestWriteInputWrapsBracketedPaste(t *testing.T) {
	d, be, scr := newTestDriver(nil)
	scr.SetMode(ansicode.TerminalModeBracketedPaste)

	d.WriteInput("pasted", true)

	want := "\x1b[200~pasted\x1b[201~"
	if got := be.writtenString(); got != want {
		t.Errorf("written = %q, want %q", got, want)
	}
}

func TestWriteInputPlainWhenNotPaste(t *testing.T) {
	d, be, _ := newTestDriver(nil)

	d.WriteInput("typed", false)

	if got := be.writtenString(); got != "typed" {
		t.Errorf("written = %q, want %q", got, "typed")
	}
}

func TestWriteKeyUsesNormalModeByDefault(t *testing.T) {
	d, be, _ := newTestDriver(nil)

	d.WriteKey(keys.KeyUp)
	if got := be.writtenString(); got != "\x1b[A" {
		t.Errorf("written = %q, want %q", got, "\x1b[A")
	}
}

func TestSuspendResumeIdempotent(t *testing.T) {
	d, be, _ := newTestDriver(nil)

	d.Suspend()
	d.Suspend()
	if be.isConnected() {
		t.Errorf("expected reader disconnected after Suspend")
	}

	d.Resume()
	d.Resume()
	if !be.isConnected() {
		t.Errorf("expected reader connected after Resume")
	}
}
