package backend

import (
	"errors"
	"os"
	"sync"
	"syscall"
	"unicode/utf8"

	gopty "github.com/aymanbagabas/go-pty"
)

// fdProvider is an optional capability of the underlying pty: a way to get
// at the master file descriptor for process introspection (tcgetpgrp).
// Asserted for rather than required, so PTYBackend keeps working against a
// pty implementation that doesn't expose one — GetName just falls back to
// the child's own pid.
type fdProvider interface {
	Fd() uintptr
}

// PTYBackend is the POSIX/cross-platform Backend variant: a child process
// attached to a pty via github.com/aymanbagabas/go-pty, which wraps a real
// POSIX pty pair on Unix and ConPTY on Windows behind one interface.
type PTYBackend struct {
	post func(func())

	mu         sync.Mutex
	pty        gopty.Pty
	cmd        *gopty.Cmd
	pid        int
	callbacks  []func()
	connected  bool
	connectSig chan struct{}
	pending    []byte
	closed     bool
	exitCode   int
	readyCh    chan struct{}
}

var _ Backend = (*PTYBackend)(nil)

// NewPTYBackend creates a backend whose input-ready callbacks are always
// invoked through post, never from the goroutine that read the bytes off
// the pty. post is the driver's thread-safe "run this on my loop" primitive.
func NewPTYBackend(post func(func())) *PTYBackend {
	return &PTYBackend{
		post:       post,
		connectSig: make(chan struct{}),
		readyCh:    make(chan struct{}),
	}
}

func (b *PTYBackend) Start(argv []string, dir string, env []string) error {
	if len(argv) == 0 {
		return errors.New("backend: empty argv")
	}

	p, err := gopty.New()
	if err != nil {
		return err
	}

	// Startup size is fixed at 120x24 until the host resizes; see driver.
	if err := p.Resize(120, 24); err != nil {
		p.Close()
		return err
	}

	cmd := p.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	if err := cmd.Start(); err != nil {
		p.Close()
		return err
	}

	b.mu.Lock()
	b.pty = p
	b.cmd = cmd
	if cmd.Process != nil {
		b.pid = cmd.Process.Pid
	}
	b.mu.Unlock()

	go b.readLoop()
	go b.waitLoop()

	return nil
}

func (b *PTYBackend) AddInputReadyCallback(cb func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks = append(b.callbacks, cb)
}

func (b *PTYBackend) ConnectReader() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.connected {
		return
	}
	b.connected = true
	close(b.connectSig)
	b.connectSig = make(chan struct{})
}

func (b *PTYBackend) DisconnectReader() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connected = false
}

// readLoop blocks on the pty only while connected, so a disconnected reader
// leaves bytes sitting in the kernel's pty buffer instead of accumulating in
// user-space memory: the child's own write() blocks once that buffer fills,
// which is the real backpressure signal a focus-unaware pane should feel.
func (b *PTYBackend) readLoop() {
	buf := make([]byte, 4096)
	for {
		b.waitConnected()

		n, err := b.pty.Read(buf)
		if n > 0 {
			b.mu.Lock()
			b.pending = append(b.pending, buf[:n]...)
			connected := b.connected
			b.mu.Unlock()
			if connected {
				b.notify()
			}
		}
		if err != nil {
			b.mu.Lock()
			b.closed = true
			b.mu.Unlock()
			b.notify()
			return
		}
	}
}

func (b *PTYBackend) waitConnected() {
	for {
		b.mu.Lock()
		if b.connected {
			b.mu.Unlock()
			return
		}
		sig := b.connectSig
		b.mu.Unlock()
		<-sig
	}
}

func (b *PTYBackend) notify() {
	b.mu.Lock()
	cbs := make([]func(), len(b.callbacks))
	copy(cbs, b.callbacks)
	post := b.post
	b.mu.Unlock()

	post(func() {
		for _, cb := range cbs {
			cb()
		}
	})
}

func (b *PTYBackend) waitLoop() {
	waitErr := b.cmd.Wait()

	b.mu.Lock()
	if waitErr != nil && b.cmd.ProcessState != nil {
		b.exitCode = b.cmd.ProcessState.ExitCode()
	} else if waitErr != nil {
		b.exitCode = 1
	}
	b.closed = true
	pty := b.pty
	b.mu.Unlock()

	b.DisconnectReader()
	if pty != nil {
		pty.Close()
	}
	close(b.readyCh)
}

func (b *PTYBackend) ReadText(limit int) string {
	if limit <= 0 {
		return ""
	}

	b.mu.Lock()
	data := b.pending
	b.pending = nil
	b.mu.Unlock()

	if len(data) == 0 {
		return ""
	}

	out := make([]rune, 0, limit)
	i := 0
	for i < len(data) && len(out) < limit {
		r, size := utf8.DecodeRune(data[i:])
		out = append(out, r)
		i += size
	}

	if i < len(data) {
		leftover := append([]byte(nil), data[i:]...)
		b.mu.Lock()
		b.pending = append(leftover, b.pending...)
		b.mu.Unlock()
	}

	return string(out)
}

func (b *PTYBackend) WriteText(s string) {
	b.WriteBytes([]byte(s))
}

func (b *PTYBackend) WriteBytes(data []byte) {
	b.mu.Lock()
	pty := b.pty
	closed := b.closed
	b.mu.Unlock()
	if closed || pty == nil {
		return
	}

	for len(data) > 0 {
		n, err := pty.Write(data)
		if n > 0 {
			data = data[n:]
		}
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			// Broken pipe or any other write error: swallow per contract.
			return
		}
		if n == 0 {
			return
		}
	}
}

func (b *PTYBackend) SetSize(width, height int) error {
	b.mu.Lock()
	pty := b.pty
	closed := b.closed
	b.mu.Unlock()
	if closed || pty == nil {
		return nil
	}
	return pty.Resize(width, height)
}

func (b *PTYBackend) Kill() error {
	return b.SendSignal(syscall.SIGKILL)
}

func (b *PTYBackend) SendSignal(sig syscall.Signal) error {
	b.mu.Lock()
	cmd := b.cmd
	closed := b.closed
	b.mu.Unlock()
	if closed || cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Signal(sig)
}

func (b *PTYBackend) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *PTYBackend) ExitCode() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exitCode
}

func (b *PTYBackend) Ready() <-chan struct{} {
	return b.readyCh
}

// GetName best-effort identifies the foreground process attached to the
// pty: tcgetpgrp on the master fd, then a cmdline lookup for that process
// group. Falls back to the child's own pid when the pty doesn't expose a
// file descriptor or the platform has no /proc.
func (b *PTYBackend) GetName() string {
	b.mu.Lock()
	pty := b.pty
	pid := b.pid
	b.mu.Unlock()

	if pty != nil {
		if fp, ok := pty.(fdProvider); ok {
			if name := foregroundProcessName(int(fp.Fd())); name != "" {
				return name
			}
		}
	}
	return cmdlineForPID(pid)
}

// GetCwd best-effort resolves the working directory of the child process.
func (b *PTYBackend) GetCwd() string {
	b.mu.Lock()
	pid := b.pid
	b.mu.Unlock()
	return cwdForPID(pid)
}
