// Package backend spawns and manages the child process behind a terminal
// pane: a pty-backed shell or program whose output feeds the screen and
// whose stdin receives translated keystrokes.
package backend

import "syscall"

// Backend is the polymorphic contract a process driver depends on. The POSIX
// variant (PTYBackend) wraps a real pty; other variants (Windows ConPTY,
// a remote interactive channel) would satisfy the same interface without the
// driver knowing the difference.
type Backend interface {
	// Start brings up the child. Non-blocking: completion (success or
	// failure) is observed through Ready, not through Start's return value
	// alone — Start can return nil and the child can still fail to exec.
	Start(argv []string, dir string, env []string) error

	// AddInputReadyCallback registers a callback invoked whenever new bytes
	// have arrived and are ready to be drained with ReadText. The callback
	// never runs on the goroutine that read the bytes off the wire; it is
	// always posted through the scheduler function supplied to the backend
	// at construction, so driver state is only ever touched from the
	// driver's own loop.
	AddInputReadyCallback(cb func())

	// ConnectReader and DisconnectReader enable or disable delivery to the
	// driver without tearing down the child. Idempotent. While
	// disconnected, bytes are left sitting in the pty's kernel buffer
	// rather than drained into memory, so a slow consumer applies real
	// backpressure to the child.
	ConnectReader()
	DisconnectReader()

	// ReadText drains up to limit code points already buffered and returns
	// them as a string, UTF-8 decoded with lossy replacement for invalid
	// bytes. Never blocks.
	ReadText(limit int) string

	// WriteText and WriteBytes send to the child's stdin. Both silently
	// swallow a broken pipe.
	WriteText(s string)
	WriteBytes(b []byte)

	// SetSize propagates new terminal dimensions to the child.
	SetSize(width, height int) error

	// Kill and SendSignal terminate or signal the child. No-ops once
	// Closed is true.
	Kill() error
	SendSignal(sig syscall.Signal) error

	// Closed reports whether the child has exited and its pty has been
	// torn down.
	Closed() bool

	// GetName and GetCwd best-effort introspect the foreground process
	// attached to the pty. Return "" when unknown.
	GetName() string
	GetCwd() string

	// Ready returns a channel closed once the child has terminated and its
	// resources have been reclaimed — the one-shot ready_f future.
	Ready() <-chan struct{}

	// ExitCode is only meaningful after Ready has fired.
	ExitCode() int
}
