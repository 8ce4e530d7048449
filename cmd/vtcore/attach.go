package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/coreterm/vtcore/backend"
	"github.com/coreterm/vtcore/config"
	"github.com/coreterm/vtcore/driver"
	"github.com/coreterm/vtcore/screen"
)

type sessionOptions struct {
	argv []string
	dir  string
	cfg  config.Config
	id   string
}

// runSession puts the calling TTY into raw mode, starts argv behind a
// ProcessDriver, and copies bytes in both directions until the child exits
// or the host is interrupted. It always has priority (there is only ever
// one pane attached to the real TTY this way), so the backpressure path in
// driver.read is never exercised here — that path is for multi-pane hosts.
func runSession(cmd *cobra.Command, opts sessionOptions) error {
	out := cmd.OutOrStdout()
	fd := int(os.Stdin.Fd())

	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	fmt.Fprintf(out, "vtcore: session %s (%v)\r\n", opts.id, opts.argv)

	applyMouseDefault(&opts.cfg, out)

	sched := driver.NewScheduler()
	scr := screen.New(
		screen.WithSize(rows, cols),
	)
	scr.SetMaxScrollback(opts.cfg.ScrollbackLines)
	scr.SetMouseProtocol(mouseProtocolFromName(opts.cfg.MouseProtocol))

	be := backend.NewPTYBackend(sched.Post)

	// The child's own output already reaches this terminal unmodified via
	// the pty, so there is nothing for this host to repaint; invalidate is
	// left nil (ProcessDriver treats that as a no-op) and the Screen is
	// still kept up to date purely so its state (mode flags, scrollback,
	// cursor position) is available to anything that inspects it.
	d := driver.New(sched, scr, be, nil, nil)

	done := make(chan struct{})
	d.OnDone(func() {
		close(done)
		sched.Stop()
	})

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	if err := d.Start(opts.argv, opts.dir, os.Environ()); err != nil {
		return fmt.Errorf("start %v: %w", opts.argv, err)
	}

	resize := make(chan os.Signal, 1)
	signal.Notify(resize, syscall.SIGWINCH)
	defer signal.Stop(resize)

	go watchResize(fd, resize, d, sched)
	go copyStdinToChild(os.Stdin, d)

	go sched.Run()

	<-done
	fmt.Fprint(out, "\r\n")
	return nil
}

// copyStdinToChild forwards raw bytes from the host terminal straight to
// the child: the host terminal has already encoded key presses as the
// escape sequences a VT100-compatible program expects, so no key
// translation is needed here (that path — keys.Translate — is for hosts
// that receive structured key events instead of a raw byte stream).
func copyStdinToChild(r io.Reader, d *driver.ProcessDriver) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			d.WriteInput(string(buf[:n]), false)
		}
		if err != nil {
			return
		}
	}
}

func watchResize(fd int, sig <-chan os.Signal, d *driver.ProcessDriver, sched *driver.Scheduler) {
	for range sig {
		cols, rows, err := term.GetSize(fd)
		if err != nil {
			continue
		}
		sched.Post(func() { d.SetSize(rows, cols) })
	}
}

// applyMouseDefault detects the real terminal's color profile via termenv
// and, when the configured protocol is empty or "x10", prefers SGR mouse
// reporting on terminals capable of 256-color+ output (SGR's coordinate
// encoding has no column cap, unlike the X10 encoder, which clamps at 96).
func applyMouseDefault(cfg *config.Config, out io.Writer) {
	if cfg.MouseProtocol != "" && cfg.MouseProtocol != "x10" {
		return
	}
	profile := termenv.NewOutput(out).Profile
	if profile >= termenv.ANSI256 {
		cfg.MouseProtocol = "sgr"
	}
}

func mouseProtocolFromName(name string) screen.MouseProtocol {
	switch strings.ToLower(name) {
	case "utf8":
		return screen.MouseProtocolUTF8
	case "sgr":
		return screen.MouseProtocolSGR
	case "urxvt":
		return screen.MouseProtocolURXVT
	default:
		return screen.MouseProtocolX10
	}
}
