package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/shlex"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/coreterm/vtcore/config"
)

func newRootCommand() *cobra.Command {
	var (
		shellCmd  string
		dir       string
		mouse     string
		sessionID string
	)

	cmd := &cobra.Command{
		Use:   "vtcore",
		Short: "Attach a VT100/xterm-compatible terminal core to this TTY",
		Long: `vtcore starts a shell (or any program) behind a headless terminal
core and attaches it to the calling TTY in raw passthrough mode.

It is a thin host around the backend/driver/screen packages: useful for
manually exercising the core, and as a worked example of wiring a real
frontend around it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("vtcore: stdin and stdout must both be a terminal")
			}

			cfg := config.Load()

			argv, err := resolveArgv(shellCmd, cfg)
			if err != nil {
				return fmt.Errorf("resolve shell command: %w", err)
			}

			if dir == "" {
				if wd, err := os.Getwd(); err == nil {
					dir = wd
				}
			}

			if mouse != "" {
				cfg.MouseProtocol = mouse
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			release, err := acquireSessionLock(sessionID)
			if err != nil {
				return fmt.Errorf("acquire session lock: %w", err)
			}
			defer release()

			return runSession(cmd, sessionOptions{
				argv: argv,
				dir:  dir,
				cfg:  cfg,
				id:   sessionID,
			})
		},
	}

	cmd.Flags().StringVar(&shellCmd, "shell", "", "Command line to run (default: config default shell, else $SHELL, else /bin/sh)")
	cmd.Flags().StringVar(&dir, "dir", "", "Working directory for the child (default: current directory)")
	cmd.Flags().StringVar(&mouse, "mouse", "", "Override the default mouse protocol: x10, utf8, sgr, urxvt")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session identifier, used for the lock file (default: random UUID)")

	return cmd
}

// resolveArgv turns a --shell string (or the configured/environment
// default) into an argv slice via shell-style word splitting.
func resolveArgv(shellCmd string, cfg config.Config) ([]string, error) {
	if shellCmd != "" {
		return shlex.Split(shellCmd)
	}
	if len(cfg.DefaultShell) > 0 {
		return cfg.DefaultShell, nil
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return []string{sh}, nil
	}
	return []string{"/bin/sh"}, nil
}

// acquireSessionLock guards a lock file under the user's home directory so
// two vtcore invocations never try to reuse the same session identifier
// concurrently. The lock is released and its file removed when the session ends.
func acquireSessionLock(sessionID string) (func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	dir := filepath.Join(home, ".vtcore", "locks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, sessionID+".lock")
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("session %q is already attached elsewhere", sessionID)
	}

	return func() {
		fl.Unlock()
		os.Remove(path)
	}, nil
}
