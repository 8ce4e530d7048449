// Command vtcore hosts a single terminal pane directly against the calling
// TTY: it puts the real terminal into raw mode, starts a shell behind the
// core's Backend/Screen/ProcessDriver stack, and pipes bytes in both
// directions until the child exits. It exists to exercise the library
// end-to-end outside of tests, the way a real multiplexer frontend would.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
