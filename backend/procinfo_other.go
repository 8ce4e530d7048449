//go:build !linux

package backend

// Process introspection beyond the child's own pid needs /proc, which only
// Linux (and Linux-compatible subsystems) exposes the way posix backends
// expect; other platforms report unknown rather than guess.
func foregroundProcessName(fd int) string { return "" }

func cmdlineForPID(pid int) string { return "" }

func cwdForPID(pid int) string { return "" }
