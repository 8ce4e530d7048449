//go:build linux

package backend

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// foregroundProcessName reads the process group currently in the
// foreground of the pty identified by fd (tcgetpgrp), then the cmdline of
// that group's leader from /proc.
func foregroundProcessName(fd int) string {
	pgrp, err := unix.IoctlGetInt(fd, unix.TIOCGPGRP)
	if err != nil {
		return ""
	}
	return cmdlineForPID(pgrp)
}

func cmdlineForPID(pid int) string {
	if pid <= 0 {
		return ""
	}
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err != nil {
		return ""
	}
	return strings.SplitN(string(data), "\x00", 2)[0]
}

func cwdForPID(pid int) string {
	if pid <= 0 {
		return ""
	}
	link, err := os.Readlink(fmt.Sprintf("/proc/%d/cwd", pid))
	if err != nil {
		return ""
	}
	return link
}
