//go:build linux

package specialist

import (
	"os/exec"
	"syscall"
)

// setPlatformSpecificAttrs asks the kernel to kill the classifier if the server dies first.
func setPlatformSpecificAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Pdeathsig: syscall.SIGKILL,
	}
}
