//go:build !linux

package specialist

import "os/exec"

// Pdeathsig is Linux only. Elsewhere the child is stopped through the
// context given to exec.CommandContext.
func setPlatformSpecificAttrs(_ *exec.Cmd) {}
