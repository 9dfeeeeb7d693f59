//go:build !windows

package executil

import (
	"os/exec"
	"syscall"
)

// setProcAttr places the child in its own process group so a terminal
// interrupt reaches only fmtdir, which lets in-flight formatters finish.
func setProcAttr(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
