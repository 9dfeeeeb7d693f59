//go:build windows

package executil

import "os/exec"

func setProcAttr(_ *exec.Cmd) {}
