//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree force-terminates pid and its children with taskkill (/T walks the tree).
// pid <= 0 is ignored.
func KillTree(pid int) error {
	if pid <= 0 {
		return nil
	}
	// taskkill exits non-zero when the process is already gone.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
	return nil
}
