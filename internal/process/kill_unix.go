//go:build !windows

// Package process cleans up browser processes left behind by a failed close.
package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid. Non-positive pids
// are ignored: -0 would address the caller's own group.
func KillTree(pid int) error {
	if pid <= 0 {
		return nil
	}
	return syscall.Kill(-pid, syscall.SIGKILL)
}
