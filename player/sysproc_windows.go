//go:build windows

package player

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// sysProcAttr starts mpv in its own process group so a Ctrl+C in the
// grauman console is not delivered to it as well.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

// killProcess stops mpv. A process that already exited is not an error.
func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
