//go:build !linux && !windows
// +build !linux,!windows

package launcher

import "syscall"

func setPdeathsig(*syscall.SysProcAttr) {}
