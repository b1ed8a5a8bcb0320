package launcher

import "syscall"

// the kernel kills the browser if this process dies without cleaning up
func setPdeathsig(attr *syscall.SysProcAttr) {
	attr.Pdeathsig = syscall.SIGKILL
}
