//go:build !windows
// +build !windows

package launcher

import (
	"os"
	"sync"

	"github.com/ramr/go-reaper"
)

var reaperOnce sync.Once

// runReaper starts the zombie reaper when this process is the init of a container.
// Anywhere else the reaper would steal the exit status of our own children.
func runReaper() {
	if os.Getpid() != 1 {
		return
	}

	reaperOnce.Do(func() {
		go reaper.Reap()
	})
}
