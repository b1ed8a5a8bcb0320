// Package cleanup is a process wide registry of cleanup functions. They run when the
// process receives SIGINT or SIGTERM, when a guarded function panics, or when Run is called.
package cleanup

import (
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

type entry struct {
	name string
	fn   func()
}

var (
	mu      sync.Mutex
	count   uint64
	entries = map[uint64]*entry{}

	installOnce sync.Once
)

var osExit = os.Exit

// exit is replaced in tests
var exit = osExit

// Register fn under name. The returned function removes it without running it.
// The first Register installs the signal handler of the process.
func Register(name string, fn func()) (unregister func()) {
	installOnce.Do(install)

	mu.Lock()
	count++
	id := count
	entries[id] = &entry{name: name, fn: fn}
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		delete(entries, id)
	}
}

// Len of the registered entries
func Len() int {
	mu.Lock()
	defer mu.Unlock()
	return len(entries)
}

// Run every registered entry once, newest first, and clear the registry.
// A panicking entry is logged and doesn't stop the rest.
func Run() {
	mu.Lock()
	list := make([]uint64, 0, len(entries))
	for id := range entries {
		list = append(list, id)
	}
	taken := entries
	entries = map[uint64]*entry{}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i] > list[j] })

	for _, id := range list {
		run(taken[id])
	}
}

// Guard is deferred at the top of main, on panic it runs the cleanups then panics again.
//
//     func main() {
//         defer cleanup.Guard()
//         ...
//     }
func Guard() {
	if r := recover(); r != nil {
		zap.L().Error("panic, running cleanups", zap.Any("panic", r))
		Run()
		panic(r)
	}
}

func run(e *entry) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("cleanup panicked", zap.String("name", e.name), zap.Any("panic", r))
		}
	}()
	e.fn()
}

func install() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-c
		zap.L().Info("signal received, running cleanups", zap.String("signal", sig.String()))
		Run()

		mu.Lock()
		fn := exit
		mu.Unlock()
		fn(exitCode(sig))
	}()
}

func exitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
