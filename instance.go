package htmlshot

import (
	"sync"
)

var instance struct {
	mu sync.Mutex
	b  *Browser
}

// Instance returns the browser shared by the process. The first call launches it with the
// default launcher and closes its initial tab. A browser whose connection is gone is replaced.
func Instance() (*Browser, error) {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.b != nil && instance.b.Alive() {
		return instance.b, nil
	}

	if instance.b != nil {
		_ = instance.b.Close()
		instance.b = nil
	}

	b, err := Launch(nil)
	if err != nil {
		return nil, err
	}

	err = b.CloseInitTab()
	if err != nil && err != ErrNoInitTab {
		_ = b.Close()
		return nil, err
	}

	instance.b = b
	return b, nil
}

// CloseInstance closes the shared browser, the next Instance launches a new one
func CloseInstance() error {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.b == nil {
		return nil
	}

	err := instance.b.Close()
	instance.b = nil
	return err
}
