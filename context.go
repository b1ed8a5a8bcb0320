package htmlshot

import (
	"context"
	"time"
)

// Context creates a clone with a context that inherits the previous one
func (b *Browser) Context(ctx context.Context) *Browser {
	if ctx == b.ctx {
		return b
	}

	ctx, cancel := context.WithCancel(ctx)
	newObj := *b
	newObj.ctx = ctx
	newObj.ctxCancel = cancel
	return &newObj
}

// GetContext returns the current context
func (b *Browser) GetContext() context.Context {
	return b.ctx
}

// Cancel current context
func (b *Browser) Cancel() *Browser {
	b.ctxCancel()
	return b
}

// Timeout for chained sub-operations
func (b *Browser) Timeout(d time.Duration) *Browser {
	ctx, cancel := context.WithTimeout(b.ctx, d)
	b.timeoutCancel = cancel
	return b.Context(ctx)
}

// CancelTimeout context
func (b *Browser) CancelTimeout() *Browser {
	b.timeoutCancel()
	return b
}

// Context creates a clone with a context that inherits the previous one
func (t *Tab) Context(ctx context.Context) *Tab {
	if ctx == t.ctx {
		return t
	}

	ctx, cancel := context.WithCancel(ctx)
	newObj := *t
	newObj.ctx = ctx
	newObj.ctxCancel = cancel
	return &newObj
}

// GetContext returns the current context
func (t *Tab) GetContext() context.Context {
	return t.ctx
}

// Cancel current context
func (t *Tab) Cancel() *Tab {
	t.ctxCancel()
	return t
}

// Timeout for chained sub-operations
func (t *Tab) Timeout(d time.Duration) *Tab {
	ctx, cancel := context.WithTimeout(t.ctx, d)
	t.timeoutCancel = cancel
	return t.Context(ctx)
}

// CancelTimeout context
func (t *Tab) CancelTimeout() *Tab {
	t.timeoutCancel()
	return t
}

// Context creates a clone with a context that inherits the previous one
func (el *Element) Context(ctx context.Context) *Element {
	if ctx == el.ctx {
		return el
	}

	ctx, cancel := context.WithCancel(ctx)
	newObj := *el
	newObj.ctx = ctx
	newObj.ctxCancel = cancel
	return &newObj
}

// Cancel current context
func (el *Element) Cancel() *Element {
	el.ctxCancel()
	return el
}

// Timeout for chained sub-operations
func (el *Element) Timeout(d time.Duration) *Element {
	ctx, cancel := context.WithTimeout(el.ctx, d)
	el.timeoutCancel = cancel
	return el.Context(ctx)
}

// CancelTimeout context
func (el *Element) CancelTimeout() *Element {
	el.timeoutCancel()
	return el
}
