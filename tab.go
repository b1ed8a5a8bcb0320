package htmlshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/htmlshot/lib/cdp"
	"github.com/go-rod/htmlshot/lib/defaults"
	"github.com/go-rod/htmlshot/lib/js"
	"github.com/go-rod/htmlshot/lib/proto"
	"go.uber.org/zap"
)

// Tab is one page target with its own session. It shares the connection of its Browser,
// closing it never affects the connection or the other tabs.
type Tab struct {
	TargetID  proto.TargetTargetID
	SessionID proto.TargetSessionID

	// these are the handler for ctx
	ctx           context.Context
	ctxCancel     func()
	timeoutCancel func()

	browser *Browser
	shared  *tabShared
}

// tabShared is the part of a tab its context clones share
type tabShared struct {
	// generation of the document, elements of an older one are stale
	generation int64

	closeOnce sync.Once
	closeErr  error

	mu     sync.Mutex
	closed bool
	subs   map[*cdp.Subscription]struct{}
}

// CallContext parameters for proto
func (t *Tab) CallContext() (context.Context, proto.Client, string) {
	return t.ctx, t.browser.client, string(t.SessionID)
}

// Browser of the tab
func (t *Tab) Browser() *Browser {
	return t.browser
}

// Closed reports whether Close has been called
func (t *Tab) Closed() bool {
	t.shared.mu.Lock()
	defer t.shared.mu.Unlock()
	return t.shared.closed
}

// Close the tab: detach the session and close the target. Every wait of the tab returns
// ErrTabClosed. It's safe to call it multiple times.
func (t *Tab) Close() error {
	t.shared.closeOnce.Do(func() {
		t.shared.mu.Lock()
		t.shared.closed = true
		subs := t.shared.subs
		t.shared.subs = nil
		t.shared.mu.Unlock()

		for s := range subs {
			s.Close()
		}

		b := t.browser.Context(t.ctx)

		err := proto.TargetDetachFromTarget{SessionID: t.SessionID}.Call(b)
		if err != nil {
			t.browser.log.Debug("detach failed", zap.String("session", string(t.SessionID)), zap.Error(err))
		}

		t.shared.closeErr = proto.TargetCloseTarget{TargetID: t.TargetID}.Call(b)
		t.browser.cleanupStates(t)
	})
	return t.shared.closeErr
}

// Activate (focuses) the tab
func (t *Tab) Activate() error {
	return proto.TargetActivateTarget{TargetID: t.TargetID}.Call(t.browser.Context(t.ctx))
}

// Navigate to the url. It doesn't wait for the page to load, use WaitLoad for that.
func (t *Tab) Navigate(url string) error {
	err := t.browser.enableDomain(t, t.SessionID, proto.PageEnable{})
	if err != nil {
		return err
	}

	t.bump()

	res, err := proto.PageNavigate{URL: url}.Call(t)
	if err != nil {
		return err
	}
	if res.ErrorText != "" {
		return errors.New(res.ErrorText)
	}
	return nil
}

// WaitLoad waits until document.readyState is "complete"
func (t *Tab) WaitLoad() error {
	return t.waitLoad(nil)
}

// SetContent replaces the document of the main frame with the html and waits for it to load.
// The page isn't navigated, so there is no cross-origin or cache quirk. Elements found before
// become stale.
func (t *Tab) SetContent(html string) error {
	for _, m := range []proto.Payload{proto.PageEnable{}, proto.RuntimeEnable{}, proto.DOMEnable{}} {
		err := t.browser.enableDomain(t, t.SessionID, m)
		if err != nil {
			return err
		}
	}

	loaded := t.subscribe(proto.PageLoadEventFired{}.MethodName())
	defer t.unsubscribe(loaded)

	tree, err := proto.PageGetFrameTree{}.Call(t)
	if err != nil {
		return err
	}

	t.bump()

	err = proto.PageSetDocumentContent{FrameID: tree.FrameTree.Frame.ID, HTML: html}.Call(t)
	if err != nil {
		return err
	}

	return t.waitLoad(loaded)
}

// WaitStable waits for the fonts, the stylesheets and the images to load, then for the DOM
// to stay unchanged for 200ms.
func (t *Tab) WaitStable() error {
	ctx, cancel := context.WithTimeout(t.ctx, defaults.WaitTimeout)
	defer cancel()

	_, err := t.Context(ctx).evaluate(jsCall(js.WaitStable, defaults.WaitTimeout.Milliseconds(), 200))
	return waitErr(ctx, "wait stable", err)
}

// waitLoad returns when the load event arrives or the ready state is complete
func (t *Tab) waitLoad(loaded *cdp.Subscription) error {
	ctx, cancel := context.WithTimeout(t.ctx, defaults.WaitTimeout)
	defer cancel()

	tick := time.NewTicker(defaults.Poll)
	defer tick.Stop()

	var events <-chan *cdp.Event
	if loaded != nil {
		events = loaded.C
	}

	check := func() (bool, error) {
		state, err := t.Context(ctx).EvaluateAsString(jsCall(js.ReadyState))
		return state == "complete", err
	}

	if loaded == nil {
		done, err := check()
		if done || err != nil {
			return waitErr(ctx, "page load", err)
		}
	}

	for {
		select {
		case _, ok := <-events:
			if !ok {
				return t.closedErr()
			}
			return nil
		case <-tick.C:
			done, err := check()
			if done || err != nil {
				return waitErr(ctx, "page load", err)
			}
		case <-ctx.Done():
			return waitErr(ctx, "page load", ctx.Err())
		}
	}
}

// SetViewport emulates the device metrics and the touch support of the viewport
func (t *Tab) SetViewport(v Viewport) error {
	err := v.metrics().Call(t)
	if err != nil {
		return err
	}

	touch := proto.EmulationSetTouchEmulationEnabled{Enabled: v.HasTouch}
	if v.HasTouch {
		touch.MaxTouchPoints = 5
	}
	return touch.Call(t)
}

// ClearViewport removes the emulation of SetViewport
func (t *Tab) ClearViewport() error {
	err := proto.EmulationClearDeviceMetricsOverride{}.Call(t)
	if err != nil {
		return err
	}
	return proto.EmulationSetTouchEmulationEnabled{Enabled: false}.Call(t)
}

// Screenshot of the page
func (t *Tab) Screenshot(opts CaptureOptions) ([]byte, error) {
	return t.capture(nil, opts)
}

func (t *Tab) bump() {
	atomic.AddInt64(&t.shared.generation, 1)
}

func (t *Tab) generation() int64 {
	return atomic.LoadInt64(&t.shared.generation)
}

// subscribe events of the session, the subscription is closed when the tab closes
func (t *Tab) subscribe(method string) *cdp.Subscription {
	s := t.browser.client.Subscribe(string(t.SessionID), method)

	t.shared.mu.Lock()
	defer t.shared.mu.Unlock()

	if t.shared.closed {
		s.Close()
		return s
	}
	t.shared.subs[s] = struct{}{}
	return s
}

func (t *Tab) unsubscribe(s *cdp.Subscription) {
	t.shared.mu.Lock()
	delete(t.shared.subs, s)
	t.shared.mu.Unlock()

	s.Close()
}

func (t *Tab) closedErr() error {
	if t.Closed() {
		return ErrTabClosed
	}
	return cdp.ErrConnClosed
}

// waitErr makes an error caused by the expired ctx match ErrTimeout
func waitErr(ctx context.Context, what string, err error) error {
	if err == nil || errors.Is(err, ErrTimeout) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &timeoutErr{what: what, cause: err}
	}
	return err
}
