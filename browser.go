// Package htmlshot renders HTML in a headless browser and captures it as an image.
//
// A Browser owns one browser process and one devtools connection, every Tab multiplexes
// its session over that connection.
package htmlshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-rod/htmlshot/lib/cdp"
	"github.com/go-rod/htmlshot/lib/cleanup"
	"github.com/go-rod/htmlshot/lib/defaults"
	"github.com/go-rod/htmlshot/lib/launcher"
	"github.com/go-rod/htmlshot/lib/proto"
	"go.uber.org/zap"
)

// ErrNoInitTab is returned by CloseInitTab when the browser has no page of its own
var ErrNoInitTab = errors.New("cannot find the initial page target")

// Browser represents the browser.
// To check the env var you can use to quickly enable options from CLI, check here:
// https://pkg.go.dev/github.com/go-rod/htmlshot/lib/defaults
type Browser struct {
	// these are the handler for ctx
	ctx           context.Context
	ctxCancel     func()
	timeoutCancel func()

	client *cdp.Client

	// nil when the browser isn't owned by this process
	launcher *launcher.Launcher

	states *sync.Map // such as the enabled domains of each session and the tabs
	life   *lifecycle
	log    *zap.Logger
}

type lifecycle struct {
	once       sync.Once
	err        error
	unregister func()
}

func newBrowser(client *cdp.Client) *Browser {
	ctx, cancel := context.WithCancel(context.Background())
	return &Browser{
		ctx:       ctx,
		ctxCancel: cancel,
		client:    client,
		states:    &sync.Map{},
		life:      &lifecycle{},
		log:       zap.L().Named("htmlshot"),
	}
}

// Launch a browser with the launcher and connect to it, nil means launcher.New().
// The browser is registered to lib/cleanup, so that an interrupt signal still kills it.
func Launch(l *launcher.Launcher) (*Browser, error) {
	if l == nil {
		l = launcher.New()
	}

	u, err := l.Launch()
	if err != nil {
		return nil, err
	}

	b := newBrowser(cdp.New(u))
	b.launcher = l
	b.life.unregister = cleanup.Register(fmt.Sprintf("browser %d", l.PID()), func() {
		_ = b.Close()
	})

	err = b.client.Connect(b.ctx)
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	return b, nil
}

// Connect to a browser this process doesn't own. The u can be a websocket url or anything
// launcher.ResolveURL accepts, such as "9222". Close only closes the connection.
func Connect(u string) (*Browser, error) {
	if !strings.HasPrefix(u, "ws://") && !strings.HasPrefix(u, "wss://") {
		ws, err := launcher.ResolveURL(context.Background(), u)
		if err != nil {
			return nil, err
		}
		u = ws
	}

	b := newBrowser(cdp.New(u))
	err := b.client.Connect(b.ctx)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Zap sets the logger of the browser and the tabs created after it
func (b *Browser) Zap(l *zap.Logger) *Browser {
	b.log = l
	return b
}

// Client of the devtools protocol the browser uses
func (b *Browser) Client() *cdp.Client {
	return b.client
}

// Launcher of the browser, nil if the browser is connected via Connect
func (b *Browser) Launcher() *launcher.Launcher {
	return b.launcher
}

// CallContext parameters for proto
func (b *Browser) CallContext() (context.Context, proto.Client, string) {
	return b.ctx, b.client, ""
}

// Version info of the browser
func (b *Browser) Version() (*proto.BrowserGetVersionResult, error) {
	return proto.BrowserGetVersion{}.Call(b)
}

// Alive reports whether the devtools connection is still open
func (b *Browser) Alive() bool {
	select {
	case <-b.client.Done():
		return false
	default:
		return true
	}
}

// Close the browser. It runs once no matter how many times and from how many paths it's
// triggered, the later calls return the result of the first one. For a launched browser it
// asks the browser to exit, kills the process group if it's still running after the grace
// period, then removes the user data dir. A removal failure is only logged.
func (b *Browser) Close() error {
	b.life.once.Do(func() {
		b.life.err = b.close()
	})
	return b.life.err
}

func (b *Browser) close() error {
	if b.life.unregister != nil {
		b.life.unregister()
	}

	l := b.launcher
	if l == nil {
		return b.client.Close()
	}

	if b.Alive() {
		ctx, cancel := context.WithTimeout(context.Background(), defaults.CloseGrace)
		err := proto.BrowserClose{}.Call(b.Context(ctx))
		cancel()
		if err != nil && !errors.Is(err, cdp.ErrConnClosed) {
			b.log.Debug("Browser.close failed", zap.Error(err))
		}
	}

	var err error
	if !l.Wait(defaults.CloseGrace) {
		b.log.Warn("browser didn't exit in time, killing it", zap.Int("pid", l.PID()))
		l.Kill()
		if !l.Wait(defaults.CloseGrace) {
			err = fmt.Errorf("browser process %d didn't exit after kill", l.PID())
		}
	}

	_ = b.client.Close()
	_ = l.Cleanup()

	return err
}

// NewTab creates a blank page target and attaches a session to it
func (b *Browser) NewTab() (*Tab, error) {
	target, err := proto.TargetCreateTarget{URL: "about:blank"}.Call(b)
	if err != nil {
		return nil, err
	}

	t, err := b.attach(target.TargetID)
	if err != nil {
		_ = proto.TargetCloseTarget{TargetID: target.TargetID}.Call(b)
		return nil, err
	}
	return t, nil
}

// Pages returns a tab for every page target, the ones not created by NewTab get attached.
func (b *Browser) Pages() ([]*Tab, error) {
	list, err := proto.TargetGetTargets{}.Call(b)
	if err != nil {
		return nil, err
	}

	tabs := []*Tab{}
	for _, info := range list.TargetInfos {
		if info.Type != "page" {
			continue
		}

		t := b.loadTab(info.TargetID)
		if t == nil {
			t, err = b.attach(info.TargetID)
			if err != nil {
				return nil, err
			}
		}
		tabs = append(tabs, t)
	}
	return tabs, nil
}

// CloseInitTab closes the page the browser opened on startup, so that it doesn't use resources
func (b *Browser) CloseInitTab() error {
	list, err := proto.TargetGetTargets{}.Call(b)
	if err != nil {
		return err
	}

	for _, info := range list.TargetInfos {
		if info.Type == "page" && b.loadTab(info.TargetID) == nil {
			return proto.TargetCloseTarget{TargetID: info.TargetID}.Call(b)
		}
	}
	return ErrNoInitTab
}

func (b *Browser) attach(id proto.TargetTargetID) (*Tab, error) {
	res, err := proto.TargetAttachToTarget{TargetID: id, Flatten: true}.Call(b)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(b.ctx)
	t := &Tab{
		TargetID:  id,
		SessionID: res.SessionID,
		ctx:       ctx,
		ctxCancel: cancel,
		browser:   b,
		shared:    &tabShared{subs: map[*cdp.Subscription]struct{}{}},
	}
	b.storeTab(t)
	return t, nil
}

// CaptureHTML renders the html in a new tab and captures the first element that matches
// the selector as a jpeg.
func (b *Browser) CaptureHTML(html, selector string) ([]byte, error) {
	return b.CaptureHTMLWithOptions(html, selector, NewCaptureOptions())
}

// CaptureHTMLWithOptions is similar to CaptureHTML. The tab is always closed afterwards,
// a failure to close it is logged.
func (b *Browser) CaptureHTMLWithOptions(html, selector string, opts CaptureOptions) ([]byte, error) {
	t, err := b.NewTab()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := t.Close(); err != nil {
			b.log.Warn("failed to close tab after capture", zap.String("target", string(t.TargetID)), zap.Error(err))
		}
	}()

	err = t.SetContent(html)
	if err != nil {
		return nil, err
	}

	err = t.WaitStable()
	if err != nil {
		return nil, err
	}

	el, err := t.WaitForSelector(selector, defaults.WaitTimeout)
	if err != nil {
		return nil, err
	}

	return el.ScreenshotWithOptions(opts)
}
