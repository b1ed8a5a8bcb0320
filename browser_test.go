package htmlshot_test

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/htmlshot"
	"github.com/go-rod/htmlshot/lib/cdp"
	"github.com/go-rod/htmlshot/lib/cdptest"
	"github.com/go-rod/htmlshot/lib/defaults"
	"github.com/go-rod/htmlshot/lib/proto"
)

func (s *S) TestVersion() {
	v, err := s.browser.Version()
	s.Require().NoError(err)
	s.Contains(v.Product, "HeadlessChrome")
	s.Nil(s.browser.Launcher())
	s.True(s.browser.Alive())
}

func (s *S) TestConnectByPort() {
	port := s.fake.URL()[strings.LastIndex(s.fake.URL(), ":")+1:]

	b, err := htmlshot.Connect(port)
	s.Require().NoError(err)
	defer func() { _ = b.Close() }()

	_, err = b.Version()
	s.NoError(err)
}

func (s *S) TestConnectErr() {
	_, err := htmlshot.Connect("ws://127.0.0.1:1/devtools/browser/x")
	var cErr *cdp.ConnectError
	s.True(errors.As(err, &cErr))
}

func (s *S) TestNewTab() {
	t := s.tab()
	s.Equal(proto.TargetTargetID("T1"), t.TargetID)
	s.Equal(proto.TargetSessionID("ST1"), t.SessionID)
	s.Equal(s.browser, t.Browser())

	req := s.fake.Calls("Target.createTarget")[0]
	s.Equal("about:blank", req.Params.Get("url").String())

	req = s.fake.Calls("Target.attachToTarget")[0]
	s.True(req.Params.Get("flatten").Bool())
}

func (s *S) TestNewTabAttachErr() {
	s.fake.Handle("Target.attachToTarget", func(*cdptest.Request) (interface{}, error) {
		return nil, &cdp.Error{Code: -32602, Message: "No target with given id found"}
	})

	_, err := s.browser.NewTab()
	s.Error(err)

	// the orphan target is closed
	s.Equal([]string{cdptest.InitTargetID}, s.targets.IDs())
}

func (s *S) TestCloseAllTabsKeepsBrowser() {
	a := s.tab()
	b := s.tab()

	s.NoError(a.Close())
	s.NoError(b.Close())
	s.Equal(0, s.targets.Sessions())
	s.True(s.browser.Alive())

	c := s.tab()
	s.Equal(proto.TargetTargetID("T3"), c.TargetID)
}

func (s *S) TestTabCloseIsolated() {
	a := s.tab()
	b := s.tab()

	s.NoError(a.Close())
	s.NoError(a.Close())
	s.True(a.Closed())
	s.Len(s.fake.Calls("Target.closeTarget"), 1)

	// the other tab keeps working
	s.NoError(b.SetContent("<p></p>"))
	s.Equal("<p></p>", s.pages.Content(string(b.SessionID)))
}

func (s *S) TestPages() {
	t := s.tab()

	tabs, err := s.browser.Pages()
	s.Require().NoError(err)
	s.Require().Len(tabs, 2)
	s.Equal(proto.TargetTargetID(cdptest.InitTargetID), tabs[0].TargetID)
	s.Equal(t, tabs[1])

	// attached once
	tabs, err = s.browser.Pages()
	s.Require().NoError(err)
	s.Len(tabs, 2)
	s.Len(s.fake.Calls("Target.attachToTarget"), 2)
}

func (s *S) TestCloseInitTab() {
	s.tab()

	s.NoError(s.browser.CloseInitTab())
	s.Equal([]string{"T1"}, s.targets.IDs())

	s.Equal(htmlshot.ErrNoInitTab, s.browser.CloseInitTab())
}

func (s *S) TestCloseOnce() {
	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.browser.Close())
		}()
	}
	wg.Wait()

	s.False(s.browser.Alive())
	s.NoError(s.browser.Close())
}

func (s *S) TestCallAfterClose() {
	t := s.tab()
	s.NoError(s.browser.Close())

	start := time.Now()
	_, err := s.browser.NewTab()
	s.True(errors.Is(err, cdp.ErrConnClosed))

	err = t.SetContent("<p></p>")
	s.True(errors.Is(err, cdp.ErrConnClosed))
	s.Less(int64(time.Since(start)), int64(time.Second))
}

func (s *S) TestInFlightCallsFailOnDisconnect() {
	s.fake.Handle("Page.enable", func(*cdptest.Request) (interface{}, error) {
		return nil, cdptest.ErrNoReply
	})
	t := s.tab()

	done := make(chan error)
	go func() { done <- t.SetContent("<p></p>") }()

	s.Eventually(func() bool { return len(s.fake.Calls("Page.enable")) == 1 }, time.Second, 5*time.Millisecond)
	s.fake.Disconnect()

	s.True(errors.Is(<-done, cdp.ErrConnClosed))
	s.False(s.browser.Alive())
}

func (s *S) TestBrowserTimeout() {
	s.fake.Handle("Browser.getVersion", func(*cdptest.Request) (interface{}, error) {
		return nil, cdptest.ErrNoReply
	})

	b := s.browser.Timeout(50 * time.Millisecond)
	defer b.CancelTimeout()

	_, err := b.Version()
	s.True(errors.Is(err, htmlshot.ErrTimeout))

	// the timeout is local to the operation
	s.True(s.browser.Alive())
}

func (s *S) TestCaptureHTML() {
	s.pages.Add(h1).Image([]byte("jpeg"))

	img, err := s.browser.CaptureHTML("<h1>Hello</h1>", "h1")
	s.Require().NoError(err)
	s.Equal([]byte("jpeg"), img)

	set := s.fake.Calls("Page.setDocumentContent")
	s.Require().Len(set, 1)
	s.Equal("<h1>Hello</h1>", set[0].Params.Get("html").String())
	s.Equal("FST1", set[0].Params.Get("frameId").String())

	shot := s.fake.Calls("Page.captureScreenshot")[0]
	s.Equal("jpeg", shot.Params.Get("format").String())
	s.EqualValues(90, shot.Params.Get("quality").Int())
	s.Equal(`{"x":10,"y":20,"width":100,"height":50,"scale":1}`, shot.Params.Get("clip").Raw)

	// the tab is closed after the capture
	s.Equal([]string{cdptest.InitTargetID}, s.targets.IDs())
}

func (s *S) TestCaptureHTMLWaitsStable() {
	s.pages.Add(h1)

	_, err := s.browser.CaptureHTML("<h1>Hello</h1>", "h1")
	s.Require().NoError(err)

	stable := 0
	for _, c := range s.fake.Calls("Runtime.evaluate") {
		if strings.Contains(c.Params.Get("expression").String(), "MutationObserver") {
			stable++
		}
	}
	s.Equal(1, stable)
}

func (s *S) TestCaptureHTMLUnstable() {
	s.pages.Add(h1)
	s.fake.Handle("Runtime.evaluate", func(req *cdptest.Request) (interface{}, error) {
		if strings.Contains(req.Params.Get("expression").String(), "MutationObserver") {
			return nil, cdptest.ErrNoReply
		}
		return map[string]interface{}{"result": map[string]string{"type": "string", "value": "complete"}}, nil
	})
	defaults.WaitTimeout = 200 * time.Millisecond

	_, err := s.browser.CaptureHTML("<h1>Hello</h1>", "h1")
	s.True(errors.Is(err, htmlshot.ErrTimeout), "%v", err)
	s.Empty(s.fake.Calls("Page.captureScreenshot"))
}

func (s *S) TestCaptureHTMLWithOptions() {
	s.pages.Add(h1)

	_, err := s.browser.CaptureHTMLWithOptions("<h1>Hello</h1>", "h1", htmlshot.RawPNG().WithOmitBackground(true))
	s.Require().NoError(err)

	shot := s.fake.Calls("Page.captureScreenshot")[0]
	s.Equal("png", shot.Params.Get("format").String())
	s.False(shot.Params.Get("quality").Exists())
	s.Len(s.fake.Calls("Emulation.setDefaultBackgroundColorOverride"), 2)
}

func (s *S) TestCaptureHTMLSelectorTimeout() {
	defaults.WaitTimeout = 200 * time.Millisecond

	start := time.Now()
	_, err := s.browser.CaptureHTML("<p></p>", "h1")
	s.True(errors.Is(err, htmlshot.ErrTimeout), "%v", err)
	s.GreaterOrEqual(int64(time.Since(start)), int64(200*time.Millisecond))

	s.Empty(s.fake.Calls("Page.captureScreenshot"))
	s.Equal([]string{cdptest.InitTargetID}, s.targets.IDs())
}
