package htmlshot_test

import (
	"context"
	"errors"
	"time"

	"github.com/go-rod/htmlshot"
	"github.com/go-rod/htmlshot/lib/cdp"
	"github.com/go-rod/htmlshot/lib/cdptest"
	"github.com/go-rod/htmlshot/lib/defaults"
)

func (s *S) TestSetContent() {
	t := s.tab()

	s.NoError(t.SetContent("<p>a</p>"))
	s.NoError(t.SetContent("<p>b</p>"))
	s.Equal("<p>b</p>", s.pages.Content("ST1"))

	for _, m := range []string{"Page.enable", "Runtime.enable", "DOM.enable"} {
		s.Len(s.fake.Calls(m), 1, m)
	}
	s.Len(s.fake.Calls("Page.setDocumentContent"), 2)
}

func (s *S) TestSetContentEmpty() {
	t := s.tab()
	s.NoError(t.SetContent(""))
	s.Equal("", s.fake.Calls("Page.setDocumentContent")[0].Params.Get("html").String())
}

func (s *S) TestSetContentReadyState() {
	s.pages.LoadEvent(false)
	t := s.tab()

	s.NoError(t.SetContent("<p></p>"))
	s.NotEmpty(s.fake.Calls("Runtime.evaluate"))
}

func (s *S) TestSetContentLoadTimeout() {
	defaults.WaitTimeout = 150 * time.Millisecond
	s.pages.LoadEvent(false).Eval(func(string) (interface{}, error) {
		return "loading", nil
	})
	t := s.tab()

	start := time.Now()
	err := t.SetContent("<p></p>")
	s.True(errors.Is(err, htmlshot.ErrTimeout), "%v", err)
	s.GreaterOrEqual(int64(time.Since(start)), int64(150*time.Millisecond))
}

func (s *S) TestSetContentTabClosed() {
	s.pages.LoadEvent(false).Eval(func(string) (interface{}, error) {
		return "loading", nil
	})
	t := s.tab()

	done := make(chan error)
	go func() { done <- t.SetContent("<p></p>") }()

	s.Eventually(func() bool {
		return len(s.fake.Calls("Page.setDocumentContent")) == 1
	}, time.Second, 5*time.Millisecond)
	s.NoError(t.Close())

	s.Equal(htmlshot.ErrTabClosed, <-done)
}

func (s *S) TestNavigate() {
	t := s.tab()

	s.NoError(t.Navigate("http://example.com"))
	s.Equal("http://example.com", s.fake.Calls("Page.navigate")[0].Params.Get("url").String())
	s.NoError(t.WaitLoad())
}

func (s *S) TestNavigateErr() {
	s.fake.HandleResult("Page.navigate", map[string]string{
		"frameId":   "F",
		"errorText": "net::ERR_NAME_NOT_RESOLVED",
	})
	t := s.tab()

	s.EqualError(t.Navigate("http://not-exists.invalid"), "net::ERR_NAME_NOT_RESOLVED")
}

func (s *S) TestWaitForSelector() {
	t := s.tabWith()

	go func() {
		time.Sleep(100 * time.Millisecond)
		s.pages.Add(h1)
	}()

	el, err := t.WaitForSelector("h1", time.Second)
	s.Require().NoError(err)
	s.EqualValues(7, el.BackendNodeID())
	s.Equal(t, el.Tab())
	s.Greater(len(s.fake.Calls("DOM.querySelector")), 1)
}

func (s *S) TestWaitForSelectorTimeout() {
	t := s.tabWith()

	start := time.Now()
	_, err := t.WaitForSelector("h1", 150*time.Millisecond)
	took := time.Since(start)

	s.True(errors.Is(err, htmlshot.ErrTimeout), "%v", err)
	s.Contains(err.Error(), `selector "h1"`)
	s.GreaterOrEqual(int64(took), int64(150*time.Millisecond))
	s.Less(int64(took), int64(time.Second))

	// the tab is still usable after a timeout
	s.pages.Add(h1)
	_, err = t.FindElement("h1")
	s.NoError(err)
}

func (s *S) TestWaitForSelectorDefaultTimeout() {
	defaults.WaitTimeout = 100 * time.Millisecond
	t := s.tabWith()

	_, err := t.WaitForSelector("h1", 0)
	s.True(errors.Is(err, htmlshot.ErrTimeout))
}

func (s *S) TestWaitForSelectorInvalid() {
	t := s.tabWith()

	start := time.Now()
	_, err := t.WaitForSelector("a!!b", time.Second)

	var cErr *cdp.Error
	s.True(errors.As(err, &cErr), "%v", err)
	s.False(errors.Is(err, htmlshot.ErrTimeout))
	s.Less(int64(time.Since(start)), int64(500*time.Millisecond))
}

func (s *S) TestFindElement() {
	t := s.tabWith(h1)

	el, err := t.FindElement("h1")
	s.Require().NoError(err)
	s.EqualValues(7, el.BackendNodeID())

	_, err = t.FindElement("p")
	s.True(errors.Is(err, htmlshot.ErrElementNotFound))
	s.Contains(err.Error(), "p")

	has, err := t.Has("h1")
	s.NoError(err)
	s.True(has)

	has, err = t.Has("p")
	s.NoError(err)
	s.False(has)
}

func (s *S) TestEvaluateAsString() {
	s.pages.Eval(func(expr string) (interface{}, error) {
		switch expr {
		case "s":
			return "str", nil
		case "n":
			return 1.5, nil
		case "b":
			return true, nil
		case "a":
			return []interface{}{1, "x", nil}, nil
		case "o":
			return map[string]int{"a": 1}, nil
		}
		return nil, nil
	})
	t := s.tab()

	for expr, expected := range map[string]string{
		"s": "str",
		"n": "1.5",
		"b": "true",
		"a": "1,x,",
		"o": "[object Object]",
		"u": "undefined",
	} {
		res, err := t.EvaluateAsString(expr)
		s.NoError(err)
		s.Equal(expected, res, expr)
	}

	req := s.fake.Calls("Runtime.evaluate")[0]
	s.True(req.Params.Get("returnByValue").Bool())
	s.True(req.Params.Get("awaitPromise").Bool())
}

func (s *S) TestEvaluateAsStringErr() {
	s.pages.Eval(func(string) (interface{}, error) {
		return nil, errors.New("ReferenceError: x is not defined")
	})
	t := s.tab()

	_, err := t.EvaluateAsString("x")
	var eErr *htmlshot.EvalError
	s.Require().True(errors.As(err, &eErr))
	s.Equal("ReferenceError: x is not defined", eErr.Description)
}

func (s *S) TestWaitStable() {
	t := s.tabWith()

	s.NoError(t.WaitStable())

	calls := s.fake.Calls("Runtime.evaluate")
	expr := calls[len(calls)-1].Params.Get("expression").String()
	s.Contains(expr, "MutationObserver")
	s.Contains(expr, ")(2000, 200)")
}

func (s *S) TestWaitStableTimeout() {
	t := s.tabWith()

	defaults.WaitTimeout = 100 * time.Millisecond
	s.fake.Handle("Runtime.evaluate", func(*cdptest.Request) (interface{}, error) {
		return nil, cdptest.ErrNoReply
	})

	err := t.WaitStable()
	s.True(errors.Is(err, htmlshot.ErrTimeout), "%v", err)
}

func (s *S) TestSetViewport() {
	t := s.tab()

	v := htmlshot.NewViewport(300, 200).WithDeviceScaleFactor(2).WithTouch(true).WithLandscape(true)
	s.NoError(t.SetViewport(v))

	req := s.fake.Calls("Emulation.setDeviceMetricsOverride")[0].Params
	s.EqualValues(300, req.Get("width").Int())
	s.EqualValues(200, req.Get("height").Int())
	s.EqualValues(2, req.Get("deviceScaleFactor").Float())
	s.False(req.Get("mobile").Bool())
	s.Equal("landscapePrimary", req.Get("screenOrientation.type").String())
	s.EqualValues(90, req.Get("screenOrientation.angle").Int())

	req = s.fake.Calls("Emulation.setTouchEmulationEnabled")[0].Params
	s.True(req.Get("enabled").Bool())
	s.EqualValues(5, req.Get("maxTouchPoints").Int())

	s.NoError(t.ClearViewport())
	s.Len(s.fake.Calls("Emulation.clearDeviceMetricsOverride"), 1)

	touch := s.fake.Calls("Emulation.setTouchEmulationEnabled")
	s.Require().Len(touch, 2)
	s.False(touch[1].Params.Get("enabled").Bool())
}

func (s *S) TestSetViewportZeroScale() {
	t := s.tab()

	s.NoError(t.SetViewport(htmlshot.NewViewport(10, 10).WithDeviceScaleFactor(0)))

	req := s.fake.Calls("Emulation.setDeviceMetricsOverride")[0].Params
	s.EqualValues(1, req.Get("deviceScaleFactor").Float())
	s.Equal("portraitPrimary", req.Get("screenOrientation.type").String())
}

func (s *S) TestTabScreenshot() {
	t := s.tabWith()

	img, err := t.Screenshot(htmlshot.NewCaptureOptions().WithFullPage(true))
	s.Require().NoError(err)
	s.Equal([]byte("image"), img)

	req := s.fake.Calls("Page.captureScreenshot")[0].Params
	s.True(req.Get("captureBeyondViewport").Bool())
	s.True(req.Get("fromSurface").Bool())
	s.False(req.Get("clip").Exists())
}

func (s *S) TestTabTimeout() {
	t := s.tabWith()
	s.fake.Handle("DOM.getDocument", func(*cdptest.Request) (interface{}, error) {
		return nil, cdptest.ErrNoReply
	})

	_, err := t.Timeout(50 * time.Millisecond).Has("h1")
	s.True(errors.Is(err, htmlshot.ErrTimeout), "%v", err)
}

func (s *S) TestTabCancel() {
	t := s.tabWith()
	s.fake.Handle("DOM.getDocument", func(*cdptest.Request) (interface{}, error) {
		return nil, cdptest.ErrNoReply
	})

	ctx, cancel := context.WithCancel(t.GetContext())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := t.Context(ctx).Has("h1")
	s.True(errors.Is(err, context.Canceled), "%v", err)
	s.False(t.Closed())
	s.NoError(t.GetContext().Err())
}
