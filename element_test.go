package htmlshot_test

import (
	"errors"
	"time"

	"github.com/go-rod/htmlshot"
	"github.com/go-rod/htmlshot/lib/cdp"
	"github.com/go-rod/htmlshot/lib/cdptest"
)

func (s *S) TestElementBox() {
	s.pages.Scroll(5, 100)
	el := s.tabWith(h1).MustFindElement("h1")

	box, err := el.Box()
	s.Require().NoError(err)
	s.Equal(15.0, box.X)
	s.Equal(120.0, box.Y)
	s.Equal(100.0, box.Width)
	s.Equal(50.0, box.Height)
}

func (s *S) TestElementHTML() {
	el := s.tabWith(h1).MustFindElement("h1")
	s.Equal("<h1>Hello</h1>", el.MustHTML())
}

func (s *S) TestElementText() {
	el := s.tabWith(h1).MustFindElement("h1")

	text, err := el.Text()
	s.Require().NoError(err)
	s.Equal("Hello", text)

	s.Equal("Oh1", s.fake.Calls("Runtime.callFunctionOn")[0].Params.Get("objectId").String())
	s.Equal("Oh1", s.fake.Calls("Runtime.releaseObject")[0].Params.Get("objectId").String())
}

func (s *S) TestElementStaleAfterSetContent() {
	t := s.tabWith(h1)
	el := t.MustFindElement("h1")

	s.NoError(t.SetContent("<h1>Hello</h1>"))

	_, err := el.HTML()
	s.Equal(htmlshot.ErrStaleElement, err)
	_, err = el.Text()
	s.Equal(htmlshot.ErrStaleElement, err)
	_, err = el.Box()
	s.Equal(htmlshot.ErrStaleElement, err)
	_, err = el.Screenshot()
	s.Equal(htmlshot.ErrStaleElement, err)

	s.Empty(s.fake.Calls("DOM.getOuterHTML"))
	s.Empty(s.fake.Calls("Page.captureScreenshot"))

	// a new query works on the new document
	s.Equal("<h1>Hello</h1>", t.MustFindElement("h1").MustHTML())
}

func (s *S) TestElementStaleAfterNavigate() {
	t := s.tabWith(h1)
	el := t.MustFindElement("h1")

	s.NoError(t.Navigate("http://example.com"))

	_, err := el.HTML()
	s.Equal(htmlshot.ErrStaleElement, err)
}

func (s *S) TestElementRemoved() {
	t := s.tabWith(h1)
	el := t.MustFindElement("h1")

	s.pages.Remove("h1")

	_, err := el.HTML()
	s.Equal(htmlshot.ErrStaleElement, err)
	_, err = el.Text()
	s.Equal(htmlshot.ErrStaleElement, err)
	_, err = el.RawScreenshot()
	s.Equal(htmlshot.ErrStaleElement, err)
}

func (s *S) TestElementTimeout() {
	el := s.tabWith(h1).MustFindElement("h1")
	s.fake.Handle("DOM.getOuterHTML", func(*cdptest.Request) (interface{}, error) {
		return nil, cdptest.ErrNoReply
	})

	_, err := el.Timeout(50 * time.Millisecond).HTML()
	s.True(errors.Is(err, htmlshot.ErrTimeout), "%v", err)
}

func (s *S) TestElementScreenshot() {
	s.pages.Scroll(5, 100)
	el := s.tabWith(h1).MustFindElement("h1")

	s.Equal([]byte("image"), el.MustScreenshot())

	req := s.fake.Calls("Page.captureScreenshot")[0].Params
	s.Equal("jpeg", req.Get("format").String())
	s.EqualValues(90, req.Get("quality").Int())
	s.Equal(`{"x":15,"y":120,"width":100,"height":50,"scale":1}`, req.Get("clip").Raw)
	s.False(req.Get("captureBeyondViewport").Bool())

	s.Len(s.fake.Calls("Target.activateTarget"), 1)
	s.Empty(s.fake.Calls("Emulation.setDeviceMetricsOverride"))
}

func (s *S) TestElementRawScreenshot() {
	el := s.tabWith(h1).MustFindElement("h1")

	_, err := el.RawScreenshot()
	s.Require().NoError(err)

	req := s.fake.Calls("Page.captureScreenshot")[0].Params
	s.Equal("png", req.Get("format").String())
	s.False(req.Get("quality").Exists())
}

func (s *S) TestElementScreenshotQuality() {
	el := s.tabWith(h1).MustFindElement("h1")

	_, err := el.ScreenshotWithOptions(htmlshot.NewCaptureOptions().WithFormat(htmlshot.WebP).WithQuality(50))
	s.Require().NoError(err)
	_, err = el.ScreenshotWithOptions(htmlshot.HighQualityJPEG())
	s.Require().NoError(err)

	calls := s.fake.Calls("Page.captureScreenshot")
	s.Equal("webp", calls[0].Params.Get("format").String())
	s.EqualValues(50, calls[0].Params.Get("quality").Int())
	s.Equal("jpeg", calls[1].Params.Get("format").String())
	s.EqualValues(95, calls[1].Params.Get("quality").Int())
}

func (s *S) TestElementOmitBackground() {
	el := s.tabWith(h1).MustFindElement("h1")

	_, err := el.ScreenshotWithOptions(htmlshot.RawPNG().WithOmitBackground(true))
	s.Require().NoError(err)

	calls := s.fake.Calls("Emulation.setDefaultBackgroundColorOverride")
	s.Require().Len(calls, 2)
	s.EqualValues(0, calls[0].Params.Get("color.a").Int())
	s.True(calls[0].Params.Get("color").Exists())
	s.False(calls[1].Params.Get("color").Exists())
}

func (s *S) TestElementOmitBackgroundJPEG() {
	el := s.tabWith(h1).MustFindElement("h1")

	_, err := el.ScreenshotWithOptions(htmlshot.NewCaptureOptions().WithOmitBackground(true))
	s.Require().NoError(err)

	s.Empty(s.fake.Calls("Emulation.setDefaultBackgroundColorOverride"))
}

func (s *S) TestElementClip() {
	el := s.tabWith(h1).MustFindElement("h1")

	opts := htmlshot.RawPNG().WithClip(htmlshot.NewClipRegion(1, 2, 3, 4).WithScale(2))
	_, err := el.ScreenshotWithOptions(opts)
	s.Require().NoError(err)

	req := s.fake.Calls("Page.captureScreenshot")[0].Params
	s.Equal(`{"x":1,"y":2,"width":3,"height":4,"scale":2}`, req.Get("clip").Raw)
	s.Empty(s.fake.Calls("DOM.getBoxModel"))
}

func (s *S) TestElementHiDPI() {
	el := s.tabWith(h1).MustFindElement("h1")

	_, err := el.ScreenshotWithOptions(htmlshot.HiDPI().WithFormat(htmlshot.PNG))
	s.Require().NoError(err)

	metrics := s.fake.Calls("Emulation.setDeviceMetricsOverride")[0].Params
	s.EqualValues(800, metrics.Get("width").Int())
	s.EqualValues(600, metrics.Get("height").Int())
	s.EqualValues(2, metrics.Get("deviceScaleFactor").Float())

	// the clip stays in css pixels, the renderer scales it
	req := s.fake.Calls("Page.captureScreenshot")[0].Params
	s.Equal(`{"x":10,"y":20,"width":100,"height":50,"scale":1}`, req.Get("clip").Raw)
}

func (s *S) TestElementCaptureError() {
	el := s.tabWith(h1).MustFindElement("h1")
	s.fake.Handle("Page.captureScreenshot", func(*cdptest.Request) (interface{}, error) {
		return nil, &cdp.Error{Code: -32000, Message: "Unable to capture screenshot"}
	})

	_, err := el.Screenshot()

	var cErr *htmlshot.CaptureError
	s.Require().True(errors.As(err, &cErr))
	var remote *cdp.Error
	s.True(errors.As(err, &remote))
	s.Equal("Unable to capture screenshot", remote.Message)
}

func (s *S) TestElementBoxError() {
	el := s.tabWith(h1).MustFindElement("h1")
	s.fake.Handle("DOM.getBoxModel", func(*cdptest.Request) (interface{}, error) {
		return nil, &cdp.Error{Code: -32000, Message: "Could not compute box model."}
	})

	_, err := el.Screenshot()

	var cErr *htmlshot.CaptureError
	s.Require().True(errors.As(err, &cErr), "%v", err)
	s.Contains(err.Error(), "Could not compute box model.")
	s.Empty(s.fake.Calls("Page.captureScreenshot"))
}

func (s *S) TestElementBackendNodeGone() {
	el := s.tabWith(h1).MustFindElement("h1")
	s.fake.Handle("DOM.getBoxModel", func(*cdptest.Request) (interface{}, error) {
		return nil, cdp.ErrNoNodeForBackendID
	})

	_, err := el.Screenshot()
	s.Equal(htmlshot.ErrStaleElement, err)
}

func (s *S) TestMustFindElementPanics() {
	t := s.tabWith()
	s.Panics(func() { t.MustFindElement("p") })
}
