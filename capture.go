package htmlshot

import (
	"github.com/go-rod/htmlshot/lib/proto"
	"go.uber.org/zap"
)

var transparent = &proto.DOMRGBA{R: 0, G: 0, B: 0, A: 0}

// capture the page, or the box of el when it's not nil. The viewport is applied first so
// the box is measured with the emulated metrics. The clip is in CSS pixels, the renderer
// applies the device scale factor to it.
func (t *Tab) capture(el *Element, opts CaptureOptions) ([]byte, error) {
	if opts.Viewport != nil {
		err := t.SetViewport(*opts.Viewport)
		if err != nil {
			return nil, err
		}
	}

	req := proto.PageCaptureScreenshot{
		Format:                opts.Format.proto(),
		FromSurface:           true,
		CaptureBeyondViewport: opts.FullPage,
	}

	if opts.Format.lossy() {
		req.Quality = opts.quality()
	}

	switch {
	case opts.Clip != nil:
		req.Clip = opts.Clip.viewport()
	case el != nil:
		box, err := el.Box()
		if err == ErrStaleElement {
			return nil, err
		} else if err != nil {
			return nil, &CaptureError{Err: err}
		}
		req.Clip = &proto.PageViewport{
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
			Scale:  1,
		}
	}

	// jpeg has no alpha channel, the flag is ignored for it
	if opts.OmitBackground && opts.Format.alpha() {
		err := proto.EmulationSetDefaultBackgroundColorOverride{Color: transparent}.Call(t)
		if err != nil {
			return nil, err
		}
		defer func() {
			err := proto.EmulationSetDefaultBackgroundColorOverride{}.Call(t)
			if err != nil {
				t.browser.log.Warn("failed to reset the background", zap.Error(err))
			}
		}()
	}

	err := t.Activate()
	if err != nil {
		return nil, err
	}

	res, err := req.Call(t)
	if err != nil {
		return nil, &CaptureError{Err: err}
	}
	return res.Data, nil
}
