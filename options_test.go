package htmlshot_test

import (
	"errors"
	"testing"

	"github.com/go-rod/htmlshot"
	"github.com/go-rod/htmlshot/lib/devices"
	"github.com/stretchr/testify/assert"
)

func TestViewport(t *testing.T) {
	as := assert.New(t)

	as.Equal(htmlshot.Viewport{Width: 800, Height: 600, DeviceScaleFactor: 1}, htmlshot.DefaultViewport())

	v := htmlshot.NewViewport(300, 200)
	as.Equal(300, v.Width)
	as.Equal(200, v.Height)
	as.Equal(1.0, v.DeviceScaleFactor)

	m := v.WithMobile(true).WithTouch(true)
	as.True(m.IsMobile)
	as.True(m.HasTouch)
	as.False(v.IsMobile, "the origin is untouched")
}

func TestViewportBuilder(t *testing.T) {
	v := htmlshot.NewViewportBuilder().Width(1024).DeviceScaleFactor(2).Landscape(true).Build()

	assert.Equal(t, htmlshot.Viewport{
		Width:             1024,
		Height:            600,
		DeviceScaleFactor: 2,
		IsLandscape:       true,
	}, v)
}

func TestDeviceViewport(t *testing.T) {
	as := assert.New(t)

	d, err := devices.Get("iphone-x")
	as.NoError(err)
	w, h := d.Size(false)

	v, err := htmlshot.DeviceViewport("iphone-x", false)
	as.NoError(err)
	as.Equal(w, v.Width)
	as.Equal(h, v.Height)
	as.Equal(d.DeviceScaleFactor, v.DeviceScaleFactor)
	as.True(v.IsMobile)
	as.True(v.HasTouch)

	l, err := htmlshot.DeviceViewport("iphone-x", true)
	as.NoError(err)
	as.Equal(v.Width, l.Height)
	as.Equal(v.Height, l.Width)
	as.True(l.IsLandscape)

	_, err = htmlshot.DeviceViewport("not-exists", false)
	as.True(errors.Is(err, devices.ErrDeviceNotExists))
}

func TestImageFormat(t *testing.T) {
	as := assert.New(t)

	as.Equal("jpeg", htmlshot.JPEG.String())
	as.Equal("png", htmlshot.PNG.String())
	as.Equal("webp", htmlshot.WebP.String())
	as.Equal("jpeg", htmlshot.ImageFormat(100).String())
}

func TestCaptureOptions(t *testing.T) {
	as := assert.New(t)

	o := htmlshot.NewCaptureOptions()
	as.Equal(htmlshot.JPEG, o.Format)
	as.Nil(o.Viewport)
	as.Nil(o.Clip)

	as.Equal(100, o.WithQuality(200).Quality)
	as.Equal(0, o.WithQuality(-1).Quality)
	as.Equal(0, o.Quality, "the origin is untouched")

	as.Equal(htmlshot.PNG, htmlshot.RawPNG().Format)
	as.Equal(95, htmlshot.HighQualityJPEG().Quality)
	as.Equal(2.0, htmlshot.HiDPI().Viewport.DeviceScaleFactor)
	as.Equal(3.0, htmlshot.UltraHiDPI().Viewport.DeviceScaleFactor)
	as.Equal(800, htmlshot.UltraHiDPI().Viewport.Width)

	c := htmlshot.NewClipRegion(1, 2, 3, 4)
	as.Equal(1.0, c.Scale)
	as.Equal(2.0, c.WithScale(2).Scale)
	as.Equal(&c, o.WithClip(c).Clip)
}

func TestCaptureOptionsShared(t *testing.T) {
	preset := htmlshot.HiDPI()
	a := preset.WithViewport(preset.Viewport.WithDeviceScaleFactor(4))

	assert.Equal(t, 2.0, preset.Viewport.DeviceScaleFactor)
	assert.Equal(t, 4.0, a.Viewport.DeviceScaleFactor)
}
