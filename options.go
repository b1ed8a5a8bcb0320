package htmlshot

import (
	"github.com/go-rod/htmlshot/lib/devices"
	"github.com/go-rod/htmlshot/lib/proto"
)

// Viewport describes the emulated screen. The zero value isn't usable, start from NewViewport
// or DefaultViewport.
type Viewport struct {
	Width             int
	Height            int
	DeviceScaleFactor float64
	IsMobile          bool
	HasTouch          bool
	IsLandscape       bool
}

// DefaultViewport is 800x600 at scale 1
func DefaultViewport() Viewport {
	return Viewport{Width: 800, Height: 600, DeviceScaleFactor: 1}
}

// NewViewport with the size and the defaults of the rest
func NewViewport(width, height int) Viewport {
	v := DefaultViewport()
	v.Width = width
	v.Height = height
	return v
}

// DeviceViewport returns the viewport of a preset of lib/devices, such as "iphone-x"
func DeviceViewport(name string, landscape bool) (Viewport, error) {
	d, err := devices.Get(name)
	if err != nil {
		return Viewport{}, err
	}

	w, h := d.Size(landscape)
	return Viewport{
		Width:             w,
		Height:            h,
		DeviceScaleFactor: d.DeviceScaleFactor,
		IsMobile:          d.Mobile,
		HasTouch:          d.Touch,
		IsLandscape:       landscape,
	}, nil
}

// WithDeviceScaleFactor returns a copy
func (v Viewport) WithDeviceScaleFactor(f float64) Viewport {
	v.DeviceScaleFactor = f
	return v
}

// WithMobile returns a copy
func (v Viewport) WithMobile(mobile bool) Viewport {
	v.IsMobile = mobile
	return v
}

// WithTouch returns a copy
func (v Viewport) WithTouch(touch bool) Viewport {
	v.HasTouch = touch
	return v
}

// WithLandscape returns a copy
func (v Viewport) WithLandscape(landscape bool) Viewport {
	v.IsLandscape = landscape
	return v
}

func (v Viewport) metrics() *proto.EmulationSetDeviceMetricsOverride {
	scale := v.DeviceScaleFactor
	if scale <= 0 {
		scale = 1
	}

	orientation := &proto.EmulationScreenOrientation{
		Type:  proto.EmulationScreenOrientationTypePortraitPrimary,
		Angle: 0,
	}
	if v.IsLandscape {
		orientation = &proto.EmulationScreenOrientation{
			Type:  proto.EmulationScreenOrientationTypeLandscapePrimary,
			Angle: 90,
		}
	}

	return &proto.EmulationSetDeviceMetricsOverride{
		Width:             v.Width,
		Height:            v.Height,
		DeviceScaleFactor: scale,
		Mobile:            v.IsMobile,
		ScreenOrientation: orientation,
	}
}

// ViewportBuilder fills the unset fields with the ones of DefaultViewport
type ViewportBuilder struct {
	v Viewport
}

// NewViewportBuilder starts from DefaultViewport
func NewViewportBuilder() *ViewportBuilder {
	return &ViewportBuilder{v: DefaultViewport()}
}

// Width of the viewport
func (b *ViewportBuilder) Width(w int) *ViewportBuilder {
	b.v.Width = w
	return b
}

// Height of the viewport
func (b *ViewportBuilder) Height(h int) *ViewportBuilder {
	b.v.Height = h
	return b
}

// DeviceScaleFactor of the viewport
func (b *ViewportBuilder) DeviceScaleFactor(f float64) *ViewportBuilder {
	b.v.DeviceScaleFactor = f
	return b
}

// Mobile switch
func (b *ViewportBuilder) Mobile(enable bool) *ViewportBuilder {
	b.v.IsMobile = enable
	return b
}

// Touch switch
func (b *ViewportBuilder) Touch(enable bool) *ViewportBuilder {
	b.v.HasTouch = enable
	return b
}

// Landscape switch
func (b *ViewportBuilder) Landscape(enable bool) *ViewportBuilder {
	b.v.IsLandscape = enable
	return b
}

// Build the viewport
func (b *ViewportBuilder) Build() Viewport {
	return b.v
}

// ImageFormat of the capture
type ImageFormat int

const (
	// JPEG is the default format
	JPEG ImageFormat = iota
	// PNG is lossless and supports transparency
	PNG
	// WebP supports transparency
	WebP
)

// String interface
func (f ImageFormat) String() string {
	return string(f.proto())
}

func (f ImageFormat) proto() proto.PageCaptureScreenshotFormat {
	switch f {
	case PNG:
		return proto.PageCaptureScreenshotFormatPng
	case WebP:
		return proto.PageCaptureScreenshotFormatWebp
	default:
		return proto.PageCaptureScreenshotFormatJpeg
	}
}

// lossy formats take the quality
func (f ImageFormat) lossy() bool {
	return f != PNG
}

// alpha formats can omit the background
func (f ImageFormat) alpha() bool {
	return f == PNG || f == WebP
}

// DefaultQuality of the lossy formats
const DefaultQuality = 90

// ClipRegion in CSS pixels of the page
type ClipRegion struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Scale  float64
}

// NewClipRegion with scale 1
func NewClipRegion(x, y, width, height float64) ClipRegion {
	return ClipRegion{X: x, Y: y, Width: width, Height: height, Scale: 1}
}

// WithScale returns a copy
func (c ClipRegion) WithScale(scale float64) ClipRegion {
	c.Scale = scale
	return c
}

func (c ClipRegion) viewport() *proto.PageViewport {
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	return &proto.PageViewport{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height, Scale: scale}
}

// CaptureOptions of a screenshot. The zero value is a jpeg of the default quality.
// The With methods return copies, a preset can be shared safely.
type CaptureOptions struct {
	Format ImageFormat

	// Quality from 0 to 100, only used by the lossy formats. 0 means DefaultQuality.
	Quality int

	// Viewport to emulate before the capture
	Viewport *Viewport

	// FullPage captures beyond the viewport
	FullPage bool

	// OmitBackground makes the default white background transparent, only for the formats
	// with alpha channel.
	OmitBackground bool

	// Clip region, it takes precedence over the box of the element
	Clip *ClipRegion
}

// NewCaptureOptions is the zero value
func NewCaptureOptions() CaptureOptions {
	return CaptureOptions{}
}

// RawPNG preset
func RawPNG() CaptureOptions {
	return NewCaptureOptions().WithFormat(PNG)
}

// HighQualityJPEG preset
func HighQualityJPEG() CaptureOptions {
	return NewCaptureOptions().WithFormat(JPEG).WithQuality(95)
}

// HiDPI preset, the default viewport at scale 2
func HiDPI() CaptureOptions {
	return NewCaptureOptions().WithViewport(DefaultViewport().WithDeviceScaleFactor(2))
}

// UltraHiDPI preset, the default viewport at scale 3
func UltraHiDPI() CaptureOptions {
	return NewCaptureOptions().WithViewport(DefaultViewport().WithDeviceScaleFactor(3))
}

// WithFormat returns a copy
func (o CaptureOptions) WithFormat(f ImageFormat) CaptureOptions {
	o.Format = f
	return o
}

// WithQuality returns a copy, the quality is clamped to [0, 100]
func (o CaptureOptions) WithQuality(q int) CaptureOptions {
	if q < 0 {
		q = 0
	}
	if q > 100 {
		q = 100
	}
	o.Quality = q
	return o
}

// WithViewport returns a copy
func (o CaptureOptions) WithViewport(v Viewport) CaptureOptions {
	o.Viewport = &v
	return o
}

// WithFullPage returns a copy
func (o CaptureOptions) WithFullPage(enable bool) CaptureOptions {
	o.FullPage = enable
	return o
}

// WithOmitBackground returns a copy
func (o CaptureOptions) WithOmitBackground(enable bool) CaptureOptions {
	o.OmitBackground = enable
	return o
}

// WithClip returns a copy
func (o CaptureOptions) WithClip(c ClipRegion) CaptureOptions {
	o.Clip = &c
	return o
}

func (o CaptureOptions) quality() int {
	if o.Quality <= 0 {
		return DefaultQuality
	}
	return o.Quality
}
