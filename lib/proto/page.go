package proto

import (
	"encoding/json"

	"github.com/tidwall/sjson"
)

// PageFrameID Unique frame identifier.
type PageFrameID string

// PageLoaderID Unique loader identifier.
type PageLoaderID string

// PageFrame Information about the Frame on the page.
type PageFrame struct {
	// ID Frame unique identifier.
	ID PageFrameID `json:"id"`

	// ParentID (optional) Parent frame identifier.
	ParentID PageFrameID `json:"parentId,omitempty"`

	// LoaderID Identifier of the loader associated with this frame.
	LoaderID PageLoaderID `json:"loaderId"`

	// URL Frame document's URL without fragment.
	URL string `json:"url"`

	// MimeType Frame document's mimeType as determined by the browser.
	MimeType string `json:"mimeType"`
}

// PageFrameTree Information about the Frame hierarchy.
type PageFrameTree struct {
	// Frame Frame information for this tree item.
	Frame *PageFrame `json:"frame"`

	// ChildFrames (optional) Child frames.
	ChildFrames []*PageFrameTree `json:"childFrames,omitempty"`
}

// PageViewport Viewport for capturing screenshot.
type PageViewport struct {
	// X X offset in device independent pixels (dip).
	X float64 `json:"x"`

	// Y Y offset in device independent pixels (dip).
	Y float64 `json:"y"`

	// Width Rectangle width in device independent pixels (dip).
	Width float64 `json:"width"`

	// Height Rectangle height in device independent pixels (dip).
	Height float64 `json:"height"`

	// Scale Page scale factor.
	Scale float64 `json:"scale"`
}

// PageLayoutViewport Layout viewport position and dimensions.
type PageLayoutViewport struct {
	// PageX Horizontal offset relative to the document (CSS pixels).
	PageX int `json:"pageX"`

	// PageY Vertical offset relative to the document (CSS pixels).
	PageY int `json:"pageY"`

	// ClientWidth Width (CSS pixels), excludes scrollbar if present.
	ClientWidth int `json:"clientWidth"`

	// ClientHeight Height (CSS pixels), excludes scrollbar if present.
	ClientHeight int `json:"clientHeight"`
}

// PageEnable Enables page domain notifications.
type PageEnable struct {
}

// MethodName interface
func (m PageEnable) MethodName() string { return "Page.enable" }

// Call of the command, sessionID is optional.
func (m PageEnable) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// PageNavigate Navigates current page to the given URL.
type PageNavigate struct {
	// URL URL to navigate the page to.
	URL string `json:"url"`

	// Referrer (optional) Referrer URL.
	Referrer string `json:"referrer,omitempty"`

	// FrameID (optional) Frame id to navigate, if not specified navigates the top frame.
	FrameID PageFrameID `json:"frameId,omitempty"`
}

// MethodName interface
func (m PageNavigate) MethodName() string { return "Page.navigate" }

// Call of the command, sessionID is optional.
func (m PageNavigate) Call(c Caller) (res *PageNavigateResult, err error) {
	res = &PageNavigateResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// PageNavigateResult Navigates current page to the given URL.
type PageNavigateResult struct {
	// FrameID Frame id that has navigated (or failed to navigate)
	FrameID PageFrameID `json:"frameId"`

	// LoaderID (optional) Loader identifier.
	LoaderID PageLoaderID `json:"loaderId,omitempty"`

	// ErrorText (optional) User friendly error message, present if and only if navigation has failed.
	ErrorText string `json:"errorText,omitempty"`
}

// PageGetFrameTree Returns present frame tree structure.
type PageGetFrameTree struct {
}

// MethodName interface
func (m PageGetFrameTree) MethodName() string { return "Page.getFrameTree" }

// Call of the command, sessionID is optional.
func (m PageGetFrameTree) Call(c Caller) (res *PageGetFrameTreeResult, err error) {
	res = &PageGetFrameTreeResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// PageGetFrameTreeResult Returns present frame tree structure.
type PageGetFrameTreeResult struct {
	// FrameTree Present frame tree structure.
	FrameTree *PageFrameTree `json:"frameTree"`
}

// PageSetDocumentContent Sets given markup as the document's HTML.
type PageSetDocumentContent struct {
	// FrameID Frame id to set HTML for.
	FrameID PageFrameID `json:"frameId"`

	// HTML HTML content to set.
	HTML string `json:"html"`
}

// MethodName interface
func (m PageSetDocumentContent) MethodName() string { return "Page.setDocumentContent" }

// Call of the command, sessionID is optional.
func (m PageSetDocumentContent) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// PageCaptureScreenshotFormat enum
type PageCaptureScreenshotFormat string

const (
	// PageCaptureScreenshotFormatJpeg enum const
	PageCaptureScreenshotFormatJpeg PageCaptureScreenshotFormat = "jpeg"

	// PageCaptureScreenshotFormatPng enum const
	PageCaptureScreenshotFormatPng PageCaptureScreenshotFormat = "png"

	// PageCaptureScreenshotFormatWebp enum const
	PageCaptureScreenshotFormatWebp PageCaptureScreenshotFormat = "webp"
)

// PageCaptureScreenshot Capture page screenshot.
type PageCaptureScreenshot struct {
	// Format (optional) Image compression format (defaults to png).
	Format PageCaptureScreenshotFormat `json:"format,omitempty"`

	// Quality (optional) Compression quality from range [0..100] (jpeg and webp only).
	Quality int `json:"quality,omitempty"`

	// Clip (optional) Capture the screenshot of a given region only.
	Clip *PageViewport `json:"clip,omitempty"`

	// FromSurface (optional) Capture the screenshot from the surface, rather than the view. Defaults to true.
	FromSurface bool `json:"fromSurface,omitempty"`

	// CaptureBeyondViewport (optional) Capture the screenshot beyond the viewport. Defaults to false.
	CaptureBeyondViewport bool `json:"captureBeyondViewport,omitempty"`
}

// MethodName interface
func (m PageCaptureScreenshot) MethodName() string { return "Page.captureScreenshot" }

var _ Normalizable = PageCaptureScreenshot{}

// Normalize interface. The quality field is only valid for the lossy formats,
// the browser rejects it for png.
func (m PageCaptureScreenshot) Normalize() (json.RawMessage, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	switch m.Format {
	case PageCaptureScreenshotFormatJpeg, PageCaptureScreenshotFormatWebp:
		if m.Quality > 100 {
			return sjson.SetBytes(data, "quality", 100)
		}
		return data, nil
	default:
		return sjson.DeleteBytes(data, "quality")
	}
}

// Call of the command, sessionID is optional.
func (m PageCaptureScreenshot) Call(c Caller) (res *PageCaptureScreenshotResult, err error) {
	res = &PageCaptureScreenshotResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// PageCaptureScreenshotResult Capture page screenshot.
type PageCaptureScreenshotResult struct {
	// Data Base64-encoded image data.
	Data []byte `json:"data"`
}

// PageGetLayoutMetrics Returns metrics relating to the layouting of the page, such as viewport bounds/scale.
type PageGetLayoutMetrics struct {
}

// MethodName interface
func (m PageGetLayoutMetrics) MethodName() string { return "Page.getLayoutMetrics" }

// Call of the command, sessionID is optional.
func (m PageGetLayoutMetrics) Call(c Caller) (res *PageGetLayoutMetricsResult, err error) {
	res = &PageGetLayoutMetricsResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// PageGetLayoutMetricsResult Returns metrics relating to the layouting of the page, such as viewport bounds/scale.
type PageGetLayoutMetricsResult struct {
	// LayoutViewport Deprecated metrics relating to the layout viewport, in device pixels.
	LayoutViewport *PageLayoutViewport `json:"layoutViewport"`

	// ContentSize Deprecated size of scrollable area, in device pixels.
	ContentSize *DOMRect `json:"contentSize"`

	// CSSLayoutViewport (optional) Metrics relating to the layout viewport in CSS pixels.
	CSSLayoutViewport *PageLayoutViewport `json:"cssLayoutViewport,omitempty"`

	// CSSContentSize (optional) Size of scrollable area in CSS pixels.
	CSSContentSize *DOMRect `json:"cssContentSize,omitempty"`
}

// Layout prefers the css pixel metrics, older browsers only report the deprecated ones.
func (r *PageGetLayoutMetricsResult) Layout() *PageLayoutViewport {
	if r.CSSLayoutViewport != nil {
		return r.CSSLayoutViewport
	}
	if r.LayoutViewport != nil {
		return r.LayoutViewport
	}
	return &PageLayoutViewport{}
}

// Content size in css pixels when available.
func (r *PageGetLayoutMetricsResult) Content() *DOMRect {
	if r.CSSContentSize != nil {
		return r.CSSContentSize
	}
	if r.ContentSize != nil {
		return r.ContentSize
	}
	return &DOMRect{}
}

// PageLoadEventFired ...
type PageLoadEventFired struct {
	// Timestamp ...
	Timestamp float64 `json:"timestamp"`
}

// MethodName interface
func (evt PageLoadEventFired) MethodName() string { return "Page.loadEventFired" }

// PageFrameNavigated Fired once navigation of the frame has completed. Frame is now associated with the new loader.
type PageFrameNavigated struct {
	// Frame Frame object.
	Frame *PageFrame `json:"frame"`
}

// MethodName interface
func (evt PageFrameNavigated) MethodName() string { return "Page.frameNavigated" }
