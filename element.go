package htmlshot

import (
	"context"

	"github.com/go-rod/htmlshot/lib/js"
	"github.com/go-rod/htmlshot/lib/proto"
)

// Element is a DOM node of a tab. It's only valid for the document that produced it, after
// SetContent or Navigate every method returns ErrStaleElement.
type Element struct {
	// these are the handler for ctx
	ctx           context.Context
	ctxCancel     func()
	timeoutCancel func()

	tab           *Tab
	backendNodeID proto.DOMBackendNodeID
	generation    int64
}

// CallContext parameters for proto
func (el *Element) CallContext() (context.Context, proto.Client, string) {
	return el.ctx, el.tab.browser.client, string(el.tab.SessionID)
}

// Tab of the element
func (el *Element) Tab() *Tab {
	return el.tab
}

// BackendNodeID of the node, it's stable for the lifetime of the document
func (el *Element) BackendNodeID() proto.DOMBackendNodeID {
	return el.backendNodeID
}

// Box of the border box in CSS pixels of the page, the scroll offset is included
func (el *Element) Box() (*proto.DOMRect, error) {
	if err := el.check(); err != nil {
		return nil, err
	}

	res, err := proto.DOMGetBoxModel{BackendNodeID: el.backendNodeID}.Call(el)
	if err != nil {
		return nil, el.wrap(err)
	}

	rect := res.Model.Border.Rect()
	if rect == nil {
		return nil, ErrElementNotFound
	}

	metrics, err := proto.PageGetLayoutMetrics{}.Call(el)
	if err != nil {
		return nil, err
	}
	layout := metrics.Layout()

	rect.X += float64(layout.PageX)
	rect.Y += float64(layout.PageY)
	return rect, nil
}

// HTML of the element
func (el *Element) HTML() (string, error) {
	if err := el.check(); err != nil {
		return "", err
	}

	res, err := proto.DOMGetOuterHTML{BackendNodeID: el.backendNodeID}.Call(el)
	if err != nil {
		return "", el.wrap(err)
	}
	return res.OuterHTML, nil
}

// Text of the element, the innerText
func (el *Element) Text() (string, error) {
	if err := el.check(); err != nil {
		return "", err
	}

	node, err := proto.DOMResolveNode{BackendNodeID: el.backendNodeID}.Call(el)
	if err != nil {
		return "", el.wrap(err)
	}
	id := node.Object.ObjectID
	defer func() { _ = proto.RuntimeReleaseObject{ObjectID: id}.Call(el) }()

	res, err := proto.RuntimeCallFunctionOn{
		FunctionDeclaration: js.InnerText.Definition,
		ObjectID:            id,
		ReturnByValue:       true,
	}.Call(el)
	if err != nil {
		return "", el.wrap(err)
	}
	if res.ExceptionDetails != nil {
		return "", newEvalError(res.ExceptionDetails)
	}
	return stringify(res.Result), nil
}

// Screenshot of the element as a jpeg of the default quality
func (el *Element) Screenshot() ([]byte, error) {
	return el.ScreenshotWithOptions(NewCaptureOptions())
}

// RawScreenshot of the element as a png
func (el *Element) RawScreenshot() ([]byte, error) {
	return el.ScreenshotWithOptions(RawPNG())
}

// ScreenshotWithOptions captures the box of the element unless the opts has a clip
func (el *Element) ScreenshotWithOptions(opts CaptureOptions) ([]byte, error) {
	if err := el.check(); err != nil {
		return nil, err
	}
	return el.tab.Context(el.ctx).capture(el, opts)
}

// check the element still belongs to the current document
func (el *Element) check() error {
	if el.generation != el.tab.generation() {
		return ErrStaleElement
	}
	return nil
}

func (el *Element) wrap(err error) error {
	if isStale(err) {
		return ErrStaleElement
	}
	return err
}
