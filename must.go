// This file contains the methods that panics when error return value is not nil.
// Their function names are all prefixed with Must.
// A function here is usually a wrapper for the function with the same name without the prefix.

package htmlshot

import (
	"time"

	"github.com/go-rod/htmlshot/lib/launcher"
	"github.com/go-rod/htmlshot/lib/utils"
)

// MustLaunch is similar to Launch
func MustLaunch(l *launcher.Launcher) *Browser {
	b, err := Launch(l)
	utils.E(err)
	return b
}

// MustConnect is similar to Connect
func MustConnect(u string) *Browser {
	b, err := Connect(u)
	utils.E(err)
	return b
}

// MustClose is similar to Close
func (b *Browser) MustClose() {
	utils.E(b.Close())
}

// MustNewTab is similar to NewTab
func (b *Browser) MustNewTab() *Tab {
	t, err := b.NewTab()
	utils.E(err)
	return t
}

// MustCaptureHTML is similar to CaptureHTML
func (b *Browser) MustCaptureHTML(html, selector string) []byte {
	img, err := b.CaptureHTML(html, selector)
	utils.E(err)
	return img
}

// MustClose is similar to Close
func (t *Tab) MustClose() {
	utils.E(t.Close())
}

// MustSetContent is similar to SetContent
func (t *Tab) MustSetContent(html string) *Tab {
	utils.E(t.SetContent(html))
	return t
}

// MustWaitForSelector is similar to WaitForSelector
func (t *Tab) MustWaitForSelector(selector string, timeout time.Duration) *Element {
	el, err := t.WaitForSelector(selector, timeout)
	utils.E(err)
	return el
}

// MustFindElement is similar to FindElement
func (t *Tab) MustFindElement(selector string) *Element {
	el, err := t.FindElement(selector)
	utils.E(err)
	return el
}

// MustEvaluateAsString is similar to EvaluateAsString
func (t *Tab) MustEvaluateAsString(expression string) string {
	s, err := t.EvaluateAsString(expression)
	utils.E(err)
	return s
}

// MustScreenshot is similar to Screenshot
func (t *Tab) MustScreenshot(opts CaptureOptions) []byte {
	img, err := t.Screenshot(opts)
	utils.E(err)
	return img
}

// MustHTML is similar to HTML
func (el *Element) MustHTML() string {
	s, err := el.HTML()
	utils.E(err)
	return s
}

// MustScreenshot is similar to Screenshot
func (el *Element) MustScreenshot() []byte {
	img, err := el.Screenshot()
	utils.E(err)
	return img
}
