package cdptest

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-rod/htmlshot/lib/cdp"
	"github.com/go-rod/htmlshot/lib/proto"
)

// Node is an element the fake document exposes to DOM.querySelector
type Node struct {
	Selector      string
	BackendNodeID int
	OuterHTML     string
	Text          string

	// Box is the border box relative to the viewport
	Box proto.DOMRect
}

// Pages fakes the Page, DOM, Runtime and Emulation domains of every session. All sessions
// share one document model, which is enough to script a capture.
type Pages struct {
	b *Browser

	mu      sync.Mutex
	nodes   map[string]*Node
	content map[string]string // session id to the html set by Page.setDocumentContent
	scrollX int
	scrollY int

	eval        func(expression string) (interface{}, error)
	image       []byte
	noLoadEvent bool
}

// Pages registers the handlers of the page domains
func (b *Browser) Pages() *Pages {
	p := &Pages{
		b:       b,
		nodes:   map[string]*Node{},
		content: map[string]string{},
		image:   []byte("image"),
	}

	for _, m := range []string{
		"Page.enable", "Runtime.enable", "DOM.enable",
		"Emulation.setDeviceMetricsOverride", "Emulation.clearDeviceMetricsOverride",
		"Emulation.setTouchEmulationEnabled", "Emulation.setDefaultBackgroundColorOverride",
		"Runtime.releaseObject",
	} {
		b.HandleResult(m, nil)
	}

	b.Handle("Page.getFrameTree", p.frameTree)
	b.Handle("Page.setDocumentContent", p.setContent)
	b.Handle("Page.navigate", p.navigate)
	b.Handle("Page.getLayoutMetrics", p.layoutMetrics)
	b.Handle("Page.captureScreenshot", p.screenshot)
	b.Handle("DOM.getDocument", p.document)
	b.Handle("DOM.querySelector", p.querySelector)
	b.Handle("DOM.describeNode", p.describe)
	b.Handle("DOM.getBoxModel", p.boxModel)
	b.Handle("DOM.getOuterHTML", p.outerHTML)
	b.Handle("DOM.resolveNode", p.resolve)
	b.Handle("Runtime.evaluate", p.evaluate)
	b.Handle("Runtime.callFunctionOn", p.callFunction)

	return p
}

// Add a node to the document
func (p *Pages) Add(n *Node) *Pages {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nodes[n.Selector] = n
	return p
}

// Remove the node of the selector
func (p *Pages) Remove(selector string) *Pages {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.nodes, selector)
	return p
}

// Eval answers Runtime.evaluate, a returned error is reported as a thrown exception
func (p *Pages) Eval(fn func(expression string) (interface{}, error)) *Pages {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.eval = fn
	return p
}

// Image returned by Page.captureScreenshot
func (p *Pages) Image(data []byte) *Pages {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.image = data
	return p
}

// LoadEvent enables or disables the Page.loadEventFired events
func (p *Pages) LoadEvent(enable bool) *Pages {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.noLoadEvent = !enable
	return p
}

// Scroll sets the scroll offset of the layout viewport
func (p *Pages) Scroll(x, y int) *Pages {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrollX, p.scrollY = x, y
	return p
}

// Content set to the session
func (p *Pages) Content(sessionID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.content[sessionID]
}

func (p *Pages) frameTree(req *Request) (interface{}, error) {
	return map[string]interface{}{
		"frameTree": map[string]interface{}{
			"frame": map[string]string{
				"id":       "F" + req.SessionID,
				"loaderId": "L1",
				"url":      "about:blank",
				"mimeType": "text/html",
			},
		},
	}, nil
}

func (p *Pages) setContent(req *Request) (interface{}, error) {
	if req.Params.Get("frameId").String() != "F"+req.SessionID {
		return nil, errors.New("No frame for given id found")
	}

	p.mu.Lock()
	p.content[req.SessionID] = req.Params.Get("html").String()
	p.mu.Unlock()

	p.loaded(req.SessionID)
	return nil, nil
}

func (p *Pages) navigate(req *Request) (interface{}, error) {
	p.loaded(req.SessionID)
	return map[string]string{"frameId": "F" + req.SessionID, "loaderId": "L2"}, nil
}

func (p *Pages) loaded(sessionID string) {
	p.mu.Lock()
	skip := p.noLoadEvent
	p.mu.Unlock()

	if !skip {
		p.b.Push(sessionID, "Page.loadEventFired", map[string]float64{"timestamp": 1})
	}
}

func (p *Pages) layoutMetrics(*Request) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return map[string]interface{}{
		"cssLayoutViewport": map[string]int{
			"pageX":        p.scrollX,
			"pageY":        p.scrollY,
			"clientWidth":  800,
			"clientHeight": 600,
		},
		"cssContentSize": map[string]int{"x": 0, "y": 0, "width": 800, "height": 1600},
	}, nil
}

func (p *Pages) screenshot(*Request) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return map[string][]byte{"data": p.image}, nil
}

func (p *Pages) document(*Request) (interface{}, error) {
	return map[string]interface{}{
		"root": map[string]interface{}{
			"nodeId":        1,
			"backendNodeId": 1,
			"nodeType":      9,
			"nodeName":      "#document",
		},
	}, nil
}

func (p *Pages) querySelector(req *Request) (interface{}, error) {
	sel := req.Params.Get("selector").String()
	if strings.TrimSpace(sel) == "" || strings.Contains(sel, "!!") {
		return nil, &cdp.Error{Code: -32000, Message: "DOM Error while querying"}
	}

	n := p.node(sel)
	if n == nil {
		return map[string]int{"nodeId": 0}, nil
	}
	return map[string]int{"nodeId": n.BackendNodeID + 1000}, nil
}

func (p *Pages) describe(req *Request) (interface{}, error) {
	id := int(req.Params.Get("nodeId").Int()) - 1000
	n := p.byBackendID(id)
	if n == nil {
		return nil, cdp.ErrNodeNotFound
	}
	return map[string]interface{}{
		"node": map[string]interface{}{
			"nodeId":        n.BackendNodeID + 1000,
			"backendNodeId": n.BackendNodeID,
			"nodeType":      1,
			"nodeName":      strings.ToUpper(n.Selector),
			"localName":     n.Selector,
		},
	}, nil
}

func (p *Pages) boxModel(req *Request) (interface{}, error) {
	n := p.byBackendID(int(req.Params.Get("backendNodeId").Int()))
	if n == nil {
		return nil, cdp.ErrNodeNotFound
	}

	r := n.Box
	quad := []float64{
		r.X, r.Y,
		r.X + r.Width, r.Y,
		r.X + r.Width, r.Y + r.Height,
		r.X, r.Y + r.Height,
	}

	return map[string]interface{}{
		"model": map[string]interface{}{
			"content": quad,
			"padding": quad,
			"border":  quad,
			"margin":  quad,
			"width":   int(r.Width),
			"height":  int(r.Height),
		},
	}, nil
}

func (p *Pages) outerHTML(req *Request) (interface{}, error) {
	n := p.byBackendID(int(req.Params.Get("backendNodeId").Int()))
	if n == nil {
		return nil, cdp.ErrNodeNotFound
	}
	return map[string]string{"outerHTML": n.OuterHTML}, nil
}

func (p *Pages) resolve(req *Request) (interface{}, error) {
	n := p.byBackendID(int(req.Params.Get("backendNodeId").Int()))
	if n == nil {
		return nil, cdp.ErrNodeNotFound
	}
	return map[string]interface{}{
		"object": map[string]interface{}{
			"type":     "object",
			"subtype":  "node",
			"objectId": "O" + n.Selector,
		},
	}, nil
}

func (p *Pages) callFunction(req *Request) (interface{}, error) {
	sel := strings.TrimPrefix(req.Params.Get("objectId").String(), "O")
	n := p.node(sel)
	if n == nil {
		return nil, cdp.ErrObjNotFound
	}
	return map[string]interface{}{
		"result": map[string]interface{}{"type": "string", "value": n.Text},
	}, nil
}

func (p *Pages) evaluate(req *Request) (interface{}, error) {
	expr := req.Params.Get("expression").String()

	p.mu.Lock()
	eval := p.eval
	p.mu.Unlock()

	if eval == nil {
		eval = func(expr string) (interface{}, error) {
			if strings.Contains(expr, "document.readyState") {
				return "complete", nil
			}
			return nil, nil
		}
	}

	v, err := eval(expr)
	if err != nil {
		return map[string]interface{}{
			"result": map[string]interface{}{
				"type":        "object",
				"subtype":     "error",
				"className":   "Error",
				"description": err.Error(),
			},
			"exceptionDetails": map[string]interface{}{
				"exceptionId":  1,
				"text":         "Uncaught",
				"lineNumber":   0,
				"columnNumber": 0,
				"exception": map[string]interface{}{
					"type":        "object",
					"subtype":     "error",
					"className":   "Error",
					"description": err.Error(),
				},
			},
		}, nil
	}

	return map[string]interface{}{"result": remoteObject(v)}, nil
}

func remoteObject(v interface{}) map[string]interface{} {
	switch v := v.(type) {
	case nil:
		return map[string]interface{}{"type": "undefined"}
	case string:
		return map[string]interface{}{"type": "string", "value": v}
	case bool:
		return map[string]interface{}{"type": "boolean", "value": v}
	case int, float64:
		return map[string]interface{}{"type": "number", "value": v}
	}
	return map[string]interface{}{"type": "object", "value": v}
}

func (p *Pages) node(selector string) *Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nodes[selector]
}

func (p *Pages) byBackendID(id int) *Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, n := range p.nodes {
		if n.BackendNodeID == id {
			return n
		}
	}
	return nil
}
