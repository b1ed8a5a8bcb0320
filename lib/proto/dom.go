package proto

// DOMNodeID Unique DOM node identifier.
type DOMNodeID int

// DOMBackendNodeID Unique DOM node identifier used to reference a node that may not have been pushed to the
// front-end.
type DOMBackendNodeID int

// DOMQuad An array of quad vertices, x immediately followed by y for each point, points clock-wise.
type DOMQuad []float64

// DOMRect Rectangle.
type DOMRect struct {
	// X X coordinate
	X float64 `json:"x"`

	// Y Y coordinate
	Y float64 `json:"y"`

	// Width Rectangle width
	Width float64 `json:"width"`

	// Height Rectangle height
	Height float64 `json:"height"`
}

// DOMRGBA A structure holding an RGBA color.
type DOMRGBA struct {
	// R The red component, in the [0-255] range.
	R int `json:"r"`

	// G The green component, in the [0-255] range.
	G int `json:"g"`

	// B The blue component, in the [0-255] range.
	B int `json:"b"`

	// A The alpha component, in the [0-1] range.
	A float64 `json:"a"`
}

// Rect of the bounding box of the quad, nil if the quad is malformed.
func (q DOMQuad) Rect() *DOMRect {
	if len(q) != 8 {
		return nil
	}

	left, top := q[0], q[1]
	right, bottom := q[0], q[1]
	for i := 0; i < len(q); i += 2 {
		x, y := q[i], q[i+1]
		if x < left {
			left = x
		}
		if x > right {
			right = x
		}
		if y < top {
			top = y
		}
		if y > bottom {
			bottom = y
		}
	}

	return &DOMRect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// DOMNode DOM interaction is implemented in terms of mirror objects that represent the actual DOM nodes.
type DOMNode struct {
	// NodeID Node identifier that is passed into the rest of the DOM messages as the `nodeId`.
	NodeID DOMNodeID `json:"nodeId"`

	// BackendNodeID The BackendNodeId for this node.
	BackendNodeID DOMBackendNodeID `json:"backendNodeId"`

	// NodeType `Node`'s nodeType.
	NodeType int `json:"nodeType"`

	// NodeName `Node`'s nodeName.
	NodeName string `json:"nodeName"`

	// LocalName `Node`'s localName.
	LocalName string `json:"localName"`

	// FrameID (optional) Frame ID for frame owner elements.
	FrameID PageFrameID `json:"frameId,omitempty"`
}

// DOMBoxModel Box model.
type DOMBoxModel struct {
	// Content Content box
	Content DOMQuad `json:"content"`

	// Padding Padding box
	Padding DOMQuad `json:"padding"`

	// Border Border box
	Border DOMQuad `json:"border"`

	// Margin Margin box
	Margin DOMQuad `json:"margin"`

	// Width Node width
	Width int `json:"width"`

	// Height Node height
	Height int `json:"height"`
}

// DOMEnable Enables DOM agent for the given page.
type DOMEnable struct {
}

// MethodName interface
func (m DOMEnable) MethodName() string { return "DOM.enable" }

// Call of the command, sessionID is optional.
func (m DOMEnable) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// DOMGetDocument Returns the root DOM node (and optionally the subtree) to the caller.
type DOMGetDocument struct {
	// Depth (optional) The maximum depth at which children should be retrieved, defaults to 1.
	Depth int `json:"depth,omitempty"`
}

// MethodName interface
func (m DOMGetDocument) MethodName() string { return "DOM.getDocument" }

// Call of the command, sessionID is optional.
func (m DOMGetDocument) Call(c Caller) (res *DOMGetDocumentResult, err error) {
	res = &DOMGetDocumentResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// DOMGetDocumentResult Returns the root DOM node (and optionally the subtree) to the caller.
type DOMGetDocumentResult struct {
	// Root Resulting node.
	Root *DOMNode `json:"root"`
}

// DOMQuerySelector Executes `querySelector` on a given node.
type DOMQuerySelector struct {
	// NodeID Id of the node to query upon.
	NodeID DOMNodeID `json:"nodeId"`

	// Selector Selector string.
	Selector string `json:"selector"`
}

// MethodName interface
func (m DOMQuerySelector) MethodName() string { return "DOM.querySelector" }

// Call of the command, sessionID is optional.
func (m DOMQuerySelector) Call(c Caller) (res *DOMQuerySelectorResult, err error) {
	res = &DOMQuerySelectorResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// DOMQuerySelectorResult Executes `querySelector` on a given node.
type DOMQuerySelectorResult struct {
	// NodeID Query selector result, 0 when nothing matched.
	NodeID DOMNodeID `json:"nodeId"`
}

// DOMDescribeNode Describes node given its id, does not require domain to be enabled.
type DOMDescribeNode struct {
	// NodeID (optional) Identifier of the node.
	NodeID DOMNodeID `json:"nodeId,omitempty"`

	// BackendNodeID (optional) Identifier of the backend node.
	BackendNodeID DOMBackendNodeID `json:"backendNodeId,omitempty"`

	// ObjectID (optional) JavaScript object id of the node wrapper.
	ObjectID RuntimeRemoteObjectID `json:"objectId,omitempty"`
}

// MethodName interface
func (m DOMDescribeNode) MethodName() string { return "DOM.describeNode" }

// Call of the command, sessionID is optional.
func (m DOMDescribeNode) Call(c Caller) (res *DOMDescribeNodeResult, err error) {
	res = &DOMDescribeNodeResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// DOMDescribeNodeResult Describes node given its id, does not require domain to be enabled.
type DOMDescribeNodeResult struct {
	// Node Node description.
	Node *DOMNode `json:"node"`
}

// DOMGetBoxModel Returns boxes for the given node.
type DOMGetBoxModel struct {
	// NodeID (optional) Identifier of the node.
	NodeID DOMNodeID `json:"nodeId,omitempty"`

	// BackendNodeID (optional) Identifier of the backend node.
	BackendNodeID DOMBackendNodeID `json:"backendNodeId,omitempty"`

	// ObjectID (optional) JavaScript object id of the node wrapper.
	ObjectID RuntimeRemoteObjectID `json:"objectId,omitempty"`
}

// MethodName interface
func (m DOMGetBoxModel) MethodName() string { return "DOM.getBoxModel" }

// Call of the command, sessionID is optional.
func (m DOMGetBoxModel) Call(c Caller) (res *DOMGetBoxModelResult, err error) {
	res = &DOMGetBoxModelResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// DOMGetBoxModelResult Returns boxes for the given node.
type DOMGetBoxModelResult struct {
	// Model Box model for the node.
	Model *DOMBoxModel `json:"model"`
}

// DOMGetOuterHTML Returns node's HTML markup.
type DOMGetOuterHTML struct {
	// NodeID (optional) Identifier of the node.
	NodeID DOMNodeID `json:"nodeId,omitempty"`

	// BackendNodeID (optional) Identifier of the backend node.
	BackendNodeID DOMBackendNodeID `json:"backendNodeId,omitempty"`

	// ObjectID (optional) JavaScript object id of the node wrapper.
	ObjectID RuntimeRemoteObjectID `json:"objectId,omitempty"`
}

// MethodName interface
func (m DOMGetOuterHTML) MethodName() string { return "DOM.getOuterHTML" }

// Call of the command, sessionID is optional.
func (m DOMGetOuterHTML) Call(c Caller) (res *DOMGetOuterHTMLResult, err error) {
	res = &DOMGetOuterHTMLResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// DOMGetOuterHTMLResult Returns node's HTML markup.
type DOMGetOuterHTMLResult struct {
	// OuterHTML Outer HTML markup.
	OuterHTML string `json:"outerHTML"`
}

// DOMResolveNode Resolves the JavaScript node object for a given NodeId or BackendNodeId.
type DOMResolveNode struct {
	// NodeID (optional) Id of the node to resolve.
	NodeID DOMNodeID `json:"nodeId,omitempty"`

	// BackendNodeID (optional) Backend identifier of the node to resolve.
	BackendNodeID DOMBackendNodeID `json:"backendNodeId,omitempty"`

	// ObjectGroup (optional) Symbolic group name that can be used to release multiple objects.
	ObjectGroup string `json:"objectGroup,omitempty"`
}

// MethodName interface
func (m DOMResolveNode) MethodName() string { return "DOM.resolveNode" }

// Call of the command, sessionID is optional.
func (m DOMResolveNode) Call(c Caller) (res *DOMResolveNodeResult, err error) {
	res = &DOMResolveNodeResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// DOMResolveNodeResult Resolves the JavaScript node object for a given NodeId or BackendNodeId.
type DOMResolveNodeResult struct {
	// Object JavaScript object wrapper for given node.
	Object *RuntimeRemoteObject `json:"object"`
}

// DOMDocumentUpdated Fired when `Document` has been totally updated. Node ids are no longer valid.
type DOMDocumentUpdated struct {
}

// MethodName interface
func (evt DOMDocumentUpdated) MethodName() string { return "DOM.documentUpdated" }
