package proto

// TargetTargetID ...
type TargetTargetID string

// TargetSessionID Unique identifier of attached debugging session.
type TargetSessionID string

// TargetTargetInfo ...
type TargetTargetInfo struct {
	// TargetID ...
	TargetID TargetTargetID `json:"targetId"`

	// Type ...
	Type string `json:"type"`

	// Title ...
	Title string `json:"title"`

	// URL ...
	URL string `json:"url"`

	// Attached Whether the target has an attached client.
	Attached bool `json:"attached"`
}

// TargetCreateTarget Creates a new page.
type TargetCreateTarget struct {
	// URL The initial URL the page will be navigated to.
	URL string `json:"url"`

	// Width (optional) Frame width in DIP (headless chrome only).
	Width int `json:"width,omitempty"`

	// Height (optional) Frame height in DIP (headless chrome only).
	Height int `json:"height,omitempty"`

	// NewWindow (optional) Whether to create a new Window or Tab (chrome-only, false by default).
	NewWindow bool `json:"newWindow,omitempty"`

	// Background (optional) Whether to create the target in background or foreground (chrome-only,
	// false by default).
	Background bool `json:"background,omitempty"`
}

// MethodName interface
func (m TargetCreateTarget) MethodName() string { return "Target.createTarget" }

// Call of the command, sessionID is optional.
func (m TargetCreateTarget) Call(c Caller) (res *TargetCreateTargetResult, err error) {
	res = &TargetCreateTargetResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// TargetCreateTargetResult Creates a new page.
type TargetCreateTargetResult struct {
	// TargetID The id of the page opened.
	TargetID TargetTargetID `json:"targetId"`
}

// TargetAttachToTarget Attaches to the target with given id.
type TargetAttachToTarget struct {
	// TargetID ...
	TargetID TargetTargetID `json:"targetId"`

	// Flatten (optional) Enables "flat" access to the session via specifying sessionId attribute in the commands.
	Flatten bool `json:"flatten,omitempty"`
}

// MethodName interface
func (m TargetAttachToTarget) MethodName() string { return "Target.attachToTarget" }

// Call of the command, sessionID is optional.
func (m TargetAttachToTarget) Call(c Caller) (res *TargetAttachToTargetResult, err error) {
	res = &TargetAttachToTargetResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// TargetAttachToTargetResult Attaches to the target with given id.
type TargetAttachToTargetResult struct {
	// SessionID Id assigned to the session.
	SessionID TargetSessionID `json:"sessionId"`
}

// TargetDetachFromTarget Detaches session with given id.
type TargetDetachFromTarget struct {
	// SessionID (optional) Session to detach.
	SessionID TargetSessionID `json:"sessionId,omitempty"`
}

// MethodName interface
func (m TargetDetachFromTarget) MethodName() string { return "Target.detachFromTarget" }

// Call of the command, sessionID is optional.
func (m TargetDetachFromTarget) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// TargetCloseTarget Closes the target. If the target is a page that gets closed too.
type TargetCloseTarget struct {
	// TargetID ...
	TargetID TargetTargetID `json:"targetId"`
}

// MethodName interface
func (m TargetCloseTarget) MethodName() string { return "Target.closeTarget" }

// Call of the command, sessionID is optional.
func (m TargetCloseTarget) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// TargetActivateTarget Activates (focuses) the target.
type TargetActivateTarget struct {
	// TargetID ...
	TargetID TargetTargetID `json:"targetId"`
}

// MethodName interface
func (m TargetActivateTarget) MethodName() string { return "Target.activateTarget" }

// Call of the command, sessionID is optional.
func (m TargetActivateTarget) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// TargetGetTargets Retrieves a list of available targets.
type TargetGetTargets struct {
}

// MethodName interface
func (m TargetGetTargets) MethodName() string { return "Target.getTargets" }

// Call of the command, sessionID is optional.
func (m TargetGetTargets) Call(c Caller) (res *TargetGetTargetsResult, err error) {
	res = &TargetGetTargetsResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// TargetGetTargetsResult Retrieves a list of available targets.
type TargetGetTargetsResult struct {
	// TargetInfos The list of targets.
	TargetInfos []*TargetTargetInfo `json:"targetInfos"`
}

// TargetTargetDestroyed Issued when a target is destroyed.
type TargetTargetDestroyed struct {
	// TargetID ...
	TargetID TargetTargetID `json:"targetId"`
}

// MethodName interface
func (evt TargetTargetDestroyed) MethodName() string { return "Target.targetDestroyed" }

// TargetDetachedFromTarget Issued when detached from target for any reason.
type TargetDetachedFromTarget struct {
	// SessionID Detached session identifier.
	SessionID TargetSessionID `json:"sessionId"`
}

// MethodName interface
func (evt TargetDetachedFromTarget) MethodName() string { return "Target.detachedFromTarget" }
