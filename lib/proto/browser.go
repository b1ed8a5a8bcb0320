package proto

// BrowserClose Close browser gracefully.
type BrowserClose struct {
}

// MethodName interface
func (m BrowserClose) MethodName() string { return "Browser.close" }

// Call of the command, sessionID is optional.
func (m BrowserClose) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// BrowserGetVersion Returns version information.
type BrowserGetVersion struct {
}

// MethodName interface
func (m BrowserGetVersion) MethodName() string { return "Browser.getVersion" }

// Call of the command, sessionID is optional.
func (m BrowserGetVersion) Call(c Caller) (res *BrowserGetVersionResult, err error) {
	res = &BrowserGetVersionResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// BrowserGetVersionResult Returns version information.
type BrowserGetVersionResult struct {
	// ProtocolVersion Protocol version.
	ProtocolVersion string `json:"protocolVersion"`

	// Product Product name.
	Product string `json:"product"`

	// Revision Product revision.
	Revision string `json:"revision"`

	// UserAgent User-Agent.
	UserAgent string `json:"userAgent"`

	// JsVersion V8 version.
	JsVersion string `json:"jsVersion"`
}
