package proto

// EmulationScreenOrientationType enum
type EmulationScreenOrientationType string

const (
	// EmulationScreenOrientationTypePortraitPrimary enum const
	EmulationScreenOrientationTypePortraitPrimary EmulationScreenOrientationType = "portraitPrimary"

	// EmulationScreenOrientationTypeLandscapePrimary enum const
	EmulationScreenOrientationTypeLandscapePrimary EmulationScreenOrientationType = "landscapePrimary"
)

// EmulationScreenOrientation Screen orientation.
type EmulationScreenOrientation struct {
	// Type Orientation type.
	Type EmulationScreenOrientationType `json:"type"`

	// Angle Orientation angle.
	Angle int `json:"angle"`
}

// EmulationSetDeviceMetricsOverride Overrides the values of device screen dimensions (window.screen.width, window.screen.height,
// window.innerWidth, window.innerHeight, and "device-width"/"device-height"-related CSS media
// query results).
type EmulationSetDeviceMetricsOverride struct {
	// Width Overriding width value in pixels (minimum 0, maximum 10000000). 0 disables the override.
	Width int `json:"width"`

	// Height Overriding height value in pixels (minimum 0, maximum 10000000). 0 disables the override.
	Height int `json:"height"`

	// DeviceScaleFactor Overriding device scale factor value. 0 disables the override.
	DeviceScaleFactor float64 `json:"deviceScaleFactor"`

	// Mobile Whether to emulate mobile device.
	Mobile bool `json:"mobile"`

	// ScreenOrientation (optional) Screen orientation override.
	ScreenOrientation *EmulationScreenOrientation `json:"screenOrientation,omitempty"`
}

// MethodName interface
func (m EmulationSetDeviceMetricsOverride) MethodName() string {
	return "Emulation.setDeviceMetricsOverride"
}

// Call of the command, sessionID is optional.
func (m EmulationSetDeviceMetricsOverride) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// EmulationClearDeviceMetricsOverride Clears the overridden device metrics.
type EmulationClearDeviceMetricsOverride struct {
}

// MethodName interface
func (m EmulationClearDeviceMetricsOverride) MethodName() string {
	return "Emulation.clearDeviceMetricsOverride"
}

// Call of the command, sessionID is optional.
func (m EmulationClearDeviceMetricsOverride) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// EmulationSetTouchEmulationEnabled Enables touch on platforms which do not support them.
type EmulationSetTouchEmulationEnabled struct {
	// Enabled Whether the touch event emulation should be enabled.
	Enabled bool `json:"enabled"`

	// MaxTouchPoints (optional) Maximum touch points supported. Defaults to one.
	MaxTouchPoints int `json:"maxTouchPoints,omitempty"`
}

// MethodName interface
func (m EmulationSetTouchEmulationEnabled) MethodName() string {
	return "Emulation.setTouchEmulationEnabled"
}

// Call of the command, sessionID is optional.
func (m EmulationSetTouchEmulationEnabled) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// EmulationSetDefaultBackgroundColorOverride Sets or clears an override of the default background color of the frame. This override is used
// if the content does not specify one.
type EmulationSetDefaultBackgroundColorOverride struct {
	// Color (optional) RGBA of the default background color. If not specified, any existing override will be
	// cleared.
	Color *DOMRGBA `json:"color,omitempty"`
}

// MethodName interface
func (m EmulationSetDefaultBackgroundColorOverride) MethodName() string {
	return "Emulation.setDefaultBackgroundColorOverride"
}

// Call of the command, sessionID is optional.
func (m EmulationSetDefaultBackgroundColorOverride) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}
