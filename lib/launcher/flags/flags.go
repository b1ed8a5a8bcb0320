// Package flags holds the names of the command line flags the launcher sets.
package flags

import "strings"

// Flag name of a command line argument of the browser, also known as command line flag or switch.
// List of available flags: https://peter.sh/experiments/chromium-command-line-switches
type Flag string

const (
	// UserDataDir https://chromium.googlesource.com/chromium/src/+/master/docs/user_data_dir.md
	UserDataDir Flag = "user-data-dir"

	// Headless mode. Whether to run browser in headless mode. A mode without visible UI.
	Headless Flag = "headless"

	// RemoteDebuggingPort flag. "0" makes the launcher pick a free port.
	RemoteDebuggingPort Flag = "remote-debugging-port"

	// NoSandbox flag.
	NoSandbox Flag = "no-sandbox"

	// WindowSize flag.
	WindowSize Flag = "window-size"

	// KeepUserDataDir flag, the user data dir won't be removed after the browser exits.
	KeepUserDataDir Flag = "htmlshot-keep-user-data-dir"

	// Arguments for the command. Such as
	//     chrome-bin http://a.com http://b.com
	// The "http://a.com" and "http://b.com" are the arguments.
	Arguments Flag = ""
)

// Check if the flag name is valid.
func (f Flag) Check() {
	if strings.Contains(string(f), "=") {
		panic("flag name should not contain '='")
	}
}

// NormalizeFlag normalize the flag name, remove the leading dash.
func (f Flag) NormalizeFlag() Flag {
	return Flag(strings.TrimLeft(string(f), "-"))
}

// Internal flags only configure the launcher, they are never passed to the browser.
func (f Flag) Internal() bool {
	return strings.HasPrefix(string(f), "htmlshot-")
}
