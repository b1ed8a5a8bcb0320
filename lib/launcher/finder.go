package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ExecSearchMap lists the executables to look for on each platform, in order
var ExecSearchMap = map[string][]string{
	"darwin": {
		"google-chrome-stable",
		"chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Google Chrome Beta.app/Contents/MacOS/Google Chrome Beta",
		"/Applications/Google Chrome Dev.app/Contents/MacOS/Google Chrome Dev",
		"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
	},
	"linux": {
		"google-chrome-stable",
		"google-chrome-beta",
		"google-chrome-dev",
		"google-chrome-unstable",
		"google-chrome",
		"chromium",
		"chromium-browser",
		"microsoft-edge-stable",
		"microsoft-edge-beta",
		"microsoft-edge-dev",
		"microsoft-edge",
		"chrome",
		"/usr/bin/google-chrome",
		"/snap/bin/chromium",
	},
	"windows": append([]string{"chrome", "msedge"}, expandWindowsExePaths(
		`Google\Chrome\Application\chrome.exe`,
		`Chromium\Application\chrome.exe`,
		`Microsoft\Edge\Application\msedge.exe`,
	)...),
}

// LookPath returns the browser executable. The order is: the Bin of the launcher,
// the CHROME env, then the candidates of ExecSearchMap for the current platform.
func (l *Launcher) LookPath() (string, error) {
	if l.bin != "" {
		found, err := exec.LookPath(l.bin)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExecutableNotFound, err)
		}
		return found, nil
	}

	if p := os.Getenv("CHROME"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	for _, path := range ExecSearchMap[runtime.GOOS] {
		found, err := exec.LookPath(path)
		if err == nil {
			return found, nil
		}
	}

	return "", ErrExecutableNotFound
}

// LookPath is a shortcut of New().LookPath()
func LookPath() (string, error) {
	return New().LookPath()
}

func expandWindowsExePaths(list ...string) []string {
	newList := []string{}
	for _, p := range list {
		newList = append(
			newList,
			filepath.Join(os.Getenv("ProgramFiles"), p),
			filepath.Join(os.Getenv("ProgramFiles(x86)"), p),
			filepath.Join(os.Getenv("LocalAppData"), p),
		)
	}

	return newList
}
