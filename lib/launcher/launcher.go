// Package launcher owns the browser process: it finds the executable, builds the flags,
// starts the process in its own group, waits for the debugging endpoint and removes the
// temporary profile after the process is gone.
package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/htmlshot/lib/defaults"
	"github.com/go-rod/htmlshot/lib/launcher/flags"
	"github.com/go-rod/htmlshot/lib/utils"
	"github.com/ysmood/kit"
	"github.com/ysmood/leakless"
	"go.uber.org/zap"
)

// Launcher is a helper to launch browser binary smartly
type Launcher struct {
	Flags map[flags.Flag][]string `json:"flags"`

	ctx          context.Context
	bin          string
	leakless     bool
	reap         bool
	startTimeout time.Duration
	logger       utils.Logger
	log          *zap.Logger

	launched int32
	pid      int
	cmd      *exec.Cmd
	output   *tail
	exit     chan struct{}
	exitCode int
}

// New returns the default arguments to start browser.
// "--" is optional, with or without it won't affect the result.
// List of switches: https://peter.sh/experiments/chromium-command-line-switches/
func New() *Launcher {
	dir := defaults.Dir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "htmlshot", kit.RandString(8))
	}

	defaultFlags := map[flags.Flag][]string{
		flags.UserDataDir: {dir},

		// "0" means a free port is picked before launch
		flags.RemoteDebuggingPort: {defaults.Port},

		// enable headless by default
		flags.Headless: nil,

		// to prevent welcome page
		flags.Arguments: {"about:blank"},

		"disable-background-networking":                      nil,
		"disable-background-timer-throttling":                nil,
		"disable-backgrounding-occluded-windows":             nil,
		"disable-breakpad":                                   nil,
		"disable-client-side-phishing-detection":             nil,
		"disable-component-extensions-with-background-pages": nil,
		"disable-component-update":                           nil,
		"disable-default-apps":                               nil,
		"disable-dev-shm-usage":                              nil,
		"disable-domain-reliability":                         nil,
		"disable-extensions":                                 nil,
		"disable-features":                                   {"Translate", "OptimizationHints", "MediaRouter"},
		"disable-gpu":                                        nil,
		"disable-hang-monitor":                               nil,
		"disable-ipc-flooding-protection":                    nil,
		"disable-notifications":                              nil,
		"disable-popup-blocking":                             nil,
		"disable-prompt-on-repost":                           nil,
		"disable-renderer-backgrounding":                     nil,
		"disable-sync":                                       nil,
		"enable-automation":                                  nil,
		"force-color-profile":                                {"srgb"},
		"hide-scrollbars":                                    nil,
		"metrics-recording-only":                             nil,
		"mute-audio":                                         nil,
		"no-default-browser-check":                           nil,
		"no-first-run":                                       nil,
		"no-pings":                                           nil,
		"use-mock-keychain":                                  nil,
	}

	if defaults.Show {
		delete(defaultFlags, flags.Headless)
	}

	if inContainer() {
		defaultFlags[flags.NoSandbox] = nil
	}

	return &Launcher{
		Flags:        defaultFlags,
		ctx:          context.Background(),
		bin:          defaults.Bin,
		leakless:     true,
		reap:         true,
		startTimeout: defaults.StartTimeout,
		logger:       utils.LoggerQuiet,
		log:          zap.L().Named("launcher"),
		exit:         make(chan struct{}),
	}
}

// Context set the context of the launch, it bounds the wait for the debugging endpoint
func (l *Launcher) Context(ctx context.Context) *Launcher {
	l.ctx = ctx
	return l
}

// Get flag's first value
func (l *Launcher) Get(name flags.Flag) (string, bool) {
	list, has := l.GetFlags(name)

	if has {
		if len(list) == 0 {
			return "", true
		}
		return list[0], true
	}
	return "", false
}

// Has flag or not
func (l *Launcher) Has(name flags.Flag) bool {
	_, has := l.GetFlags(name)
	return has
}

// GetFlags from settings
func (l *Launcher) GetFlags(name flags.Flag) ([]string, bool) {
	flag, has := l.Flags[name.NormalizeFlag()]
	return flag, has
}

// Set flag
func (l *Launcher) Set(name flags.Flag, values ...string) *Launcher {
	name.Check()
	l.Flags[name.NormalizeFlag()] = values
	return l
}

// Append values to the flag
func (l *Launcher) Append(name flags.Flag, values ...string) *Launcher {
	flags, has := l.GetFlags(name)
	if !has {
		flags = []string{}
	}
	return l.Set(name, append(flags, values...)...)
}

// Delete flag
func (l *Launcher) Delete(name flags.Flag) *Launcher {
	delete(l.Flags, name.NormalizeFlag())
	return l
}

// Bin set browser executable file path
func (l *Launcher) Bin(path string) *Launcher {
	l.bin = path
	return l
}

// Headless switch
func (l *Launcher) Headless(enable bool) *Launcher {
	if enable {
		return l.Set(flags.Headless)
	}
	return l.Delete(flags.Headless)
}

// UserDataDir is where the browser will look for all of its state, such as cookie and cache.
// When set to empty, system user's default dir will be used.
func (l *Launcher) UserDataDir(dir string) *Launcher {
	if dir == "" {
		return l.Delete(flags.UserDataDir)
	}
	return l.Set(flags.UserDataDir, dir)
}

// RemoteDebuggingPort arg, 0 picks a free port on launch
func (l *Launcher) RemoteDebuggingPort(port int) *Launcher {
	return l.Set(flags.RemoteDebuggingPort, strconv.FormatInt(int64(port), 10))
}

// KeepUserDataDir after browser is closed. By default user-data-dir will be removed.
func (l *Launcher) KeepUserDataDir() *Launcher {
	return l.Set(flags.KeepUserDataDir)
}

// Leakless switch. When enabled and the platform supports it, a guard process kills the
// browser if this process crashes.
func (l *Launcher) Leakless(enable bool) *Launcher {
	l.leakless = enable
	return l
}

// Reap enable/disable a guard to cleanup zombie processes, it only runs when this process is PID 1
func (l *Launcher) Reap(enable bool) *Launcher {
	l.reap = enable
	return l
}

// StartTimeout is how long to wait for the debugging endpoint
func (l *Launcher) StartTimeout(d time.Duration) *Launcher {
	l.startTimeout = d
	return l
}

// Logger to handle stdout and stderr from browser, each line is a Println
func (l *Launcher) Logger(logger utils.Logger) *Launcher {
	l.logger = logger
	return l
}

// Zap sets the logger for lifecycle messages
func (l *Launcher) Zap(log *zap.Logger) *Launcher {
	l.log = log
	return l
}

// FormatArgs returns the formatted arg list for cli, the flags are sorted
func (l *Launcher) FormatArgs() []string {
	names := make([]string, 0, len(l.Flags))
	for k := range l.Flags {
		if k == flags.Arguments || k.Internal() {
			continue
		}
		names = append(names, string(k))
	}
	sort.Strings(names)

	execArgs := []string{}
	for _, k := range names {
		v := l.Flags[flags.Flag(k)]

		// fix a bug of chrome, if path is not absolute chrome will hang
		if flags.Flag(k) == flags.UserDataDir && len(v) > 0 {
			abs, err := filepath.Abs(v[0])
			if err == nil {
				v = append([]string{abs}, v[1:]...)
			}
		}

		str := "--" + k
		if v != nil {
			str += "=" + strings.Join(v, ",")
		}
		execArgs = append(execArgs, str)
	}
	return append(execArgs, l.Flags[flags.Arguments]...)
}

// MustLaunch is similar to Launch
func (l *Launcher) MustLaunch() string {
	u, err := l.Launch()
	utils.E(err)
	return u
}

// Launch a standalone temp browser instance and returns the websocket debugger url.
// On failure the process is killed and the user data dir is removed.
func (l *Launcher) Launch() (wsURL string, err error) {
	if !atomic.CompareAndSwapInt32(&l.launched, 0, 1) {
		return "", ErrAlreadyLaunched
	}

	if l.reap {
		runReaper()
	}

	bin, err := l.LookPath()
	if err != nil {
		close(l.exit)
		return "", err
	}

	port, _ := l.Get(flags.RemoteDebuggingPort)
	if port == "" || port == "0" {
		free, err := freePort()
		if err != nil {
			close(l.exit)
			return "", err
		}
		port = strconv.Itoa(free)
		l.Set(flags.RemoteDebuggingPort, port)
	}

	if dir, has := l.Get(flags.UserDataDir); has && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			close(l.exit)
			return "", err
		}
	}

	var ll *leakless.Launcher
	var cmd *exec.Cmd

	if l.leakless && leakless.Support() {
		ll = leakless.New()
		cmd = ll.Command(bin, l.FormatArgs()...)
	} else {
		cmd = exec.Command(bin, l.FormatArgs()...)
	}
	osSetupCmd(cmd)

	l.output = newTail(4 * 1024)
	w := io.MultiWriter(l.output, newLineWriter(l.logger))
	cmd.Stdout = w
	cmd.Stderr = w

	l.log.Debug("launch", zap.String("bin", bin), zap.Strings("args", cmd.Args))

	if err := cmd.Start(); err != nil {
		close(l.exit)
		_ = l.Cleanup()
		return "", err
	}
	l.cmd = cmd
	l.pid = cmd.Process.Pid

	go func() {
		_ = cmd.Wait()
		l.exitCode = cmd.ProcessState.ExitCode()
		close(l.exit)
	}()

	if ll != nil {
		select {
		case <-l.exit:
		case pid := <-ll.Pid():
			l.pid = pid
			if ll.Err() != "" {
				l.abort()
				return "", errors.New(ll.Err())
			}
		}
	}

	u, err := l.waitURL(port)
	if err != nil {
		l.abort()
		return "", err
	}

	return u, nil
}

func (l *Launcher) waitURL(port string) (string, error) {
	ctx, cancel := context.WithTimeout(l.ctx, l.startTimeout)
	defer cancel()

	u := ""
	err := utils.Retry(ctx, utils.IntervalSleeper(defaults.Poll), func() (bool, error) {
		select {
		case <-l.exit:
			return true, &ProcessExitedError{Code: l.exitCode, Output: l.output.String()}
		default:
		}

		ws, err := ResolveURL(ctx, "127.0.0.1:"+port)
		if err == nil {
			u = ws
			return true, nil
		}
		return false, nil
	})

	if errors.Is(err, context.DeadlineExceeded) && l.ctx.Err() == nil {
		return "", fmt.Errorf("%w after %v: %s", ErrLaunchTimeout, l.startTimeout, l.output.String())
	}
	return u, err
}

// abort a failed launch
func (l *Launcher) abort() {
	l.Kill()
	l.Wait(3 * time.Second)
	_ = l.Cleanup()
}

// PID returns the browser process pid
func (l *Launcher) PID() int {
	return l.pid
}

// Exited is closed after the browser process exits
func (l *Launcher) Exited() <-chan struct{} {
	return l.exit
}

// ExitCode of the browser process, only valid after Exited is closed
func (l *Launcher) ExitCode() int {
	<-l.exit
	return l.exitCode
}

// Wait for the browser process to exit, returns false on timeout
func (l *Launcher) Wait(timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-l.exit:
		return true
	case <-t.C:
		return false
	}
}

// Kill the browser process group. It's safe to call it at any time.
func (l *Launcher) Kill() {
	if l.cmd == nil {
		return
	}

	select {
	case <-l.exit:
		return
	default:
	}

	killGroup(l.pid)
	if l.pid != l.cmd.Process.Pid {
		killGroup(l.cmd.Process.Pid)
	}
	_ = l.cmd.Process.Kill()
}

// UserDataDirPath returns the absolute path of the user data dir, empty if it's not set
func (l *Launcher) UserDataDirPath() string {
	dir, _ := l.Get(flags.UserDataDir)
	if dir == "" {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// Cleanup removes the user data dir unless KeepUserDataDir is set.
// The failure is logged and returned for inspection, it should never block a shutdown.
func (l *Launcher) Cleanup() error {
	if l.Has(flags.KeepUserDataDir) {
		return nil
	}

	dir := l.UserDataDirPath()
	if dir == "" {
		return nil
	}

	l.log.Debug("remove user data dir", zap.String("dir", dir))

	// the browser may still be flushing files for a moment after it exits
	var err error
	for i := 0; i < 3; i++ {
		if err = os.RemoveAll(dir); err == nil {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	cErr := &CleanupError{Dir: dir, Err: err}
	l.log.Warn("cleanup failed", zap.Error(cErr))
	return cErr
}

func freePort() (int, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = ln.Close() }()
	return ln.Addr().(*net.TCPAddr).Port, nil
}

func inContainer() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

// tail keeps the last bytes written to it
type tail struct {
	mu   sync.Mutex
	size int
	buf  []byte
}

func newTail(size int) *tail {
	return &tail{size: size}
}

func (t *tail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if len(t.buf) > t.size {
		t.buf = t.buf[len(t.buf)-t.size:]
	}
	return len(p), nil
}

func (t *tail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.TrimSpace(string(t.buf))
}

// lineWriter forwards each complete line of the browser output to a logger
type lineWriter struct {
	mu     sync.Mutex
	logger utils.Logger
	buf    []byte
}

func newLineWriter(logger utils.Logger) io.Writer {
	return &lineWriter{logger: logger}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logger.Println(strings.TrimRight(string(w.buf[:i]), "\r"))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
