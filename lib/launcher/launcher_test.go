package launcher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/htmlshot/lib/cdptest"
	"github.com/go-rod/htmlshot/lib/launcher"
	"github.com/go-rod/htmlshot/lib/launcher/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(
		m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
	)
}

func TestFormatArgs(t *testing.T) {
	l := launcher.New().
		Set("a-flag", "1", "2").
		Set("--b-flag").
		Set(flags.Arguments, "about:blank", "http://a.com").
		UserDataDir("tmp/profile").
		KeepUserDataDir()

	args := l.FormatArgs()

	abs, err := filepath.Abs("tmp/profile")
	require.NoError(t, err)

	assert.Contains(t, args, "--a-flag=1,2")
	assert.Contains(t, args, "--b-flag")
	assert.Contains(t, args, "--user-data-dir="+abs)
	assert.Equal(t, []string{"about:blank", "http://a.com"}, args[len(args)-2:])

	for _, a := range args {
		assert.False(t, strings.Contains(a, "htmlshot-"), a)
	}

	// the flag itself keeps the relative path
	dir, _ := l.Get(flags.UserDataDir)
	assert.Equal(t, "tmp/profile", dir)

	assert.True(t, sort.StringsAreSorted(args[:len(args)-2]))
}

func TestFlags(t *testing.T) {
	l := launcher.New()

	assert.True(t, l.Has(flags.Headless))
	l.Headless(false)
	assert.False(t, l.Has(flags.Headless))
	l.Headless(true)
	assert.True(t, l.Has(flags.Headless))

	l.Append("disable-features", "A")
	list, has := l.GetFlags("disable-features")
	assert.True(t, has)
	assert.Equal(t, "A", list[len(list)-1])

	l.Append("new-flag", "x")
	v, _ := l.Get("new-flag")
	assert.Equal(t, "x", v)

	l.Delete("--new-flag")
	assert.False(t, l.Has("new-flag"))

	l.RemoteDebuggingPort(9333)
	v, _ = l.Get(flags.RemoteDebuggingPort)
	assert.Equal(t, "9333", v)

	l.UserDataDir("")
	assert.False(t, l.Has(flags.UserDataDir))
	assert.Equal(t, "", l.UserDataDirPath())

	assert.Panics(t, func() { l.Set("a=b") })
}

func TestLookPathEnv(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(bin, nil, 0755))

	old, had := os.LookupEnv("CHROME")
	require.NoError(t, os.Setenv("CHROME", bin))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv("CHROME", old)
		} else {
			_ = os.Unsetenv("CHROME")
		}
	})

	p, err := launcher.New().Bin("").LookPath()
	require.NoError(t, err)
	assert.Equal(t, bin, p)
}

func TestLookPathBin(t *testing.T) {
	_, err := launcher.New().Bin(filepath.Join(t.TempDir(), "not-exists")).LookPath()
	assert.True(t, errors.Is(err, launcher.ErrExecutableNotFound))
}

func TestResolveURL(t *testing.T) {
	b := cdptest.New()
	defer b.Close()

	port := b.URL()[strings.LastIndex(b.URL(), ":")+1:]
	ctx := context.Background()

	for _, u := range []string{
		port,
		":" + port,
		"127.0.0.1:" + port,
		"http://127.0.0.1:" + port,
		"ws://127.0.0.1:" + port,
		" ws://127.0.0.1:" + port + "/devtools/browser/x ",
	} {
		ws, err := launcher.ResolveURL(ctx, u)
		require.NoError(t, err, u)
		assert.Equal(t, b.WebSocketURL(), ws, u)
	}
}

func TestResolveURLErr(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := launcher.ResolveURL(ctx, "http://127.0.0.1:1")
	assert.Error(t, err)
}

func TestCleanup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Default"), 0700))

	l := launcher.New().UserDataDir(dir).KeepUserDataDir()
	require.NoError(t, l.Cleanup())
	assert.DirExists(t, dir)

	l.Delete(flags.KeepUserDataDir)
	require.NoError(t, l.Cleanup())
	assert.NoDirExists(t, dir)
}

func TestLaunchNoBin(t *testing.T) {
	l := launcher.New().Bin(filepath.Join(t.TempDir(), "not-exists")).Reap(false)

	_, err := l.Launch()
	assert.True(t, errors.Is(err, launcher.ErrExecutableNotFound))

	_, err = l.Launch()
	assert.Equal(t, launcher.ErrAlreadyLaunched, err)
}

func script(t *testing.T, body string) string {
	if runtime.GOOS == "windows" {
		t.Skip("shell script")
	}

	bin := filepath.Join(t.TempDir(), "fake-browser")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return bin
}

func TestLaunchExited(t *testing.T) {
	bin := script(t, "echo boom\nexit 3")
	dir := filepath.Join(t.TempDir(), "profile")

	lines := []string{}
	l := launcher.New().
		Bin(bin).
		Leakless(false).
		Reap(false).
		UserDataDir(dir).
		Logger(logFunc(func(msg ...interface{}) {
			lines = append(lines, msg[0].(string))
		}))

	_, err := l.Launch()

	var exitErr *launcher.ProcessExitedError
	require.True(t, errors.As(err, &exitErr), "%v", err)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "boom", exitErr.Output)
	assert.Equal(t, []string{"boom"}, lines)
	assert.Equal(t, 3, l.ExitCode())
	assert.NoDirExists(t, dir)
}

func TestLaunchTimeout(t *testing.T) {
	bin := script(t, "exec sleep 30")

	l := launcher.New().
		Bin(bin).
		Leakless(false).
		Reap(false).
		UserDataDir(filepath.Join(t.TempDir(), "profile")).
		StartTimeout(300 * time.Millisecond)

	start := time.Now()
	_, err := l.Launch()
	assert.True(t, errors.Is(err, launcher.ErrLaunchTimeout), "%v", err)
	assert.Less(t, int64(time.Since(start)), int64(10*time.Second))
	assert.True(t, l.Wait(3*time.Second))
}

func TestLaunchCanceled(t *testing.T) {
	bin := script(t, "exec sleep 30")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	l := launcher.New().
		Context(ctx).
		Bin(bin).
		Leakless(false).
		Reap(false).
		UserDataDir(filepath.Join(t.TempDir(), "profile"))

	_, err := l.Launch()
	assert.True(t, errors.Is(err, context.Canceled), "%v", err)
	assert.True(t, l.Wait(3*time.Second))
}

func TestLaunchChrome(t *testing.T) {
	if _, err := launcher.LookPath(); err != nil {
		t.Skip("no browser found")
	}

	l := launcher.New().Leakless(false)
	u, err := l.Launch()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "ws://127.0.0.1:"), u)
	assert.NotZero(t, l.PID())

	dir := l.UserDataDirPath()
	assert.DirExists(t, dir)

	l.Kill()
	assert.True(t, l.Wait(10*time.Second))
	require.NoError(t, l.Cleanup())
	assert.NoDirExists(t, dir)
}

type logFunc func(msg ...interface{})

func (f logFunc) Println(msg ...interface{}) { f(msg...) }
