// Package defaults holds the commonly used options parsed from the environment.
// Set them will set the default value of options used by htmlshot.
//
// Discrete variables are read first, with the HTMLSHOT_ prefix:
//
//    HTMLSHOT_BIN=/usr/bin/chromium HTMLSHOT_TIMEOUT=10s
//
// Then the compact "htmlshot" variable overrides them. Each value is separated by a ",",
// key and value are separated by "=", for example:
//
//    htmlshot=show,cdp,bin=/usr/bin/chromium,port=9222,timeout=10s,poll=50ms
//
package defaults

import (
	"os"
	"strings"
	"time"

	"github.com/go-rod/htmlshot/lib/utils"
	"github.com/kelseyhightower/envconfig"
)

// Show disables headless mode
var Show bool

// Bin is the default of launcher.Launcher.Bin
var Bin string

// Dir is the default of launcher.Launcher.UserDataDir
var Dir string

// Port is the default of launcher.Launcher.RemoteDebuggingPort, "0" means a free port is picked
var Port string

// CDP enables the log of every frame sent or received by cdp.Client
var CDP bool

// Timeout is the default timeout of a single cdp call
var Timeout time.Duration

// StartTimeout is how long the launcher waits for the debugging endpoint
var StartTimeout time.Duration

// Poll is the interval to poll a page condition, such as a selector
var Poll time.Duration

// WaitTimeout is the default timeout to wait for a selector or a page load
var WaitTimeout time.Duration

// CloseGrace is how long a graceful browser close is given before the process is killed
var CloseGrace time.Duration

// env mirrors the discrete variables, names are upper-cased with the HTMLSHOT_ prefix.
type env struct {
	Show         bool
	Bin          string
	Dir          string
	Port         string        `default:"0"`
	CDP          bool
	Timeout      time.Duration `default:"30s"`
	StartTimeout time.Duration `default:"20s" split_words:"true"`
	Poll         time.Duration `default:"100ms"`
	WaitTimeout  time.Duration `default:"30s" split_words:"true"`
	CloseGrace   time.Duration `default:"3s" split_words:"true"`
}

// Parse the flags
func init() {
	ResetWithEnv()
}

// Reset all flags to their init values.
func Reset() {
	Show = false
	Bin = ""
	Dir = ""
	Port = "0"
	CDP = false
	Timeout = 30 * time.Second
	StartTimeout = 20 * time.Second
	Poll = 100 * time.Millisecond
	WaitTimeout = 30 * time.Second
	CloseGrace = 3 * time.Second
}

// ResetWithEnv all flags by the value of the environment.
func ResetWithEnv() {
	Reset()

	var e env
	utils.E(envconfig.Process("htmlshot", &e))
	apply(e)

	if Bin == "" {
		Bin = os.Getenv("CHROME")
	}

	parse(os.Getenv("htmlshot"))
}

func apply(e env) {
	Show = e.Show
	Bin = e.Bin
	Dir = e.Dir
	Port = e.Port
	CDP = e.CDP
	Timeout = e.Timeout
	StartTimeout = e.StartTimeout
	Poll = e.Poll
	WaitTimeout = e.WaitTimeout
	CloseGrace = e.CloseGrace
}

// parse options and set them globally
func parse(options string) {
	if options == "" {
		return
	}

	for _, f := range strings.Split(options, ",") {
		kv := strings.SplitN(f, "=", 2)
		rule, has := rules[kv[0]]
		if !has {
			panic("no such htmlshot option: " + kv[0])
		}
		if len(kv) == 2 {
			rule(kv[1])
		} else {
			rule("")
		}
	}
}

func duration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	utils.E(err)
	return d
}

var rules = map[string]func(string){
	"show": func(string) {
		Show = true
	},
	"bin": func(v string) {
		Bin = v
	},
	"dir": func(v string) {
		Dir = v
	},
	"port": func(v string) {
		Port = v
	},
	"cdp": func(string) {
		CDP = true
	},
	"timeout": func(v string) {
		Timeout = duration(v)
	},
	"start-timeout": func(v string) {
		StartTimeout = duration(v)
	},
	"poll": func(v string) {
		Poll = duration(v)
	},
	"wait-timeout": func(v string) {
		WaitTimeout = duration(v)
	},
	"close-grace": func(v string) {
		CloseGrace = duration(v)
	},
}
