package launcher

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/ysmood/kit"
)

var regPort = regexp.MustCompile(`^\:?(\d+)$`)
var regProtocol = regexp.MustCompile(`^\w+://`)

// ResolveURL by requesting the u, it will try best to normalize the u.
// The format of u can be "9222", ":9222", "host:9222", "ws://host:9222", "wss://host:9222",
// "https://host:9222" "http://host:9222". The return string will look like:
// "ws://host:9222/devtools/browser/4371405f-84df-4ad6-9e0f-eab81f7521cc"
func ResolveURL(ctx context.Context, u string) (string, error) {
	u = strings.TrimSpace(u)
	u = regPort.ReplaceAllString(u, "127.0.0.1:$1")

	if !regProtocol.MatchString(u) {
		u = "http://" + u
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}

	parsed = toHTTP(*parsed)
	parsed.Path = "/json/version"

	obj, err := kit.Req(parsed.String()).Context(ctx).JSON()
	if err != nil {
		return "", err
	}

	ws := obj.Get("webSocketDebuggerUrl").String()
	if ws == "" {
		return "", errors.New("no webSocketDebuggerUrl in the response of " + parsed.String())
	}
	return ws, nil
}

func toHTTP(u url.URL) *url.URL {
	newURL := u
	if newURL.Scheme == "ws" {
		newURL.Scheme = "http"
	} else if newURL.Scheme == "wss" {
		newURL.Scheme = "https"
	}
	return &newURL
}
