// Package cdptest serves a scripted devtools endpoint, so code that talks to a browser can
// be tested without one. Each method is answered by a Handler, events can be pushed at any time.
package cdptest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-rod/htmlshot/lib/cdp"
	"github.com/go-rod/htmlshot/lib/utils"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrNoReply makes the Browser swallow the request, the caller will wait until its timeout.
var ErrNoReply = errors.New("cdptest: no reply")

// Request received by the Browser
type Request struct {
	ID        int
	SessionID string
	Method    string
	Params    gjson.Result
}

// Handler answers a request. A *cdp.Error is sent back as it is, other errors are sent
// as a generic server error. A string result is sent as raw json.
type Handler func(req *Request) (interface{}, error)

// Browser is a fake devtools endpoint
type Browser struct {
	ID string

	server   *httptest.Server
	upgrader websocket.Upgrader

	mu       sync.Mutex
	handlers map[string]Handler
	conns    map[*conn]struct{}
	calls    []*Request

	wg sync.WaitGroup
}

type conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *conn) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// New starts a Browser on a random local port
func New() *Browser {
	gin.SetMode(gin.TestMode)

	b := &Browser{
		ID:       utils.RandString(8),
		handlers: map[string]Handler{},
		conns:    map[*conn]struct{}{},
	}

	r := gin.New()
	r.GET("/json/version", b.version)
	r.GET("/devtools/browser/:id", b.upgrade)

	b.server = httptest.NewServer(r)

	return b
}

// URL of the http endpoint, such as http://127.0.0.1:9222
func (b *Browser) URL() string {
	return b.server.URL
}

// WebSocketURL to connect to
func (b *Browser) WebSocketURL() string {
	return "ws" + strings.TrimPrefix(b.server.URL, "http") + "/devtools/browser/" + b.ID
}

// Handle sets the handler of the method
func (b *Browser) Handle(method string, h Handler) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[method] = h
	return b
}

// HandleResult answers the method with a fixed result
func (b *Browser) HandleResult(method string, result interface{}) *Browser {
	return b.Handle(method, func(*Request) (interface{}, error) {
		return result, nil
	})
}

// Calls returns the requests of the method in the order they were received,
// an empty method returns all of them.
func (b *Browser) Calls(method string) []*Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := []*Request{}
	for _, req := range b.calls {
		if method == "" || req.Method == method {
			list = append(list, req)
		}
	}
	return list
}

// Push an event to every connected client
func (b *Browser) Push(sessionID, method string, params interface{}) {
	data := event(sessionID, method, params)

	for _, c := range b.connList() {
		_ = c.write(data)
	}
}

// PushRaw sends data as it is to every connected client
func (b *Browser) PushRaw(data []byte) {
	for _, c := range b.connList() {
		_ = c.write(data)
	}
}

// Disconnect drops every websocket connection, like a crashed browser
func (b *Browser) Disconnect() {
	for _, c := range b.connList() {
		_ = c.ws.Close()
	}
}

// Connections count
func (b *Browser) Connections() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

// Close the Browser and wait for all handlers to return
func (b *Browser) Close() {
	b.Disconnect()
	b.server.Close()
	b.wg.Wait()
}

func (b *Browser) connList() []*conn {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := make([]*conn, 0, len(b.conns))
	for c := range b.conns {
		list = append(list, c)
	}
	return list
}

func (b *Browser) version(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"Browser":              "HeadlessChrome/120.0.0.0",
		"Protocol-Version":     "1.3",
		"webSocketDebuggerUrl": "ws://" + ctx.Request.Host + "/devtools/browser/" + b.ID,
	})
}

func (b *Browser) upgrade(ctx *gin.Context) {
	if ctx.Param("id") != b.ID {
		ctx.String(http.StatusNotFound, "no such browser")
		return
	}

	ws, err := b.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		return
	}

	c := &conn{ws: ws}

	b.mu.Lock()
	b.conns[c] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.conns, c)
		b.mu.Unlock()
		_ = ws.Close()
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}

		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.serve(c, data)
		}()
	}
}

func (b *Browser) serve(c *conn, data []byte) {
	obj := gjson.ParseBytes(data)
	req := &Request{
		ID:        int(obj.Get("id").Int()),
		SessionID: obj.Get("sessionId").String(),
		Method:    obj.Get("method").String(),
		Params:    obj.Get("params"),
	}

	b.mu.Lock()
	b.calls = append(b.calls, req)
	h := b.handlers[req.Method]
	b.mu.Unlock()

	var res interface{}
	var err error
	if h == nil {
		err = &cdp.Error{Code: -32601, Message: fmt.Sprintf("'%s' wasn't found", req.Method)}
	} else {
		res, err = h(req)
	}

	if errors.Is(err, ErrNoReply) {
		return
	}

	_ = c.write(reply(req.ID, res, err))
}

func reply(id int, res interface{}, err error) []byte {
	data, _ := sjson.SetBytes([]byte(`{}`), "id", id)

	if err != nil {
		var e *cdp.Error
		if !errors.As(err, &e) {
			e = &cdp.Error{Code: -32000, Message: err.Error()}
		}
		data, _ = sjson.SetRawBytes(data, "error", utils.MustToJSONBytes(e))
		return data
	}

	data, _ = sjson.SetRawBytes(data, "result", raw(res))
	return data
}

func event(sessionID, method string, params interface{}) []byte {
	data, _ := sjson.SetBytes([]byte(`{}`), "method", method)
	if sessionID != "" {
		data, _ = sjson.SetBytes(data, "sessionId", sessionID)
	}
	data, _ = sjson.SetRawBytes(data, "params", raw(params))
	return data
}

func raw(v interface{}) []byte {
	switch v := v.(type) {
	case nil:
		return []byte(`{}`)
	case json.RawMessage:
		return v
	case string:
		return []byte(v)
	}
	return utils.MustToJSONBytes(v)
}
