// Package cdp for application layer communication with browser.
package cdp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/htmlshot/lib/defaults"
	"github.com/go-rod/htmlshot/lib/utils"
	"go.uber.org/zap"
)

// Client is a devtools protocol connection instance.
// One websocket is shared by the browser target and every attached session.
type Client struct {
	wsURL   string
	header  http.Header
	ws      WebSocketable
	timeout time.Duration

	muSend sync.Mutex

	pending *pendingRequests // slots waiting for the reply of the browser
	subs    *subscriptions

	count uint64

	mu         sync.Mutex
	state      connState
	dialCancel func()

	closeOnce    sync.Once
	shutdownOnce sync.Once
	done         chan struct{}

	logger utils.Logger
	log    *zap.Logger
}

type connState int

const (
	stateIdle connState = iota
	stateConnecting
	stateConnected
	stateClosed
)

// New creates a cdp connection
func New(websocketURL string) *Client {
	log := zap.L().Named("cdp")
	return &Client{
		wsURL:   websocketURL,
		timeout: defaults.Timeout,
		pending: newPendingRequests(),
		subs:    newSubscriptions(log),
		done:    make(chan struct{}),
		logger:  defaultTrace(),
		log:     log,
	}
}

func defaultTrace() utils.Logger {
	if !defaults.CDP {
		return utils.LoggerQuiet
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return utils.LoggerQuiet
	}
	return utils.Zap(l.Named("cdp"))
}

// Header set the header of the remote control websocket request
func (cdp *Client) Header(header http.Header) *Client {
	cdp.header = header
	return cdp
}

// Websocket set the websocket lib to use
func (cdp *Client) Websocket(ws WebSocketable) *Client {
	cdp.ws = ws
	return cdp
}

// Logger sets the logger to trace all the requests, responses, and events transferred
// between the client and the browser.
func (cdp *Client) Logger(l utils.Logger) *Client {
	cdp.logger = l
	return cdp
}

// Zap sets the logger for warnings such as dropped frames
func (cdp *Client) Zap(l *zap.Logger) *Client {
	cdp.log = l
	cdp.subs.logger = l
	return cdp
}

// Timeout sets the default timeout of each call, 0 means no timeout other than the ctx of the call.
func (cdp *Client) Timeout(d time.Duration) *Client {
	cdp.timeout = d
	return cdp
}

// Connect to browser and start the read pump. A Close during the dial cancels it.
func (cdp *Client) Connect(ctx context.Context) error {
	select {
	case <-cdp.done:
		return ErrConnClosed
	default:
	}

	cdp.mu.Lock()
	if cdp.state == stateClosed {
		cdp.mu.Unlock()
		return ErrConnClosed
	}
	if cdp.state != stateIdle {
		cdp.mu.Unlock()
		return errors.New("cdp: client already connected")
	}
	if cdp.ws == nil {
		cdp.ws = &WebSocket{}
	}
	ctx, cancel := context.WithCancel(ctx)
	cdp.state = stateConnecting
	cdp.dialCancel = cancel
	ws := cdp.ws
	cdp.mu.Unlock()

	err := ws.Connect(ctx, cdp.wsURL, cdp.header)
	cancel()

	cdp.mu.Lock()
	defer cdp.mu.Unlock()
	cdp.dialCancel = nil

	if cdp.state == stateClosed {
		if err == nil {
			err = ErrConnClosed
		}
		cdp.shutdown(err)
		return &ConnectError{URL: cdp.wsURL, Err: err}
	}

	if err != nil {
		cdp.state = stateClosed
		cdp.shutdown(err)
		return &ConnectError{URL: cdp.wsURL, Err: err}
	}

	cdp.state = stateConnected
	go cdp.readPump()

	return nil
}

// MustConnect is similar to Connect
func (cdp *Client) MustConnect(ctx context.Context) *Client {
	utils.E(cdp.Connect(ctx))
	return cdp
}

// Call a method and get its response, if ctx is nil context.Background() will be used.
// It waits until the reply arrives, the ctx is done, the default timeout expires, or the
// connection is closed.
func (cdp *Client) Call(ctx context.Context, sessionID, method string, params interface{}) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !cdp.connected() {
		return nil, connClosed(errors.New("not connected"))
	}

	if raw, ok := params.(json.RawMessage); ok && len(raw) == 0 {
		params = nil
	}

	req := &Request{
		ID:        int(atomic.AddUint64(&cdp.count, 1)),
		SessionID: sessionID,
		Method:    method,
		Params:    params,
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	pending := newPendingRequest()
	if err := cdp.pending.add(req.ID, pending); err != nil {
		return nil, err
	}

	cdp.logger.Println(req)

	if err := cdp.send(data); err != nil {
		cdp.pending.delete(req.ID)
		return nil, connClosed(err)
	}

	var expire <-chan time.Time
	if cdp.timeout > 0 {
		t := time.NewTimer(cdp.timeout)
		defer t.Stop()
		expire = t.C
	}

	select {
	case r := <-pending.result:
		if r.err != nil {
			return nil, r.err
		}
		if r.response.Error != nil {
			return nil, r.response.Error
		}
		return r.response.Result, nil

	case <-expire:
		cdp.pending.delete(req.ID)
		return nil, &timeoutError{method, fmt.Errorf("no reply within %v", cdp.timeout)}

	case <-ctx.Done():
		cdp.pending.delete(req.ID)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &timeoutError{method, ctx.Err()}
		}
		return nil, ctx.Err()
	}
}

// Subscribe to the events of a session, an empty sessionID is the browser target.
// An empty method subscribes to every method of the session.
func (cdp *Client) Subscribe(sessionID, method string) *Subscription {
	return cdp.subs.add(sessionID, method)
}

// Done is closed after the read pump exits, all calls after it fail with ErrConnClosed.
func (cdp *Client) Done() <-chan struct{} {
	return cdp.done
}

// Close the connection and wait for the read pump to exit. It's safe to call it multiple times.
func (cdp *Client) Close() error {
	var err error
	cdp.closeOnce.Do(func() {
		cdp.mu.Lock()
		state := cdp.state
		cdp.state = stateClosed
		cancel := cdp.dialCancel
		cdp.mu.Unlock()

		switch state {
		case stateIdle:
			cdp.shutdown(nil)
		case stateConnecting:
			// Connect shuts down once the dial returns
			cancel()
		case stateConnected:
			err = cdp.ws.Close()
		}
	})
	<-cdp.done
	return err
}

// connected reports whether the dial has finished and the client isn't closed
func (cdp *Client) connected() bool {
	cdp.mu.Lock()
	defer cdp.mu.Unlock()
	return cdp.state == stateConnected
}

func (cdp *Client) send(data []byte) error {
	cdp.muSend.Lock()
	defer cdp.muSend.Unlock()

	err := cdp.ws.Send(data)
	if err != nil {
		_ = cdp.ws.Close()
	}
	return err
}

func (cdp *Client) readPump() {
	var cause error
	defer func() { cdp.shutdown(cause) }()

	for {
		data, err := cdp.ws.Read()
		if err != nil {
			cause = err
			return
		}

		f, err := parseFrame(data)
		if err != nil {
			cdp.log.Warn("malformed frame dropped", zap.Error(err), zap.Int("size", len(data)))
			continue
		}

		if f.reply != nil {
			cdp.logger.Println(f.reply)
			if !cdp.pending.fulfill(f.reply) {
				cdp.log.Warn("orphaned reply dropped", zap.Int("id", f.reply.ID))
			}
			continue
		}

		cdp.logger.Println(f.event)
		if !cdp.subs.dispatch(f.event) {
			cdp.log.Debug("unmatched event dropped",
				zap.String("session", f.event.SessionID),
				zap.String("method", f.event.Method),
			)
		}
	}
}

// shutdown settles every pending call and closes every subscription
func (cdp *Client) shutdown(cause error) {
	cdp.shutdownOnce.Do(func() {
		cdp.log.Debug("connection closed", zap.NamedError("cause", cause))
		cdp.pending.close(connClosed(cause))
		cdp.subs.close()
		if cdp.ws != nil {
			_ = cdp.ws.Close()
		}
		close(cdp.done)
	})
}
