package cdp

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketable enables you to choose the websocket lib you want to use.
// Writes are serialized by the Client, Read is only called by the read pump.
type WebSocketable interface {
	// Connect to server
	Connect(ctx context.Context, url string, header http.Header) error
	// Send text message only
	Send([]byte) error
	// Read returns text message only
	Read() ([]byte, error)
	// Close the connection, a blocked Read must return after it
	Close() error
}

// WebSocket is the default WebSocketable, it's a thin wrapper of gorilla/websocket
type WebSocket struct {
	// WriteBufferSize of the dialer, screenshots can be large so the default is 1MB
	WriteBufferSize int

	conn      *websocket.Conn
	closeOnce sync.Once
}

var _ WebSocketable = &WebSocket{}

// Connect interface
func (ws *WebSocket) Connect(ctx context.Context, url string, header http.Header) error {
	dialer := *websocket.DefaultDialer
	dialer.WriteBufferSize = ws.WriteBufferSize
	if dialer.WriteBufferSize == 0 {
		dialer.WriteBufferSize = 1 * 1024 * 1024
	}

	// the handshake only watches the deadline of the ctx, so a canceled ctx closes the raw
	// conn to unblock it
	raw := &dialedConn{}
	dialer.NetDialContext = raw.dial
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			raw.expire()
		case <-stop:
		}
	}()

	conn, res, err := dialer.DialContext(ctx, url, header)
	if res != nil && res.Body != nil {
		_ = res.Body.Close()
	}
	if raw.finish() && err == nil {
		_ = conn.Close()
		err = ctx.Err()
	}
	if err != nil {
		return err
	}

	ws.conn = conn

	return nil
}

// dialedConn keeps the raw conn of a dial so that it can be closed before the handshake ends
type dialedConn struct {
	mu       sync.Mutex
	conn     net.Conn
	expired  bool
	finished bool
}

func (d *dialedConn) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	conn, err := (&net.Dialer{}).DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.expired {
		_ = conn.Close()
		return nil, ctx.Err()
	}
	d.conn = conn
	return conn, nil
}

// finish disarms expire, it returns true if the conn has been expired already
func (d *dialedConn) finish() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.finished = true
	return d.expired
}

func (d *dialedConn) expire() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.finished {
		return
	}
	d.expired = true
	if d.conn != nil {
		_ = d.conn.Close()
	}
}

// Send a message
func (ws *WebSocket) Send(data []byte) error {
	return ws.conn.WriteMessage(websocket.TextMessage, data)
}

// Read a message
func (ws *WebSocket) Read() (data []byte, err error) {
	msgType := -1
	for msgType != websocket.TextMessage && err == nil {
		msgType, data, err = ws.conn.ReadMessage()
	}
	return
}

// Close interface
func (ws *WebSocket) Close() (err error) {
	if ws.conn == nil {
		return nil
	}
	ws.closeOnce.Do(func() {
		_ = ws.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		err = ws.conn.Close()
	})
	return
}
