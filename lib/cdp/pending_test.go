package cdp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	f, err := parseFrame([]byte(`{"id": 3, "result": {"a": 1}}`))
	require.NoError(t, err)
	require.NotNil(t, f.reply)
	assert.Nil(t, f.event)
	assert.Equal(t, 3, f.reply.ID)
	assert.JSONEq(t, `{"a": 1}`, string(f.reply.Result))

	f, err = parseFrame([]byte(`{"id": 4, "error": {"code": -32000, "message": "m"}}`))
	require.NoError(t, err)
	assert.Equal(t, -32000, f.reply.Error.Code)

	f, err = parseFrame([]byte(`{"sessionId": "S", "method": "Page.loadEventFired", "params": {}}`))
	require.NoError(t, err)
	require.NotNil(t, f.event)
	assert.Equal(t, "S", f.event.SessionID)
	assert.Equal(t, "Page.loadEventFired", f.event.Method)

	for _, data := range []string{``, `x`, `1`, `[]`, `{}`, `{"id": "a"}`, `{"method": 1}`} {
		_, err = parseFrame([]byte(data))
		assert.True(t, errors.Is(err, errMalformedFrame), data)
	}
}

func TestPendingRequests(t *testing.T) {
	reqs := newPendingRequests()

	p := newPendingRequest()
	require.NoError(t, reqs.add(1, p))
	assert.Equal(t, 1, reqs.len())

	assert.Panics(t, func() {
		_ = reqs.add(1, newPendingRequest())
	})

	assert.True(t, reqs.fulfill(&Response{ID: 1}))
	assert.Equal(t, 1, (<-p.result).response.ID)
	assert.False(t, reqs.fulfill(&Response{ID: 1}))

	p2 := newPendingRequest()
	require.NoError(t, reqs.add(2, p2))
	reqs.delete(2)
	assert.False(t, reqs.fulfill(&Response{ID: 2}))

	p3 := newPendingRequest()
	require.NoError(t, reqs.add(3, p3))
	reqs.close(ErrConnClosed)
	assert.Equal(t, ErrConnClosed, (<-p3.result).err)
	assert.Equal(t, 0, reqs.len())

	assert.Equal(t, ErrConnClosed, reqs.add(4, newPendingRequest()))
	reqs.close(errors.New("ignored"))
}

func TestSettleTwice(t *testing.T) {
	p := newPendingRequest()
	p.respond(&Response{ID: 1})
	assert.Panics(t, func() {
		p.respond(&Response{ID: 1})
	})
	assert.Panics(t, func() {
		p.close(ErrConnClosed)
	})
}

func TestConnClosedErr(t *testing.T) {
	assert.Equal(t, ErrConnClosed, connClosed(nil))

	err := connClosed(errors.New("eof"))
	assert.True(t, errors.Is(err, ErrConnClosed))
	assert.Equal(t, "cdp connection closed: eof", err.Error())
}
