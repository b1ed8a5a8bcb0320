// Package proto holds the typed payloads of the devtools protocol domains htmlshot uses.
// Each request type has a Call method that sends it through a Caller.
package proto

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/ysmood/kit"
)

// Client interface to send the request.
// So that this lib doesn't handle anything has side effect.
type Client interface {
	Call(ctx context.Context, sessionID, methodName string, params interface{}) (res []byte, err error)
}

// Payload interface returns the name of the event, such as "Page.loadEventFired"
type Payload interface {
	MethodName() string
}

// Caller interface to get the context of the request
type Caller interface {
	// CallContext returns ctx, client, and the sessionID
	CallContext() (context.Context, Client, string)
}

// Call method with request and response containers.
func Call(method string, req, res interface{}, caller Caller) error {
	ctx, client, id := caller.CallContext()

	payload, err := Normalize(req)
	if err != nil {
		return err
	}

	bin, err := client.Call(ctx, id, method, payload)
	if err != nil {
		return err
	}

	if res != nil {
		return json.Unmarshal(bin, res)
	}

	return nil
}

// ParseMethodName to domain and name
func ParseMethodName(method string) (domain, name string) {
	arr := strings.SplitN(method, ".", 2)
	if len(arr) == 1 {
		return arr[0], ""
	}
	return arr[0], arr[1]
}

// Normalizable interface to transform the params into the correct data structure before being sent by the client.
type Normalizable interface {
	Normalize() (json.RawMessage, error)
}

// Normalize the method payload
func Normalize(m interface{}) (json.RawMessage, error) {
	if m == nil {
		return nil, nil
	}
	n, ok := m.(Normalizable)
	if ok {
		return n.Normalize()
	}
	return json.Marshal(m)
}

// JSON value
type JSON struct {
	gjson.Result
}

// NewJSON json object
func NewJSON(val interface{}) JSON {
	j := JSON{}
	j.Raw = kit.MustToJSON(val)
	j.Result = gjson.Parse(j.Raw)
	return j
}

// UnmarshalJSON interface
func (j *JSON) UnmarshalJSON(b []byte) error {
	j.Result = gjson.ParseBytes(b)
	return nil
}

// MarshalJSON interface
func (j JSON) MarshalJSON() ([]byte, error) {
	if j.Raw == "" {
		return []byte("null"), nil
	}
	return []byte(j.Raw), nil
}
