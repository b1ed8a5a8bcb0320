package cdp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Request to send to browser
type Request struct {
	ID        int         `json:"id"`
	SessionID string      `json:"sessionId,omitempty"`
	Method    string      `json:"method"`
	Params    interface{} `json:"params,omitempty"`
}

// String interface
func (req Request) String() string {
	session := ""
	if req.SessionID != "" {
		session = " @" + req.SessionID
	}
	return fmt.Sprintf("-> %d%s %s %s", req.ID, session, req.Method, paramsString(req.Params))
}

// Response from browser
type Response struct {
	ID     int             `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// String interface
func (res Response) String() string {
	if res.Error != nil {
		return fmt.Sprintf("<- %d error: %s", res.ID, res.Error)
	}
	return fmt.Sprintf("<- %d %s", res.ID, res.Result)
}

// Event from browser
type Event struct {
	SessionID string          `json:"sessionId,omitempty"`
	Method    string          `json:"method"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// String interface
func (e Event) String() string {
	session := ""
	if e.SessionID != "" {
		session = " @" + e.SessionID
	}
	return fmt.Sprintf("<- event%s %s %s", session, e.Method, e.Params)
}

var errMalformedFrame = errors.New("malformed cdp frame")

// frame is an inbound message after it's classified, only one of the fields is set.
type frame struct {
	reply *Response
	event *Event
}

// parseFrame tells a reply from an event. A frame with an id is a reply,
// a frame with a method and no id is an event, anything else is malformed.
func parseFrame(data []byte) (*frame, error) {
	if !gjson.ValidBytes(data) {
		return nil, errMalformedFrame
	}

	obj := gjson.ParseBytes(data)
	if !obj.IsObject() {
		return nil, errMalformedFrame
	}

	if id := obj.Get("id"); id.Exists() {
		if id.Type != gjson.Number {
			return nil, errMalformedFrame
		}
		var res Response
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedFrame, err)
		}
		return &frame{reply: &res}, nil
	}

	if obj.Get("method").Type == gjson.String {
		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedFrame, err)
		}
		return &frame{event: &evt}, nil
	}

	return nil, errMalformedFrame
}

func paramsString(params interface{}) string {
	switch v := params.(type) {
	case nil:
		return "{}"
	case json.RawMessage:
		return string(v)
	case []byte:
		return string(v)
	}
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%v", params)
	}
	return string(data)
}
