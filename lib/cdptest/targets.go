package cdptest

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-rod/htmlshot/lib/cdp"
)

// Targets keeps the page targets and the flattened sessions attached to them
type Targets struct {
	b *Browser

	mu       sync.Mutex
	count    int
	targets  map[string]string // target id to its url
	sessions map[string]string // session id to target id
}

// InitTargetID is the id of the page the browser opens on startup
const InitTargetID = "T0"

// Targets registers the handlers of the Target and Browser domains. The browser starts
// with one page target, like a real one.
func (b *Browser) Targets() *Targets {
	t := &Targets{
		b:        b,
		targets:  map[string]string{InitTargetID: "about:blank"},
		sessions: map[string]string{},
	}

	b.Handle("Target.createTarget", t.create)
	b.Handle("Target.attachToTarget", t.attach)
	b.Handle("Target.detachFromTarget", t.detach)
	b.Handle("Target.closeTarget", t.close)
	b.Handle("Target.activateTarget", t.activate)
	b.Handle("Target.getTargets", t.list)
	b.HandleResult("Browser.getVersion", map[string]string{
		"protocolVersion": "1.3",
		"product":         "HeadlessChrome/120.0.0.0",
		"userAgent":       "Mozilla/5.0 HeadlessChrome/120.0.0.0",
		"jsVersion":       "12.0",
	})
	b.Handle("Browser.close", func(*Request) (interface{}, error) {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			time.Sleep(10 * time.Millisecond)
			b.Disconnect()
		}()
		return nil, nil
	})

	return t
}

// IDs of the open targets, sorted
func (t *Targets) IDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	list := []string{}
	for id := range t.targets {
		list = append(list, id)
	}
	sort.Strings(list)
	return list
}

// Sessions count
func (t *Targets) Sessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// TargetOf the session
func (t *Targets) TargetOf(sessionID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions[sessionID]
}

func (t *Targets) create(req *Request) (interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.count++
	id := fmt.Sprintf("T%d", t.count)
	t.targets[id] = req.Params.Get("url").String()

	return map[string]string{"targetId": id}, nil
}

func (t *Targets) attach(req *Request) (interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := req.Params.Get("targetId").String()
	if _, has := t.targets[id]; !has {
		return nil, &cdp.Error{Code: -32602, Message: "No target with given id found"}
	}

	sessionID := "S" + id
	t.sessions[sessionID] = id

	return map[string]string{"sessionId": sessionID}, nil
}

func (t *Targets) detach(req *Request) (interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sessionID := req.Params.Get("sessionId").String()
	if _, has := t.sessions[sessionID]; !has {
		return nil, &cdp.Error{Code: -32602, Message: "No session with given id"}
	}
	delete(t.sessions, sessionID)

	return nil, nil
}

func (t *Targets) close(req *Request) (interface{}, error) {
	id := req.Params.Get("targetId").String()

	t.mu.Lock()
	if _, has := t.targets[id]; !has {
		t.mu.Unlock()
		return nil, &cdp.Error{Code: -32602, Message: "No target with given id found"}
	}
	delete(t.targets, id)
	for s, tid := range t.sessions {
		if tid == id {
			delete(t.sessions, s)
		}
	}
	t.mu.Unlock()

	t.b.Push("", "Target.targetDestroyed", map[string]string{"targetId": id})

	return map[string]bool{"success": true}, nil
}

func (t *Targets) activate(req *Request) (interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, has := t.targets[req.Params.Get("targetId").String()]; !has {
		return nil, &cdp.Error{Code: -32602, Message: "No target with given id found"}
	}
	return nil, nil
}

func (t *Targets) list(*Request) (interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	infos := []map[string]interface{}{}
	for id, u := range t.targets {
		infos = append(infos, map[string]interface{}{
			"targetId": id,
			"type":     "page",
			"title":    "",
			"url":      u,
			"attached": t.attached(id),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i]["targetId"].(string) < infos[j]["targetId"].(string)
	})

	return map[string]interface{}{"targetInfos": infos}, nil
}

func (t *Targets) attached(id string) bool {
	for _, tid := range t.sessions {
		if tid == id {
			return true
		}
	}
	return false
}
