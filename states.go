package htmlshot

import (
	"github.com/go-rod/htmlshot/lib/proto"
)

type stateKey struct {
	sessionID  proto.TargetSessionID
	methodName string
}

// enableDomain sends the enable method once per session
func (b *Browser) enableDomain(c proto.Caller, sessionID proto.TargetSessionID, method proto.Payload) error {
	key := stateKey{sessionID: sessionID, methodName: method.MethodName()}
	if _, has := b.states.Load(key); has {
		return nil
	}

	err := proto.Call(method.MethodName(), method, nil, c)
	if err != nil {
		return err
	}

	b.states.Store(key, struct{}{})
	return nil
}

func (b *Browser) storeTab(t *Tab) {
	b.states.Store(t.TargetID, t)
}

func (b *Browser) loadTab(id proto.TargetTargetID) *Tab {
	if cache, ok := b.states.Load(id); ok {
		return cache.(*Tab)
	}
	return nil
}

// cleanupStates of the tab
func (b *Browser) cleanupStates(t *Tab) {
	b.states.Delete(t.TargetID)
	b.states.Range(func(k, _ interface{}) bool {
		if key, ok := k.(stateKey); ok && key.sessionID == t.SessionID {
			b.states.Delete(k)
		}
		return true
	})
}
