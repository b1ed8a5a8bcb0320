package cdp

import (
	"fmt"
	"sync"
)

// pendingRequests tracks requests that have been sent to the browser.
type pendingRequests struct {
	mu      sync.Mutex
	err     error
	pending map[int]*pendingRequest
}

func newPendingRequests() *pendingRequests {
	return &pendingRequests{
		pending: make(map[int]*pendingRequest),
	}
}

// close marks the requests as not being able to make new requests.
// It will also close any pending requests.
func (reqs *pendingRequests) close(err error) {
	reqs.mu.Lock()
	defer reqs.mu.Unlock()

	if reqs.err != nil {
		return
	}
	reqs.err = err

	for _, pending := range reqs.pending {
		pending.close(err)
	}
	reqs.pending = map[int]*pendingRequest{}
}

// add adds a new pending request. When the browser has disconnected
// then it will return an error.
func (reqs *pendingRequests) add(id int, resp *pendingRequest) error {
	reqs.mu.Lock()
	defer reqs.mu.Unlock()

	if reqs.err != nil {
		return reqs.err
	}
	if _, has := reqs.pending[id]; has {
		panic(fmt.Sprintf("cdp: request id %d is already pending", id))
	}
	reqs.pending[id] = resp
	return nil
}

// fulfill fills in a pending request and removes it from the map.
// It returns false when nobody waits for the id anymore.
func (reqs *pendingRequests) fulfill(r *Response) bool {
	reqs.mu.Lock()
	defer reqs.mu.Unlock()

	pending, ok := reqs.pending[r.ID]
	if !ok {
		return false
	}
	delete(reqs.pending, r.ID)
	pending.respond(r)
	return true
}

// delete deletes a pending request.
func (reqs *pendingRequests) delete(id int) {
	reqs.mu.Lock()
	defer reqs.mu.Unlock()
	delete(reqs.pending, id)
}

func (reqs *pendingRequests) len() int {
	reqs.mu.Lock()
	defer reqs.mu.Unlock()
	return len(reqs.pending)
}

// pendingRequest is a one-shot slot, it can be settled only once.
type pendingRequest struct {
	settled bool
	result  chan pendingResponse
}

type pendingResponse struct {
	response *Response
	err      error
}

func newPendingRequest() *pendingRequest {
	return &pendingRequest{result: make(chan pendingResponse, 1)}
}

// respond and close are only called with pendingRequests.mu held.
func (pending *pendingRequest) respond(r *Response) {
	pending.settle(pendingResponse{response: r})
}

func (pending *pendingRequest) close(err error) {
	pending.settle(pendingResponse{err: err})
}

func (pending *pendingRequest) settle(r pendingResponse) {
	if pending.settled {
		panic("cdp: reply slot settled twice")
	}
	pending.settled = true
	pending.result <- r
}
