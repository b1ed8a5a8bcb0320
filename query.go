package htmlshot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/htmlshot/lib/defaults"
	"github.com/go-rod/htmlshot/lib/proto"
	"github.com/go-rod/htmlshot/lib/utils"
)

// WaitForSelector polls the document at defaults.Poll until an element matches the css
// selector, and returns the first match. After the timeout the error matches ErrTimeout.
// A timeout not greater than 0 means defaults.WaitTimeout.
func (t *Tab) WaitForSelector(selector string, timeout time.Duration) (*Element, error) {
	if timeout <= 0 {
		timeout = defaults.WaitTimeout
	}

	ctx, cancel := context.WithTimeout(t.ctx, timeout)
	defer cancel()

	var el *Element
	err := utils.Retry(ctx, utils.IntervalSleeper(defaults.Poll), func() (bool, error) {
		found, err := t.Context(ctx).query(selector)
		if err != nil {
			return true, err
		}
		el = found
		return el != nil, nil
	})
	if err != nil {
		return nil, waitErr(ctx, fmt.Sprintf("selector %q within %v", selector, timeout), err)
	}

	el.tab = t
	return el.Context(t.ctx), nil
}

// FindElement tries the selector once, ErrElementNotFound if nothing matches
func (t *Tab) FindElement(selector string) (*Element, error) {
	el, err := t.query(selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return el, nil
}

// Has an element that matches the css selector
func (t *Tab) Has(selector string) (bool, error) {
	el, err := t.query(selector)
	if err != nil {
		return false, err
	}
	return el != nil, nil
}

// query returns nil if nothing matches
func (t *Tab) query(selector string) (*Element, error) {
	gen := t.generation()

	doc, err := proto.DOMGetDocument{}.Call(t)
	if err != nil {
		return nil, err
	}

	res, err := proto.DOMQuerySelector{NodeID: doc.Root.NodeID, Selector: selector}.Call(t)
	if err != nil {
		return nil, err
	}
	if res.NodeID == 0 {
		return nil, nil
	}

	desc, err := proto.DOMDescribeNode{NodeID: res.NodeID}.Call(t)
	if err != nil {
		if isStale(err) {
			// the document changed between the two calls
			return nil, nil
		}
		return nil, err
	}

	ctx, cancel := context.WithCancel(t.ctx)
	return &Element{
		ctx:           ctx,
		ctxCancel:     cancel,
		tab:           t,
		backendNodeID: desc.Node.BackendNodeID,
		generation:    gen,
	}, nil
}
