package workflow

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

var (
	// ErrTimeout marks a decision request that did not come back in time.
	// Callers show it with its own message and allow a retry.
	ErrTimeout = errors.New("request timeout")

	// ErrInFlight is returned when a decision is attempted on an item that
	// already has a request running. The attempt is ignored.
	ErrInFlight = errors.New("decision already in flight")

	ErrNotFound       = errors.New("item not in pending list")
	ErrAlreadyDecided = errors.New("item already decided")
)

// Decider commits a decision to the backend. The in-process guard in
// PendingList is best effort only; the Decider's backend stays the
// authority on at-most-once semantics.
type Decider interface {
	UpdateStatus(ctx context.Context, id uint, decision Decision, note string) error
}

// Item is the controller's view of one pending record. Disappearing is a
// transient presentation flag, not part of the domain status.
type Item struct {
	ID           uint
	Status       Status
	Disappearing bool
	Err          error
}

type entry struct {
	Item
	processing bool
}

// PendingList drives the approval workflow for a set of PENDING records.
// A successful decision marks the item disappearing and drops it from the
// list after removeDelay; a failed one keeps the item PENDING with the
// error recorded so the decision can be retried.
type PendingList struct {
	mu          sync.Mutex
	order       []uint
	items       map[uint]*entry
	decider     Decider
	removeDelay time.Duration
}

func NewPendingList(d Decider, removeDelay time.Duration) *PendingList {
	return &PendingList{
		items:       make(map[uint]*entry),
		decider:     d,
		removeDelay: removeDelay,
	}
}

// Load replaces the list contents. Every loaded item starts PENDING;
// records already decided elsewhere should not be loaded at all.
func (p *PendingList) Load(ids []uint) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.order = p.order[:0]
	p.items = make(map[uint]*entry, len(ids))
	for _, id := range ids {
		if _, dup := p.items[id]; dup {
			continue
		}
		p.order = append(p.order, id)
		p.items[id] = &entry{Item: Item{ID: id, Status: StatusPending}}
	}
}

// Visible returns the items still rendered: everything PENDING, plus
// decided items that are mid-disappearance.
func (p *PendingList) Visible() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Item, 0, len(p.order))
	for _, id := range p.order {
		e, ok := p.items[id]
		if !ok {
			continue
		}
		if e.Status == StatusPending || e.Disappearing {
			out = append(out, e.Item)
		}
	}
	return out
}

// Err returns the last decision error recorded for an item, if any.
func (p *PendingList) Err(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.items[id]; ok {
		return e.Err
	}
	return nil
}

// Decide runs one decision end to end. Duplicate calls while a request is
// in flight return ErrInFlight and do nothing.
func (p *PendingList) Decide(ctx context.Context, id uint, decision Decision, note string) error {
	p.mu.Lock()
	e, ok := p.items[id]
	if !ok {
		p.mu.Unlock()
		return ErrNotFound
	}
	if e.processing {
		p.mu.Unlock()
		return ErrInFlight
	}
	if !e.Status.CanTransitionTo(decision) {
		p.mu.Unlock()
		return ErrAlreadyDecided
	}
	e.processing = true
	e.Err = nil
	p.mu.Unlock()

	err := classifyTimeout(p.decider.UpdateStatus(ctx, id, decision, note))

	p.mu.Lock()
	defer p.mu.Unlock()
	e.processing = false
	if err != nil {
		e.Err = err
		return err
	}

	e.Status = decision
	e.Disappearing = true
	time.AfterFunc(p.removeDelay, func() { p.remove(id) })
	return nil
}

func (p *PendingList) remove(id uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.items, id)
	for i, v := range p.order {
		if v == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func classifyTimeout(err error) error {
	if err == nil {
		return nil
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
