// Package state holds the loading and error envelope shared by the session
// stores, plus change notification for their readers.
package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apiclient"
)

// Envelope tracks in-flight actions and the last failure message. Concurrent
// actions are allowed; the store is loading while any is in flight and the
// last failure to finish owns the error slot.
type Envelope struct {
	logger zerolog.Logger

	mu       sync.RWMutex
	inflight int
	errMsg   string

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

func NewEnvelope(logger zerolog.Logger) *Envelope {
	return &Envelope{logger: logger, subs: make(map[int]chan struct{})}
}

// Run marks the envelope busy for the duration of op, clears the previous
// error first and records a display message if op fails. The error op
// returned is passed back unchanged.
func (e *Envelope) Run(ctx context.Context, name string, op func(ctx context.Context) error) error {
	e.mu.Lock()
	e.inflight++
	e.errMsg = ""
	e.mu.Unlock()
	e.Notify()

	err := op(ctx)

	e.mu.Lock()
	e.inflight--
	if err != nil {
		e.errMsg = apiclient.Describe(err)
	}
	e.mu.Unlock()
	if err != nil {
		e.logger.Warn().Err(err).Str("action", name).Msg("action failed")
	}
	e.Notify()
	return err
}

func (e *Envelope) Loading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.inflight > 0
}

// Err returns the message of the last failed action, or "".
func (e *Envelope) Err() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.errMsg
}

func (e *Envelope) ClearErr() {
	e.mu.Lock()
	e.errMsg = ""
	e.mu.Unlock()
	e.Notify()
}

// Subscribe returns a channel signalled after every change and a cancel
// func that closes it. Signals coalesce; readers re-read state on receipt.
func (e *Envelope) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	e.subMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	e.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.subMu.Lock()
			delete(e.subs, id)
			e.subMu.Unlock()
			close(ch)
		})
	}
}

// Notify signals every subscriber without blocking.
func (e *Envelope) Notify() {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
