// Package notify implements the transient notification relay: a holder of
// at most one pending notification that expires on its own after a fixed
// delay.
package notify

import (
	"sync"
	"time"
)

// Kind classifies a notification for display.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Notification is a single transient message.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Relay holds at most one pending notification. Pushing a new one replaces
// the pending one and restarts the expiry. A single timer is re-armed on
// every push, so an expiry scheduled for an old notification can never
// clear a newer one.
type Relay struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notification
	timer   *time.Timer
}

// NewRelay constructs a relay. A zero ttl selects DefaultTTL.
func NewRelay(ttl time.Duration) *Relay {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Relay{ttl: ttl}
}

// Push replaces any pending notification and restarts the expiry delay.
func (r *Relay) Push(kind Kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	n := &Notification{Kind: kind, Message: message}
	r.current = n
	r.timer = time.AfterFunc(r.ttl, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.current == n {
			r.current = nil
		}
	})
}

// Current returns the pending notification, or nil when none is pending.
func (r *Relay) Current() *Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	n := *r.current
	return &n
}

// Clear drops the pending notification immediately.
func (r *Relay) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.current = nil
}

// Stop cancels the pending expiry timer. Call on teardown.
func (r *Relay) Stop() {
	r.Clear()
}
