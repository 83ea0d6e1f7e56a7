// Package session holds the bearer token for the current authenticated
// session. The holder is written on login/logout and read concurrently by the
// API client's request interceptor.
package session

import "sync"

// Holder is a synchronized single-slot bearer token cell.
type Holder struct {
	mu    sync.RWMutex
	token string
}

// NewHolder returns an empty Holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Set stores the token. An empty string clears the slot.
func (h *Holder) Set(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

// Clear removes the stored token.
func (h *Holder) Clear() {
	h.Set("")
}

// Get returns the stored token and whether one is present.
func (h *Holder) Get() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token, h.token != ""
}
