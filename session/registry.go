package session

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// MaxSessions is the registry's fixed capacity.
const MaxSessions = 20

// ErrTooManySessions is returned by Registry.Add when every slot is in
// use.
var ErrTooManySessions = errors.New("session: too many sessions")

// Registry is a fixed-capacity table of session handles with lock-free
// claim via atomic compare-and-swap, mirroring HoloStor's SessionTable.
// Slots hold non-owning references: the registry never closes a session,
// it only translates handles to pointers.
type Registry struct {
	slots [MaxSessions]atomic.Pointer[Session]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Add claims the first free slot for s, returning its handle. It scans
// from index 0, CAS-ing each null slot in turn; if every slot is taken,
// it returns ErrTooManySessions.
func (r *Registry) Add(s *Session) (int, error) {
	for i := range r.slots {
		if r.slots[i].CompareAndSwap(nil, s) {
			return i, nil
		}
	}
	return -1, ErrTooManySessions
}

// Lookup returns the session at handle h, or nil if h is out of range or
// the slot is empty (including a concurrent Remove in flight — callers
// must not race a Remove against still-in-use operations on the same
// handle).
func (r *Registry) Lookup(h int) *Session {
	if h < 0 || h >= MaxSessions {
		return nil
	}
	return r.slots[h].Load()
}

// Remove clears handle h's slot, returning the session that was there (or
// nil if it was already empty or h is out of range).
func (r *Registry) Remove(h int) *Session {
	if h < 0 || h >= MaxSessions {
		return nil
	}
	return r.slots[h].Swap(nil)
}
