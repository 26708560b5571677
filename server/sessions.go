package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/selection"
)

// ============================================================
// Session Registry
// ============================================================

// sessionEntry pairs a selection session with the last path it solved.
type sessionEntry struct {
	id        string
	navmeshID string
	session   *selection.Session

	mu   sync.Mutex
	last *selection.Notification
}

// NotifyPath keeps n as the session's latest path.
func (e *sessionEntry) NotifyPath(n *selection.Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = n
}

func (e *sessionEntry) lastPath() *selection.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*sessionEntry),
	}
}

// add registers a new entry under a fresh id. open builds the session with
// the entry as its notifier.
func (r *sessionRegistry) add(navmeshID string, open func(selection.Notifier) (*selection.Session, error)) (*sessionEntry, error) {
	e := &sessionEntry{id: uuid.NewString(), navmeshID: navmeshID}
	sess, err := open(e)
	if err != nil {
		return nil, err
	}
	e.session = sess

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[e.id] = e
	return e, nil
}

func (r *sessionRegistry) get(id string) (*sessionEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	return e, ok
}

func (r *sessionRegistry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// dropNavMesh removes every session bound to navmeshID.
func (r *sessionRegistry) dropNavMesh(navmeshID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.sessions {
		if e.navmeshID == navmeshID {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
