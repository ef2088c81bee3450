package realtime

import (
	"sync"
)

// Registry is the in-process presence map between user identity and that
// user's single active connection. At most one entry exists per user: a fresh
// registration replaces the previous connection ("last connection wins").
//
// Each server instance owns an independent Registry; a user connected to
// another instance is invisible here. That is a documented limitation of the
// single-process design, not something the registry tries to paper over.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]Sender // userID -> active connection
	owner  map[string]string // connectionID -> userID
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]Sender),
		owner:  make(map[string]string),
	}
}

// Register binds userID to conn, replacing any prior connection for the same
// user. The replaced connection is returned so the caller can close it after
// the swap; nil means the user was previously offline.
func (r *Registry) Register(userID string, conn Sender) Sender {
	r.mu.Lock()
	defer r.mu.Unlock()

	var previous Sender
	if existing, ok := r.byUser[userID]; ok && existing.ID() != conn.ID() {
		previous = existing
		delete(r.owner, existing.ID())
	}

	r.byUser[userID] = conn
	r.owner[conn.ID()] = userID
	return previous
}

// Lookup returns the active connection for userID, if any.
func (r *Registry) Lookup(userID string) (Sender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.byUser[userID]
	return conn, ok
}

// UnregisterByConnection removes the entry owned by connectionID and returns
// the user it belonged to. It is a no-op for unknown connections, including
// connections that were already replaced by a faster reconnect.
func (r *Registry) UnregisterByConnection(connectionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.owner[connectionID]
	if !ok {
		return "", false
	}
	delete(r.owner, connectionID)
	if current, ok := r.byUser[userID]; ok && current.ID() == connectionID {
		delete(r.byUser, userID)
	}
	return userID, true
}

// ListUsers returns the IDs of all currently connected users.
func (r *Registry) ListUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.byUser))
	for id := range r.byUser {
		users = append(users, id)
	}
	return users
}

// Len reports how many users are currently online.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}

// Broadcast delivers payload to every registered connection except the one
// identified by excludeConnID. It returns the number of successful sends.
func (r *Registry) Broadcast(payload []byte, excludeConnID string) int {
	r.mu.RLock()
	conns := make([]Sender, 0, len(r.byUser))
	for _, conn := range r.byUser {
		if conn.ID() == excludeConnID {
			continue
		}
		conns = append(conns, conn)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, conn := range conns {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}
