package tui

import (
	"sync"

	"github.com/keywarden/keywarden/internal/keybind"
)

// Mailbox queues actions fired by interceptor callbacks. Interceptors run
// synchronously inside window.DispatchKey, which the root model calls from
// its update loop; the model drains the mailbox immediately after each
// dispatch, so the queue never outlives a single key event.
type Mailbox struct {
	mu    sync.Mutex
	queue []keybind.Action
}

// NewMailbox creates an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Push appends an intercepted action to the queue.
func (m *Mailbox) Push(action keybind.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, action)
}

// Drain returns the queued actions in arrival order and empties the queue.
func (m *Mailbox) Drain() []keybind.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	drained := m.queue
	m.queue = nil
	return drained
}
