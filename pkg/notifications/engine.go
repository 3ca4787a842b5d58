package notifications

import (
	"context"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/tigreau/nto-music/pkg/api"
	"github.com/tigreau/nto-music/pkg/logger"
	"github.com/tigreau/nto-music/pkg/session"
	"github.com/tigreau/nto-music/pkg/stream"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// API is the slice of the REST surface the engine drives
type API interface {
	List(ctx context.Context) ([]api.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
}

// Conn is a live push connection for one authenticated session
type Conn interface {
	Connect() error
	Disconnect()
	On(name string, callback func(stream.Event)) func()
	State() stream.ConnectionState
}

// Engine keeps the local notification list in sync with the server. It
// follows the session: gaining authentication loads history and opens a
// push connection, losing it tears both down and empties the list.
type Engine struct {
	api  API
	dial func() Conn

	mu     sync.Mutex
	items  []api.Notification
	epoch  uint64
	conn   Conn
	unsubs []func()

	listenersMu sync.RWMutex
	listeners   map[int]func(api.Notification)
	nextID      int

	unsubSession func()
}

// NewEngine creates an engine. dial is called once per authenticated
// session to build a fresh push connection.
func NewEngine(notifAPI API, dial func() Conn) *Engine {
	return &Engine{
		api:       notifAPI,
		dial:      dial,
		listeners: make(map[int]func(api.Notification)),
	}
}

// Bind attaches the engine to the session coordinator. The current session
// state is applied immediately, then every change follows.
func (e *Engine) Bind(coordinator *session.Coordinator) {
	e.unsubSession = coordinator.OnChange(e.handleSession)
	e.handleSession(coordinator.Snapshot())
}

// Close detaches from the session and releases the push connection
func (e *Engine) Close() {
	if e.unsubSession != nil {
		e.unsubSession()
		e.unsubSession = nil
	}
	e.teardown()
}

// Notifications returns a copy of the current list, newest first
func (e *Engine) Notifications() []api.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]api.Notification, len(e.items))
	copy(out, e.items)
	return out
}

// UnreadCount returns the number of unread notifications
func (e *Engine) UnreadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	count := 0
	for _, n := range e.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// ConnectionState reports the push connection state
func (e *Engine) ConnectionState() stream.ConnectionState {
	e.mu.Lock()
	conn := e.conn
	e.mu.Unlock()
	if conn == nil {
		return stream.StateDisconnected
	}
	return conn.State()
}

// OnNotification subscribes to pushed notifications. Returns an
// unsubscribe function.
func (e *Engine) OnNotification(fn func(api.Notification)) func() {
	e.listenersMu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.listenersMu.Unlock()

	return func() {
		e.listenersMu.Lock()
		defer e.listenersMu.Unlock()
		delete(e.listeners, id)
	}
}

// Refresh reloads the full list from the server, replacing local state
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	epoch := e.epoch
	e.mu.Unlock()
	return e.loadHistory(ctx, epoch)
}

// MarkAsRead flips a notification to read locally, then confirms with the
// server. On failure the local change is rolled back.
func (e *Engine) MarkAsRead(ctx context.Context, id int64) error {
	e.mu.Lock()
	var changed bool
	for i := range e.items {
		if e.items[i].ID == id && !e.items[i].Read {
			e.items[i].Read = true
			changed = true
			break
		}
	}
	e.mu.Unlock()

	if err := e.api.MarkRead(ctx, id); err != nil {
		if changed {
			e.mu.Lock()
			for i := range e.items {
				if e.items[i].ID == id {
					e.items[i].Read = false
					break
				}
			}
			e.mu.Unlock()
		}
		logger.Warn("Failed to mark notification read", "id", id, "error", err)
		return err
	}
	return nil
}

// MarkAllAsRead flips every notification to read, rolling back the ones
// that were unread if the server call fails.
func (e *Engine) MarkAllAsRead(ctx context.Context) error {
	e.mu.Lock()
	wasUnread := make(map[int64]bool)
	for i := range e.items {
		if !e.items[i].Read {
			wasUnread[e.items[i].ID] = true
			e.items[i].Read = true
		}
	}
	e.mu.Unlock()

	if err := e.api.MarkAllRead(ctx); err != nil {
		e.mu.Lock()
		for i := range e.items {
			if wasUnread[e.items[i].ID] {
				e.items[i].Read = false
			}
		}
		e.mu.Unlock()
		logger.Warn("Failed to mark all notifications read", "error", err)
		return err
	}
	return nil
}

// Delete removes a notification locally, then confirms with the server.
// On failure the notification is restored at its previous position.
func (e *Engine) Delete(ctx context.Context, id int64) error {
	e.mu.Lock()
	removedAt := -1
	var removed api.Notification
	for i := range e.items {
		if e.items[i].ID == id {
			removedAt = i
			removed = e.items[i]
			e.items = append(e.items[:i], e.items[i+1:]...)
			break
		}
	}
	e.mu.Unlock()

	if err := e.api.Delete(ctx, id); err != nil {
		if removedAt >= 0 {
			e.mu.Lock()
			if removedAt > len(e.items) {
				removedAt = len(e.items)
			}
			e.items = append(e.items[:removedAt], append([]api.Notification{removed}, e.items[removedAt:]...)...)
			e.mu.Unlock()
		}
		logger.Warn("Failed to delete notification", "id", id, "error", err)
		return err
	}
	return nil
}

// handleSession reacts to session transitions. Only the authenticated
// flag matters here; profile edits under the same session are ignored.
func (e *Engine) handleSession(snap session.Snapshot) {
	if snap.IsInitializing {
		return
	}

	if !snap.IsAuthenticated {
		e.teardown()
		return
	}

	e.mu.Lock()
	if e.conn != nil {
		e.mu.Unlock()
		return
	}
	e.epoch++
	epoch := e.epoch
	conn := e.dial()
	e.conn = conn
	e.unsubs = []func(){
		conn.On(stream.EventConnected, func(stream.Event) {
			logger.Debug("Notification stream ready")
		}),
		conn.On(stream.EventNotification, func(ev stream.Event) {
			e.ingest(epoch, ev)
		}),
	}
	e.mu.Unlock()

	go func() {
		if err := e.loadHistory(context.Background(), epoch); err != nil {
			logger.Warn("Failed to load notification history", "error", err)
		}
	}()

	if err := conn.Connect(); err != nil {
		logger.Warn("Notification stream connect failed", "error", err)
	}
}

// teardown drops the push connection and empties the list
func (e *Engine) teardown() {
	e.mu.Lock()
	conn := e.conn
	unsubs := e.unsubs
	e.conn = nil
	e.unsubs = nil
	e.epoch++
	e.items = nil
	e.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	if conn != nil {
		conn.Disconnect()
	}
}

// loadHistory replaces the list wholesale with the server's answer, unless
// the session changed while the request was in flight.
func (e *Engine) loadHistory(ctx context.Context, epoch uint64) error {
	items, err := e.api.List(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if epoch != e.epoch {
		e.mu.Unlock()
		logger.Debug("Discarding stale notification history")
		return nil
	}
	e.items = items
	e.mu.Unlock()
	return nil
}

// ingest parses a pushed notification and prepends it. Malformed payloads
// are logged and dropped without disturbing the connection.
func (e *Engine) ingest(epoch uint64, ev stream.Event) {
	var n api.Notification
	if err := json.UnmarshalFromString(ev.Data, &n); err != nil {
		logger.Warn("Dropping malformed notification event", "error", err)
		return
	}

	e.mu.Lock()
	if epoch != e.epoch {
		e.mu.Unlock()
		return
	}
	e.items = append([]api.Notification{n}, e.items...)
	e.mu.Unlock()

	e.listenersMu.RLock()
	callbacks := make([]func(api.Notification), 0, len(e.listeners))
	for _, fn := range e.listeners {
		callbacks = append(callbacks, fn)
	}
	e.listenersMu.RUnlock()

	for _, fn := range callbacks {
		fn(n)
	}
}
