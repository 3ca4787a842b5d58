package session

import (
	"context"
	"sync"

	"github.com/tigreau/nto-music/pkg/api"
	"github.com/tigreau/nto-music/pkg/apierror"
	"github.com/tigreau/nto-music/pkg/logger"
)

// Identity is the authenticated user as the coordinator tracks it
type Identity struct {
	UserID    int64
	Email     string
	FirstName string
	LastName  string
	Role      string
}

// Snapshot is the coordinator's externally visible state. IsAdmin and
// IsAuthenticated are derived, never stored.
type Snapshot struct {
	User            *Identity
	IsAuthenticated bool
	IsAdmin         bool
	IsInitializing  bool
}

// AuthAPI is the slice of the REST surface the coordinator drives
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, firstName, lastName, email, password string) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*api.AuthResponse, error)
}

// Store persists the cached identity copy between runs
type Store interface {
	Load() (*Identity, string, error)
	Save(identity *Identity, token string) error
	Delete() error
}

// Coordinator is the single source of truth for the session. It bridges
// the cached identity (instant, possibly stale) with authoritative server
// verification, and serializes concurrent auth operations last-writer-wins.
type Coordinator struct {
	api   AuthAPI
	store Store

	mu           sync.Mutex
	user         *Identity
	token        string
	initializing bool
	initialized  bool
	closed       bool
	gen          uint64
	nextID       int
	listeners    map[int]func(Snapshot)
}

// New creates a coordinator seeded synchronously from the cached identity,
// so the first Snapshot is available without waiting for the network.
func New(authAPI AuthAPI, store Store) *Coordinator {
	c := &Coordinator{
		api:          authAPI,
		store:        store,
		initializing: true,
		listeners:    make(map[int]func(Snapshot)),
	}

	cached, token, err := store.Load()
	if err != nil {
		logger.Warn("Failed to load cached identity", "error", err)
	} else {
		c.user = cached
		c.token = token
	}

	return c
}

// Snapshot returns the current session view
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Coordinator) snapshotLocked() Snapshot {
	return Snapshot{
		User:            c.user,
		IsAuthenticated: c.user != nil,
		IsAdmin:         c.user != nil && c.user.Role == "ADMIN",
		IsInitializing:  c.initializing,
	}
}

// OnChange subscribes to session state changes. Returns an unsubscribe
// function.
func (c *Coordinator) OnChange(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Close tears the coordinator down. In-flight operations that resolve
// afterwards are discarded rather than applied.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.listeners = make(map[int]func(Snapshot))
}

// begin stamps a state-mutating operation. Results of an operation apply
// only while its stamp is still the newest one (last-writer-wins).
func (c *Coordinator) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return c.gen
}

// apply runs mutate under the lock if the operation is still current, then
// notifies listeners outside the lock.
func (c *Coordinator) apply(gen uint64, mutate func()) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}

	mutate()
	snap := c.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// Initialize runs the mount-time verification. It resolves isInitializing
// exactly once, whatever the verification outcome.
func (c *Coordinator) Initialize(ctx context.Context) {
	c.verify(ctx)

	c.mu.Lock()
	alreadyDone := c.initialized || c.closed
	if !alreadyDone {
		c.initialized = true
		c.initializing = false
	}
	snap := c.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	if !alreadyDone {
		for _, fn := range listeners {
			fn(snap)
		}
	}
}

// Refresh re-validates the session against the server. Callable at any
// time; does not touch isInitializing.
func (c *Coordinator) Refresh(ctx context.Context) {
	c.verify(ctx)
}

// verify reconciles local state with the authoritative /auth/me answer.
// Auth failures clear the cached copy; transient failures retain it, so an
// infrastructure blip never silently logs the user out.
func (c *Coordinator) verify(ctx context.Context) {
	gen := c.begin()

	resp, err := c.api.Me(ctx)
	if err == nil {
		identity := toIdentity(&resp.AuthUser)
		c.apply(gen, func() {
			c.user = identity
			if saveErr := c.store.Save(identity, c.token); saveErr != nil {
				logger.Warn("Failed to persist identity cache", "error", saveErr)
			}
		})
		return
	}

	if apierror.IsSessionInvalidating(err) {
		logger.Debug("Session verification rejected", "kind", apierror.KindOf(err))
		c.apply(gen, func() {
			c.user = nil
			c.token = ""
			if delErr := c.store.Delete(); delErr != nil {
				logger.Warn("Failed to clear identity cache", "error", delErr)
			}
		})
		return
	}

	// Transient failure: keep whatever the cache said
	logger.Warn("Session verification unavailable, keeping cached identity", "error", err)
}

// Login authenticates and becomes the session's new identity. The cached
// copy is persisted before Login returns, so an immediate restart resolves
// without a fresh verification round-trip.
func (c *Coordinator) Login(ctx context.Context, email, password string) error {
	gen := c.begin()

	resp, err := c.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.adopt(gen, resp)
	return nil
}

// Register creates an account and signs it in, with Login's persistence
// guarantee.
func (c *Coordinator) Register(ctx context.Context, firstName, lastName, email, password string) error {
	gen := c.begin()

	resp, err := c.api.Register(ctx, firstName, lastName, email, password)
	if err != nil {
		return err
	}

	c.adopt(gen, resp)
	return nil
}

func (c *Coordinator) adopt(gen uint64, resp *api.AuthResponse) {
	identity := toIdentity(&resp.AuthUser)
	c.apply(gen, func() {
		c.user = identity
		if resp.Token != "" {
			c.token = resp.Token
		}
		if saveErr := c.store.Save(identity, c.token); saveErr != nil {
			logger.Warn("Failed to persist identity cache", "error", saveErr)
		}
	})
}

// Logout ends the session. The server call is best-effort: local state is
// cleared even when it fails, so a network error can never leave the
// client stuck signed-in.
func (c *Coordinator) Logout(ctx context.Context) {
	gen := c.begin()

	if err := c.api.Logout(ctx); err != nil {
		logger.Warn("Server logout failed, clearing local session anyway", "error", err)
	}

	c.apply(gen, func() {
		c.user = nil
		c.token = ""
		if delErr := c.store.Delete(); delErr != nil {
			logger.Warn("Failed to clear identity cache", "error", delErr)
		}
	})
}

func toIdentity(user *api.AuthUser) *Identity {
	return &Identity{
		UserID:    user.UserID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}
}
