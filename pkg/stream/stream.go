package stream

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/viper"
	"github.com/tigreau/nto-music/pkg/logger"
)

// Well-known event names on the notification stream
const (
	EventConnected    = "connected"
	EventNotification = "notification"
)

// Event is a single server-sent event as received off the wire
type Event struct {
	Name string
	Data string
}

// Config holds stream client configuration
type Config struct {
	URL                  string
	HTTPClient           *http.Client
	ConnectTimeoutMs     int
	ReconnectBaseDelayMs int
	ReconnectMaxDelayMs  int
	MaxReconnectAttempts int
}

// DefaultConfig returns a development configuration
func DefaultConfig() Config {
	return Config{
		HTTPClient:           http.DefaultClient,
		ConnectTimeoutMs:     15000,
		ReconnectBaseDelayMs: 2000,
		ReconnectMaxDelayMs:  30000,
		MaxReconnectAttempts: 5,
	}
}

// ConfigFromSettings builds a Config from the loaded configuration file
func ConfigFromSettings(url string, httpClient *http.Client) Config {
	cfg := DefaultConfig()
	cfg.URL = url
	cfg.HTTPClient = httpClient
	if v := viper.GetInt("stream.connect_timeout_ms"); v > 0 {
		cfg.ConnectTimeoutMs = v
	}
	if v := viper.GetInt("stream.reconnect_base_delay_ms"); v > 0 {
		cfg.ReconnectBaseDelayMs = v
	}
	if v := viper.GetInt("stream.reconnect_max_delay_ms"); v > 0 {
		cfg.ReconnectMaxDelayMs = v
	}
	if viper.IsSet("stream.max_reconnect_attempts") {
		cfg.MaxReconnectAttempts = viper.GetInt("stream.max_reconnect_attempts")
	}
	return cfg
}

// ConnectionState represents the state of the event stream connection
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// ConnectionStats holds connection statistics
type ConnectionStats struct {
	EventsReceived int64
	ReconnectCount int
	LastError      string
	ConnectedAt    time.Time
	DisconnectedAt time.Time
}

// Client consumes a server-sent-event stream. Authentication rides on the
// HTTP client's cookie jar, plus an optional bearer token. Events are
// dispatched to listeners synchronously in arrival order.
type Client struct {
	config Config
	token  string
	state  atomic.Value // ConnectionState

	mu                sync.RWMutex
	body              interface{ Close() error }
	reconnectAttempts int
	reconnectDelay    int

	listenersMu sync.RWMutex
	listeners   map[string]map[int]func(Event)
	nextID      int

	ctx    context.Context
	cancel context.CancelFunc

	statsLock sync.RWMutex
	stats     ConnectionStats
}

// NewClient creates a new stream client
func NewClient(config Config) *Client {
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}
	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		config:         config,
		listeners:      make(map[string]map[int]func(Event)),
		ctx:            ctx,
		cancel:         cancel,
		reconnectDelay: config.ReconnectBaseDelayMs,
	}
	client.state.Store(StateDisconnected)
	return client
}

// SetAuthToken sets a bearer token sent with each connection attempt
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Connect opens the event stream. The read loop runs until Disconnect or a
// terminal reconnection failure.
func (c *Client) Connect() error {
	c.setState(StateConnecting)

	body, err := c.dial()
	if err != nil {
		c.setState(StateDisconnected)
		c.recordError(err.Error())
		return err
	}

	c.mu.Lock()
	c.body = body
	c.reconnectAttempts = 0
	c.reconnectDelay = c.config.ReconnectBaseDelayMs
	c.mu.Unlock()

	c.setState(StateConnected)
	c.recordConnected()

	go c.readLoop(body)

	logger.Debug("Event stream connected", "url", c.config.URL)
	return nil
}

// Disconnect closes the stream and stops any reconnection in progress
func (c *Client) Disconnect() {
	c.cancel()

	c.mu.Lock()
	if c.body != nil {
		c.body.Close()
		c.body = nil
	}
	c.mu.Unlock()

	c.setState(StateDisconnected)
	c.recordDisconnected()

	logger.Debug("Event stream disconnected")
}

// State returns the current connection state
func (c *Client) State() ConnectionState {
	return c.state.Load().(ConnectionState)
}

// IsConnected returns true if the stream is established
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// On subscribes to a named event. Returns an unsubscribe function.
func (c *Client) On(name string, callback func(Event)) func() {
	c.listenersMu.Lock()
	if c.listeners[name] == nil {
		c.listeners[name] = make(map[int]func(Event))
	}
	id := c.nextID
	c.nextID++
	c.listeners[name][id] = callback
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.listeners[name], id)
	}
}

// GetStats returns connection statistics
func (c *Client) GetStats() ConnectionStats {
	c.statsLock.RLock()
	defer c.statsLock.RUnlock()
	return c.stats
}

func (c *Client) dial() (interface{ Close() error }, error) {
	reqCtx, cancel := context.WithCancel(c.ctx)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.config.URL, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// The timeout covers the handshake only. Once headers arrive the timer
	// is stopped and the stream lives on until the request context is
	// cancelled through Close or Disconnect.
	timeout := time.Duration(c.config.ConnectTimeoutMs) * time.Millisecond
	timer := time.AfterFunc(timeout, cancel)

	resp, err := c.config.HTTPClient.Do(req)
	timer.Stop()
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("event stream rejected: %s", resp.Status)
	}

	return &eventBody{reader: bufio.NewReader(resp.Body), closer: resp.Body, cancel: cancel}, nil
}

type eventBody struct {
	reader *bufio.Reader
	closer interface{ Close() error }
	cancel context.CancelFunc
}

func (b *eventBody) Close() error {
	b.cancel()
	return b.closer.Close()
}

// readLoop parses SSE frames off the wire and emits completed events.
// Dispatch is synchronous so listeners observe events in arrival order.
func (c *Client) readLoop(body interface{ Close() error }) {
	defer c.handleDisconnect()

	eb := body.(*eventBody)
	var name string
	var data []string

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		line, err := eb.reader.ReadString('\n')
		if err != nil {
			if c.ctx.Err() == nil {
				c.recordError(err.Error())
				logger.Debug("Event stream read error", "error", err)
			}
			return
		}

		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			// Blank line terminates the frame
			if len(data) > 0 || name != "" {
				c.emit(Event{Name: eventName(name), Data: strings.Join(data, "\n")})
			}
			name = ""
			data = nil
			continue
		}

		if strings.HasPrefix(line, ":") {
			// Comment / keep-alive
			continue
		}

		field, value := splitField(line)
		switch field {
		case "event":
			name = value
		case "data":
			data = append(data, value)
		}
		// id and retry fields are not used by the notification stream
	}
}

func (c *Client) emit(event Event) {
	c.recordEventReceived()

	c.listenersMu.RLock()
	registered := c.listeners[event.Name]
	ids := make([]int, 0, len(registered))
	for id := range registered {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	callbacks := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, registered[id])
	}
	c.listenersMu.RUnlock()

	for _, callback := range callbacks {
		callback(event)
	}
}

// handleDisconnect reconnects with exponential backoff and jitter. After
// MaxReconnectAttempts consecutive failures the client gives up and settles
// in the disconnected state.
func (c *Client) handleDisconnect() {
	c.mu.Lock()
	if c.body != nil {
		c.body.Close()
		c.body = nil
	}
	c.mu.Unlock()

	c.recordDisconnected()

	if c.ctx.Err() != nil {
		c.setState(StateDisconnected)
		return
	}

	c.setState(StateConnecting)

	for {
		c.mu.Lock()
		attempts := c.reconnectAttempts
		delay := c.reconnectDelay
		c.mu.Unlock()

		if c.config.MaxReconnectAttempts >= 0 && attempts >= c.config.MaxReconnectAttempts {
			c.setState(StateDisconnected)
			logger.Error("Event stream gave up reconnecting", "attempts", attempts)
			return
		}

		backoff := time.Duration(delay) * time.Millisecond
		jitter := time.Duration(rand.Intn(1000)) * time.Millisecond
		waitTime := backoff + jitter

		logger.Debug("Reconnecting event stream", "attempt", attempts+1, "wait_ms", waitTime.Milliseconds())

		select {
		case <-c.ctx.Done():
			c.setState(StateDisconnected)
			return
		case <-time.After(waitTime):
		}

		body, err := c.dial()
		if err != nil {
			c.recordError(err.Error())
			c.mu.Lock()
			c.reconnectAttempts++
			c.reconnectDelay = int(math.Min(
				float64(c.reconnectDelay*2),
				float64(c.config.ReconnectMaxDelayMs),
			))
			c.mu.Unlock()
			continue
		}

		c.mu.Lock()
		c.body = body
		c.reconnectAttempts = 0
		c.reconnectDelay = c.config.ReconnectBaseDelayMs
		c.mu.Unlock()

		c.statsLock.Lock()
		c.stats.ReconnectCount++
		c.statsLock.Unlock()

		c.setState(StateConnected)
		c.recordConnected()

		logger.Debug("Event stream reconnected")

		go c.readLoop(body)
		return
	}
}

func eventName(name string) string {
	if name == "" {
		return "message"
	}
	return name
}

func splitField(line string) (string, string) {
	field, value, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return field, strings.TrimPrefix(value, " ")
}

func (c *Client) setState(state ConnectionState) {
	c.state.Store(state)
}

func (c *Client) recordEventReceived() {
	c.statsLock.Lock()
	c.stats.EventsReceived++
	c.statsLock.Unlock()
}

func (c *Client) recordError(errMsg string) {
	c.statsLock.Lock()
	c.stats.LastError = errMsg
	c.statsLock.Unlock()
}

func (c *Client) recordConnected() {
	c.statsLock.Lock()
	c.stats.ConnectedAt = time.Now()
	c.statsLock.Unlock()
}

func (c *Client) recordDisconnected() {
	c.statsLock.Lock()
	c.stats.DisconnectedAt = time.Now()
	c.statsLock.Unlock()
}
