// Package realtime maintains the live push connection for
// server-initiated events. The channel exists only while a session is
// present: it connects on entering the authenticated state and is torn
// down, not abandoned, when the session ends.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/notify"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ConnState is the channel's connection state.
type ConnState int

const (
	Disconnected ConnState = iota
	Connecting
	Connected
)

func (s ConnState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	}
	return fmt.Sprintf("connstate(%d)", int(s))
}

// Notifier is the sink every received event is delivered to, verbatim
// and unfiltered.
type Notifier interface {
	Post(category notify.Category, title, body string) string
}

// Channel is a websocket client that redials with doubling backoff while
// a session is present and stops for good on Close.
type Channel struct {
	url    string
	token  gateway.TokenProvider
	sink   Notifier
	logger zerolog.Logger
	dialer *websocket.Dialer

	initialBackoff time.Duration
	maxBackoff     time.Duration

	lock    sync.Mutex
	state   ConnState
	conn    *websocket.Conn
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

type ChannelOption func(*Channel)

// WithBackoff overrides the reconnect schedule (primarily for testing).
func WithBackoff(initial, max time.Duration) ChannelOption {
	return func(c *Channel) {
		c.initialBackoff = initial
		c.maxBackoff = max
	}
}

// WithLogger sets the connection lifecycle logger.
func WithLogger(logger zerolog.Logger) ChannelOption {
	return func(c *Channel) {
		c.logger = logger
	}
}

// WithDialer overrides the websocket dialer.
func WithDialer(dialer *websocket.Dialer) ChannelOption {
	return func(c *Channel) {
		c.dialer = dialer
	}
}

func NewChannel(url string, token gateway.TokenProvider, sink Notifier, options ...ChannelOption) *Channel {
	c := &Channel{
		url:            url,
		token:          token,
		sink:           sink,
		logger:         zerolog.Nop(),
		dialer:         websocket.DefaultDialer,
		initialBackoff: time.Second,
		maxBackoff:     30 * time.Second,
		state:          Disconnected,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// State returns the current connection state.
func (c *Channel) State() ConnState {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state
}

// Connect starts the connection loop. Idempotent: calling it while the
// loop is already running is a no-op, so it is safe to invoke on every
// authenticated-state signal.
func (c *Channel) Connect() {
	c.lock.Lock()
	if c.running {
		c.lock.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.running = true
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.lock.Unlock()

	go c.run(ctx, done)
}

// Close tears the connection down synchronously and stops reconnecting
// until the next Connect. Idempotent.
func (c *Channel) Close() {
	c.lock.Lock()
	if !c.running {
		c.lock.Unlock()
		return
	}
	c.running = false
	cancel := c.cancel
	done := c.done
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.lock.Unlock()

	cancel()
	<-done

	c.setState(Disconnected)
}

func (c *Channel) setState(state ConnState) {
	c.lock.Lock()
	c.state = state
	c.lock.Unlock()
}

func (c *Channel) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	backoff := c.initialBackoff
	for {
		if ctx.Err() != nil {
			return
		}

		c.setState(Connecting)
		conn, err := c.dial(ctx)
		if err != nil {
			c.setState(Disconnected)
			c.logger.Warn().Err(err).Dur("backoff", backoff).Msg("realtime dial failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > c.maxBackoff {
				backoff = c.maxBackoff
			}
			continue
		}

		c.lock.Lock()
		if !c.running {
			// Closed between dial and registration.
			c.lock.Unlock()
			_ = conn.Close()
			return
		}
		c.conn = conn
		c.lock.Unlock()

		c.setState(Connected)
		c.logger.Info().Msg("realtime channel connected")
		backoff = c.initialBackoff

		c.readLoop(conn)

		c.lock.Lock()
		c.conn = nil
		c.lock.Unlock()
		c.setState(Disconnected)
		c.logger.Info().Msg("realtime channel dropped")
	}
}

func (c *Channel) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if token := c.token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, resp, err := c.dialer.DialContext(ctx, c.url, header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	return conn, err
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		c.dispatch(data)
	}
}

// dispatch decodes one frame and hands it to the notification center.
// The channel performs no filtering or deduplication.
func (c *Channel) dispatch(data []byte) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		c.logger.Warn().Err(err).Msg("discarding malformed realtime frame")
		return
	}

	switch f.Event {
	case EventSOSAlert:
		var alert EmergencyAlert
		if err := json.Unmarshal(f.Data, &alert); err != nil {
			c.logger.Warn().Err(err).Msg("discarding malformed sos_alert payload")
			return
		}
		name := alert.UserName
		if name == "" {
			name = "a user"
		}
		c.sink.Post(notify.Critical, "Emergency signal",
			fmt.Sprintf("An SOS alert has been triggered by %s on ride #%d.", name, alert.RideID))
	case EventNewReport:
		var report NewReport
		if err := json.Unmarshal(f.Data, &report); err != nil {
			c.logger.Warn().Err(err).Msg("discarding malformed new_report payload")
			return
		}
		c.sink.Post(notify.Warning, "New incident reported",
			fmt.Sprintf("A new report has been filed regarding ride #%d.", report.RideID))
	default:
		c.logger.Debug().Str("event", f.Event).Msg("ignoring unknown realtime event")
	}
}
