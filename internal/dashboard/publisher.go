// Package dashboard publishes composition results to an operator dashboard
// over socket.io. Publishing is an optional side channel: a failed or slow
// dashboard never affects the composed result, which is already final by the
// time an event is emitted.
package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/rigcompose/internal/composer"
	"github.com/vk/rigcompose/internal/ctxlog"
)

// EventName is the socket.io event a composition summary is emitted under.
const EventName = "composition"

// DefaultTimeout bounds one publish attempt, connection included.
const DefaultTimeout = 10 * time.Second

// Publisher emits composition events to a single dashboard endpoint.
type Publisher struct {
	url       string
	namespace string
	timeout   time.Duration
}

// NewPublisher creates a publisher for the given dashboard URL. The URL path
// is used as the socket.io mount path; namespace "/" is assumed.
func NewPublisher(rawURL string) *Publisher {
	return &Publisher{
		url:       rawURL,
		namespace: "/",
		timeout:   DefaultTimeout,
	}
}

// Event is the payload shape emitted for one composition pass.
type Event struct {
	PassID string   `json:"pass_id"`
	Robot  string   `json:"robot"`
	Mode   string   `json:"mode"`
	Base   string   `json:"base"`
	Roles  []string `json:"roles"`
}

// NewEvent builds the dashboard payload for a composition result.
func NewEvent(res *composer.Result) Event {
	mode := "hardware"
	if res.Flag {
		mode = "fake"
	}

	roles := make([]string, 0, len(res.Directives))
	for _, d := range res.Directives {
		roles = append(roles, string(d.Role))
	}

	return Event{
		PassID: res.PassID,
		Robot:  res.Robot,
		Mode:   mode,
		Base:   res.Base,
		Roles:  roles,
	}
}

// opResult passes the outcome of one publish attempt through the done channel.
type opResult struct {
	err error
}

// Publish connects to the dashboard, emits one composition event, and waits
// for the emit acknowledgement or a timeout.
func (p *Publisher) Publish(ctx context.Context, res *composer.Result) error {
	logger := ctxlog.FromContext(ctx).With("dashboard", p.url, "pass_id", res.PassID)
	logger.Debug("Dashboard publish started")
	defer logger.Debug("Dashboard publish finished")

	var isConnected atomic.Bool

	parsedURL, err := url.Parse(p.url)
	if err != nil {
		return fmt.Errorf("failed to parse dashboard URL: %w", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	done := make(chan opResult, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(p.namespace, opts)
	defer func() {
		logger.Debug("Disconnecting dashboard client")
		io.Disconnect()
	}()

	event := NewEvent(res)

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Connected to dashboard", "sid", io.Id())
		io.Emit(EventName, event)
		done <- opResult{}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		if e, ok := errs[0].(error); ok {
			done <- opResult{err: e}
			return
		}
		done <- opResult{err: fmt.Errorf("dashboard connect error: %v", errs[0])}
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return fmt.Errorf("timed out after connecting while emitting %q event", EventName)
		}
		return fmt.Errorf("timed out connecting to dashboard at %s", p.url)
	case r := <-done:
		if r.err != nil {
			return fmt.Errorf("dashboard publish failed: %w", r.err)
		}
		logger.Info("Composition event published", "event", EventName, "robot", event.Robot, "mode", event.Mode)
		return nil
	}
}
