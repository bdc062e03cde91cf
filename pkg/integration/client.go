package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bouwconnect/backend/pkg/popup"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

const (
	PopupWidth  = 600
	PopupHeight = 700

	defaultPendingTimeout = 2 * time.Minute
)

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrToolNotConnected = errors.New("tool is not connected")
)

type Status string

const (
	StatusNotConnected Status = "not_connected"
	StatusPending      Status = "pending"
	StatusConnected    Status = "connected"
)

type Config struct {
	RelayURL string

	// UserID is the app user the tokens are stored for on the relay. Tokens
	// are kept locally only when it is empty.
	UserID string

	Tools          []string
	PendingTimeout time.Duration
}

type pendingConnect struct {
	timer *time.Timer
}

type listener struct {
	done     chan struct{}
	finished chan struct{}
	once     sync.Once
}

func (l *listener) stop() {
	l.once.Do(func() { close(l.done) })
	<-l.finished
}

// Client drives the popup authorization of tools and tracks which tools are
// connected.
type Client struct {
	cfg      Config
	window   Window
	storage  Storage
	relay    Relay
	source   MessageSource
	notifier Notifier

	mu       sync.Mutex
	links    []string
	pending  map[string]*pendingConnect
	listener *listener
}

func New(
	cfg Config,
	window Window,
	storage Storage,
	relay Relay,
	source MessageSource,
	notifier Notifier,
) *Client {
	if cfg.PendingTimeout <= 0 {
		cfg.PendingTimeout = defaultPendingTimeout
	}

	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}

	return &Client{
		cfg:      cfg,
		window:   window,
		storage:  storage,
		relay:    relay,
		source:   source,
		notifier: notifier,
		pending:  map[string]*pendingConnect{},
	}
}

func tokenKey(tool string) string {
	return tool + "_token"
}

func refreshTokenKey(tool string) string {
	return tool + "_refresh_token"
}

func (c *Client) checkTool(tool string) error {
	if !slices.Contains(c.cfg.Tools, tool) {
		return fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}

	return nil
}

// SetLinks replaces the tools the user has added.
func (c *Client) SetLinks(tools []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.links = append([]string{}, tools...)
}

// LoadLinks fetches the tools the user has added from the relay.
func (c *Client) LoadLinks(ctx context.Context) error {
	tools, err := c.relay.Tools(ctx, c.cfg.UserID)
	if err != nil {
		return err
	}

	c.SetLinks(tools)
	return nil
}

// Listen consumes the message source until ctx is done or the returned
// function is called. Only one consumer runs at a time, calling Listen while
// listening returns the stop function of the running consumer.
func (c *Client) Listen(ctx context.Context) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.listener != nil {
		return c.listener.stop
	}

	l := &listener{done: make(chan struct{}), finished: make(chan struct{})}
	c.listener = l

	messages, unsubscribe := c.source.Subscribe()
	go func() {
		defer func() {
			unsubscribe()

			c.mu.Lock()
			if c.listener == l {
				c.listener = nil
			}
			c.mu.Unlock()

			close(l.finished)
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case <-l.done:
				return
			case data, ok := <-messages:
				if !ok {
					return
				}

				if err := c.HandleMessage(ctx, data); err != nil {
					xcontext.Logger(ctx).Warnf("Cannot handle message: %v", err)
				}
			}
		}
	}()

	return l.stop
}

// Connect opens the authorization popup of the tool. The result arrives later
// through the message source. The tool reverts to not connected when no
// result arrives in time.
func (c *Client) Connect(ctx context.Context, tool string) error {
	if err := c.checkTool(tool); err != nil {
		return err
	}

	c.Listen(ctx)

	c.mu.Lock()
	if p, ok := c.pending[tool]; ok {
		p.timer.Stop()
	}

	p := &pendingConnect{}
	p.timer = time.AfterFunc(c.cfg.PendingTimeout, func() { c.expire(tool, p) })
	c.pending[tool] = p
	c.mu.Unlock()

	url := fmt.Sprintf("%s/%s/auth", strings.TrimSuffix(c.cfg.RelayURL, "/"), tool)
	if err := c.window.Open(url, PopupWidth, PopupHeight); err != nil {
		c.clearPending(tool)
		return err
	}

	return nil
}

func (c *Client) expire(tool string, p *pendingConnect) {
	c.mu.Lock()
	current, ok := c.pending[tool]
	if !ok || current != p {
		c.mu.Unlock()
		return
	}
	delete(c.pending, tool)
	c.mu.Unlock()

	c.notifier.Notify(Notification{
		Tool:    tool,
		Level:   LevelError,
		Message: fmt.Sprintf("Verbinding met %s is niet voltooid", tool),
	})
}

func (c *Client) clearPending(tool string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.pending[tool]; ok {
		p.timer.Stop()
		delete(c.pending, tool)
	}
}

// HandleMessage processes a message of the source. Messages of other
// protocols are ignored.
func (c *Client) HandleMessage(ctx context.Context, data any) error {
	envelope, ok, err := popup.Decode(data, c.cfg.Tools)
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	if envelope.Kind == popup.KindError {
		c.mu.Lock()
		for tool, p := range c.pending {
			p.timer.Stop()
			delete(c.pending, tool)
		}
		c.mu.Unlock()

		c.notifier.Notify(Notification{Level: LevelError, Message: envelope.Message})
		return nil
	}

	tool := envelope.Tool
	if err := c.storage.Set(tokenKey(tool), envelope.AccessToken); err != nil {
		return err
	}

	if envelope.RefreshToken != "" {
		err = c.storage.Set(refreshTokenKey(tool), envelope.RefreshToken)
	} else {
		err = c.storage.Remove(refreshTokenKey(tool))
	}
	if err != nil {
		return err
	}

	level := LevelSuccess
	message := fmt.Sprintf("%s succesvol verbonden", tool)
	if c.cfg.UserID != "" {
		err := c.relay.StoreToken(ctx, &TokenRecord{
			UserID:       c.cfg.UserID,
			ToolID:       tool,
			AccessToken:  envelope.AccessToken,
			RefreshToken: envelope.RefreshToken,
			ExpiresIn:    envelope.ExpiresIn,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot store token of %s on relay: %v", tool, err)
			level = LevelWarning
			message = fmt.Sprintf("%s verbonden, maar niet opgeslagen op de server", tool)
		}
	}

	c.clearPending(tool)
	c.notifier.Notify(Notification{Tool: tool, Level: level, Message: message})
	return nil
}

// IsConnected reports whether the tool is added and has a local token.
func (c *Client) IsConnected(tool string) bool {
	c.mu.Lock()
	linked := slices.Contains(c.links, tool)
	c.mu.Unlock()

	if !linked {
		return false
	}

	token, ok := c.storage.Get(tokenKey(tool))
	return ok && token != ""
}

func (c *Client) Status(tool string) Status {
	c.mu.Lock()
	_, pending := c.pending[tool]
	c.mu.Unlock()

	if pending {
		return StatusPending
	}

	if c.IsConnected(tool) {
		return StatusConnected
	}

	return StatusNotConnected
}

// ConnectedTools returns the connected tools in link order.
func (c *Client) ConnectedTools() []string {
	c.mu.Lock()
	links := append([]string{}, c.links...)
	c.mu.Unlock()

	result := []string{}
	for _, tool := range links {
		if c.IsConnected(tool) {
			result = append(result, tool)
		}
	}

	return result
}

// CanImport returns ErrToolNotConnected when files of the tool cannot be
// imported.
func (c *Client) CanImport(tool string) error {
	if !c.IsConnected(tool) {
		return fmt.Errorf("%w: %s", ErrToolNotConnected, tool)
	}

	return nil
}

// Disconnect forgets the local token of the tool and asks the relay to
// disconnect it.
func (c *Client) Disconnect(ctx context.Context, tool string) error {
	if err := c.checkTool(tool); err != nil {
		return err
	}

	c.clearPending(tool)

	if err := c.storage.Remove(tokenKey(tool)); err != nil {
		return err
	}

	if err := c.storage.Remove(refreshTokenKey(tool)); err != nil {
		return err
	}

	if c.cfg.UserID == "" {
		return nil
	}

	return c.relay.Disconnect(ctx, c.cfg.UserID, tool)
}

// Close stops the listener and every pending timeout.
func (c *Client) Close() {
	c.mu.Lock()
	l := c.listener
	for tool, p := range c.pending {
		p.timer.Stop()
		delete(c.pending, tool)
	}
	c.mu.Unlock()

	if l != nil {
		l.stop()
	}
}
