package radclient

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/dantte-lp/goradius/internal/radius"
	"github.com/dantte-lp/goradius/internal/radnet"
)

// DefaultAuthPort is the RFC 2865 authentication port.
const DefaultAuthPort = 1812

// DefaultAcctPort is the RFC 2866 accounting port.
const DefaultAcctPort = 1813

// DefaultRetryCount is the number of send attempts before
// ErrCommunicationFailure is raised.
const DefaultRetryCount = 3

// DefaultTimeout is the per-attempt receive timeout.
const DefaultTimeout = 3 * time.Second

// ErrCommunicationFailure indicates the retry budget was exhausted
// without a valid, correlated response.
var ErrCommunicationFailure = errors.New("radclient: communication failure")

// Client is a single RADIUS request/response exchange endpoint: one UDP
// socket, one target server, one shared secret. All operations on a
// Client are serialized: only one outstanding
// communicate at a time.
type Client struct {
	mu      sync.Mutex
	sock    *radnet.Socket
	secret  string
	retry   int
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures optional Client parameters.
type Option func(*Client)

// WithRetryCount overrides DefaultRetryCount.
func WithRetryCount(n int) Option {
	return func(c *Client) { c.retry = n }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger overrides the default discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New dials addr (host:port, e.g. "203.0.113.5:1812") and returns a Client
// that authenticates exchanges with secret.
func New(addr, secret string, opts ...Option) (*Client, error) {
	sock, err := radnet.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("radclient new: %w", err)
	}

	c := &Client{
		sock:    sock,
		secret:  secret,
		retry:   DefaultRetryCount,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(slog.String("component", "radclient"), slog.String("server", addr))

	return c, nil
}

// Close releases the client's socket.
func (c *Client) Close() error {
	return c.sock.Close()
}

// Communicate serializes req, then sends and awaits a correlated,
// authenticated response, retrying up to the configured retry count.
// req.Identifier should already have been set via radius.NextIdentifier
// by the caller.
func (c *Client) Communicate(req *radius.Packet) (*radius.Packet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	datagram, err := radius.EncodeRequest(req, c.secret)
	if err != nil {
		return nil, fmt.Errorf("radclient communicate: encode: %w", err)
	}

	var lastErr error

	for attempt := 1; attempt <= c.retry; attempt++ {
		if err := c.sock.Send(datagram); err != nil {
			lastErr = err
			c.logger.Debug("send failed", slog.Int("attempt", attempt), slog.String("error", err.Error()))
			continue
		}

		resp, err := c.awaitResponse(req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		c.logger.Debug("attempt failed", slog.Int("attempt", attempt), slog.String("error", err.Error()))
	}

	c.logger.Warn("communication failure", slog.Int("retries", c.retry), slog.String("error", errString(lastErr)))

	return nil, fmt.Errorf("radclient communicate: %w: %w", ErrCommunicationFailure, lastErr)
}

// awaitResponse blocks up to the configured timeout for a datagram that
// decodes as a valid response to req.
func (c *Client) awaitResponse(req *radius.Packet) (*radius.Packet, error) {
	dg, err := c.sock.RecvTimeout(c.timeout)
	if err != nil {
		return nil, fmt.Errorf("recv: %w", err)
	}

	resp, err := radius.DecodeResponse(dg.Payload, c.secret, req)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return resp, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// defaultAddr renders a host + port pair the way the factories below
// expect it, for callers that only have a bare host string.
func defaultAddr(host string, port int) string {
	return net.JoinHostPort(host, fmt.Sprintf("%d", port))
}

// NewAuth dials host on DefaultAuthPort (1812/udp).
func NewAuth(host, secret string, opts ...Option) (*Client, error) {
	return New(defaultAddr(host, DefaultAuthPort), secret, opts...)
}

// NewAcct dials host on DefaultAcctPort (1813/udp).
func NewAcct(host, secret string, opts ...Option) (*Client, error) {
	return New(defaultAddr(host, DefaultAcctPort), secret, opts...)
}
