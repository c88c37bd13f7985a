package radserver

import (
	"errors"
	"log/slog"

	"github.com/dantte-lp/goradius/internal/authbackend"
	"github.com/dantte-lp/goradius/internal/radius"
	"github.com/dantte-lp/goradius/internal/radnet"
)

// Well-known attribute codes the access/accounting handlers read and
// write directly (RFC 2865 section 5); these are fixed wire identities,
// not dictionary lookups.
const (
	codeUserName     uint8 = 1
	codeUserPassword uint8 = 2
)

// ErrUnconfiguredAuthPath indicates an Access-Request was received but
// neither an ExternalAuthenticator nor a CredentialStore is configured.
var ErrUnconfiguredAuthPath = errors.New("radserver: no authentication path configured")

// Metrics receives best-effort counters from the server loop. A nil
// Metrics is valid; callers that don't need metrics simply omit WithMetrics.
type Metrics interface {
	PacketReceived(code radius.Code)
	PacketDropped(reason string)
	PacketSent(code radius.Code)
	AuthFailure()
}

// Server is the RADIUS authentication + accounting dispatch loop. One
// Server owns two sockets: authentication (default 1812/udp) and
// accounting (default 1813/udp).
type Server struct {
	authSock *radnet.Socket
	acctSock *radnet.Socket

	secrets authbackend.SecretResolver
	creds   authbackend.CredentialStore
	extAuth authbackend.ExternalAuthenticator

	metrics Metrics
	logger  *slog.Logger
}

// Option configures optional Server parameters.
type Option func(*Server)

// WithCredentialStore enables the credential-store authentication path.
func WithCredentialStore(store authbackend.CredentialStore) Option {
	return func(s *Server) { s.creds = store }
}

// WithExternalAuthenticator enables the external-authenticator path,
// which is tried before the credential store.
func WithExternalAuthenticator(auth authbackend.ExternalAuthenticator) Option {
	return func(s *Server) { s.extAuth = auth }
}

// WithMetrics attaches a Metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger overrides the default discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New constructs a Server. authSock and acctSock must already be bound
// (radnet.Listen) to the authentication and accounting ports respectively.
func New(authSock, acctSock *radnet.Socket, secrets authbackend.SecretResolver, opts ...Option) *Server {
	s := &Server{
		authSock: authSock,
		acctSock: acctSock,
		secrets:  secrets,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(slog.String("component", "radserver"))

	return s
}

func (s *Server) recordReceived(code radius.Code) {
	if s.metrics != nil {
		s.metrics.PacketReceived(code)
	}
}

func (s *Server) recordDropped(reason string) {
	if s.metrics != nil {
		s.metrics.PacketDropped(reason)
	}
}

func (s *Server) recordSent(code radius.Code) {
	if s.metrics != nil {
		s.metrics.PacketSent(code)
	}
}

func (s *Server) recordAuthFailure() {
	if s.metrics != nil {
		s.metrics.AuthFailure()
	}
}
