package authbackend

import (
	"context"
	"errors"
)

// ErrNotFound is returned by CredentialStore.PasswordFor and
// SecretResolver.SecretFor when no entry exists for the given key.
var ErrNotFound = errors.New("authbackend: not found")

// CredentialStore resolves a user name to its clear-text password.
// Implementations may block on network or disk I/O; the server's access
// handler calls this synchronously, so it must be safe to call from a
// worker goroutine.
type CredentialStore interface {
	// PasswordFor returns the password registered for userName, or
	// ErrNotFound if no such user is registered.
	PasswordFor(ctx context.Context, userName string) (string, error)
}

// ExternalAuthenticator evaluates a user name/password pair against an
// out-of-band authority (e.g. an LDAP directory) and reports accept or
// reject. It never returns ErrNotFound: an unknown user is simply a
// rejection.
type ExternalAuthenticator interface {
	Authenticate(ctx context.Context, userName, password string) (bool, error)
}

// SecretResolver maps a NAS client address to its configured shared
// secret.
type SecretResolver interface {
	// SecretFor returns the shared secret configured for clientAddr
	// (dotted-quad), or ErrNotFound if the address is not a known NAS.
	SecretFor(clientAddr string) (string, error)
}
