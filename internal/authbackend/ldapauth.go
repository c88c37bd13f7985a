package authbackend

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// LDAPAuthenticator is an ExternalAuthenticator that validates a user's
// password by binding to an LDAP directory as that user. Each
// Authenticate call opens, binds, and closes its own connection,
// matching the bind-to-verify pattern rather than holding a privileged
// connection open.
type LDAPAuthenticator struct {
	path       string // host:port of the LDAP/AD server.
	domainName string // domain suffix used to build the bind DN, user@domain.
	useTLS     bool
}

// NewLDAPAuthenticator returns an LDAPAuthenticator bound to path
// (host:port) using domainName to build the bind principal.
func NewLDAPAuthenticator(path, domainName string, useTLS bool) *LDAPAuthenticator {
	return &LDAPAuthenticator{path: path, domainName: domainName, useTLS: useTLS}
}

// Authenticate implements ExternalAuthenticator by attempting an LDAP
// simple bind as userName@domainName with password. Invalid credentials
// are reported as a plain rejection (false, nil); any other failure
// (unreachable server, other bind errors) is reported as false together
// with the underlying error for logging.
func (a *LDAPAuthenticator) Authenticate(ctx context.Context, userName, password string) (bool, error) {
	conn, err := a.dial()
	if err != nil {
		return false, fmt.Errorf("ldap authenticate %s: %w", userName, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetTimeout(time.Until(deadline))
	}

	bindDN := fmt.Sprintf("%s@%s", userName, a.domainName)
	if err := conn.Bind(bindDN, password); err != nil {
		if isInvalidCredentials(err) {
			return false, nil
		}
		return false, fmt.Errorf("ldap bind %s: %w", bindDN, err)
	}

	return true, nil
}

func (a *LDAPAuthenticator) dial() (*ldap.Conn, error) {
	if a.useTLS {
		return ldap.DialTLS("tcp", a.path, &tls.Config{MinVersion: tls.VersionTLS12}) //nolint:gosec // G402: directory TLS policy is operator-configured.
	}
	return ldap.Dial("tcp", a.path)
}

func isInvalidCredentials(err error) bool {
	le, ok := err.(*ldap.Error) //nolint:errorlint // ldap.Error is a concrete type, not wrapped.
	if !ok {
		return false
	}
	return le.ResultCode == ldap.LDAPResultInvalidCredentials
}
