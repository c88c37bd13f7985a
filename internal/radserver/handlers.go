package radserver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dantte-lp/goradius/internal/authbackend"
	"github.com/dantte-lp/goradius/internal/radius"
)

// handleAccessRequest extracts User-Name/User-Password, tries the
// external authenticator (if configured), falls back to the credential
// store (if configured), and builds Access-Accept or Access-Reject
// accordingly. Proxy-State attributes are copied from request to reply
// in original order.
func (s *Server) handleAccessRequest(ctx context.Context, req *radius.Packet, logger *slog.Logger) *radius.Packet {
	userAttr, err := req.Attribute(codeUserName)
	if err != nil {
		logger.Warn("access-request missing User-Name", slog.String("error", err.Error()))
		s.recordDropped("missing_username")
		return nil
	}
	userName := string(userAttr.Raw)

	passAttr, err := req.Attribute(codeUserPassword)
	if err != nil {
		logger.Warn("access-request missing User-Password", slog.String("error", err.Error()))
		s.recordDropped("missing_password")
		return nil
	}
	password := string(passAttr.Raw)

	accept, err := s.evaluateAccess(ctx, userName, password)
	if err != nil {
		if errors.Is(err, ErrUnconfiguredAuthPath) {
			logger.Error("no authentication path configured")
		} else {
			logger.Warn("authentication backend error", slog.String("error", err.Error()))
		}
		s.recordDropped("auth_backend_error")
		return nil
	}

	code := radius.CodeAccessReject
	if accept {
		code = radius.CodeAccessAccept
	} else {
		s.recordAuthFailure()
	}

	reply := radius.NewReply(code, req)
	radius.CopyProxyState(reply, req)

	return reply
}

// evaluateAccess tries the external authenticator first; if it does not
// accept, the credential store decides. With only the external
// authenticator configured, its result (and error) is returned as is. It
// fails with ErrUnconfiguredAuthPath if neither is configured.
func (s *Server) evaluateAccess(ctx context.Context, userName, password string) (bool, error) {
	if s.extAuth != nil {
		accept, err := s.extAuth.Authenticate(ctx, userName, password)
		if (err == nil && accept) || s.creds == nil {
			return accept, err
		}
	}

	if s.creds != nil {
		stored, err := s.creds.PasswordFor(ctx, userName)
		if err != nil {
			if errors.Is(err, authbackend.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		return stored == password, nil
	}

	return false, ErrUnconfiguredAuthPath
}

// handleAccountingRequest always replies Accounting-Response, copying
// Proxy-State attributes in original order.
func (s *Server) handleAccountingRequest(req *radius.Packet, _ *slog.Logger) *radius.Packet {
	reply := radius.NewReply(radius.CodeAccountingResponse, req)
	radius.CopyProxyState(reply, req)

	return reply
}
