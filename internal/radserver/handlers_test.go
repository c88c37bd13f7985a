package radserver

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/dantte-lp/goradius/internal/authbackend"
	"github.com/dantte-lp/goradius/internal/radius"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestHandleAccessRequestAccept(t *testing.T) {
	s := &Server{creds: authbackend.NewStaticCredentialStore(map[string]string{"alice": "hunter2"})}

	req := radius.AccessRequest("alice", "hunter2")
	req.Identifier = 7

	reply := s.handleAccessRequest(context.Background(), req, discardLogger())
	if reply == nil || reply.Code != radius.CodeAccessAccept {
		t.Fatalf("reply = %+v, want Access-Accept", reply)
	}
	if reply.Identifier != req.Identifier {
		t.Fatalf("identifier = %d, want %d", reply.Identifier, req.Identifier)
	}
}

func TestHandleAccessRequestReject(t *testing.T) {
	s := &Server{creds: authbackend.NewStaticCredentialStore(map[string]string{"alice": "hunter2"})}

	req := radius.AccessRequest("alice", "wrong")
	req.Identifier = 8
	req.Add(radius.Attribute{Code: 33, Raw: []byte("ps1")})

	reply := s.handleAccessRequest(context.Background(), req, discardLogger())
	if reply == nil || reply.Code != radius.CodeAccessReject {
		t.Fatalf("reply = %+v, want Access-Reject", reply)
	}

	ps := reply.AttributesByCode(33)
	if len(ps) != 1 || string(ps[0].Raw) != "ps1" {
		t.Fatalf("proxy-state = %v, want [ps1]", ps)
	}
}

func TestHandleAccessRequestNoAuthPath(t *testing.T) {
	s := &Server{}

	req := radius.AccessRequest("alice", "hunter2")
	req.Identifier = 9

	reply := s.handleAccessRequest(context.Background(), req, discardLogger())
	if reply != nil {
		t.Fatalf("reply = %+v, want nil (dropped)", reply)
	}
}

func TestHandleAccessRequestMissingUserName(t *testing.T) {
	s := &Server{creds: authbackend.NewStaticCredentialStore(nil)}

	req := &radius.Packet{Code: radius.CodeAccessRequest, Identifier: 10}
	req.Add(radius.Attribute{Code: codeUserPassword, Raw: []byte("hunter2")})

	reply := s.handleAccessRequest(context.Background(), req, discardLogger())
	if reply != nil {
		t.Fatalf("reply = %+v, want nil (dropped)", reply)
	}
}

func TestHandleAccountingRequest(t *testing.T) {
	s := &Server{}

	req := radius.AccountingRequest()
	req.Identifier = 20
	req.Add(radius.Attribute{Code: 33, Raw: []byte("ps1")})

	reply := s.handleAccountingRequest(req, discardLogger())
	if reply.Code != radius.CodeAccountingResponse {
		t.Fatalf("code = %s, want Accounting-Response", reply.Code)
	}
	if reply.Identifier != req.Identifier {
		t.Fatalf("identifier = %d, want %d", reply.Identifier, req.Identifier)
	}

	ps := reply.AttributesByCode(33)
	if len(ps) != 1 || string(ps[0].Raw) != "ps1" {
		t.Fatalf("proxy-state = %v, want [ps1]", ps)
	}
}

func TestEvaluateAccessUnconfigured(t *testing.T) {
	s := &Server{}

	_, err := s.evaluateAccess(context.Background(), "alice", "hunter2")
	if !errors.Is(err, ErrUnconfiguredAuthPath) {
		t.Fatalf("err = %v, want ErrUnconfiguredAuthPath", err)
	}
}
