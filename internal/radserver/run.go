package radserver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dantte-lp/goradius/internal/radius"
	"github.com/dantte-lp/goradius/internal/radnet"
)

// Run drives both the authentication and accounting receive loops until
// ctx is cancelled. It blocks until both loops have returned.
func (s *Server) Run(ctx context.Context) error {
	done := make(chan struct{}, 2)

	go func() {
		s.recvLoop(ctx, s.authSock)
		done <- struct{}{}
	}()
	go func() {
		s.recvLoop(ctx, s.acctSock)
		done <- struct{}{}
	}()

	<-done
	<-done

	return nil
}

// recvLoop reads datagrams from sock until ctx is cancelled, handling
// each in turn. A malformed or unauthenticated datagram is logged and
// dropped; it never aborts the loop.
func (s *Server) recvLoop(ctx context.Context, sock *radnet.Socket) {
	for {
		dg, err := sock.Recv(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, radnet.ErrClosed) {
				return
			}
			s.logger.Warn("recv error", slog.String("error", err.Error()))
			continue
		}

		s.handleDatagram(ctx, dg, sock)
	}
}

// handleDatagram resolves the shared secret, decodes the request, and
// dispatches it per RFC 2865/2866
func (s *Server) handleDatagram(ctx context.Context, dg radnet.Datagram, sock *radnet.Socket) {
	logger := s.logger.With(
		slog.String("src", dg.Src.String()),
		slog.String("exchange_id", uuid.NewString()),
	)

	secret, err := s.secrets.SecretFor(dg.Src.IP.String())
	if err != nil {
		logger.Warn("unknown client, dropping datagram")
		s.recordDropped("unknown_client")
		return
	}

	req, err := radius.DecodeRequest(dg.Payload, secret)
	if err != nil {
		logger.Warn("decode failed, dropping datagram", slog.String("error", err.Error()))
		s.recordDropped("decode_failed")
		return
	}
	s.recordReceived(req.Code)

	var reply *radius.Packet

	switch req.Code {
	case radius.CodeAccessRequest:
		reply = s.handleAccessRequest(ctx, req, logger)
	case radius.CodeAccountingRequest:
		reply = s.handleAccountingRequest(req, logger)
	default:
		logger.Warn("unsupported packet type, dropping", slog.String("code", req.Code.String()))
		s.recordDropped("unsupported_type")
		return
	}

	if reply == nil {
		return
	}

	out, err := radius.EncodeResponse(reply, secret, req)
	if err != nil {
		logger.Warn("encode reply failed", slog.String("error", err.Error()))
		s.recordDropped("encode_failed")
		return
	}

	if err := sock.SendTo(out, dg.Src); err != nil {
		logger.Warn("send reply failed", slog.String("error", err.Error()))
		return
	}

	s.recordSent(reply.Code)
}
