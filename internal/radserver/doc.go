// Package radserver implements the RADIUS server dispatch loop:
// per-socket UDP receive, per-client shared-secret resolution, request
// classification, handler dispatch, and reply.
package radserver
