// Package radnet provides the plain UDP transport shared by the RADIUS
// client and server loops: a bound socket, timed receive, and a fresh
// datagram-sized buffer for each read. There is no GTSM/TTL discipline or
// raw-socket option set here — RADIUS has no equivalent requirement, so
// the transport is a thin wrapper over net.ListenUDP/net.DialUDP.
package radnet
