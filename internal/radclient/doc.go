// Package radclient implements the RADIUS client request loop: a single
// UDP socket bound to one server, retrying send/receive with
// request/response correlation for one outstanding exchange at a time.
package radclient
