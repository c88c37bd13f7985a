// radclientctl is a CLI client for exercising a RADIUS server's
// authentication and accounting endpoints (RFC 2865/2866).
package main

import "github.com/dantte-lp/goradius/cmd/radclientctl/commands"

func main() {
	commands.Execute()
}
