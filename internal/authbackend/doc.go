// Package authbackend implements the RADIUS core's external collaborator
// contracts: CredentialStore, ExternalAuthenticator,
// and SecretResolver. The core treats every implementation here as an
// opaque, possibly-blocking dependency called from the server's access
// handler.
package authbackend
