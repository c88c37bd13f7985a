// Package radius implements the core RADIUS protocol (RFC 2865, RFC 2866).
//
// This includes the attribute dictionary, the typed attribute/value model,
// the Vendor-Specific Attribute container, the packet codec, and the
// authenticator engine (request/response authenticators and User-Password
// PAP obfuscation). Client and server transport loops live in the sibling
// radclient and radserver packages.
package radius
