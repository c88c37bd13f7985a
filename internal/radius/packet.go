package radius

import (
	"fmt"
	"sync/atomic"
)

// -------------------------------------------------------------------------
// Wire constants — RFC 2865 section 3, section 5
// -------------------------------------------------------------------------

// HeaderSize is the fixed RADIUS header size in bytes: Code(1) +
// Identifier(1) + Length(2) + Authenticator(16).
const HeaderSize = 20

// MaxPacketSize is the maximum total RADIUS datagram size in bytes.
const MaxPacketSize = 4096

// MinPacketSize is the minimum total RADIUS datagram size in bytes (header
// only, zero attributes).
const MinPacketSize = HeaderSize

// MaxValueLen is the maximum serialized length of a single attribute
// value, in bytes.
const MaxValueLen = 253

// MaxVSAInnerLen is the maximum size of a VSA's inner region (vendor-id +
// sub-attribute TLVs) so that the outer TLV (code=26, len = inner+2)
// still fits within MaxValueLen.
const MaxVSAInnerLen = 251

// MaxUserPasswordLen is the maximum cleartext User-Password length
// permitted by RFC 2865 section 5.2.
const MaxUserPasswordLen = 128

// Well-known attribute codes referenced directly by the authenticator
// engine and the packet factories (RFC 2865 section 5).
const (
	codeUserName     uint8 = 1
	codeUserPassword uint8 = 2
	codeVSA          uint8 = 26
	codeProxyState   uint8 = 33
)

// -------------------------------------------------------------------------
// Code — RADIUS packet type (RFC 2865 section 3)
// -------------------------------------------------------------------------

// Code identifies the RADIUS packet type.
type Code uint8

const (
	CodeAccessRequest      Code = 1
	CodeAccessAccept       Code = 2
	CodeAccessReject       Code = 3
	CodeAccountingRequest  Code = 4
	CodeAccountingResponse Code = 5
	CodeAccessChallenge    Code = 11
	CodeDisconnectRequest  Code = 40
	CodeDisconnectACK      Code = 41
	CodeDisconnectNAK      Code = 42
	CodeCoARequest         Code = 43
	CodeCoAACK             Code = 44
	CodeCoANAK             Code = 45
	CodeReserved           Code = 255
)

// String returns the RFC name for the packet type, or "Unknown(n)".
func (c Code) String() string {
	return PacketTypeName(uint8(c))
}

func unknownTypeName(code uint8) string {
	return fmt.Sprintf("Unknown(%d)", code)
}

// -------------------------------------------------------------------------
// Packet — RFC 2865 section 3
// -------------------------------------------------------------------------

// Packet represents a decoded or to-be-encoded RADIUS packet.
//
// Packets are short-lived: built by a factory or the codec, mutated only
// before encoding, and discarded after emission or processing.
type Packet struct {
	// Code is the packet type.
	Code Code

	// Identifier correlates a response to its request (8 bits).
	Identifier uint8

	// Authenticator is the 16-byte integrity/IV field. Its meaning
	// depends on Code: see internal/radius/auth.go.
	Authenticator [16]byte

	// Attributes is the ordered attribute list. Insertion order is
	// preserved on the wire, including repeated codes.
	Attributes []Attribute
}

// AccessRequest builds an Access-Request packet with User-Name and a raw
// (pre-obfuscation) User-Password attribute.
// The authenticator is left zero; EncodeRequest generates it (and
// obfuscates the password) using the shared secret at encode time, since
// the request authenticator must exist before the password can be
// obfuscated against it.
func AccessRequest(user, password string) *Packet {
	return &Packet{
		Code: CodeAccessRequest,
		Attributes: []Attribute{
			{Code: codeUserName, Raw: []byte(user)},
			{Code: codeUserPassword, Raw: []byte(password)},
		},
	}
}

// AccountingRequest builds an Accounting-Request packet with a
// zero-initialized authenticator; EncodeRequest
// computes the authenticator from the serialized attributes and the
// shared secret per RFC 2866.
func AccountingRequest(attrs ...Attribute) *Packet {
	return &Packet{
		Code:       CodeAccountingRequest,
		Attributes: append([]Attribute(nil), attrs...),
	}
}

// NewReply builds a response packet (Access-Accept, Access-Reject,
// Access-Challenge, or Accounting-Response) sharing the request's
// identifier: the reply identifier always equals the request identifier.
func NewReply(code Code, request *Packet) *Packet {
	return &Packet{
		Code:       code,
		Identifier: request.Identifier,
	}
}

// Add appends an attribute to the packet's attribute list.
func (p *Packet) Add(a Attribute) {
	p.Attributes = append(p.Attributes, a)
}

// AddValue looks up name in dict, encodes value per the attribute's
// declared kind, and appends the resulting attribute. Returns
// ErrUnknownAttribute if name is not registered, or the EncodeValue error
// if value cannot be encoded for the attribute's kind.
func (p *Packet) AddValue(dict *Dictionary, name string, value any) error {
	at, ok := dict.LookupByName(name)
	if !ok {
		return fmt.Errorf("add %s: %w", name, ErrUnknownAttribute)
	}
	if at.VendorID != NoVendor {
		return fmt.Errorf("add %s: %w: vendor attribute must be added via a VSA", name, ErrInvalidValue)
	}

	raw, err := EncodeValue(at.Kind, value, at)
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}

	p.Add(Attribute{Code: at.Code, Raw: raw})

	return nil
}

// Attribute returns the single attribute with the given code. It fails
// with ErrUnknownAttribute if none is present, or ErrInvalidValue if more
// than one is present.
func (p *Packet) Attribute(code uint8) (Attribute, error) {
	return singleByCode(p.Attributes, code)
}

// AttributesByCode returns every attribute with the given code, in
// insertion order.
func (p *Packet) AttributesByCode(code uint8) []Attribute {
	return byCode(p.Attributes, code)
}

// AttributeByName resolves name via dict and returns the matching
// single-occurrence attribute.
func (p *Packet) AttributeByName(dict *Dictionary, name string) (Attribute, error) {
	at, ok := dict.LookupByName(name)
	if !ok {
		return Attribute{}, fmt.Errorf("attribute %s: %w", name, ErrUnknownAttribute)
	}
	return p.Attribute(at.Code)
}

// RemoveAttributesByType removes every attribute whose code equals code,
// preserving the order of the rest.
func (p *Packet) RemoveAttributesByType(code uint8) {
	p.Attributes = removeByCode(p.Attributes, code)
}

// VSAs decodes and returns every Vendor-Specific Attribute in the packet,
// in insertion order. Malformed VSA values are skipped.
func (p *Packet) VSAs() []*VSA {
	var out []*VSA
	for _, a := range p.Attributes {
		if a.Code != codeVSA {
			continue
		}
		if v, err := DecodeVSA(a.Raw); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// AddVSA encodes v and appends it to the packet's attribute list.
func (p *Packet) AddVSA(v *VSA) error {
	a, err := v.ToAttribute()
	if err != nil {
		return err
	}
	p.Add(a)
	return nil
}

// CopyProxyState copies every Proxy-State attribute from req into dst, in
// original order, per RFC 2865 section 5.33.
func CopyProxyState(dst, req *Packet) {
	for _, a := range req.AttributesByCode(codeProxyState) {
		dst.Add(a)
	}
}

// -------------------------------------------------------------------------
// Identifier allocation
// -------------------------------------------------------------------------

// identifierCounter is the process-wide monotonic identifier counter
// shared across all outbound client requests. Its startup value is
// unspecified and is never persisted across restarts.
var identifierCounter uint32

// NextIdentifier atomically allocates the next 8-bit RADIUS identifier,
// wrapping 255 -> 0.
func NextIdentifier() uint8 {
	return uint8(atomic.AddUint32(&identifierCounter, 1))
}
