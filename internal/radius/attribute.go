package radius

import "fmt"

// -------------------------------------------------------------------------
// Attribute — RFC 2865 section 5 TLV
// -------------------------------------------------------------------------

// Attribute is one type-length-value entry on the wire: an 8-bit type
// code, an implicit length byte, and 0..253 octets of already-kind-encoded
// value. A Vendor-Specific Attribute is represented the same way, with
// Code == 26 and Raw holding the vendor-id plus nested sub-attribute TLVs
// (see vsa.go); it carries no special-cased struct of its own.
type Attribute struct {
	Code uint8
	Raw  []byte
}

// wireLen returns the encoded TLV size: 1 type byte + 1 length byte +
// len(Raw).
func (a Attribute) wireLen() int {
	return 2 + len(a.Raw)
}

// encode appends the TLV encoding of a to buf and returns the result.
func (a Attribute) encode(buf []byte) ([]byte, error) {
	if len(a.Raw) > MaxValueLen {
		return nil, fmt.Errorf("encode attribute %d: %w: %d bytes", a.Code, ErrAttributeTooLong, len(a.Raw))
	}

	buf = append(buf, a.Code, uint8(a.wireLen()))
	buf = append(buf, a.Raw...)

	return buf, nil
}

// Value decodes a's raw octets per kind (see DecodeValue). Integer values
// are returned as plain uint32; named aliases are not resolved.
func (a Attribute) Value(kind ValueKind) (any, error) {
	return DecodeValue(kind, a.Raw)
}

// -------------------------------------------------------------------------
// Attribute-list helpers — shared by Packet and VSA
// -------------------------------------------------------------------------

// byCode returns every attribute in attrs whose Code equals code, in
// insertion order.
func byCode(attrs []Attribute, code uint8) []Attribute {
	var out []Attribute
	for _, a := range attrs {
		if a.Code == code {
			out = append(out, a)
		}
	}
	return out
}

// singleByCode returns the single attribute in attrs whose Code equals
// code. It fails with ErrUnknownAttribute if none match, or
// ErrInvalidValue if more than one matches.
func singleByCode(attrs []Attribute, code uint8) (Attribute, error) {
	matches := byCode(attrs, code)

	switch len(matches) {
	case 0:
		return Attribute{}, fmt.Errorf("attribute %d: %w", code, ErrUnknownAttribute)
	case 1:
		return matches[0], nil
	default:
		return Attribute{}, fmt.Errorf("attribute %d: %w: %d occurrences", code, ErrInvalidValue, len(matches))
	}
}

// removeByCode returns a copy of attrs with every attribute whose Code
// equals code removed, preserving the order of the rest.
func removeByCode(attrs []Attribute, code uint8) []Attribute {
	out := make([]Attribute, 0, len(attrs))
	for _, a := range attrs {
		if a.Code != code {
			out = append(out, a)
		}
	}
	return out
}

// encodeAttributeList encodes attrs in order into a single contiguous TLV
// byte string.
func encodeAttributeList(attrs []Attribute) ([]byte, error) {
	var buf []byte

	for i, a := range attrs {
		var err error
		buf, err = a.encode(buf)
		if err != nil {
			return nil, fmt.Errorf("attribute %d (index %d): %w", a.Code, i, err)
		}
	}

	return buf, nil
}

// decodeAttributeList walks buf as a contiguous TLV byte string and
// returns the attributes found. It fails with ErrMalformedPacket if any
// TLV's length field is less than 2, or extends past the end of buf.
func decodeAttributeList(buf []byte) ([]Attribute, error) {
	var attrs []Attribute

	for len(buf) > 0 {
		if len(buf) < 2 {
			return nil, fmt.Errorf("decode attribute list: %w: truncated TLV header", ErrMalformedPacket)
		}

		code := buf[0]
		length := int(buf[1])

		if length < 2 {
			return nil, fmt.Errorf("decode attribute %d: %w: length %d < 2", code, ErrMalformedPacket, length)
		}
		if length > len(buf) {
			return nil, fmt.Errorf("decode attribute %d: %w: length %d exceeds remaining %d bytes",
				code, ErrMalformedPacket, length, len(buf))
		}

		raw := append([]byte(nil), buf[2:length]...)
		attrs = append(attrs, Attribute{Code: code, Raw: raw})

		buf = buf[length:]
	}

	return attrs, nil
}
