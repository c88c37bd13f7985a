package radius

import "fmt"

// -------------------------------------------------------------------------
// VSA — Vendor-Specific Attribute container (RFC 2865 section 5.26)
// -------------------------------------------------------------------------

// VSA is the decoded form of a Vendor-Specific Attribute (type-code 26):
// a 32-bit SMI vendor-id followed by a nested sequence of sub-attribute
// TLVs. It is a composite nested TLV, not a distinct Packet-level
// attribute kind — ToAttribute/DecodeVSA convert it to and from the plain
// Attribute{Code: 26} that actually travels on the wire.
type VSA struct {
	VendorID uint32
	Sub      []Attribute
}

// NewVSA returns an empty VSA container for vendorID.
func NewVSA(vendorID uint32) *VSA {
	return &VSA{VendorID: vendorID}
}

// Add appends a sub-attribute.
func (v *VSA) Add(code uint8, raw []byte) {
	v.Sub = append(v.Sub, Attribute{Code: code, Raw: raw})
}

// AddValue looks up name in dict (which must resolve to a sub-attribute
// type owned by v.VendorID), encodes value per its declared kind, and
// appends the resulting sub-attribute.
func (v *VSA) AddValue(dict *Dictionary, name string, value any) error {
	at, ok := dict.LookupByName(name)
	if !ok {
		return fmt.Errorf("vsa add %s: %w", name, ErrUnknownAttribute)
	}
	if at.VendorID != int32(v.VendorID) { //nolint:gosec // G115: VendorID is a 32-bit SMI number.
		return fmt.Errorf("vsa add %s: %w: registered under vendor %d, container is vendor %d",
			name, ErrInvalidValue, at.VendorID, v.VendorID)
	}

	raw, err := EncodeValue(at.Kind, value, at)
	if err != nil {
		return fmt.Errorf("vsa add %s: %w", name, err)
	}

	v.Add(at.Code, raw)

	return nil
}

// SubAttribute returns the single sub-attribute with the given code. It
// fails with ErrUnknownAttribute if none is present, or ErrInvalidValue
// if more than one is present.
func (v *VSA) SubAttribute(code uint8) (Attribute, error) {
	return singleByCode(v.Sub, code)
}

// SubAttributesByCode returns every sub-attribute with the given code, in
// insertion order.
func (v *VSA) SubAttributesByCode(code uint8) []Attribute {
	return byCode(v.Sub, code)
}

// SubAttributeByName resolves name via dict (checking it belongs to
// v.VendorID) and returns the matching single-occurrence sub-attribute.
func (v *VSA) SubAttributeByName(dict *Dictionary, name string) (Attribute, error) {
	at, ok := dict.LookupByName(name)
	if !ok {
		return Attribute{}, fmt.Errorf("vsa attribute %s: %w", name, ErrUnknownAttribute)
	}
	if at.VendorID != int32(v.VendorID) { //nolint:gosec // G115
		return Attribute{}, fmt.Errorf("vsa attribute %s: %w: registered under vendor %d, container is vendor %d",
			name, ErrUnknownAttribute, at.VendorID, v.VendorID)
	}

	return v.SubAttribute(at.Code)
}

// RemoveSubAttribute removes every sub-attribute whose code equals code,
// preserving the order of the rest.
func (v *VSA) RemoveSubAttribute(code uint8) {
	v.Sub = removeByCode(v.Sub, code)
}

// ToAttribute encodes v into the plain Attribute{Code: 26} that travels
// on the wire: a 4-byte big-endian vendor-id followed by the sub-attribute
// TLVs. It fails with ErrAttributeTooLong if the encoded inner region
// would exceed MaxVSAInnerLen, which keeps the outer TLV within
// MaxValueLen.
func (v *VSA) ToAttribute() (Attribute, error) {
	subs, err := encodeAttributeList(v.Sub)
	if err != nil {
		return Attribute{}, fmt.Errorf("encode vsa %d: %w", v.VendorID, err)
	}

	inner := make([]byte, 4, 4+len(subs))
	putUint32BE(inner, v.VendorID)
	inner = append(inner, subs...)

	if len(inner) > MaxVSAInnerLen {
		return Attribute{}, fmt.Errorf("encode vsa %d: %w: inner region %d bytes", v.VendorID, ErrAttributeTooLong, len(inner))
	}

	return Attribute{Code: codeVSA, Raw: inner}, nil
}

// DecodeVSA parses a Vendor-Specific Attribute's raw value (the Raw field
// of an Attribute{Code: 26}) into a VSA: a 4-byte vendor-id followed by a
// contiguous run of sub-attribute TLVs.
func DecodeVSA(raw []byte) (*VSA, error) {
	if len(raw) < 4 {
		return nil, fmt.Errorf("decode vsa: %w: %d bytes, want at least 4", ErrMalformedPacket, len(raw))
	}

	vendorID := getUint32BE(raw[:4])

	sub, err := decodeAttributeList(raw[4:])
	if err != nil {
		return nil, fmt.Errorf("decode vsa %d: %w", vendorID, err)
	}

	return &VSA{VendorID: vendorID, Sub: sub}, nil
}
