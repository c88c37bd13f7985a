package radius

import "fmt"

// NoVendor is the distinguished vendor-id for standard (non-VSA)
// attributes.
const NoVendor int32 = -1

// -------------------------------------------------------------------------
// AttributeType — dictionary entry
// -------------------------------------------------------------------------

// AttributeType describes one registered attribute: its name, its
// (vendor, code) wire identity, its value-kind, and (for KindInteger) any
// named aliases.
type AttributeType struct {
	// Name is the non-empty dictionary name, e.g. "User-Name".
	Name string

	// VendorID is NoVendor for standard attributes, or the owning
	// vendor's SMI enterprise number for VSA sub-attributes.
	VendorID int32

	// Code is the attribute type-code, 1..255.
	Code uint8

	// Kind is the value-encoding rule for this attribute.
	Kind ValueKind

	// Values maps alias name -> integer value for KindInteger attributes
	// with enumerated named values (e.g. Service-Type). Nil if none.
	Values map[string]uint32
}

func (at *AttributeType) namedValues() map[string]uint32 {
	if at == nil || at.Values == nil {
		return map[string]uint32{}
	}
	return at.Values
}

// codeKey uniquely identifies an attribute type by its wire identity.
type codeKey struct {
	vendor int32
	code   uint8
}

// -------------------------------------------------------------------------
// Dictionary — bidirectional (vendor,code) <-> name registry
// -------------------------------------------------------------------------

// Dictionary is a registry of attribute types, indexed both by name and
// by (vendor, code). It is constructed once at startup (via NewDictionary
// plus Register calls, or DefaultDictionary) and is read-only thereafter;
// concurrent readers are safe.
type Dictionary struct {
	byCode  map[codeKey]*AttributeType
	byName  map[string]*AttributeType
	vendors map[int32]string
}

// NewDictionary returns an empty, mutable Dictionary. Call Register to
// populate it, or use DefaultDictionary for the embedded RFC 2865 table.
func NewDictionary() *Dictionary {
	return &Dictionary{
		byCode:  make(map[codeKey]*AttributeType),
		byName:  make(map[string]*AttributeType),
		vendors: make(map[int32]string),
	}
}

// Register adds at to the dictionary. It fails with
// ErrDuplicateAttributeType if an entry with the same (vendor, code) or
// the same name is already registered. Names are unique across the whole
// dictionary: a name already registered under another vendor is rejected
// as well.
//
// Register is setup-only: it is not safe to call concurrently with
// lookups, and must complete before the dictionary is shared across
// goroutines.
func (d *Dictionary) Register(at AttributeType) error {
	if at.Name == "" {
		return fmt.Errorf("register attribute type: %w: empty name", ErrInvalidValue)
	}

	key := codeKey{vendor: at.VendorID, code: at.Code}
	if _, exists := d.byCode[key]; exists {
		return fmt.Errorf("register %s: %w: vendor=%d code=%d",
			at.Name, ErrDuplicateAttributeType, at.VendorID, at.Code)
	}
	if _, exists := d.byName[at.Name]; exists {
		return fmt.Errorf("register %s: %w: duplicate name", at.Name, ErrDuplicateAttributeType)
	}

	entry := at
	d.byCode[key] = &entry
	d.byName[at.Name] = &entry

	return nil
}

// RegisterVendor associates a human-readable name with a vendor-id, used
// by VendorName. It does not need to be called before registering that
// vendor's attributes.
func (d *Dictionary) RegisterVendor(vendorID int32, name string) {
	d.vendors[vendorID] = name
}

// LookupByName returns the attribute type registered under name, or
// (nil, false) if none is registered.
func (d *Dictionary) LookupByName(name string) (*AttributeType, bool) {
	at, ok := d.byName[name]
	return at, ok
}

// LookupByCode returns the attribute type registered for (vendor, code),
// or (nil, false) if none is registered.
func (d *Dictionary) LookupByCode(vendor int32, code uint8) (*AttributeType, bool) {
	at, ok := d.byCode[codeKey{vendor: vendor, code: code}]
	return at, ok
}

// VendorName returns the human-readable name registered for vendorID, or
// (\"\", false) if none is registered.
func (d *Dictionary) VendorName(vendorID int32) (string, bool) {
	name, ok := d.vendors[vendorID]
	return name, ok
}

// Merge registers every attribute type and vendor name from other into d,
// used to layer additional dictionaries on top of DefaultDictionary at
// startup.
// Returns the first registration error encountered, leaving d partially
// merged (callers merging at startup should treat any error as fatal).
func (d *Dictionary) Merge(other *Dictionary) error {
	for _, at := range other.byName {
		if err := d.Register(*at); err != nil {
			return err
		}
	}
	for vendorID, name := range other.vendors {
		d.RegisterVendor(vendorID, name)
	}
	return nil
}
