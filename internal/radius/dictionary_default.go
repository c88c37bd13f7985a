package radius

// -------------------------------------------------------------------------
// Default dictionary — RFC 2865 section 5, RFC 2866 section 5
// -------------------------------------------------------------------------

// defaultAttributes lists the standard attribute codes this embedded
// dictionary knows about. Coverage favors the
// attributes exercised by the authentication and accounting flows this
// core implements; the remainder of the 1-79 range is reserved for
// dictionaries merged in at startup (Dictionary.Merge).
var defaultAttributes = []AttributeType{
	{Name: "User-Name", VendorID: NoVendor, Code: 1, Kind: KindString},
	{Name: "User-Password", VendorID: NoVendor, Code: 2, Kind: KindOctets},
	{Name: "CHAP-Password", VendorID: NoVendor, Code: 3, Kind: KindOctets},
	{Name: "NAS-IP-Address", VendorID: NoVendor, Code: 4, Kind: KindIPAddr},
	{Name: "NAS-Port", VendorID: NoVendor, Code: 5, Kind: KindInteger},
	{
		Name: "Service-Type", VendorID: NoVendor, Code: 6, Kind: KindInteger,
		Values: map[string]uint32{
			"Login":             1,
			"Framed":            2,
			"Callback-Login":    3,
			"Callback-Framed":   4,
			"Outbound":          5,
			"Administrative":    6,
			"NAS-Prompt":        7,
			"Authenticate-Only": 8,
			"Callback-NAS-Prompt": 9,
		},
	},
	{Name: "Framed-Protocol", VendorID: NoVendor, Code: 7, Kind: KindInteger},
	{Name: "Framed-IP-Address", VendorID: NoVendor, Code: 8, Kind: KindIPAddr},
	{Name: "Framed-IP-Netmask", VendorID: NoVendor, Code: 9, Kind: KindIPAddr},
	{Name: "Framed-Routing", VendorID: NoVendor, Code: 10, Kind: KindInteger},
	{Name: "Filter-Id", VendorID: NoVendor, Code: 11, Kind: KindString},
	{Name: "Framed-MTU", VendorID: NoVendor, Code: 12, Kind: KindInteger},
	{Name: "Framed-Compression", VendorID: NoVendor, Code: 13, Kind: KindInteger},
	{Name: "Login-IP-Host", VendorID: NoVendor, Code: 14, Kind: KindIPAddr},
	{Name: "Login-Service", VendorID: NoVendor, Code: 15, Kind: KindInteger},
	{Name: "Login-TCP-Port", VendorID: NoVendor, Code: 16, Kind: KindInteger},
	{Name: "Reply-Message", VendorID: NoVendor, Code: 18, Kind: KindString},
	{Name: "Callback-Number", VendorID: NoVendor, Code: 19, Kind: KindString},
	{Name: "Callback-Id", VendorID: NoVendor, Code: 20, Kind: KindString},
	{Name: "Framed-Route", VendorID: NoVendor, Code: 22, Kind: KindString},
	{Name: "Framed-IPX-Network", VendorID: NoVendor, Code: 23, Kind: KindInteger},
	{Name: "State", VendorID: NoVendor, Code: 24, Kind: KindOctets},
	{Name: "Class", VendorID: NoVendor, Code: 25, Kind: KindOctets},
	{Name: "Vendor-Specific", VendorID: NoVendor, Code: 26, Kind: KindOctets},
	{Name: "Session-Timeout", VendorID: NoVendor, Code: 27, Kind: KindInteger},
	{Name: "Idle-Timeout", VendorID: NoVendor, Code: 28, Kind: KindInteger},
	{
		Name: "Termination-Action", VendorID: NoVendor, Code: 29, Kind: KindInteger,
		Values: map[string]uint32{"Default": 0, "RADIUS-Request": 1},
	},
	{Name: "Called-Station-Id", VendorID: NoVendor, Code: 30, Kind: KindString},
	{Name: "Calling-Station-Id", VendorID: NoVendor, Code: 31, Kind: KindString},
	{Name: "NAS-Identifier", VendorID: NoVendor, Code: 32, Kind: KindString},
	{Name: "Proxy-State", VendorID: NoVendor, Code: 33, Kind: KindOctets},
	{Name: "Login-LAT-Service", VendorID: NoVendor, Code: 34, Kind: KindString},
	{Name: "Login-LAT-Node", VendorID: NoVendor, Code: 35, Kind: KindString},
	{Name: "Login-LAT-Group", VendorID: NoVendor, Code: 36, Kind: KindOctets},
	{Name: "Framed-AppleTalk-Link", VendorID: NoVendor, Code: 37, Kind: KindInteger},
	{Name: "Framed-AppleTalk-Network", VendorID: NoVendor, Code: 38, Kind: KindInteger},
	{Name: "Framed-AppleTalk-Zone", VendorID: NoVendor, Code: 39, Kind: KindString},

	// RFC 2866 accounting attributes.
	{
		Name: "Acct-Status-Type", VendorID: NoVendor, Code: 40, Kind: KindInteger,
		Values: map[string]uint32{
			"Start":            1,
			"Stop":             2,
			"Interim-Update":   3,
			"Accounting-On":    7,
			"Accounting-Off":   8,
		},
	},
	{Name: "Acct-Delay-Time", VendorID: NoVendor, Code: 41, Kind: KindInteger},
	{Name: "Acct-Input-Octets", VendorID: NoVendor, Code: 42, Kind: KindInteger},
	{Name: "Acct-Output-Octets", VendorID: NoVendor, Code: 43, Kind: KindInteger},
	{Name: "Acct-Session-Id", VendorID: NoVendor, Code: 44, Kind: KindString},
	{
		Name: "Acct-Authentic", VendorID: NoVendor, Code: 45, Kind: KindInteger,
		Values: map[string]uint32{"RADIUS": 1, "Local": 2, "Remote": 3},
	},
	{Name: "Acct-Session-Time", VendorID: NoVendor, Code: 46, Kind: KindInteger},
	{Name: "Acct-Input-Packets", VendorID: NoVendor, Code: 47, Kind: KindInteger},
	{Name: "Acct-Output-Packets", VendorID: NoVendor, Code: 48, Kind: KindInteger},
	{
		Name: "Acct-Terminate-Cause", VendorID: NoVendor, Code: 49, Kind: KindInteger,
		Values: map[string]uint32{
			"User-Request":  1,
			"Lost-Carrier":  2,
			"Lost-Service":  3,
			"Idle-Timeout":  4,
			"Session-Timeout": 5,
			"Admin-Reset":   6,
			"NAS-Error":     9,
		},
	},
	{Name: "Acct-Multi-Session-Id", VendorID: NoVendor, Code: 50, Kind: KindString},
	{Name: "Acct-Link-Count", VendorID: NoVendor, Code: 51, Kind: KindInteger},

	{Name: "CHAP-Challenge", VendorID: NoVendor, Code: 60, Kind: KindOctets},
	{
		Name: "NAS-Port-Type", VendorID: NoVendor, Code: 61, Kind: KindInteger,
		Values: map[string]uint32{
			"Async":    0,
			"Sync":     1,
			"ISDN-Sync": 2,
			"Virtual":  5,
			"Wireless-802-11": 19,
		},
	},
	{Name: "Port-Limit", VendorID: NoVendor, Code: 62, Kind: KindInteger},
	{Name: "Login-LAT-Port", VendorID: NoVendor, Code: 63, Kind: KindString},
}

// packetTypeNames maps RADIUS packet type codes to their RFC names.
var packetTypeNames = map[uint8]string{
	1:   "Access-Request",
	2:   "Access-Accept",
	3:   "Access-Reject",
	4:   "Accounting-Request",
	5:   "Accounting-Response",
	11:  "Access-Challenge",
	40:  "Disconnect-Request",
	41:  "Disconnect-ACK",
	42:  "Disconnect-NAK",
	43:  "CoA-Request",
	44:  "CoA-ACK",
	45:  "CoA-NAK",
	255: "Reserved",
}

// DefaultDictionary returns a freshly populated Dictionary covering the
// standard attributes in defaultAttributes. Each call returns an
// independent instance; callers that want to merge additional
// dictionaries at startup should call Merge on the result before sharing
// it across goroutines.
func DefaultDictionary() *Dictionary {
	d := NewDictionary()
	for _, at := range defaultAttributes {
		if err := d.Register(at); err != nil {
			// defaultAttributes is a fixed, compile-time table; a
			// collision here is a programming error in this file.
			panic(err)
		}
	}
	return d
}

// PacketTypeName returns the RFC name for a RADIUS packet type code, or
// "Unknown(n)" if the code is not one of packetTypeNames.
func PacketTypeName(code uint8) string {
	if name, ok := packetTypeNames[code]; ok {
		return name
	}
	return unknownTypeName(code)
}
