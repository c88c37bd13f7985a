package radius

import (
	"bytes"
	"errors"
	"net"
	"testing"
)

func TestEncodeDecodeString(t *testing.T) {
	raw, err := EncodeValue(KindString, "alice", nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	v, err := DecodeValue(KindString, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v != "alice" {
		t.Fatalf("decoded = %v, want alice", v)
	}
}

func TestEncodeStringRejectsEmpty(t *testing.T) {
	if _, err := EncodeValue(KindString, "", nil); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
}

func TestEncodeDecodeIntegerAlias(t *testing.T) {
	at := &AttributeType{Name: "Acct-Status-Type", Kind: KindInteger, Values: map[string]uint32{"Start": 1}}

	raw, err := EncodeValue(KindInteger, "Start", at)
	if err != nil {
		t.Fatalf("encode alias: %v", err)
	}

	v, err := DecodeValue(KindInteger, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.(uint32) != 1 {
		t.Fatalf("decoded = %v, want 1", v)
	}
}

func TestEncodeIntegerUnknownAlias(t *testing.T) {
	at := &AttributeType{Name: "Acct-Status-Type", Kind: KindInteger, Values: map[string]uint32{"Start": 1}}
	if _, err := EncodeValue(KindInteger, "Bogus", at); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
}

func TestEncodeDecodeIPAddr(t *testing.T) {
	raw, err := EncodeValue(KindIPAddr, "10.0.0.1", nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(raw, []byte{10, 0, 0, 1}) {
		t.Fatalf("raw = % x, want 0a 00 00 01", raw)
	}

	v, err := DecodeValue(KindIPAddr, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !v.(net.IP).Equal(net.ParseIP("10.0.0.1")) {
		t.Fatalf("decoded = %v, want 10.0.0.1", v)
	}
}

func TestEncodeIPAddrRejectsIPv6(t *testing.T) {
	if _, err := EncodeValue(KindIPAddr, "::1", nil); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
}

func TestEncodeDecodeOctets(t *testing.T) {
	in := []byte{0xde, 0xad, 0xbe, 0xef}

	raw, err := EncodeValue(KindOctets, in, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	v, err := DecodeValue(KindOctets, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(v.([]byte), in) {
		t.Fatalf("decoded = % x, want % x", v, in)
	}
}

func TestEncodeOctetsTooLong(t *testing.T) {
	if _, err := EncodeValue(KindOctets, make([]byte, MaxValueLen+1), nil); !errors.Is(err, ErrAttributeTooLong) {
		t.Fatalf("err = %v, want ErrAttributeTooLong", err)
	}
}

func TestEncodeValueWrongGoType(t *testing.T) {
	if _, err := EncodeValue(KindString, 42, nil); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
}
