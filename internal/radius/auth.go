package radius

import (
	"crypto/rand"
	"fmt"
)

// -------------------------------------------------------------------------
// Authenticator engine — RFC 2865 sections 3, 5.2; RFC 2866 section 5
// -------------------------------------------------------------------------
//
// The Authenticator field's meaning is a small, enumerated set of shapes
// rather than one subclass tower: a fresh random
// value for an Access-Request, a content hash for an Accounting-Request,
// and a response hash chained off the matching request's value for every
// reply code. EncodeRequest/EncodeResponse in codec.go dispatch to these
// functions by Packet.Code; callers never need to pick a shape by hand.

// newRequestAuthenticator generates the 16-byte Request Authenticator for
// an Access-Request: MD5(secret || nonce), where nonce is 16 bytes drawn
// from a cryptographically secure random source, per RFC 2865 section 3
// ("should be unpredictable"). Mixing secret into the digest means a
// caller controlling only the random source cannot directly control the
// authenticator that goes on the wire.
func newRequestAuthenticator(secret []byte) ([16]byte, error) {
	var nonce [16]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nonce, fmt.Errorf("generate request authenticator: %w", err)
	}
	return md5Sum(secret, nonce[:]), nil
}

// accountingRequestAuthenticator computes the RFC 2866 section 5 Request
// Authenticator for an Accounting-Request: MD5 over the header (with a
// zeroed authenticator field), the encoded attributes, and the shared
// secret.
func accountingRequestAuthenticator(secret []byte, code Code, identifier uint8, length uint16, attrs []byte) [16]byte {
	var zero [16]byte

	header := requestHeaderBytes(code, identifier, length, zero)

	return md5Sum(header, attrs, secret)
}

// responseAuthenticator computes the RFC 2865 section 3 Response
// Authenticator: MD5 over the response header (with the *request's*
// authenticator in the authenticator field), the response's encoded
// attributes, and the shared secret. This formula is used for every reply
// code uniformly (Access-Accept/Reject/Challenge, Accounting-Response).
func responseAuthenticator(secret []byte, code Code, identifier uint8, length uint16, requestAuthenticator [16]byte, attrs []byte) [16]byte {
	header := requestHeaderBytes(code, identifier, length, requestAuthenticator)

	return md5Sum(header, attrs, secret)
}

// requestHeaderBytes renders the 20-byte RADIUS header with the given
// authenticator value, used as the first MD5 input by both
// accountingRequestAuthenticator and responseAuthenticator.
func requestHeaderBytes(code Code, identifier uint8, length uint16, authenticator [16]byte) []byte {
	h := make([]byte, HeaderSize)
	h[0] = uint8(code)
	h[1] = identifier
	h[2] = uint8(length >> 8)   //nolint:gosec // G115: length is bounded by MaxPacketSize.
	h[3] = uint8(length)
	copy(h[4:20], authenticator[:])
	return h
}

// -------------------------------------------------------------------------
// User-Password obfuscation — RFC 2865 section 5.2
// -------------------------------------------------------------------------

// papEncode obfuscates password using the PAP algorithm of RFC 2865
// section 5.2: the password is zero-padded to a multiple of 16 bytes,
// then XORed block-by-block against a chained MD5(secret || previous
// ciphertext block), where the first block's "previous ciphertext" is the
// request authenticator itself. It fails with ErrPasswordTooLong if
// password exceeds MaxUserPasswordLen bytes.
func papEncode(secret []byte, authenticator [16]byte, password string) ([]byte, error) {
	if len(password) > MaxUserPasswordLen {
		return nil, fmt.Errorf("pap encode: %w: %d bytes", ErrPasswordTooLong, len(password))
	}

	padded := padTo16([]byte(password))

	prev := authenticator[:]
	out := make([]byte, 0, len(padded))

	for off := 0; off < len(padded); off += 16 {
		block := append([]byte(nil), padded[off:off+16]...)
		mask := md5Sum(secret, prev)

		xorBytes(block, mask[:])

		out = append(out, block...)
		prev = block
	}

	return out, nil
}

// papDecode reverses papEncode: it recovers the zero-padded plaintext
// blocks and strips trailing NUL padding. cipher's length must be a
// positive multiple of 16.
func papDecode(secret []byte, authenticator [16]byte, cipher []byte) (string, error) {
	if len(cipher) == 0 || len(cipher)%16 != 0 {
		return "", fmt.Errorf("pap decode: %w: %d bytes, want a positive multiple of 16", ErrInvalidValue, len(cipher))
	}

	prev := authenticator[:]
	plain := make([]byte, 0, len(cipher))

	for off := 0; off < len(cipher); off += 16 {
		block := append([]byte(nil), cipher[off:off+16]...)
		mask := md5Sum(secret, prev)

		xorBytes(block, mask[:])

		plain = append(plain, block...)
		prev = cipher[off : off+16]
	}

	// Trailing NUL padding added by papEncode.
	for len(plain) > 0 && plain[len(plain)-1] == 0 {
		plain = plain[:len(plain)-1]
	}

	return string(plain), nil
}

// padTo16 zero-pads b to the next multiple of 16 bytes (minimum 16).
func padTo16(b []byte) []byte {
	size := ((len(b) / 16) + 1) * 16
	if len(b) > 0 && len(b)%16 == 0 {
		size = len(b)
	}

	out := make([]byte, size)
	copy(out, b)

	return out
}
