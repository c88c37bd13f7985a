package radius

import (
	"crypto/md5" //nolint:gosec // G501: MD5 required by RFC 2865 sections 3, 5.2.
	"encoding/binary"
)

// -------------------------------------------------------------------------
// Octet utilities
// -------------------------------------------------------------------------

// putUint32BE writes v into buf (which must be at least 4 bytes) in
// network byte order.
func putUint32BE(buf []byte, v uint32) {
	binary.BigEndian.PutUint32(buf, v)
}

// getUint32BE reads a big-endian uint32 from the first 4 bytes of buf.
func getUint32BE(buf []byte) uint32 {
	return binary.BigEndian.Uint32(buf)
}

// md5Sum computes the MD5 digest of the concatenation of all parts.
// A single hash.Hash is used per call; it must never be shared across
// concurrent call sites.
func md5Sum(parts ...[]byte) [16]byte {
	h := md5.New() //nolint:gosec // G401: MD5 required by RFC 2865.
	for _, p := range parts {
		h.Write(p) //nolint:errcheck // hash.Hash.Write never returns an error.
	}

	var sum [16]byte
	copy(sum[:], h.Sum(nil))

	return sum
}

// xorBytes XORs src into dst in place. dst and src must be the same length.
func xorBytes(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
