// Package dac implements the flat binary codecs used around the debug
// authentication flow: the challenge packet a target emits when a debug
// session is requested, and the secure-binary command tag enumeration.
package dac

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

const (
	// uuidSize is the unique device identifier length.
	uuidSize = 16
	// vectorSize is the random challenge vector length.
	vectorSize = 32
	// hashSize is the common RKTH hash length.
	hashSize = 32
	// hashSizeECC384 is the RKTH hash length for the SHA-384 SoC variant.
	hashSizeECC384 = 48
	// socc384 is the SoC class that uses the 48-byte hash with protocol 2.1.
	socc384 = 4
)

// ErrTruncated indicates the packet buffer is too short for its layout.
var ErrTruncated = errors.New("dac: truncated packet")

// Challenge is the debug authentication challenge packet. All integer
// fields are little-endian on the wire.
type Challenge struct {
	// VersionMajor/VersionMinor identify the protocol version:
	// 1.0 for RSA, 2.0/2.1/2.2 for ECC key sizes.
	VersionMajor uint16
	VersionMinor uint16

	// SOCC is the SoC class this challenge applies to.
	SOCC uint32

	// UUID is the unique device identifier.
	UUID [uuidSize]byte

	// RKHRevocation is the root-key-hash revocation state.
	RKHRevocation uint32

	// RKTHHash is the hash of the root-of-trust metadata; 32 bytes, or 48
	// for the SHA-384 variant (SOCC 4 with protocol 2.1).
	RKTHHash []byte

	// CCSOCPinned is the lock-bit state of the debugger configuration.
	CCSOCPinned uint32
	// CCSOCDefault is the debugger configuration state.
	CCSOCDefault uint32
	// CCVU is the vendor usage word.
	CCVU uint32

	// Vector is the random challenge generated by the target.
	Vector [vectorSize]byte
}

// hashLen returns the RKTH hash length implied by the version and SoC
// class fields.
func hashLen(major, minor uint16, socc uint32) int {
	if socc == socc384 && major == 2 && minor == 1 {
		return hashSizeECC384
	}
	return hashSize
}

// headSize is the fixed part before the variable-length hash.
const headSize = 2 + 2 + 4 + uuidSize + 4

// tailSize is the fixed part after the hash.
const tailSize = 4 + 4 + 4 + vectorSize

// ParseChallenge decodes a challenge packet starting at offset within data.
func ParseChallenge(data []byte, offset int) (*Challenge, error) {
	if offset < 0 || len(data)-offset < headSize {
		return nil, fmt.Errorf("%w: need %d header bytes", ErrTruncated, headSize)
	}
	b := data[offset:]

	c := &Challenge{
		VersionMajor: binary.LittleEndian.Uint16(b[0:2]),
		VersionMinor: binary.LittleEndian.Uint16(b[2:4]),
		SOCC:         binary.LittleEndian.Uint32(b[4:8]),
	}
	copy(c.UUID[:], b[8:8+uuidSize])
	c.RKHRevocation = binary.LittleEndian.Uint32(b[8+uuidSize:])

	n := hashLen(c.VersionMajor, c.VersionMinor, c.SOCC)
	if len(b) < headSize+n+tailSize {
		return nil, fmt.Errorf("%w: need %d bytes", ErrTruncated, headSize+n+tailSize)
	}
	tail := b[headSize:]
	c.RKTHHash = append([]byte(nil), tail[:n]...)
	tail = tail[n:]

	c.CCSOCPinned = binary.LittleEndian.Uint32(tail[0:4])
	c.CCSOCDefault = binary.LittleEndian.Uint32(tail[4:8])
	c.CCVU = binary.LittleEndian.Uint32(tail[8:12])
	copy(c.Vector[:], tail[12:12+vectorSize])
	return c, nil
}

// Export encodes the challenge packet to its wire form.
func (c *Challenge) Export() []byte {
	out := make([]byte, 0, headSize+len(c.RKTHHash)+tailSize)
	out = binary.LittleEndian.AppendUint16(out, c.VersionMajor)
	out = binary.LittleEndian.AppendUint16(out, c.VersionMinor)
	out = binary.LittleEndian.AppendUint32(out, c.SOCC)
	out = append(out, c.UUID[:]...)
	out = binary.LittleEndian.AppendUint32(out, c.RKHRevocation)
	out = append(out, c.RKTHHash...)
	out = binary.LittleEndian.AppendUint32(out, c.CCSOCPinned)
	out = binary.LittleEndian.AppendUint32(out, c.CCSOCDefault)
	out = binary.LittleEndian.AppendUint32(out, c.CCVU)
	out = append(out, c.Vector[:]...)
	return out
}

// Version renders the protocol version as "major.minor".
func (c *Challenge) Version() string {
	return fmt.Sprintf("%d.%d", c.VersionMajor, c.VersionMinor)
}

// Info returns a human-readable packet summary.
func (c *Challenge) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version                : %s\n", c.Version())
	fmt.Fprintf(&b, "SOCC                   : %d\n", c.SOCC)
	fmt.Fprintf(&b, "UUID                   : %X\n", c.UUID[:])
	fmt.Fprintf(&b, "CC_VU                  : %d\n", c.CCVU)
	fmt.Fprintf(&b, "ROTID_rkh_revocation   : %08X\n", c.RKHRevocation)
	fmt.Fprintf(&b, "ROTID_rkth_hash        : %x\n", c.RKTHHash)
	fmt.Fprintf(&b, "CC_soc_pinned          : %08X\n", c.CCSOCPinned)
	fmt.Fprintf(&b, "CC_soc_default         : %08X\n", c.CCSOCDefault)
	fmt.Fprintf(&b, "Challenge              : %x\n", c.Vector[:])
	return b.String()
}
