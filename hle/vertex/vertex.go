// Package vertex decodes the raw vertex records found in display lists.
//
// Three incompatible layouts exist. All are big-endian in console memory and
// are decoded without validation: malformed input yields a malformed vertex,
// never an error.
package vertex

import (
	"encoding/binary"
	"image/color"

	"github.com/clktmr/n64hle/rcp/fixed"
	"github.com/clktmr/n64hle/rcp/rdram"
)

type Format uint8

const (
	Standard Format = iota // 16 bytes, used by most microcodes
	PD                     // 12 bytes, colour from a palette
	DKR                    // 10 bytes, no texture coordinates
)

var sizes = [...]int{Standard: 16, PD: 12, DKR: 10}

// Size returns the size of one record in bytes, or 0 for an unknown format.
func (f Format) Size() int {
	if int(f) >= len(sizes) {
		return 0
	}
	return sizes[f]
}

func (f Format) String() string {
	switch f {
	case Standard:
		return "Standard"
	case PD:
		return "PD"
	case DKR:
		return "DKR"
	}
	return "Unknown"
}

// Raw is a decoded but untransformed vertex. Fields not present in the
// source format are zero.
type Raw struct {
	X, Y, Z int16
	Flag    uint16

	TU, TV fixed.Int11_5

	// Bytes 12 to 15 of a Standard vertex are either a colour or a normal,
	// depending on whether lighting is enabled. Both views are decoded.
	R, G, B, A uint8
	NX, NY, NZ int8

	// Low byte of Flag. Some titles store the normal's z component here.
	NormZ int8

	ColorIndex uint8
}

// Color returns the vertex colour.
func (v *Raw) Color() color.RGBA {
	return color.RGBA{v.R, v.G, v.B, v.A}
}

// Normal returns the vertex normal.
func (v *Raw) Normal() (x, y, z float32) {
	return float32(v.NX), float32(v.NY), float32(v.NZ)
}

// Decode decodes one record of format f from b. Missing trailing bytes read
// as zero.
func Decode(f Format, b []byte) Raw {
	var buf [16]byte
	copy(buf[:f.Size()], b)
	switch f {
	case PD:
		return DecodePD(buf[:])
	case DKR:
		return DecodeDKR(buf[:])
	}
	return DecodeStandard(buf[:])
}

func s16(b []byte) int16 {
	return int16(binary.BigEndian.Uint16(b))
}

// DecodeStandard decodes a 16 byte record. It panics if b is shorter.
func DecodeStandard(b []byte) Raw {
	_ = b[15]
	return Raw{
		X:     s16(b[0:]),
		Y:     s16(b[2:]),
		Z:     s16(b[4:]),
		Flag:  binary.BigEndian.Uint16(b[6:]),
		NormZ: int8(b[7]),
		TU:    fixed.Int11_5(s16(b[8:])),
		TV:    fixed.Int11_5(s16(b[10:])),
		R:     b[12], G: b[13], B: b[14], A: b[15],
		NX: int8(b[12]), NY: int8(b[13]), NZ: int8(b[14]),
	}
}

// DecodePD decodes a 12 byte record. The colour is left zero, it must be
// looked up in the current colour index table.
func DecodePD(b []byte) Raw {
	_ = b[11]
	return Raw{
		X:          s16(b[0:]),
		Y:          s16(b[2:]),
		Z:          s16(b[4:]),
		ColorIndex: b[7],
		TU:         fixed.Int11_5(s16(b[8:])),
		TV:         fixed.Int11_5(s16(b[10:])),
	}
}

// DecodeDKR decodes a 10 byte record.
func DecodeDKR(b []byte) Raw {
	_ = b[9]
	return Raw{
		X: s16(b[0:]),
		Y: s16(b[2:]),
		Z: s16(b[4:]),
		R: b[6], G: b[7], B: b[8], A: b[9],
	}
}

// Read decodes the record at addr. Records may start at any byte address.
func Read(m *rdram.Memory, f Format, addr uint32) Raw {
	var buf [16]byte
	m.ReadAt(buf[:f.Size()], int64(m.Mask(addr)))
	return Decode(f, buf[:])
}
