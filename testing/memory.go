package testing

import (
	"github.com/clktmr/n64hle/rcp/rdram"
)

// NewMemory returns an emulated RDRAM of the given size with data, given in
// console byte order, written at addr.
func NewMemory(size int, addr uint32, data []byte) *rdram.Memory {
	m := rdram.New(size)
	m.WriteAt(data, int64(addr))
	return m
}

// PutWords writes consecutive 32-bit words starting at addr.
func PutWords(m *rdram.Memory, addr uint32, words ...uint32) {
	for i, w := range words {
		m.Write32(addr+uint32(i)*4, w)
	}
}

// PutHalves writes consecutive 16-bit values starting at addr.
func PutHalves(m *rdram.Memory, addr uint32, halves ...uint16) {
	for i, h := range halves {
		m.Write16(addr+uint32(i)*2, h)
	}
}

// HashPreimage returns a code segment whose microcode signature hash is
// hash. The hash multiplies by 17 per byte, so the base 17 digits of hash
// are a valid preimage.
func HashPreimage(hash uint32) []byte {
	b := make([]byte, 8)
	v := uint64(hash)
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = byte(v % 17)
		v /= 17
	}
	return b
}
