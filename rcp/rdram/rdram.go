// Package rdram emulates the console's main memory as seen by the RSP and
// RDP.
//
// Memory is kept in host byte order, one 32-bit word at a time, so word
// sized accesses are plain loads. Sub-word accesses must correct for the
// byte order mismatch between the big-endian console and the little-endian
// host by XOR-ing the address with a twiddle constant, exactly as the
// hardware-level emulator does. Every read path in this module goes through
// these accessors.
package rdram

import (
	"encoding/binary"
	"io"
	"math/bits"
)

// Twiddle constants for a little-endian host.
const (
	ByteTwiddle = 3
	HalfTwiddle = 2
)

const (
	Size4MB = 4 << 20
	Size8MB = 8 << 20
)

// Accesses may read up to a word past the last masked address.
const guard = 8

// ByteReader is implemented by memories that can be read one console
// address at a time.
type ByteReader interface {
	Read8(addr uint32) uint8
}

// Memory is an emulated RDRAM. Addresses wrap at the memory size, which is
// always a power of two.
type Memory struct {
	b    []byte
	mask uint32
}

// New returns a zeroed memory of at least size bytes.
func New(size int) *Memory {
	if size < 4 {
		size = 4
	}
	size = 1 << bits.Len(uint(size-1))
	return &Memory{
		b:    make([]byte, size+guard),
		mask: uint32(size - 1),
	}
}

// Size returns the size of the memory in bytes.
func (m *Memory) Size() uint32 { return m.mask + 1 }

// Mask wraps addr into the memory's address space.
func (m *Memory) Mask(addr uint32) uint32 { return addr & m.mask }

func (m *Memory) Read8(addr uint32) uint8 {
	return m.b[(addr^ByteTwiddle)&m.mask]
}

func (m *Memory) Read16(addr uint32) uint16 {
	return binary.LittleEndian.Uint16(m.b[(addr^HalfTwiddle)&m.mask:])
}

func (m *Memory) Read32(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(m.b[addr&m.mask:])
}

// Read64 returns the two words of a display list command.
func (m *Memory) Read64(addr uint32) (w0, w1 uint32) {
	return m.Read32(addr), m.Read32(addr + 4)
}

func (m *Memory) Write8(addr uint32, v uint8) {
	m.b[(addr^ByteTwiddle)&m.mask] = v
}

func (m *Memory) Write16(addr uint32, v uint16) {
	binary.LittleEndian.PutUint16(m.b[(addr^HalfTwiddle)&m.mask:], v)
}

func (m *Memory) Write32(addr uint32, v uint32) {
	binary.LittleEndian.PutUint32(m.b[addr&m.mask:], v)
}

// ReadAt copies memory in console byte order into p. Reads wrap at the end
// of memory, so the only error is an invalid offset.
func (m *Memory) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	addr := uint32(off)
	for i := range p {
		p[i] = m.Read8(addr + uint32(i))
	}
	return len(p), nil
}

// WriteAt copies p, given in console byte order, into memory.
func (m *Memory) WriteAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, io.ErrShortWrite
	}
	addr := uint32(off)
	for i := range p {
		m.Write8(addr+uint32(i), p[i])
	}
	return len(p), nil
}
