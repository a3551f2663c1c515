package rdram_test

import (
	"bytes"
	"testing"

	"github.com/clktmr/n64hle/rcp/rdram"
	n64testing "github.com/clktmr/n64hle/testing"
)

func TestSize(t *testing.T) {
	n64testing.ExpectEquality(t, rdram.New(rdram.Size4MB).Size(), uint32(rdram.Size4MB))
	n64testing.ExpectEquality(t, rdram.New(3000).Size(), uint32(4096))
	n64testing.ExpectEquality(t, rdram.New(0).Size(), uint32(4))
}

func TestTwiddle(t *testing.T) {
	m := rdram.New(0x100)
	m.WriteAt([]byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04}, 0x10)

	n64testing.ExpectEquality(t, m.Read32(0x10), uint32(0xdeadbeef))
	n64testing.ExpectEquality(t, m.Read16(0x10), uint16(0xdead))
	n64testing.ExpectEquality(t, m.Read16(0x12), uint16(0xbeef))
	n64testing.ExpectEquality(t, m.Read8(0x10), uint8(0xde))
	n64testing.ExpectEquality(t, m.Read8(0x13), uint8(0xef))
	n64testing.ExpectEquality(t, m.Read8(0x15), uint8(0x02))

	w0, w1 := m.Read64(0x10)
	n64testing.ExpectEquality(t, w0, uint32(0xdeadbeef))
	n64testing.ExpectEquality(t, w1, uint32(0x01020304))

	// host storage is word swapped
	m.Write32(0x20, 0x11223344)
	n64testing.ExpectEquality(t, m.Read8(0x20), uint8(0x11))
	n64testing.ExpectEquality(t, m.Read16(0x22), uint16(0x3344))
}

func TestReadAtRoundTrip(t *testing.T) {
	m := rdram.New(0x40)
	data := []byte("RSP Gfx ucode F3DEX")
	m.WriteAt(data, 3)

	got := make([]byte, len(data))
	n, err := m.ReadAt(got, 3)
	n64testing.ExpectSuccess(t, err)
	n64testing.ExpectEquality(t, n, len(data))
	n64testing.ExpectSuccess(t, bytes.Equal(got, data))
}

func TestWrap(t *testing.T) {
	m := rdram.New(0x40)
	m.Write16(0x3e, 0xcafe)
	n64testing.ExpectEquality(t, m.Read16(0x7e), uint16(0xcafe))
	n64testing.ExpectEquality(t, m.Mask(0x41), uint32(1))

	// reads past the end never panic
	_ = m.Read32(0xffffffff)
	_ = m.Read16(0xffffffff)
}
