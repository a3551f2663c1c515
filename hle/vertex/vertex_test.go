package vertex_test

import (
	"testing"

	"github.com/clktmr/n64hle/hle/vertex"
	n64testing "github.com/clktmr/n64hle/testing"
)

var standard = []byte{
	0x00, 0x10, // x 16
	0xff, 0xf0, // y -16
	0x01, 0x00, // z 256
	0x00, 0x7f, // flag, normz 127
	0x00, 0x40, // tu 2.0
	0xff, 0xf0, // tv -0.5
	0x80, 0x40, 0x20, 0xff,
}

func TestStandard(t *testing.T) {
	v := vertex.Decode(vertex.Standard, standard)
	n64testing.ExpectEquality(t, v.X, int16(16))
	n64testing.ExpectEquality(t, v.Y, int16(-16))
	n64testing.ExpectEquality(t, v.Z, int16(256))
	n64testing.ExpectEquality(t, v.Flag, uint16(0x7f))
	n64testing.ExpectEquality(t, v.NormZ, int8(127))
	n64testing.ExpectEquality(t, v.TU.Float(), 2.0)
	n64testing.ExpectEquality(t, v.TV.Float(), -0.5)
	n64testing.ExpectEquality(t, v.R, uint8(0x80))
	n64testing.ExpectEquality(t, v.A, uint8(0xff))

	// the same bytes read as a normal
	n64testing.ExpectEquality(t, v.NX, int8(-128))
	n64testing.ExpectEquality(t, v.NY, int8(64))
	n64testing.ExpectEquality(t, v.NZ, int8(32))
}

func TestPD(t *testing.T) {
	v := vertex.Decode(vertex.PD, []byte{
		0xff, 0xff, 0x00, 0x02, 0x00, 0x03,
		0xaa, 0x0c, // pad, colour index
		0x00, 0x20, 0x00, 0x40,
	})
	n64testing.ExpectEquality(t, v.X, int16(-1))
	n64testing.ExpectEquality(t, v.Y, int16(2))
	n64testing.ExpectEquality(t, v.Z, int16(3))
	n64testing.ExpectEquality(t, v.ColorIndex, uint8(0x0c))
	n64testing.ExpectEquality(t, v.TU.Float(), 1.0)
	n64testing.ExpectEquality(t, v.TV.Float(), 2.0)
	n64testing.ExpectEquality(t, v.R, uint8(0))
}

func TestDKR(t *testing.T) {
	v := vertex.Decode(vertex.DKR, []byte{0, 1, 0, 2, 0, 3, 10, 20, 30, 40})
	n64testing.ExpectEquality(t, v.X, int16(1))
	n64testing.ExpectEquality(t, v.Z, int16(3))
	n64testing.ExpectEquality(t, v.Color().G, uint8(20))
	n64testing.ExpectEquality(t, v.Color().A, uint8(40))
	n64testing.ExpectEquality(t, v.TU.Float(), 0.0)
}

func TestShortInput(t *testing.T) {
	v := vertex.Decode(vertex.Standard, []byte{0x00, 0x05})
	n64testing.ExpectEquality(t, v.X, int16(5))
	n64testing.ExpectEquality(t, v.A, uint8(0))
}

func TestRead(t *testing.T) {
	// DKR records start at odd addresses
	m := n64testing.NewMemory(0x100, 0x0b, []byte{0, 1, 0, 2, 0, 3, 10, 20, 30, 40})
	v := vertex.Read(m, vertex.DKR, 0x0b)
	n64testing.ExpectEquality(t, v.Y, int16(2))
	n64testing.ExpectEquality(t, v.B, uint8(30))

	m = n64testing.NewMemory(0x100, 0x20, standard)
	n64testing.ExpectEquality(t, vertex.Read(m, vertex.Standard, 0x20), vertex.Decode(vertex.Standard, standard))
}

func TestSize(t *testing.T) {
	n64testing.ExpectEquality(t, vertex.Standard.Size(), 16)
	n64testing.ExpectEquality(t, vertex.PD.Size(), 12)
	n64testing.ExpectEquality(t, vertex.DKR.Size(), 10)
	n64testing.ExpectEquality(t, vertex.Format(7).Size(), 0)
	n64testing.ExpectEquality(t, vertex.Format(7).String(), "Unknown")
}

func TestUnknownFormat(t *testing.T) {
	v := vertex.Decode(vertex.Format(7), standard)
	n64testing.ExpectEquality(t, v, vertex.Raw{})
}
