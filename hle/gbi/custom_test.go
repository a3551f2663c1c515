package gbi_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/clktmr/n64hle/hle/gbi"
	"github.com/clktmr/n64hle/hle/matrix"
	"github.com/clktmr/n64hle/hle/renderer"
	"github.com/clktmr/n64hle/rcp/rdram"
	"github.com/clktmr/n64hle/rcp/rsp/ucode"
	n64testing "github.com/clktmr/n64hle/testing"
)

const (
	emptyData   = 0xa000
	paletteBase = 0x6800
	triBase     = 0x5000
	subList     = 0x5800
	legionTable = 0x6c00

	goldenEyeSig   = 0x23f92542
	betaSig        = 0x64cc729d
	perfectDarkSig = 0xcac47dc4
	dkrSig         = 0x0c10181a
	lastLegionSig  = 0x26da8a4c
)

// Vertices are tagged with their index in the red channel so batches can be
// traced back to the vertex cache slots they were drawn from.

func tag(i int) byte { return byte(i * 10) }

func vertexIDs(rec *recorder) (ids []int) {
	for _, b := range rec.batches {
		for _, v := range b.Vertices {
			ids = append(ids, int(math.Round(float64(v.R)*255/10)))
		}
	}
	return
}

func putTagged(m *rdram.Memory, addr uint32, n int) {
	b := make([]byte, 16*n)
	for i := range n {
		copy(b[i*16+12:], []byte{tag(i), 0xff, 0xff, 0xff})
	}
	m.WriteAt(b, int64(addr))
}

func putTaggedDKR(m *rdram.Memory, addr uint32, n int) {
	b := make([]byte, 10*n)
	for i := range n {
		copy(b[i*10+6:], []byte{tag(i), 0xff, 0xff, 0xff})
	}
	m.WriteAt(b, int64(addr))
}

// putTaggedPD writes vertices whose colour index selects palette entry i.
func putTaggedPD(m *rdram.Memory, addr, palette uint32, n int) {
	b := make([]byte, 12*n)
	p := make([]byte, 4*n)
	for i := range n {
		b[i*12+7] = byte(i * 4)
		copy(p[i*4:], []byte{tag(i), 0xff, 0xff, 0xff})
	}
	m.WriteAt(b, int64(addr))
	m.WriteAt(p, int64(palette))
}

// dmaTriangles writes DKR triangle records with culling disabled.
func dmaTriangles(m *rdram.Memory, addr uint32, tris ...[3]byte) {
	b := make([]byte, 16*len(tris))
	for i, t := range tris {
		b[i*16] = 0x40
		copy(b[i*16+1:], t[:])
	}
	m.WriteAt(b, int64(addr))
}

// newDialectSession returns a session whose task runs the custom microcode
// with signature hash sig. A zero sig runs a microcode without signature or
// version string, which falls back to Fast3D.
func newDialectSession(sig uint32) (*gbi.Session, *recorder, gbi.Task) {
	s, rec, _ := newSession()
	t := task
	if sig == 0 {
		t.UCodeData = emptyData
	} else {
		s.Mem.WriteAt(n64testing.HashPreimage(sig), altCode)
		t.UCode = altCode
	}
	return s, rec, t
}

func TestDialectTriangles(t *testing.T) {
	for _, tc := range []struct {
		name    string
		sig     uint32
		dialect ucode.Dialect
		setup   func(m *rdram.Memory)
		list    []uint32
		want    []int
	}{
		{
			name:    "fast3d tri4",
			dialect: ucode.GBI0,
			setup:   func(m *rdram.Memory) { putTagged(m, vtxBase, 6) },
			list: []uint32{
				0x04500060, vtxBase,
				0xb1000030, 0x00005421, // (0,1,2) (3,4,5)
				0xb1001025, 0x53420134, // (5,4,3) (2,1,0) (0,2,4) (1,3,5)
				0xb8000000, 0,
			},
			want: []int{0, 1, 2, 3, 4, 5, 5, 4, 3, 2, 1, 0, 0, 2, 4, 1, 3, 5},
		},
		{
			name:    "beta",
			sig:     betaSig,
			dialect: ucode.Beta,
			setup:   func(m *rdram.Memory) { putTagged(m, vtxBase, 6) },
			list: []uint32{
				0x04000c00, vtxBase,
				0xbf000000, 0x0000050a, // (0,1,2)
				0xb10f1419, 0x0019000a, // (3,4,5) (5,0,2)
				0xb5000000, 0x19050f14, // quad 1 3 4 5
				0xb8000000, 0,
			},
			want: []int{0, 1, 2, 3, 4, 5, 5, 0, 2, 1, 3, 4, 4, 5, 1},
		},
		{
			name:    "perfect dark",
			sig:     perfectDarkSig,
			dialect: ucode.PerfectDark,
			setup:   func(m *rdram.Memory) { putTaggedPD(m, vtxBase, paletteBase, 6) },
			list: []uint32{
				0x07000000, paletteBase,
				0x04500000, vtxBase,
				0xbf000000, 0x00000a14, // (0,1,2)
				0xb1000003, 0x00000054, // (3,4,5)
				0xb8000000, 0,
			},
			want: []int{0, 1, 2, 3, 4, 5},
		},
		{
			name:    "diddy kong racing",
			sig:     dkrSig,
			dialect: ucode.DKR,
			setup: func(m *rdram.Memory) {
				putTaggedDKR(m, vtxBase, 6)
				dmaTriangles(m, triBase, [3]byte{0, 1, 2}, [3]byte{5, 4, 3})
			},
			list: []uint32{
				0xbf000000 | mtxBase, vtxBase,
				0x04100000, 0,  // 3 vertices to slot 0
				0x04100600, 30, // 3 vertices to slot 3
				0x05000020, triBase,
				0xb8000000, 0,
			},
			want: []int{0, 1, 2, 5, 4, 3},
		},
		{
			name:    "conker",
			sig:     conkerSig,
			dialect: ucode.Conker,
			setup:   func(m *rdram.Memory) { putTagged(m, vtxBase, 6) },
			list: []uint32{
				0x0100600c, vtxBase,
				0x10000000, 0x0a418820, // (0,1,2) (3,4,5)
				0xdf000000, 0,
			},
			want: []int{0, 1, 2, 3, 4, 5},
		},
		{
			name:    "last legion",
			sig:     lastLegionSig,
			dialect: ucode.LastLegion,
			setup: func(m *rdram.Memory) {
				putTagged(m, vtxBase, 6)
				n64testing.PutWords(m, legionTable+12, callee)
				n64testing.PutWords(m, legionTable+36, subList)
				// the second list runs first
				n64testing.PutWords(m, subList,
					0x04001800, vtxBase,
					0xbf000000, 0x0006080a, // (3,4,5)
					0x00000000, 0,          // return
				)
				n64testing.PutWords(m, callee,
					0xbf000000, 0x00000204, // (0,1,2)
					0xb8000000, 0,
				)
			},
			list: []uint32{
				0x00000000, legionTable,
				0xbf000000, 0x00020406, // skipped
				0xbf000000, 0x00020406, // skipped
				0xb8000000, 0,
			},
			want: []int{3, 4, 5, 0, 1, 2},
		},
	} {
		s, rec, dt := newDialectSession(tc.sig)
		tc.setup(s.Mem)
		n64testing.PutWords(s.Mem, dlBase, tc.list...)

		stats := s.ProcessDisplayList(dt)
		n64testing.ExpectEquality(t, s.Info().Dialect, tc.dialect, tc.name)
		n64testing.ExpectEquality(t, stats.TrisRendered, len(tc.want)/3, tc.name)
		n64testing.ExpectEquality(t, fmt.Sprint(vertexIDs(rec)), fmt.Sprint(tc.want), tc.name)
	}
}

func TestGoldenEyeSky(t *testing.T) {
	s, rec, dt := newDialectSession(goldenEyeSig)
	n64testing.PutWords(s.Mem, dlBase,
		0xfa000000, 0xff0000ff, // red primitive colour
		0xb4000000, 0xce000000,
		0x00000000, 0x000000a0, // y 40
		0x00000000, 0,
		0x00000000, 0x00000028, // y 10
	)
	n64testing.PutWords(s.Mem, dlBase+8*(2+39), 0xb8000000, 0)

	s.ProcessDisplayList(dt)
	n64testing.ExpectEquality(t, s.Info().Dialect, ucode.GoldenEye)
	n64testing.ExpectEquality(t, s.Executed(), 3)
	n64testing.ExpectEquality(t, len(rec.batches), 1)

	b := rec.batches[0]
	n64testing.ExpectEquality(t, b.Mode, renderer.Mode2D)
	n64testing.ExpectEquality(t, b.Vertices[0].X, 0)
	n64testing.ExpectEquality(t, b.Vertices[0].Y, 10)
	n64testing.ExpectEquality(t, b.Vertices[5].X, 320)
	n64testing.ExpectEquality(t, b.Vertices[5].Y, 40)
	n64testing.ExpectEquality(t, b.Vertices[0].R, 1)
	n64testing.ExpectEquality(t, b.Vertices[0].G, 0)
}

func TestDKRMatrixSelect(t *testing.T) {
	s, rec, dt := newDialectSession(dkrSig)
	m := matrix.Identity()
	m[12] = 0.5
	matrix.Write(s.Mem, mtxBase, &m)
	putTaggedDKR(s.Mem, vtxBase, 6)
	dmaTriangles(s.Mem, triBase, [3]byte{0, 1, 2}, [3]byte{3, 4, 5})

	n64testing.PutWords(s.Mem, dlBase,
		0xbf000000|mtxBase, vtxBase,
		0x01010000, 0,    // load slot 1
		0xbc00000a, 0x00, // select slot 0
		0x04100000, 0,
		0xbc00000a, 0x40, // select slot 1
		0x04100600, 30,
		0x05000020, triBase,
		0xb8000000, 0,
	)
	s.ProcessDisplayList(dt)
	n64testing.ExpectApproximate(t, s.Renderer.DKRMatrix(1)[12], 0.5, 0.0001)
	n64testing.ExpectEquality(t, fmt.Sprint(vertexIDs(rec)), fmt.Sprint([]int{0, 1, 2, 3, 4, 5}))

	var xs []float32
	for _, b := range rec.batches {
		for _, v := range b.Vertices {
			xs = append(xs, v.X)
		}
	}
	n64testing.ExpectEquality(t, fmt.Sprint(xs), fmt.Sprint([]float32{160, 160, 160, 240, 240, 240}))
}

func TestLastLegionTexRect(t *testing.T) {
	s, rec, dt := newDialectSession(lastLegionSig)
	n64testing.PutWords(s.Mem, dlBase,
		0xe4028050, 0x020780a0, // (10,20) in w0, (30,40) and tile 2 in w1
		0xb4000000, 0x00000000,
		0xb3000000, 0x04000400,
		0xb8000000, 0,
	)
	s.ProcessDisplayList(dt)
	n64testing.ExpectEquality(t, s.Executed(), 2)
	n64testing.ExpectEquality(t, len(rec.batches), 1)

	b := rec.batches[0]
	n64testing.ExpectEquality(t, b.State.Tile, 2)
	n64testing.ExpectEquality(t, b.Vertices[0].X, 10)
	n64testing.ExpectEquality(t, b.Vertices[0].Y, 20)
	n64testing.ExpectEquality(t, b.Vertices[5].X, 30)
	n64testing.ExpectEquality(t, b.Vertices[5].Y, 40)
}
