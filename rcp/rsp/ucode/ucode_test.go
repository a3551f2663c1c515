package ucode_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/clktmr/n64hle/rcp/rsp/ucode"
	n64testing "github.com/clktmr/n64hle/testing"
)

const f3dex2 = "RSP Gfx ucode F3DEX       fifo 2.08  Yoshitaka Yasumoto 1999 Nintendo."

func TestHash(t *testing.T) {
	m := n64testing.NewMemory(0x100, 0x10, []byte("ABC"))
	n64testing.ExpectEquality(t, ucode.Hash(m, 0x10, 3), uint32(19974))
	n64testing.ExpectEquality(t, ucode.Hash(m, 0x10, 0), uint32(0))

	// stable across calls
	n64testing.ExpectEquality(t, ucode.Hash(m, 0, 0x100), ucode.Hash(m, 0, 0x100))
}

func TestHashPreimage(t *testing.T) {
	for _, sig := range ucode.Signatures {
		m := n64testing.NewMemory(0x100, 0x40, n64testing.HashPreimage(sig.Hash))
		n64testing.ExpectEquality(t, ucode.Hash(m, 0x40, 8), sig.Hash, sig.Title)
	}
}

func TestVersionString(t *testing.T) {
	data := append([]byte{0xff, 0x00, 'R', 'S'}, []byte(f3dex2+"\x00garbage")...)
	m := n64testing.NewMemory(0x1000, 0x201, data)

	s, ok := ucode.VersionString(m, 0x201, uint32(len(data)))
	n64testing.ExpectSuccess(t, ok)
	n64testing.ExpectEquality(t, s, f3dex2)

	_, ok = ucode.VersionString(m, 0x201, 4)
	n64testing.ExpectFailure(t, ok)
}

func TestVersionStringSigned(t *testing.T) {
	m := n64testing.NewMemory(0x100, 0, []byte("RSP SW\x80Version"))
	s, ok := ucode.VersionString(m, 0, 16)
	n64testing.ExpectSuccess(t, ok)
	n64testing.ExpectEquality(t, s, "RSP SW")
}

func TestVersionStringBounded(t *testing.T) {
	m := n64testing.NewMemory(0x1000, 0, []byte("RSP"+strings.Repeat("x", 400)))
	s, ok := ucode.VersionString(m, 0, 3)
	n64testing.ExpectSuccess(t, ok)
	n64testing.ExpectEquality(t, len(s), 255)
}

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		version string
		dialect ucode.Dialect
		stride  int
	}{
		{f3dex2, ucode.GBI2, 2},
		{"RSP Gfx ucode F3DEX       xbus 2.06  Yoshitaka Yasumoto 1998 Nintendo.", ucode.GBI2, 2},
		{"RSP Gfx ucode F3DLX.Rej  1.23 Yoshitaka Yasumoto 1996 Nintendo.", ucode.GBI1, 2},
		{"RSP Gfx ucode L3DEX      1.21 Yoshitaka Yasumoto 1996 Nintendo.", ucode.GBI1, 2},
		{"RSP Gfx ucode S2DEX  1.06 Yoshitaka Yasumoto 1998 Nintendo.", ucode.GBI1S2DEX, 2},
		{"RSP Gfx ucode S2DEX  fifo 2.05  Yoshitaka Yasumoto 1998 Nintendo.", ucode.GBI2S2DEX, 2},
		{"RSP S2DEX then F3", ucode.GBI1, 2},
		{"RSP fifo before F3", ucode.GBI1, 2},
		{"RSP SW Version: 2.0D, 04-01-96", ucode.GBI0, 10},
	} {
		d, stride := ucode.Classify(tc.version)
		n64testing.ExpectEquality(t, d, tc.dialect, tc.version)
		n64testing.ExpectEquality(t, stride, tc.stride, tc.version)
	}
}

func TestDetect(t *testing.T) {
	m := n64testing.NewMemory(0x2000, 0x1000, []byte(f3dex2))
	d := ucode.Detect(m, 0, 0x800, m, 0x1000, 0x800)
	n64testing.ExpectEquality(t, d.Dialect, ucode.GBI2)
	n64testing.ExpectEquality(t, d.Base, ucode.GBI2)
	n64testing.ExpectEquality(t, d.Stride, 2)
	n64testing.ExpectEquality(t, d.Version, f3dex2)
	n64testing.ExpectSuccess(t, d.Found)

	// no version string at all
	m = n64testing.NewMemory(0x2000, 0, nil)
	d = ucode.Detect(m, 0, 0x800, m, 0x1000, 0x800)
	n64testing.ExpectEquality(t, d.Dialect, ucode.GBI0)
	n64testing.ExpectEquality(t, d.Stride, ucode.DefaultStride)
	n64testing.ExpectFailure(t, d.Found)
}

func TestDetectSignature(t *testing.T) {
	m := n64testing.NewMemory(0x2000, 0, n64testing.HashPreimage(0x60256efc))
	d := ucode.Detect(m, 0, 8, m, 0x1000, 0x800)
	n64testing.ExpectEquality(t, d.Dialect, ucode.Conker)
	n64testing.ExpectEquality(t, d.Base, ucode.GBI2)
	n64testing.ExpectEquality(t, d.Stride, 2)
	n64testing.ExpectSuccess(t, !d.Dialect.IsBase())

	sig, ok := ucode.LookupSignature(0x6cbb521d)
	n64testing.ExpectSuccess(t, ok)
	n64testing.ExpectEquality(t, sig.Dialect, ucode.Beta)
	n64testing.ExpectEquality(t, sig.Stride, 5)

	_, ok = ucode.LookupSignature(0)
	n64testing.ExpectFailure(t, ok)
}

func TestLoadStore(t *testing.T) {
	uc := ucode.NewUCode("gspF3DEX2.fifo", 0x1000, []byte{1, 2, 3}, []byte(f3dex2))
	n64testing.ExpectEquality(t, len(uc.Text), 8)

	var buf bytes.Buffer
	n64testing.ExpectSuccess(t, uc.Store(&buf))

	got, err := ucode.Load(&buf)
	n64testing.ExpectSuccess(t, err)
	n64testing.ExpectEquality(t, got.Name, uc.Name)
	n64testing.ExpectEquality(t, got.Entry, uc.Entry)
	n64testing.ExpectSuccess(t, bytes.Equal(got.Text, uc.Text))
	n64testing.ExpectSuccess(t, bytes.Equal(got.Data, uc.Data))

	v, ok := got.VersionString()
	n64testing.ExpectSuccess(t, ok)
	n64testing.ExpectEquality(t, v, f3dex2)
	n64testing.ExpectEquality(t, got.Detect().Dialect, ucode.GBI2)
	n64testing.ExpectEquality(t, got.Hash(), uc.Hash())
}

func TestLoadInvalid(t *testing.T) {
	_, err := ucode.Load(bytes.NewReader([]byte{0, 0}))
	n64testing.ExpectFailure(t, err)

	_, err = ucode.Load(bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}))
	n64testing.ExpectSuccess(t, errors.Is(err, ucode.ErrFormat))
}

func TestDialectString(t *testing.T) {
	n64testing.ExpectEquality(t, ucode.GBI2S2DEX.String(), "GBI2_S2DEX")
	n64testing.ExpectEquality(t, ucode.Dialect(42).String(), "Dialect(42)")
	n64testing.ExpectSuccess(t, ucode.GBI1.IsBase())
	n64testing.ExpectFailure(t, ucode.DKR.IsBase())
}
