// Package rom loads cartridge images in any of the three byte orders found
// in dumps and parses their header.
//
// https://n64brew.dev/wiki/ROM_Header
package rom

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// HeaderSize is the size of the cartridge header.
const HeaderSize = 0x40

var (
	ErrShort  = errors.New("rom: image smaller than header")
	ErrFormat = errors.New("rom: unknown byte order")
)

// ByteOrder is the byte order of a dump, named after its usual file
// extension.
type ByteOrder uint8

const (
	Z64 ByteOrder = iota // big endian, native
	V64                  // halfwords byte swapped
	N64                  // words little endian
)

func (o ByteOrder) String() string {
	switch o {
	case Z64:
		return "z64"
	case V64:
		return "v64"
	case N64:
		return "n64"
	}
	return fmt.Sprintf("ByteOrder(%d)", uint8(o))
}

// First word of the PI domain configuration as read in each order.
var magic = [...][4]byte{
	Z64: {0x80, 0x37, 0x12, 0x40},
	V64: {0x37, 0x80, 0x40, 0x12},
	N64: {0x40, 0x12, 0x37, 0x80},
}

// Header is the parsed cartridge header.
type Header struct {
	ClockRate   uint32
	BootAddress uint32
	Release     uint32
	CRC1, CRC2  uint32
	Title       string
	Category    byte
	ID          string
	Region      byte
	Version     uint8
}

// GameCode returns the four character code, e.g. "NSME".
func (h *Header) GameCode() string {
	return string(h.Category) + h.ID + string(h.Region)
}

// ROM is a cartridge image converted to big endian.
type ROM struct {
	Order  ByteOrder
	Header Header
	Data   []byte
}

// Detect returns the byte order of an image from its first four bytes.
func Detect(b []byte) (ByteOrder, error) {
	if len(b) < 4 {
		return 0, ErrShort
	}
	for o, m := range magic {
		if bytes.Equal(b[:4], m[:]) {
			return ByteOrder(o), nil
		}
	}
	return 0, fmt.Errorf("%w: %02x", ErrFormat, b[:4])
}

// Normalize converts b in place from order o to big endian.
func Normalize(b []byte, o ByteOrder) {
	switch o {
	case V64:
		for i := 0; i+1 < len(b); i += 2 {
			b[i], b[i+1] = b[i+1], b[i]
		}
	case N64:
		for i := 0; i+3 < len(b); i += 4 {
			b[i], b[i+1], b[i+2], b[i+3] = b[i+3], b[i+2], b[i+1], b[i]
		}
	}
}

// Parse detects the byte order of b, converts it in place and parses the
// header. The returned ROM references b.
func Parse(b []byte) (*ROM, error) {
	if len(b) < HeaderSize {
		return nil, ErrShort
	}
	o, err := Detect(b)
	if err != nil {
		return nil, err
	}
	Normalize(b, o)

	h, err := ParseHeader(b[:HeaderSize])
	if err != nil {
		return nil, err
	}
	return &ROM{Order: o, Header: h, Data: b}, nil
}

// ParseHeader parses a big endian header.
func ParseHeader(b []byte) (h Header, err error) {
	if len(b) < HeaderSize {
		return h, ErrShort
	}
	word := func(i int) uint32 { return binary.BigEndian.Uint32(b[i:]) }
	h.ClockRate = word(0x04)
	h.BootAddress = word(0x08)
	h.Release = word(0x0c)
	h.CRC1 = word(0x10)
	h.CRC2 = word(0x14)
	h.Title, err = DecodeTitle(b[0x20:0x34])
	if err != nil {
		return h, fmt.Errorf("rom: title: %w", err)
	}
	h.Category = b[0x3b]
	h.ID = string(b[0x3c:0x3e])
	h.Region = b[0x3e]
	h.Version = b[0x3f]
	return h, nil
}

// DecodeTitle decodes a Shift-JIS title and trims its padding.
func DecodeTitle(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	s, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(s), " "), nil
}

// Load reads a whole image from r.
func Load(r io.Reader) (*ROM, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rom: %w", err)
	}
	return Parse(b)
}

// Open loads the image in file name.
func Open(name string) (*ROM, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
