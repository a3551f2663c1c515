// Package ucode handles RSP microcode images and identifies the graphics
// command dialect a microcode implements.
//
// Microcode carries no self-describing header. Custom microcodes of a few
// titles are recognised by a hash over their code segment, all others by
// the version string embedded in their data segment.
package ucode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrFormat = errors.New("invalid microcode image")

// Maximum size of either segment. IMEM and DMEM are 4 KiB each.
const maxSegment = 0x1000

type UCode struct {
	Name string

	Entry uint32 // initial value of RSP PC register
	Text  []byte // instructions copied to IMEM
	Data  []byte // data copied to DMEM
}

// Segments are padded to a multiple of 8 bytes, the DMA granularity.
func padded(b []byte) []byte {
	p := make([]byte, (len(b)+7)&^7)
	copy(p, b)
	return p
}

func NewUCode(name string, entry uint32, text []byte, data []byte) *UCode {
	return &UCode{
		Name:  name,
		Entry: entry,
		Text:  padded(text),
		Data:  padded(data),
	}
}

func Load(r io.Reader) (ucode *UCode, err error) {
	ucode = &UCode{}
	load := func(data any) {
		if err != nil {
			return
		}
		err = binary.Read(r, binary.BigEndian, data)
	}
	loadSegment := func(what string) []byte {
		var size uint32
		load(&size)
		if err != nil {
			return nil
		}
		if size > maxSegment {
			err = fmt.Errorf("%w: %s segment of %d bytes", ErrFormat, what, size)
			return nil
		}
		b := make([]byte, size)
		load(b)
		return padded(b)
	}

	var size uint32
	load(&size)
	if err == nil && size > 255 {
		err = fmt.Errorf("%w: name of %d bytes", ErrFormat, size)
	}
	if err != nil {
		return nil, fmt.Errorf("load microcode: %w", err)
	}
	name := make([]byte, size)
	load(name)
	ucode.Name = string(name)
	load(&ucode.Entry)
	ucode.Text = loadSegment("text")
	ucode.Data = loadSegment("data")
	if err != nil {
		return nil, fmt.Errorf("load microcode: %w", err)
	}
	return ucode, nil
}

func (ucode *UCode) Store(w io.Writer) (err error) {
	store := func(data any) {
		if err != nil {
			return
		}
		err = binary.Write(w, binary.BigEndian, data)
	}
	store(uint32(len(ucode.Name)))
	store([]byte(ucode.Name))
	store(ucode.Entry)
	store(uint32(len(ucode.Text)))
	store(ucode.Text)
	store(uint32(len(ucode.Data)))
	store(ucode.Data)
	if err != nil {
		return fmt.Errorf("store microcode: %w", err)
	}
	return nil
}

// image exposes a segment in console byte order. Reads past its end return
// zero.
type image []byte

func (b image) Read8(addr uint32) uint8 {
	if addr >= uint32(len(b)) {
		return 0
	}
	return b[addr]
}

// Hash returns the signature hash of the code segment.
func (ucode *UCode) Hash() uint32 {
	return Hash(image(ucode.Text), 0, uint32(len(ucode.Text)))
}

// VersionString returns the version string embedded in the data segment.
func (ucode *UCode) VersionString() (string, bool) {
	return VersionString(image(ucode.Data), 0, uint32(len(ucode.Data)))
}

// Detect identifies the image's dialect.
func (ucode *UCode) Detect() Detection {
	return Detect(image(ucode.Text), 0, uint32(len(ucode.Text)),
		image(ucode.Data), 0, uint32(len(ucode.Data)))
}
