package ucode

import (
	"strings"

	"github.com/clktmr/n64hle/rcp/rdram"
)

// Size of the version string buffer including its terminator.
const versionBufferSize = 256

// Fallback vertex stride for microcode that can't be identified.
const DefaultStride = 10

// Hash computes the signature hash over size bytes at base. It must stay
// stable, the signature table depends on it.
func Hash(r rdram.ByteReader, base, size uint32) uint32 {
	var hash uint32
	for i := uint32(0); i < size; i++ {
		hash = (hash << 4) + hash + uint32(r.Read8(base+i))
	}
	return hash
}

// VersionString searches the size bytes at base for "RSP" and returns the
// printable run starting there. The run may extend past the end of the
// searched region.
func VersionString(r rdram.ByteReader, base, size uint32) (string, bool) {
	for i := uint32(0); i+2 < size; i++ {
		if r.Read8(base+i) != 'R' || r.Read8(base+i+1) != 'S' || r.Read8(base+i+2) != 'P' {
			continue
		}
		var sb strings.Builder
		for n := 0; n < versionBufferSize-1; n++ {
			// bytes are signed, so anything >= 0x80 terminates too
			c := int8(r.Read8(base + i + uint32(n)))
			if c < ' ' {
				break
			}
			sb.WriteByte(byte(c))
		}
		return sb.String(), true
	}
	return "", false
}

var markers = [...]string{"F3", "L3", "S2DEX"}

// Classify maps a version string to a base dialect and vertex stride.
// Strings without a known marker fall back to GBI0.
func Classify(version string) (Dialect, int) {
	var match string
	for _, m := range markers {
		if i := strings.Index(version, m); i >= 0 {
			match = version[i:]
			break
		}
	}
	if match == "" {
		return GBI0, DefaultStride
	}

	s2dex := strings.HasPrefix(match, "S2DEX")
	if strings.Contains(match, "fifo") || strings.Contains(match, "xbus") {
		if s2dex {
			return GBI2S2DEX, 2
		}
		return GBI2, 2
	}
	if s2dex {
		return GBI1S2DEX, 2
	}
	return GBI1, 2
}

// Detection is the outcome of identifying a microcode.
type Detection struct {
	Dialect Dialect // custom or base dialect
	Base    Dialect // table the dispatch table is derived from
	Stride  int     // vertex index stride
	Hash    uint32

	Version string // version string or signature description
	Found   bool   // Version is known
}

// Detect identifies the microcode with code and data segments in the given
// memories. Code and data usually live in the same memory.
func Detect(code rdram.ByteReader, codeBase, codeSize uint32, data rdram.ByteReader, dataBase, dataSize uint32) Detection {
	hash := Hash(code, codeBase, codeSize)
	if sig, ok := LookupSignature(hash); ok {
		return Detection{
			Dialect: sig.Dialect,
			Base:    sig.Base,
			Stride:  sig.Stride,
			Hash:    hash,
			Version: sig.Description,
			Found:   true,
		}
	}

	version, found := VersionString(data, dataBase, dataSize)
	d, stride := GBI0, DefaultStride
	if found {
		d, stride = Classify(version)
	}
	return Detection{
		Dialect: d,
		Base:    d,
		Stride:  stride,
		Hash:    hash,
		Version: version,
		Found:   found,
	}
}
