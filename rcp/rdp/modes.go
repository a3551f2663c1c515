// Package rdp describes the state of the display processor as programmed by
// RDP commands embedded in display lists: other modes, the colour combiner
// and colour formats. For 3D graphics the commands are produced by the RSP,
// the HLE layer interprets them directly.
package rdp

// Opcodes of RDP commands that may appear in a display list.
const (
	OpTexRect         = 0xe4
	OpTexRectFlip     = 0xe5
	OpSyncLoad        = 0xe6
	OpSyncPipe        = 0xe7
	OpSyncTile        = 0xe8
	OpSyncFull        = 0xe9
	OpSetKeyGB        = 0xea
	OpSetKeyR         = 0xeb
	OpSetConvert      = 0xec
	OpSetScissor      = 0xed
	OpSetPrimDepth    = 0xee
	OpSetOtherMode    = 0xef
	OpLoadTLUT        = 0xf0
	OpSetTileSize     = 0xf2
	OpLoadBlock       = 0xf3
	OpLoadTile        = 0xf4
	OpSetTile         = 0xf5
	OpFillRect        = 0xf6
	OpSetFillColor    = 0xf7
	OpSetFogColor     = 0xf8
	OpSetBlendColor   = 0xf9
	OpSetPrimColor    = 0xfa
	OpSetEnvColor     = 0xfb
	OpSetCombine      = 0xfc
	OpSetTextureImage = 0xfd
	OpSetDepthImage   = 0xfe
	OpSetColorImage   = 0xff
)

// ModeFlags is the 64-bit other modes word. The high word holds bits 32 to
// 63, the low word (render mode and blender) bits 0 to 31.
// TODO Blend modewords (bits 16-31)
type ModeFlags uint64

const (
	AlphaCompare ModeFlags = 1 << iota
	DitherAlpha
	ZSource
	AntiAlias
	ZCompare
	ZUpdate
	ImageRead
	ColorOnCoverage
	CvgTimesAlphaVG ModeFlags = 1 << (iota + 4)
	AlphaCvgSelect
	ForceBlend
	ChromaKeying ModeFlags = 1 << (iota + 29)
	ConvertOne
	BiLerp1
	BiLerp0
	MidTexel
	SampleType
	TLUTType
	TLUT
	TextureLOD
	TextureSharpen
	TextureDetail
	TexturePerpective
	AtomicPrimitive = 1 << 55
)

// CycleType selects the pipeline mode of the RDP.
type CycleType uint8

const (
	CycleOne CycleType = iota
	CycleTwo
	CycleCopy
	CycleFill
)

const (
	CycleTypeOne ModeFlags = iota << 52
	CycleTypeTwo
	CycleTypeCopy
	CycleTypeFill

	cycleTypeMask = 3 << 52
)

const (
	ZmodeOpaque ModeFlags = iota << 10
	ZmodeInterpenetrating
	ZmodeTransparent
	ZmodeDecal

	zmodeMask = 3 << 10
)

func (m ModeFlags) CycleType() CycleType {
	return CycleType((m & cycleTypeMask) >> 52)
}

// DepthTest reports whether primitives are compared against the depth
// buffer.
func (m ModeFlags) DepthTest() bool {
	return m&ZCompare != 0
}

// DepthWrite reports whether primitives update the depth buffer.
func (m ModeFlags) DepthWrite() bool {
	return m&ZUpdate != 0
}

// PrimDepth reports whether depth comes from the primitive depth register
// instead of the vertices.
func (m ModeFlags) PrimDepth() bool {
	return m&ZSource != 0
}

// Decal reports whether coplanar surfaces are drawn on top of each other.
func (m ModeFlags) Decal() bool {
	return m&zmodeMask == ZmodeDecal
}

// SetBits replaces length bits starting at shift with the same bits of data.
// Shifts refer to the high word if high is set. Out of range fields are
// clipped to the word.
func (m *ModeFlags) SetBits(high bool, shift, length uint32, data uint32) {
	if shift >= 32 || length == 0 {
		return
	}
	length = min(length, 32-shift)
	mask := uint32((uint64(1)<<length - 1) << shift)
	if high {
		w := uint32(*m >> 32)
		w = w&^mask | data&mask
		*m = ModeFlags(w)<<32 | *m&0xffffffff
	} else {
		w := uint32(*m)
		w = w&^mask | data&mask
		*m = *m&^0xffffffff | ModeFlags(w)
	}
}

// High returns bits 32 to 63.
func (m ModeFlags) High() uint32 { return uint32(m >> 32) }

// Low returns bits 0 to 31.
func (m ModeFlags) Low() uint32 { return uint32(m) }
