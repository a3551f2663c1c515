// Package gbi interprets display lists. It identifies the microcode a task
// runs, builds the matching dispatch table and drives the geometry pipeline
// with the decoded commands.
package gbi

import (
	"github.com/clktmr/n64hle/debug"
	"github.com/clktmr/n64hle/logger"
	"github.com/clktmr/n64hle/rcp/rsp/ucode"
)

// Handler executes one display list command.
type Handler func(s *Session, w0, w1 uint32)

// Instruction is an entry of a dispatch table.
type Instruction struct {
	Fn   Handler
	Name string
}

// Table maps opcodes, the top byte of a command's first word, to handlers.
type Table [256]Instruction

// Opcode returns the opcode of a command.
func Opcode(w0 uint32) uint8 {
	return uint8(w0 >> 24)
}

func (t *Table) set(op uint8, fn Handler, name string) {
	t[op] = Instruction{fn, name}
}

// Normal tables of the base dialects. They are built once and never modified
// afterwards.
var normal [ucode.NumBase]Table

func init() {
	normal[ucode.GBI0] = gbi0Table()
	normal[ucode.GBI1] = gbi1Table()
	normal[ucode.GBI2] = gbi2Table()
	normal[ucode.GBI1S2DEX] = gbi1S2DEXTable()
	normal[ucode.GBI2S2DEX] = gbi2S2DEXTable()
	initPatches()
}

// Normal returns a copy of the normal table of a base dialect.
func Normal(d ucode.Dialect) Table {
	if !d.IsBase() {
		debug.Assertf(false, "%v is not a base dialect", d)
		d = ucode.GBI0
	}
	return normal[d]
}

func emptyTable() (t Table) {
	for i := range t {
		t[i] = Instruction{unknown, "G_Unknown"}
	}
	return
}

// rdpTable fills in the RDP commands shared by all dialects.
func rdpTable() Table {
	t := emptyTable()
	t.set(0xc0, noop, "G_NOOP")
	for op := 0xc8; op <= 0xcf; op++ {
		t.set(uint8(op), rdpTriangle, "G_TRI_RDP")
	}
	t.set(0xe4, texRect, "G_TEXRECT")
	t.set(0xe5, texRectFlip, "G_TEXRECTFLIP")
	t.set(0xe6, noop, "G_RDPLOADSYNC")
	t.set(0xe7, noop, "G_RDPPIPESYNC")
	t.set(0xe8, noop, "G_RDPTILESYNC")
	t.set(0xe9, noop, "G_RDPFULLSYNC")
	t.set(0xea, noop, "G_SETKEYGB")
	t.set(0xeb, noop, "G_SETKEYR")
	t.set(0xec, noop, "G_SETCONVERT")
	t.set(0xed, setScissor, "G_SETSCISSOR")
	t.set(0xee, setPrimDepth, "G_SETPRIMDEPTH")
	t.set(0xef, setOtherMode, "G_RDPSETOTHERMODE")
	t.set(0xf0, loadTLUT, "G_LOADTLUT")
	t.set(0xf2, setTileSize, "G_SETTILESIZE")
	t.set(0xf3, loadBlock, "G_LOADBLOCK")
	t.set(0xf4, loadTile, "G_LOADTILE")
	t.set(0xf5, setTile, "G_SETTILE")
	t.set(0xf6, fillRect, "G_FILLRECT")
	t.set(0xf7, setFillColor, "G_SETFILLCOLOR")
	t.set(0xf8, setFogColor, "G_SETFOGCOLOR")
	t.set(0xf9, setBlendColor, "G_SETBLENDCOLOR")
	t.set(0xfa, setPrimColor, "G_SETPRIMCOLOR")
	t.set(0xfb, setEnvColor, "G_SETENVCOLOR")
	t.set(0xfc, setCombine, "G_SETCOMBINE")
	t.set(0xfd, setTextureImage, "G_SETTIMG")
	t.set(0xfe, setDepthImage, "G_SETZIMG")
	t.set(0xff, setColorImage, "G_SETCIMG")
	return t
}

// Fast3D
func gbi0Table() Table {
	t := rdpTable()
	t.set(0x00, noop, "G_SPNOOP")
	t.set(0x01, gbi0Mtx, "G_MTX")
	t.set(0x02, noop, "G_RESERVED0")
	t.set(0x03, gbi1MoveMem, "G_MOVEMEM")
	t.set(0x04, gbi0Vtx, "G_VTX")
	t.set(0x05, noop, "G_RESERVED1")
	t.set(0x06, gbi1DL, "G_DL")
	t.set(0x07, noop, "G_RESERVED2")
	t.set(0x08, noop, "G_RESERVED3")
	t.set(0x09, placeholder, "G_SPRITE2D_BASE")
	t.set(0xb1, gbi0Tri4, "G_TRI4")
	t.set(0xb2, noop, "G_RDPHALF_CONT")
	t.set(0xb3, rdpHalf2, "G_RDPHALF_2")
	t.set(0xb4, rdpHalf1, "G_RDPHALF_1")
	t.set(0xb5, gbi1Line3D, "G_LINE3D")
	t.set(0xb6, gbi1ClearGeometryMode, "G_CLEARGEOMETRYMODE")
	t.set(0xb7, gbi1SetGeometryMode, "G_SETGEOMETRYMODE")
	t.set(0xb8, endDL, "G_ENDDL")
	t.set(0xb9, gbi1SetOtherModeL, "G_SETOTHERMODE_L")
	t.set(0xba, gbi1SetOtherModeH, "G_SETOTHERMODE_H")
	t.set(0xbb, gbi1Texture, "G_TEXTURE")
	t.set(0xbc, gbi1MoveWord, "G_MOVEWORD")
	t.set(0xbd, gbi1PopMtx, "G_POPMTX")
	t.set(0xbe, gbi0CullDL, "G_CULLDL")
	t.set(0xbf, gbi1Tri1, "G_TRI1")
	return t
}

// F3DEX
func gbi1Table() Table {
	t := gbi0Table()
	t.set(0x01, gbi1Mtx, "G_MTX")
	t.set(0x04, gbi1Vtx, "G_VTX")
	t.set(0x09, noop, "G_RESERVED4")
	t.set(0xaf, gbi1LoadUCode, "G_LOAD_UCODE")
	t.set(0xb0, gbi1BranchZ, "G_BRANCH_Z")
	t.set(0xb1, gbi1Tri2, "G_TRI2")
	t.set(0xb2, gbi1ModifyVtx, "G_MODIFYVTX")
	t.set(0xbe, gbi1CullDL, "G_CULLDL")
	return t
}

// F3DEX2
func gbi2Table() Table {
	t := rdpTable()
	t.set(0x00, noop, "G_NOOP")
	t.set(0x01, gbi2Vtx, "G_VTX")
	t.set(0x02, gbi2ModifyVtx, "G_MODIFYVTX")
	t.set(0x03, gbi2CullDL, "G_CULLDL")
	t.set(0x04, gbi2BranchZ, "G_BRANCH_Z")
	t.set(0x05, gbi2Tri1, "G_TRI1")
	t.set(0x06, gbi2Tri2, "G_TRI2")
	t.set(0x07, gbi2Quad, "G_QUAD")
	t.set(0x08, placeholder, "G_LINE3D")
	t.set(0xd3, placeholder, "G_SPECIAL_3")
	t.set(0xd4, placeholder, "G_SPECIAL_2")
	t.set(0xd5, placeholder, "G_SPECIAL_1")
	t.set(0xd6, noop, "G_DMA_IO")
	t.set(0xd7, gbi2Texture, "G_TEXTURE")
	t.set(0xd8, gbi2PopMtx, "G_POPMTX")
	t.set(0xd9, gbi2GeometryMode, "G_GEOMETRYMODE")
	t.set(0xda, gbi2Mtx, "G_MTX")
	t.set(0xdb, gbi2MoveWord, "G_MOVEWORD")
	t.set(0xdc, gbi2MoveMem, "G_MOVEMEM")
	t.set(0xdd, gbi2LoadUCode, "G_LOAD_UCODE")
	t.set(0xde, gbi2DL, "G_DL")
	t.set(0xdf, endDL, "G_ENDDL")
	t.set(0xe0, noop, "G_SPNOOP")
	t.set(0xe1, rdpHalf1, "G_RDPHALF_1")
	t.set(0xe2, gbi2SetOtherModeL, "G_SETOTHERMODE_L")
	t.set(0xe3, gbi2SetOtherModeH, "G_SETOTHERMODE_H")
	t.set(0xf1, rdpHalf2, "G_RDPHALF_2")
	return t
}

func s2dexTable(t *Table) {
	t.set(0x01, objRectangle, "G_OBJ_RECTANGLE")
	t.set(0x02, placeholder, "G_OBJ_SPRITE")
	t.set(0x04, placeholder, "G_SELECT_DL")
	t.set(0x05, placeholder, "G_OBJ_LOADTXTR")
	t.set(0x06, placeholder, "G_OBJ_LDTX_SPRITE")
	t.set(0x07, placeholder, "G_OBJ_LDTX_RECT")
	t.set(0x08, placeholder, "G_OBJ_LDTX_RECT_R")
	t.set(0x09, bg1Cyc, "G_BG_1CYC")
	t.set(0x0a, bgCopy, "G_BG_COPY")
	t.set(0x0b, placeholder, "G_OBJ_RENDERMODE")
}

func gbi1S2DEXTable() Table {
	t := gbi1Table()
	s2dexTable(&t)
	t.set(0x03, noop, "G_RESERVED1")
	t.set(0xb0, noop, "G_RESERVED5")
	t.set(0xb1, objRectangle, "G_OBJ_RECTANGLE_R")
	t.set(0xb2, placeholder, "G_OBJ_MOVEMEM")
	t.set(0xb5, placeholder, "G_RDPHALF_0")
	t.set(0xbe, noop, "G_RESERVED6")
	t.set(0xbf, noop, "G_RESERVED7")
	return t
}

func gbi2S2DEXTable() Table {
	t := gbi2Table()
	s2dexTable(&t)
	t.set(0x03, noop, "G_RESERVED1")
	t.set(0xda, objRectangle, "G_OBJ_RECTANGLE_R")
	t.set(0xdc, placeholder, "G_OBJ_MOVEMEM")
	t.set(0xe4, placeholder, "G_RDPHALF_0")
	return t
}

type patch struct {
	op   uint8
	fn   Handler
	name string
}

var patches map[ucode.Dialect][]patch

func initPatches() {
	conker := []patch{
		{0x01, conkerVtx, "G_Vtx_Conker"},
		{0x05, conkerTri1, "G_Tri1_Conker"},
		{0x06, conkerTri2, "G_Tri2_Conker"},
		{0xdb, conkerMoveWord, "G_MoveWord_Conker"},
		{0xdc, conkerMoveMem, "G_MoveMem_Conker"},
	}
	for op := 0x10; op <= 0x1f; op++ {
		conker = append(conker, patch{uint8(op), conkerTri4, "G_Tri4_Conker"})
	}

	patches = map[ucode.Dialect][]patch{
		ucode.GoldenEye: {
			{0xb4, goldenEyeRDPHalf1, "G_RDPHalf1_GoldenEye"},
		},
		ucode.Beta: {
			{0x04, betaVtx, "G_Vtx_Beta"},
			{0xbf, betaTri1, "G_Tri1_Beta"},
			{0xb1, betaTri2, "G_Tri2_Beta"},
			{0xb5, betaLine3D, "G_Line3_Beta"},
		},
		ucode.LastLegion: {
			{0x80, lastLegion0x80, "G_Last_Legion_0x80"},
			{0x00, lastLegion0x00, "G_Last_Legion_0x00"},
			{0xe4, lastLegionTexRect, "G_TexRect_Last_Legion"},
		},
		ucode.PerfectDark: {
			{0x04, pdVtx, "G_Vtx_PD"},
			{0x07, pdSetVtxCI, "G_Set_Vtx_CI_PD"},
			{0xb4, goldenEyeRDPHalf1, "G_RDPHalf1_GoldenEye"},
		},
		ucode.DKR: {
			{0x01, dkrMtx, "G_Mtx_DKR"},
			{0x04, dkrVtx, "G_Vtx_DKR"},
			{0x05, dkrDMATri, "G_DMA_Tri_DKR"},
			{0x07, dlInMem, "G_DLInMem"},
			{0xbc, dkrMoveWord, "G_MoveWord_DKR"},
			{0xbf, dkrSetAddr, "G_Set_Addr_DKR"},
			{0xbb, dkrTexture, "G_Texture_DKR"},
		},
		ucode.Conker: conker,
	}
}

// Build returns the dispatch table for dialect d derived from base. Base
// dialects return their normal table. Custom dialects get a fresh copy of
// the base table with the dialect's opcodes patched in.
func Build(d, base ucode.Dialect, log *logger.Logger) Table {
	t := Normal(base)
	if d.IsBase() {
		return t
	}
	p, ok := patches[d]
	if !ok {
		log.Logf(logger.Allow, "gbi", "error: unknown custom microcode %v", d)
		debug.Assertf(false, "no patches for %v", d)
		return t
	}
	for _, p := range p {
		t.set(p.op, p.fn, p.name)
	}
	return t
}
