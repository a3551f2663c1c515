package gbi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/clktmr/n64hle/hle/renderer"
	"github.com/clktmr/n64hle/logger"
	"github.com/clktmr/n64hle/rcp/rdram"
)

// MaxDLDepth is the depth of the display list call stack.
const MaxDLDepth = 18

// Default segment sizes for tasks that leave them zero.
const (
	defaultCodeSize = 0x1000
	defaultDataSize = 0x800
)

// TaskSize is the size of an OSTask structure in bytes.
const TaskSize = 64

// TaskGfx is the type of graphics tasks.
const TaskGfx = 1

var ErrShortTask = errors.New("short task")

// Task is the OSTask structure passed to the RSP. Addresses are physical.
type Task struct {
	Type  uint32
	Flags uint32

	UCodeBoot     uint32
	UCodeBootSize uint32
	UCode         uint32
	UCodeSize     uint32
	UCodeData     uint32
	UCodeDataSize uint32

	DRAMStack      uint32
	DRAMStackSize  uint32
	OutputBuff     uint32
	OutputBuffSize uint32

	DataPtr  uint32
	DataSize uint32

	YieldDataPtr  uint32
	YieldDataSize uint32
}

// ParseTask decodes an OSTask stored in console byte order.
func ParseTask(b []byte) (t Task, err error) {
	if len(b) < TaskSize {
		return t, fmt.Errorf("parse task: %w: %d bytes", ErrShortTask, len(b))
	}
	err = binary.Read(bytes.NewReader(b[:TaskSize]), binary.BigEndian, &t)
	if err != nil {
		return t, fmt.Errorf("parse task: %w", err)
	}
	return t, nil
}

// ReadTask reads the OSTask at addr.
func ReadTask(m *rdram.Memory, addr uint32) (Task, error) {
	b := make([]byte, TaskSize)
	if _, err := m.ReadAt(b, int64(m.Mask(addr))); err != nil {
		return Task{}, fmt.Errorf("read task: %w", err)
	}
	return ParseTask(b)
}

// physical strips the KSEG bits of a CPU address.
func physical(addr uint32) uint32 {
	return addr & 0x1fffffff
}

type frame struct {
	pc    uint32
	limit int // commands left, negative if unlimited
}

func (s *Session) resetDL() {
	clear(s.segments[:])
	s.depth = -1
	s.executed = 0
	s.rdpHalf1, s.rdpHalf2 = 0, 0
	s.geometryMode = 0
}

// ProcessDisplayList executes the display list of a graphics task and
// returns the renderer statistics for it.
func (s *Session) ProcessDisplayList(t Task) renderer.Stats {
	if t.Type != TaskGfx {
		s.log.Logf(logger.Allow, "gbi", "warning: task type %d is not a graphics task", t.Type)
	}
	codeSize, dataSize := t.UCodeSize, t.UCodeDataSize
	if codeSize == 0 {
		codeSize = defaultCodeSize
	}
	if dataSize == 0 {
		dataSize = defaultDataSize
	}

	s.resetDL()
	s.use(physical(t.UCode), codeSize, physical(t.UCodeData), dataSize)

	s.Renderer.BeginScene()
	s.depth = 0
	s.stack[0] = frame{pc: s.Mem.Mask(physical(t.DataPtr)), limit: -1}
	s.run()
	s.Renderer.EndScene()

	return s.Renderer.Stats()
}

func (s *Session) run() {
	for s.depth >= 0 {
		f := &s.stack[s.depth]
		if f.limit == 0 {
			s.depth--
			continue
		}
		if s.executed >= s.cfg.InstructionBudget {
			s.log.Logf(logger.Allow, "gbi", "error: display list exceeded %d commands", s.cfg.InstructionBudget)
			s.depth = -1
			return
		}

		w0, w1 := s.Mem.Read64(f.pc)
		f.pc += 8
		if f.limit > 0 {
			f.limit--
		}
		s.executed++
		s.table[Opcode(w0)].Fn(s, w0, w1)
	}
}

// Executed returns the number of commands executed by the last display list.
func (s *Session) Executed() int {
	return s.executed
}

// Segment converts a segmented address to a physical one.
func (s *Session) Segment(addr uint32) uint32 {
	return s.Mem.Mask(s.segments[(addr>>24)&0xf] + addr&0x00ffffff)
}

func (s *Session) SetSegment(seg int, addr uint32) {
	s.segments[seg&0xf] = addr & 0x00ffffff
}

// next returns the i-th command after the current one.
func (s *Session) next(i int) (w0, w1 uint32) {
	if s.depth < 0 {
		return 0, 0
	}
	return s.Mem.Read64(s.stack[s.depth].pc + uint32(i)*8)
}

// skip consumes the next n commands.
func (s *Session) skip(n int) {
	if s.depth < 0 {
		return
	}
	s.stack[s.depth].pc += uint32(n) * 8
}

func (s *Session) pushDL(addr uint32, limit int) {
	if s.depth >= MaxDLDepth-1 {
		s.log.Logf(logger.Allow, "gbi", "error: display list stack overflow, ignoring call to 0x%08x", addr)
		return
	}
	s.depth++
	s.stack[s.depth] = frame{pc: addr, limit: limit}
}

func (s *Session) branchDL(addr uint32) {
	if s.depth >= 0 {
		s.stack[s.depth].pc = addr
	}
}

func (s *Session) popDL() {
	if s.depth >= 0 {
		s.depth--
	}
}

// Depth returns the current depth of the display list stack, -1 when no
// list is executing.
func (s *Session) Depth() int {
	return s.depth
}

func noop(s *Session, w0, w1 uint32) {}

func unknown(s *Session, w0, w1 uint32) {
	s.log.Logf(logger.Allow, "gbi", "unknown command 0x%02x (%08x %08x)", Opcode(w0), w0, w1)
}

func placeholder(s *Session, w0, w1 uint32) {
	s.log.Logf(logger.Allow, "gbi", "%s not implemented", s.table[Opcode(w0)].Name)
}

func endDL(s *Session, w0, w1 uint32) {
	s.popDL()
}

func gbi1DL(s *Session, w0, w1 uint32) {
	addr := s.Segment(w1)
	if (w0>>16)&0xff == 0 {
		s.pushDL(addr, -1)
	} else {
		s.branchDL(addr)
	}
}

func gbi2DL(s *Session, w0, w1 uint32) {
	gbi1DL(s, w0, w1)
}

// dlInMem calls a list of a fixed number of commands.
func dlInMem(s *Session, w0, w1 uint32) {
	n := int((w0 >> 16) & 0xff)
	if n == 0 {
		return
	}
	s.pushDL(s.Segment(w1), n)
}

func gbi0CullDL(s *Session, w0, w1 uint32) {
	first := int(w0&0xfff) / 40
	last := int(w1&0xfff) / 40
	if !s.Renderer.TestRange(first, last) {
		s.popDL()
	}
}

func gbi1CullDL(s *Session, w0, w1 uint32) {
	first := int(w0&0xfff) / 2
	last := int(w1&0xfff) / 2
	if !s.Renderer.TestRange(first, last) {
		s.popDL()
	}
}

func gbi2CullDL(s *Session, w0, w1 uint32) {
	gbi1CullDL(s, w0, w1)
}

// branchZ branches to the address of the preceding RDPHALF_1 if the vertex
// is closer than the given depth.
func branchZ(s *Session, vtx int, z uint32) {
	if s.Renderer.VertexDepth(vtx) <= int32(z) {
		s.branchDL(s.Segment(s.rdpHalf1))
	}
}

func gbi1BranchZ(s *Session, w0, w1 uint32) {
	branchZ(s, int(w0&0xfff)>>1, w1)
}

func gbi2BranchZ(s *Session, w0, w1 uint32) {
	branchZ(s, int(w0&0xfff)>>1, w1)
}

func rdpHalf1(s *Session, w0, w1 uint32) {
	s.rdpHalf1 = w1
}

func rdpHalf2(s *Session, w0, w1 uint32) {
	s.rdpHalf2 = w1
}

func loadUCode(s *Session, codeSize, data uint32) {
	s.use(s.Segment(s.rdpHalf1), codeSize, s.Segment(data), defaultDataSize)
	s.Renderer.SetNumLights(0)
}

func gbi1LoadUCode(s *Session, w0, w1 uint32) {
	loadUCode(s, (w0&0xffff)+1, w1)
}

func gbi2LoadUCode(s *Session, w0, w1 uint32) {
	loadUCode(s, (w0&0xffff)+1, w1)
}
