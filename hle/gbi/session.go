package gbi

import (
	"github.com/clktmr/n64hle/hle/renderer"
	"github.com/clktmr/n64hle/hle/viewport"
	"github.com/clktmr/n64hle/logger"
	"github.com/clktmr/n64hle/random"
	"github.com/clktmr/n64hle/rcp/rdram"
	"github.com/clktmr/n64hle/rcp/rsp/ucode"
)

// CacheSize is the number of microcodes remembered by Identify.
const CacheSize = 6

// Info describes an identified microcode.
type Info struct {
	Dialect ucode.Dialect
	Base    ucode.Dialect
	Stride  int
	Hash    uint32
	Version string

	// Table is shared between sessions for base dialects and must not be
	// modified.
	Table *Table
}

type cacheEntry struct {
	used               bool
	codeBase, dataBase uint32
	info               Info
}

// Session executes display lists. It owns all state of the graphics core and
// is not safe for concurrent use.
type Session struct {
	Mem      *rdram.Memory
	Renderer *renderer.Renderer

	cfg  Config
	log  *logger.Logger
	rand *random.Random

	cache [CacheSize]cacheEntry
	info  Info
	table *Table

	segments [16]uint32
	stack    [MaxDLDepth]frame
	depth    int
	executed int

	rdpHalf1, rdpHalf2 uint32
	geometryMode       uint32

	colorImage   imageDesc
	depthImage   uint32
	textureImage imageDesc
	tiles        [8]Tile

	dkr struct {
		vtxBase   uint32
		mtxBase   uint32
		vtxCount  int
		billboard bool
	}
}

// New returns a session interpreting display lists stored in mem.
func New(mem *rdram.Memory, opts ...Option) *Session {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	s := &Session{Mem: mem, cfg: cfg, log: cfg.Log}
	if s.log == nil {
		s.log = logger.Central()
	}
	if cfg.Seed != 0 {
		s.rand = random.NewSeeded(cfg.Seed)
	} else {
		s.rand = random.NewRandom()
	}

	mapper := viewport.New(cfg.HostWidth, cfg.HostHeight)
	mapper.SetUpscale(cfg.Upscale)
	mapper.SetWidescreen(cfg.Widescreen)
	s.Renderer = renderer.New(cfg.Raster, mapper, mem, s.log)

	s.Reset()
	return s
}

// Reset forgets all identified microcode and display list state.
func (s *Session) Reset() {
	s.ResetMicrocode()
	s.Renderer.Reset()
	s.resetDL()
	s.rand.Reset()
}

// ResetMicrocode clears the identification cache.
func (s *Session) ResetMicrocode() {
	clear(s.cache[:])
	s.info = Info{}
	s.table = nil
}

func (s *Session) Config() Config {
	return s.cfg
}

// Info returns the microcode of the display list being executed.
func (s *Session) Info() Info {
	return s.info
}

// CacheLen returns the number of cached microcodes.
func (s *Session) CacheLen() (n int) {
	for _, e := range s.cache {
		if e.used {
			n++
		}
	}
	return
}

// Identify returns the dispatch information for the microcode with the given
// code and data segments. Results are cached by address, so changing the
// microcode at a known address requires ResetMicrocode.
func (s *Session) Identify(codeBase, codeSize, dataBase, dataSize uint32) Info {
	i := 0
	for ; i < CacheSize; i++ {
		e := &s.cache[i]
		if !e.used {
			break
		}
		if e.codeBase == codeBase && e.dataBase == dataBase {
			return e.info
		}
	}

	codeSize = min(codeSize, s.Mem.Size())
	dataSize = min(dataSize, s.Mem.Size())
	det := ucode.Detect(s.Mem, codeBase, codeSize, s.Mem, dataBase, dataSize)
	if !det.Found {
		s.log.Logf(logger.Allow, "ucode", "warning: no version string found, assuming %v", det.Base)
	}

	info := Info{
		Dialect: det.Dialect,
		Base:    det.Base,
		Stride:  det.Stride,
		Hash:    det.Hash,
		Version: det.Version,
	}
	if det.Dialect.IsBase() {
		info.Table = &normal[det.Base]
	} else {
		t := Build(det.Dialect, det.Base, s.log)
		info.Table = &t
	}
	s.log.Logf(logger.Allow, "ucode", "%v (hash 0x%08x) %q game %q", info.Dialect, info.Hash, info.Version, s.cfg.GameName)

	if i == CacheSize {
		i = s.rand.IntN(CacheSize)
		s.log.Logf(logger.Allow, "ucode", "cache full, replacing entry %d", i)
	}
	s.cache[i] = cacheEntry{used: true, codeBase: codeBase, dataBase: dataBase, info: info}
	return info
}

// use switches to the microcode at the given addresses.
func (s *Session) use(codeBase, codeSize, dataBase, dataSize uint32) {
	s.Renderer.Flush()
	s.info = s.Identify(codeBase, codeSize, dataBase, dataSize)
	s.table = s.info.Table
}
