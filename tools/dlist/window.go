package dlist

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/clktmr/n64hle/hle/backend/ebitenraster"
	"github.com/clktmr/n64hle/hle/gbi"
)

// game reruns the task every frame and draws it to the window.
type game struct {
	s      *gbi.Session
	task   gbi.Task
	raster *ebitenraster.Raster
}

func (g *game) Update() error {
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.raster.SetTarget(screen)
	g.raster.Clear(color.Black)
	g.s.ProcessDisplayList(g.task)
}

func (g *game) Layout(_, _ int) (int, int) {
	cfg := g.s.Config()
	return cfg.HostWidth, cfg.HostHeight
}

// checker is drawn in place of every texture, tiles alternate colours so
// they can be told apart.
var checker = [2]color.RGBA{{0xff, 0x00, 0xff, 0xff}, {0x00, 0xc0, 0xc0, 0xff}}

func runWindow(s *gbi.Session, raster *ebitenraster.Raster, t gbi.Task) error {
	for tile := range 8 {
		img := ebitenraster.Checkerboard(32, 4, checker[tile%2], color.Black)
		raster.SetTexture(tile, ebiten.NewImageFromImage(img))
	}

	cfg := s.Config()
	ebiten.SetWindowSize(cfg.HostWidth, cfg.HostHeight)
	ebiten.SetWindowTitle("hle64 " + cfg.GameName)
	return ebiten.RunGame(&game{s: s, task: t, raster: raster})
}
