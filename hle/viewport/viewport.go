// Package viewport maps console screen coordinates to the host render
// target.
package viewport

import (
	"image"
	"math"

	"golang.org/x/image/math/f32"
)

// Default logical resolution of the console.
const (
	LogicalWidth  = 320
	LogicalHeight = 240
)

// HDScale compresses the horizontal axis when a 4:3 image is shown on a
// 16:9 target.
const HDScale = 0.754166

// Mapper converts between the console's logical coordinate space and the
// host surface. It also holds the console viewport set by display lists.
type Mapper struct {
	hostW, hostH       int
	logicalW, logicalH int
	upscale            float32
	widescreen         bool

	scale, trans f32.Vec2

	vpScale, vpTrans f32.Vec2
}

// New returns a mapper for a host surface of the given size.
func New(hostW, hostH int) *Mapper {
	m := &Mapper{
		hostW: hostW, hostH: hostH,
		logicalW: LogicalWidth, logicalH: LogicalHeight,
		upscale: 1,
	}
	m.update()
	m.vpScale = f32.Vec2{LogicalWidth / 2, LogicalHeight / 2}
	m.vpTrans = m.vpScale
	return m
}

func (m *Mapper) update() {
	sx := float32(m.hostW) * m.upscale / float32(m.logicalW)
	sy := float32(m.hostH) * m.upscale / float32(m.logicalH)
	tx := float32(0)
	if m.widescreen {
		tx = float32(m.hostW) * m.upscale * (1 - HDScale) / 2
		sx *= HDScale
	}
	m.scale = f32.Vec2{sx, sy}
	m.trans = f32.Vec2{tx, 0}
}

// SetHostSize changes the size of the host surface.
func (m *Mapper) SetHostSize(w, h int) {
	m.hostW, m.hostH = w, h
	m.update()
}

// HostSize returns the size of the internal render target, which is the
// host surface scaled by the upscale factor.
func (m *Mapper) HostSize() (w, h int) {
	return int(float32(m.hostW) * m.upscale), int(float32(m.hostH) * m.upscale)
}

// SetLogicalSize changes the console resolution, as programmed in the video
// interface.
func (m *Mapper) SetLogicalSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.logicalW, m.logicalH = w, h
	m.update()
}

// SetUpscale sets the internal upscale factor.
func (m *Mapper) SetUpscale(f float32) {
	if f <= 0 {
		f = 1
	}
	m.upscale = f
	m.update()
}

// SetWidescreen enables horizontal compression by HDScale.
func (m *Mapper) SetWidescreen(enable bool) {
	m.widescreen = enable
	m.update()
}

// SetTransform overrides the derived scale and translation.
func (m *Mapper) SetTransform(scale, trans f32.Vec2) {
	m.scale, m.trans = scale, trans
}

// Transform returns the current scale and translation.
func (m *Mapper) Transform() (scale, trans f32.Vec2) {
	return m.scale, m.trans
}

// ToHost maps a logical coordinate to the host surface. Both the input and
// the result are rounded, so adjacent rectangles don't leave gaps once
// scaled.
func (m *Mapper) ToHost(p f32.Vec2) f32.Vec2 {
	return f32.Vec2{
		round(round(p[0])*m.scale[0] + m.trans[0]),
		round(round(p[1])*m.scale[1] + m.trans[1]),
	}
}

func round(f float32) float32 {
	return float32(math.Round(float64(f)))
}

// SetViewport sets the console viewport, in logical pixels.
func (m *Mapper) SetViewport(scale, trans f32.Vec2) {
	m.vpScale, m.vpTrans = scale, trans
}

// Viewport returns the console viewport.
func (m *Mapper) Viewport() (scale, trans f32.Vec2) {
	return m.vpScale, m.vpTrans
}

// HostViewport returns the console viewport in host pixels.
func (m *Mapper) HostViewport() image.Rectangle {
	lo := m.ToHost(f32.Vec2{m.vpTrans[0] - m.vpScale[0], m.vpTrans[1] - m.vpScale[1]})
	hi := m.ToHost(f32.Vec2{m.vpTrans[0] + m.vpScale[0], m.vpTrans[1] + m.vpScale[1]})
	return image.Rect(int(lo[0]), int(lo[1]), int(hi[0]), int(hi[1]))
}

// Project maps normalised device coordinates to host pixels. The returned
// z is depth in [0, 1] for points inside the view volume. Unlike ToHost the
// result is not rounded: triangles keep their subpixel position and only
// rectangle corners snap to whole pixels.
func (m *Mapper) Project(ndc f32.Vec3) f32.Vec3 {
	x := m.vpTrans[0] + ndc[0]*m.vpScale[0]
	y := m.vpTrans[1] - ndc[1]*m.vpScale[1]
	return f32.Vec3{
		x*m.scale[0] + m.trans[0],
		y*m.scale[1] + m.trans[1],
		ndc[2]*0.5 + 0.5,
	}
}
