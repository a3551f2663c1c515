package renderer

import (
	"math"

	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/logger"
)

// MaxLights is the number of directional lights. Conker uses more than 8.
const MaxLights = 16

// TnLFlags select the per-vertex work done by SubmitVertex.
type TnLFlags uint32

const (
	TnLTexture TnLFlags = 1 << iota
	TnLLight
	TnLTexGen
	TnLTexGenLin
	TnLFog
	TnLShade
	TnLZBuffer
	TnLCull
	TnLCullBack
)

// Light is a directional light.
type Light struct {
	Direction f32.Vec3 // normalised
	Color     f32.Vec4 // components in [0, 1]
}

// TnL is the transform and lighting state.
type TnL struct {
	Flags        TnLFlags
	NumLights    int
	TextureScale f32.Vec2

	// The light after the last directional light is the ambient term.
	Lights [MaxLights + 1]Light

	FogMult, FogOffset float32
}

func (r *Renderer) TnL() TnL {
	return r.tnl
}

// SetTnLMode replaces all flags except texturing, which is controlled by
// SetTextureEnable, and culling, which is controlled by SetCullMode.
func (r *Renderer) SetTnLMode(mode TnLFlags) {
	keep := TnLTexture | TnLCull | TnLCullBack
	r.setFlags(r.tnl.Flags&keep | mode&^keep)
}

func (r *Renderer) SetTextureEnable(enable bool) {
	if enable {
		r.setFlags(r.tnl.Flags | TnLTexture)
	} else {
		r.setFlags(r.tnl.Flags &^ TnLTexture)
	}
}

func (r *Renderer) setFlags(f TnLFlags) {
	if f != r.tnl.Flags {
		r.Flush()
	}
	r.tnl.Flags = f
}

// SetCullMode enables face culling. back selects which faces are culled.
func (r *Renderer) SetCullMode(enable, back bool) {
	r.tnl.Flags &^= TnLCull | TnLCullBack
	if enable {
		r.tnl.Flags |= TnLCull
	}
	if back {
		r.tnl.Flags |= TnLCullBack
	}
}

// SetTextureScale sets the factors applied to vertex texture coordinates.
func (r *Renderer) SetTextureScale(s, t float32) {
	r.tnl.TextureScale = f32.Vec2{s, t}
}

// SetNumLights sets the number of directional lights. Out of range values
// are clamped.
func (r *Renderer) SetNumLights(n int) {
	if n < 0 || n > MaxLights {
		r.log.Logf(logger.Allow, "renderer", "%d lights, clamping to %d", n, MaxLights)
		n = min(max(n, 0), MaxLights)
	}
	r.tnl.NumLights = n
}

func (r *Renderer) validLight(l int) bool {
	if l < 0 || l > MaxLights {
		r.log.Logf(logger.Allow, "renderer", "light %d out of range", l)
		return false
	}
	return true
}

// SetLightColor sets the colour of light l from 8-bit components.
func (r *Renderer) SetLightColor(l int, red, green, blue uint8) {
	if !r.validLight(l) {
		return
	}
	r.tnl.Lights[l].Color = f32.Vec4{float32(red) / 255, float32(green) / 255, float32(blue) / 255, 1}
}

// SetLightDirection sets the direction of light l. It is normalised.
func (r *Renderer) SetLightDirection(l int, x, y, z float32) {
	if !r.validLight(l) {
		return
	}
	r.tnl.Lights[l].Direction = normalise(f32.Vec3{x, y, z})
}

// SetFog sets the fog multiplier and offset as given by the microcode.
func (r *Renderer) SetFog(mult, offset int16) {
	r.tnl.FogMult = float32(mult)
	r.tnl.FogOffset = float32(offset)
}

// SetFogRange derives multiplier and offset from a depth range in [0, 1000].
func (r *Renderer) SetFogRange(near, far float32) {
	if far == near {
		far = near + 1
	}
	mult := 128000 / (far - near)
	r.tnl.FogMult = mult
	r.tnl.FogOffset = (500 - near) * 256 / (far - near)
}

func normalise(v f32.Vec3) f32.Vec3 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return v
	}
	return f32.Vec3{v[0] / l, v[1] / l, v[2] / l}
}

func dot(a, b f32.Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func clamp01(f float32) float32 {
	return min(max(f, 0), 1)
}

// light returns the colour for a normal in model-view space.
func (r *Renderer) light(n f32.Vec3) f32.Vec4 {
	c := r.tnl.Lights[r.tnl.NumLights].Color
	for i := 0; i < r.tnl.NumLights; i++ {
		l := &r.tnl.Lights[i]
		if d := dot(l.Direction, n); d > 0 {
			c[0] += l.Color[0] * d
			c[1] += l.Color[1] * d
			c[2] += l.Color[2] * d
		}
	}
	return f32.Vec4{clamp01(c[0]), clamp01(c[1]), clamp01(c[2]), 1}
}
