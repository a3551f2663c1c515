package rdp

const (
	CombineCombined CombineSource = iota
	CombineTex0
	CombineTex1
	CombinePrimitive
	CombineShade
	CombineEnvironment

	CombineAColorOne   CombineSource = 6
	CombineAColorNoise CombineSource = 7
	CombineAColorZero  CombineSource = 8

	CombineBColorCenter CombineSource = 6
	CombineBColorK4     CombineSource = 7
	CombineBColorZero   CombineSource = 8

	CombineCColorCenter               CombineSource = 6
	CombineCColorCombinedAlpha        CombineSource = 7
	CombineCColorTex0Alpha            CombineSource = 8
	CombineCColorTex1Alpha            CombineSource = 9
	CombineCColorPrimitiveAlpha       CombineSource = 10
	CombineCColorShadeAlpha           CombineSource = 11
	CombineCColorEnvironmentAlpha     CombineSource = 12
	CombineCColorLODFraction          CombineSource = 13
	CombineCColorPrimitiveLODFraction CombineSource = 14
	CombineCColorK5                   CombineSource = 15
	CombineCColorZero                 CombineSource = 16

	CombineCAlphaPrimitiveLODFraction CombineSource = 6
	CombineCAlphaZero                 CombineSource = 7

	CombineDColorOne  CombineSource = 6
	CombineDColorZero CombineSource = 7

	CombineDAlphaOne  CombineSource = 6
	CombineDAlphaZero CombineSource = 7
)

// The ColorCombiner computes it's output with the equation `(A-B)*C + D`, where
// the inputs A, B, C and D can be choosen from the predefined CombineSource
// values. Color and alpha are calculated separately.
// If CycleTypeTwo is active two passes can be defined, where the second pass
// can use the first pass output as it's input.
type CombineMode struct{ One, Two CombinePass }
type CombinePass struct{ RGB, Alpha CombineParams }
type CombineParams struct{ A, B, C, D CombineSource }
type CombineSource uint64

// DecodeCombine unpacks the mux of a SetCombine command. The mux is the
// command's low 56 bits.
func DecodeCombine(mux uint64) CombineMode {
	f := func(shift, bits uint) CombineSource {
		return CombineSource(mux>>shift) & (1<<bits - 1)
	}
	return CombineMode{
		One: CombinePass{
			RGB:   CombineParams{A: f(52, 4), B: f(28, 4), C: f(47, 5), D: f(15, 3)},
			Alpha: CombineParams{A: f(44, 3), B: f(12, 3), C: f(41, 3), D: f(9, 3)},
		},
		Two: CombinePass{
			RGB:   CombineParams{A: f(37, 4), B: f(24, 4), C: f(32, 5), D: f(6, 3)},
			Alpha: CombineParams{A: f(21, 3), B: f(3, 3), C: f(18, 3), D: f(0, 3)},
		},
	}
}

func (p CombineParams) uses(src CombineSource) bool {
	return p.A == src || p.B == src || p.C == src || p.D == src
}

// Uses reports whether any input of the first pass, or of both passes when
// cycle is CycleTwo, selects src. Sources above CombineEnvironment are
// ambiguous between inputs and always report false.
func (m CombineMode) Uses(src CombineSource, cycle CycleType) bool {
	if src > CombineEnvironment {
		return false
	}
	if m.One.RGB.uses(src) || m.One.Alpha.uses(src) {
		return true
	}
	return cycle == CycleTwo && (m.Two.RGB.uses(src) || m.Two.Alpha.uses(src))
}
