package ucode

import "strconv"

// Dialect is a graphics command set. The first five are the base dialects
// with a normal dispatch table of their own. Custom dialects patch one of the
// base tables.
type Dialect uint8

const (
	GBI0      Dialect = iota // Fast3D
	GBI1                     // F3DEX
	GBI2                     // F3DEX2
	GBI1S2DEX                // S2DEX on F3DEX
	GBI2S2DEX                // S2DEX on F3DEX2

	GoldenEye
	Beta
	LastLegion
	PerfectDark
	DKR
	Conker
)

// NumBase is the number of base dialects.
const NumBase = 5

var dialectNames = [...]string{
	GBI0:        "GBI0",
	GBI1:        "GBI1",
	GBI2:        "GBI2",
	GBI1S2DEX:   "GBI1_S2DEX",
	GBI2S2DEX:   "GBI2_S2DEX",
	GoldenEye:   "GoldenEye",
	Beta:        "Beta",
	LastLegion:  "LastLegion",
	PerfectDark: "PerfectDark",
	DKR:         "DKR",
	Conker:      "Conker",
}

func (d Dialect) String() string {
	if int(d) < len(dialectNames) {
		return dialectNames[d]
	}
	return "Dialect(" + strconv.Itoa(int(d)) + ")"
}

// IsBase reports whether d has a normal dispatch table.
func (d Dialect) IsBase() bool {
	return d < NumBase
}
