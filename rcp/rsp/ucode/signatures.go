package ucode

// Signature identifies a custom microcode by its code hash. Only microcode
// that needs patched tables or lacks a version string is listed here.
type Signature struct {
	Dialect     Dialect
	Base        Dialect
	Stride      int
	Hash        uint32
	Description string
	Title       string
}

const unknownDescription = "RSP Gfx ucode: Unknown"

// Signatures in alphabetical order by title.
var Signatures = [...]Signature{
	{Conker, GBI2, 2, 0x60256efc, "RSP Gfx ucode F3DEXBG.NoN fifo 2.08  Yoshitaka Yasumoto 1999 Nintendo.", "Conker's Bad Fur Day"},
	{LastLegion, GBI1, 2, 0x6d8bec3e, unknownDescription, "Dark Rift"},
	{DKR, GBI0, 10, 0x0c10181a, unknownDescription, "Diddy Kong Racing (v1.0)"},
	{DKR, GBI0, 10, 0x713311dc, unknownDescription, "Diddy Kong Racing (v1.1)"},
	{GoldenEye, GBI0, 10, 0x23f92542, "RSP SW Version: 2.0G, 09-30-96", "GoldenEye 007"},
	{DKR, GBI0, 10, 0x169dcc9d, unknownDescription, "Jet Force Gemini"},
	{LastLegion, GBI1, 2, 0x26da8a4c, unknownDescription, "Last Legion UX"},
	{PerfectDark, GBI0, 10, 0xcac47dc4, unknownDescription, "Perfect Dark (v1.1)"},
	{Beta, GBI0, 5, 0x6cbb521d, "RSP SW Version: 2.0D, 04-01-96", "Star Wars - Shadows of the Empire (v1.0)"},
	{LastLegion, GBI1, 2, 0xdd560323, unknownDescription, "Toukon Road - Brave Spirits"},
	{Beta, GBI0, 5, 0x64cc729d, "RSP SW Version: 2.0D, 04-01-96", "Wave Race 64 (v1.1)"},
}

// LookupSignature returns the signature matching hash.
func LookupSignature(hash uint32) (Signature, bool) {
	for _, sig := range Signatures {
		if sig.Hash == hash {
			return sig, true
		}
	}
	return Signature{}, false
}
