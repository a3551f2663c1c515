// Package fixed provides fixed-point arithmetic types used by the RCP.
//
// The display list protocol stores most quantities in fixed point:
// coordinates of rectangles in 10.2, texture coordinates in s10.5, matrix
// elements in s15.16 and texture scales in 0.16.
package fixed

//go:generate go run mkfixed.go UInt14_2:uint16 Int11_5:int16 Int16_16:int32 UInt0_16:uint16

type (
	UInt14_2 uint16 // rectangle coordinates
	Int11_5  int16  // texture coordinates
	Int16_16 int32  // matrix elements
	UInt0_16 uint16 // texture scale
)
