package core

import (
	"fmt"
	"math"
)

// RGB is a display-ready 8-bit colour
type RGB struct {
	R, G, B uint8
}

// NewRGB converts a linear colour to 8-bit using gamma 2 (square root).
// Components are expected in [0, 1]; values outside are clamped.
func NewRGB(linear Color) RGB {
	c := linear.Clamp(0, 1)
	return RGB{
		R: uint8(math.Sqrt(c.X) * 255.999),
		G: uint8(math.Sqrt(c.Y) * 255.999),
		B: uint8(math.Sqrt(c.Z) * 255.999),
	}
}

func (c RGB) String() string {
	return fmt.Sprintf("RGB{%d, %d, %d}", c.R, c.G, c.B)
}
