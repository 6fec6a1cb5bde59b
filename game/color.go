package game

import "fmt"

type Color struct {
	R, G, B uint8
}

var (
	Off         = Color{0, 0, 0}
	BlinkBlue   = Color{0, 0, 1}
	BlinkGreen  = Color{0, 5, 0}
	SafeGreen   = Color{0, 5, 0}
	ExplodedRed = Color{255, 0, 0}
)

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Uint32 packs the color as 0x00RRGGBB
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) IsOff() bool {
	return c == Off
}
