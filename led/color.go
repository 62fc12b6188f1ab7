// Package led implements the ring/indicator display (C12): scenario
// selection for the 12 status-ring LEDs, the four indicator LEDs, and
// frame assembly handed to an injected FrameTransmitter (the WS2812
// bit-banged DMA encoder itself stays out of scope).
package led

// Color is a packed 24-bit RGB value, GRB order to match WS2812 wire order.
type Color struct {
	G, R, B uint8
}

var (
	Black   = Color{}
	Red     = Color{R: 255}
	Green   = Color{G: 255}
	Blue    = Color{B: 255}
	Cyan    = Color{G: 255, B: 255}
	Orange  = Color{R: 255, G: 100}
)

// scale returns c with every channel multiplied by brightness/255.
func (c Color) scale(brightness uint8) Color {
	return Color{
		G: uint8(uint16(c.G) * uint16(brightness) / 255),
		R: uint8(uint16(c.R) * uint16(brightness) / 255),
		B: uint8(uint16(c.B) * uint16(brightness) / 255),
	}
}
