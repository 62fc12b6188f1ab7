package led

const totalLEDs = ringSize + 4 // 12 ring + 4 indicators

// FrameTransmitter hands a fully composed frame of colors to the
// hardware-specific WS2812 encoder/DMA transfer. It is an injected
// external collaborator; bit-banged serialization stays out of scope here.
type FrameTransmitter interface {
	// Transmit is given exactly totalLEDs colors, ring LEDs first, then the
	// four indicators. It must not block; real implementations hand the
	// buffer to DMA and return immediately.
	Transmit(colors []Color)
}

// Display owns the per-tick render state and drives a FrameTransmitter.
type Display struct {
	tx FrameTransmitter

	ring    RingState
	display displayMode
}

type displayMode struct {
	off bool
}

// NewDisplay binds tx as the frame sink.
func NewDisplay(tx FrameTransmitter) *Display {
	return &Display{tx: tx}
}

// SetScenario changes the ring animation.
func (d *Display) SetScenario(s Scenario) { d.ring.Scenario = s }

// SetUserFrame installs the host-supplied UserFrame colors.
func (d *Display) SetUserFrame(colors [ringSize]Color) { d.ring.UserFrame = colors }

// SetDisplayOff toggles the switched-off display mode.
func (d *Display) SetDisplayOff(off bool) { d.display.off = off }

// Render computes the current frame (ring + indicators), applies the
// brightness ceiling for the active display mode, and hands it to the
// transmitter. Called every 20ms.
func (d *Display) Render(in IndicatorInputs) {
	d.ring.Frame++
	ring := renderRing(d.ring)
	indicators := Indicators(in)

	brightness := MaxBrightness(d.display.off, in.MainBattery.Low)

	var out [totalLEDs]Color
	for i, c := range ring {
		out[i] = c.scale(brightness)
	}
	for i, c := range indicators {
		out[ringSize+i] = c.scale(brightness)
	}

	d.tx.Transmit(out[:])
}
