package sensor

import "robotfw/port"

// HCSR04 is the ultrasonic distance sensor driver. It times the echo pulse
// on GPIO1's rising/falling edges via the high-resolution tick; Now
// abstracts that tick source so the driver can be tested without hardware.
type HCSR04 struct {
	Now func() uint32 // microsecond tick source, injected at construction

	triggerPending bool
	echoStartUs    uint32
	echoRising     bool

	samples    [3]uint32 // last three valid pulse widths, microseconds
	sampleIdx  int
	haveSample int

	distanceCm uint16
}

// NewHCSR04 returns a driver using now as its microsecond tick source.
func NewHCSR04(now func() uint32) *HCSR04 {
	return &HCSR04{Now: now}
}

func (h *HCSR04) Init(p *port.Port)               { h.triggerPending = true }
func (h *HCSR04) DeInit(p *port.Port, done func()) { done() }

// Update fires a new trigger pulse on GPIO0 at the sensor's own cadence;
// the actual pulse generation (a short GPIO0 high then low) is hardware
// I/O left to the glue layer driving the pin the port descriptor names.
func (h *HCSR04) Update(p *port.Port) { h.triggerPending = true }

func (h *HCSR04) UpdateConfiguration(p *port.Port, cfg []byte) {}
func (h *HCSR04) UpdateAnalogData(p *port.Port, adc uint8)     {}

// InterruptHandler is called on every GPIO-1 (echo) edge. gpioLevel true
// means the echo pulse started; false means it ended, at which point the
// pulse width is converted to distance.
func (h *HCSR04) InterruptHandler(p *port.Port, gpioLevel bool) {
	now := h.Now()
	if gpioLevel {
		h.echoStartUs = now
		h.echoRising = true
		return
	}
	if !h.echoRising {
		return
	}
	h.echoRising = false
	width := now - h.echoStartUs

	h.samples[h.sampleIdx] = width
	h.sampleIdx = (h.sampleIdx + 1) % len(h.samples)
	if h.haveSample < len(h.samples) {
		h.haveSample++
	}
	if h.haveSample == len(h.samples) {
		h.distanceCm = microsToCm(medianOf3(h.samples))
	}
}

// microsToCm converts an echo pulse width to distance per the datasheet's
// speed-of-sound constant: cm = us * 17 / 1000.
func microsToCm(us uint32) uint16 {
	return uint16(us * 17 / 1000)
}

func medianOf3(v [3]uint32) uint32 {
	a, b, c := v[0], v[1], v[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return b
}

// DistanceCm returns the most recent filtered distance reading.
func (h *HCSR04) DistanceCm() uint16 { return h.distanceCm }

func (h *HCSR04) ReadSensorInfo(p *port.Port, page uint8, buf []byte) int {
	if len(buf) < 2 {
		return 0
	}
	buf[0] = byte(h.distanceCm)
	buf[1] = byte(h.distanceCm >> 8)
	return 2
}

func (h *HCSR04) TestPresence(p *port.Port, status *port.PresenceStatus) bool {
	if h.haveSample == len(h.samples) {
		*status = port.Present
	} else {
		*status = port.UnknownPresence
	}
	return h.haveSample == len(h.samples)
}
