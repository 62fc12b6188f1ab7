package sensor

import "robotfw/port"

// debounceTicks is the number of consecutive identical GPIO-1 readings
// required before a state change is accepted.
const debounceTicks = 3

// BumperSwitch is a digital input sensor with debounce: raw GPIO-1 edges
// are only accepted as a state change after debounceTicks consecutive
// agreeing samples.
type BumperSwitch struct {
	pressed      bool
	candidate    bool
	agreeStreak  int
}

func (b *BumperSwitch) Init(p *port.Port)                {}
func (b *BumperSwitch) DeInit(p *port.Port, done func())  { done() }
func (b *BumperSwitch) UpdateConfiguration(p *port.Port, cfg []byte) {}
func (b *BumperSwitch) UpdateAnalogData(p *port.Port, adc uint8)     {}

// InterruptHandler samples the raw GPIO-1 edge state into the debounce
// filter. It runs from the port's external-IRQ handler.
func (b *BumperSwitch) InterruptHandler(p *port.Port, gpioLevel bool) {
	if gpioLevel == b.candidate {
		b.agreeStreak++
	} else {
		b.candidate = gpioLevel
		b.agreeStreak = 1
	}
}

// Update promotes the debounced candidate to the reported state once the
// agreement streak is long enough.
func (b *BumperSwitch) Update(p *port.Port) {
	if b.agreeStreak >= debounceTicks {
		b.pressed = b.candidate
	}
}

// Pressed reports the debounced switch state.
func (b *BumperSwitch) Pressed() bool { return b.pressed }

func (b *BumperSwitch) ReadSensorInfo(p *port.Port, page uint8, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	if b.pressed {
		buf[0] = 1
	} else {
		buf[0] = 0
	}
	return 1
}

func (b *BumperSwitch) TestPresence(p *port.Port, status *port.PresenceStatus) bool {
	*status = port.Present
	return true
}
