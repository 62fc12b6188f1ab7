package sensor

import "robotfw/port"

// DebugRTC is a diagnostic driver that reports the scheduler's own tick
// count as a free-running "clock", useful for verifying the periodic slot
// a sensor port has been assigned without any real hardware attached.
type DebugRTC struct {
	Ticks func() uint32
}

func (d *DebugRTC) Init(p *port.Port)               {}
func (d *DebugRTC) DeInit(p *port.Port, done func()) { done() }
func (d *DebugRTC) Update(p *port.Port)              {}
func (d *DebugRTC) UpdateConfiguration(p *port.Port, cfg []byte) {}
func (d *DebugRTC) UpdateAnalogData(p *port.Port, adc uint8)     {}
func (d *DebugRTC) InterruptHandler(p *port.Port, gpioLevel bool) {}

func (d *DebugRTC) ReadSensorInfo(p *port.Port, page uint8, buf []byte) int {
	if len(buf) < 4 || d.Ticks == nil {
		return 0
	}
	t := d.Ticks()
	buf[0] = byte(t)
	buf[1] = byte(t >> 8)
	buf[2] = byte(t >> 16)
	buf[3] = byte(t >> 24)
	return 4
}

func (d *DebugRTC) TestPresence(p *port.Port, status *port.PresenceStatus) bool {
	*status = port.Present
	return true
}
