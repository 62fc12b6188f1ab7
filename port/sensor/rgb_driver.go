package sensor

import "robotfw/port"

func (r *RGB) Init(p *port.Port) {
	p.Interface = port.InterfaceI2C
}

func (r *RGB) DeInit(p *port.Port, done func()) { done() }

// Update polls the four color channels once per periodic slot. A transient
// bus error is swallowed; the driver simply reports stale readings until
// the next successful poll.
func (r *RGB) Update(p *port.Port) { _ = r.poll() }

func (r *RGB) UpdateConfiguration(p *port.Port, cfg []byte) {}
func (r *RGB) UpdateAnalogData(p *port.Port, adc uint8)     {}
func (r *RGB) InterruptHandler(p *port.Port, gpioLevel bool) {}

func (r *RGB) ReadSensorInfo(p *port.Port, page uint8, buf []byte) int {
	if len(buf) < 8 {
		return 0
	}
	buf[0], buf[1] = byte(r.clear), byte(r.clear>>8)
	buf[2], buf[3] = byte(r.red), byte(r.red>>8)
	buf[4], buf[5] = byte(r.green), byte(r.green>>8)
	buf[6], buf[7] = byte(r.blue), byte(r.blue>>8)
	return 8
}

func (r *RGB) TestPresence(p *port.Port, status *port.PresenceStatus) bool {
	if err := r.poll(); err != nil {
		*status = port.PresenceError
	} else {
		*status = port.Present
	}
	return true
}
