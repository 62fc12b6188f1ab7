package sensor

import "tinygo.org/x/drivers"

// RGB is an I2C multi-channel color sensor bound to the port's shared
// SERCOM instance, following the register-read shape of the other I2C
// drivers in this tree (two-byte little-endian channel registers).
type RGB struct {
	bus  drivers.I2C
	addr uint16

	clear, red, green, blue uint16
}

const (
	rgbAddress    = 0x29
	regClearLo    = 0x14
	regRedLo      = 0x16
	regGreenLo    = 0x18
	regBlueLo     = 0x1A
)

// NewRGB returns a driver talking to addr (defaulting to 0x29) over bus.
func NewRGB(bus drivers.I2C, addr uint16) *RGB {
	if addr == 0 {
		addr = rgbAddress
	}
	return &RGB{bus: bus, addr: addr}
}

func (r *RGB) readChannel(reg byte) (uint16, error) {
	var buf [2]byte
	if err := r.bus.Tx(r.addr, []byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}

func (r *RGB) poll() error {
	var err error
	if r.clear, err = r.readChannel(regClearLo); err != nil {
		return err
	}
	if r.red, err = r.readChannel(regRedLo); err != nil {
		return err
	}
	if r.green, err = r.readChannel(regGreenLo); err != nil {
		return err
	}
	r.blue, err = r.readChannel(regBlueLo)
	return err
}

// Channels returns the most recently polled clear/red/green/blue readings.
func (r *RGB) Channels() (clear, red, green, blue uint16) {
	return r.clear, r.red, r.green, r.blue
}
