package sensor

import (
	"context"

	"robotfw/port"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

// UARTLine is the shape the UART-backed debug sensor needs from a port's
// shared UART/I2C-master SERCOM once it has been configured into UART mode:
// a plain byte-stream with a non-blocking receive (so Update never stalls
// the 10ms port table behind a peer that never talks) and the minimal
// reconfiguration surface a host-issued UpdateConfiguration needs.
type UARTLine interface {
	Write(b []byte) (int, error)
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
	SetBaudRate(br uint32)
	SetFormat(databits, stopbits uint8, parity uartx.UARTParity) error
}

// UARTDebug is a diagnostic port driver for a UART-attached peripheral:
// it drains whatever bytes arrived since the last Update into a small
// ring, and answers ReadSensorInfo with the most recent line-worth of
// them. It exists to exercise the SERCOM's UART role (as opposed to the
// I2C-master role every other sensor driver uses) and to give a bench
// technician a way to see raw bytes from a UART peripheral through the
// ordinary sensor-info command.
type UARTDebug struct {
	Line UARTLine

	buf    [64]byte
	length int
}

// NewUARTDebug returns a driver reading from line at baud (0 keeps
// whatever rate the port was configured with).
func NewUARTDebug(line UARTLine, baud uint32) *UARTDebug {
	if baud != 0 {
		line.SetBaudRate(baud)
	}
	return &UARTDebug{Line: line}
}

func (u *UARTDebug) Init(p *port.Port) { u.length = 0 }

func (u *UARTDebug) DeInit(p *port.Port, done func()) { done() }

// Update drains whatever bytes have queued up in the UART's own receive
// ring since the last tick. RecvSomeContext is given an already-expired
// context so it returns immediately with however many bytes are ready,
// never blocking the port table.
func (u *UARTDebug) Update(p *port.Port) {
	if u.Line == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := u.Line.RecvSomeContext(ctx, u.buf[:])
	if err != nil || n == 0 {
		return
	}
	u.length = n
}

// UpdateConfiguration re-applies baud/format from an 8N1-shaped
// configuration record: byte 0-3 baud (little-endian), byte 4 databits,
// byte 5 stopbits, byte 6 parity (0 none, 1 even, 2 odd).
func (u *UARTDebug) UpdateConfiguration(p *port.Port, cfg []byte) {
	if u.Line == nil || len(cfg) < 7 {
		return
	}
	baud := uint32(cfg[0]) | uint32(cfg[1])<<8 | uint32(cfg[2])<<16 | uint32(cfg[3])<<24
	if baud != 0 {
		u.Line.SetBaudRate(baud)
	}
	var parity uartx.UARTParity
	switch cfg[6] {
	case 1:
		parity = uartx.ParityEven
	case 2:
		parity = uartx.ParityOdd
	default:
		parity = uartx.ParityNone
	}
	_ = u.Line.SetFormat(cfg[4], cfg[5], parity)
}

func (u *UARTDebug) UpdateAnalogData(p *port.Port, adc uint8)      {}
func (u *UARTDebug) InterruptHandler(p *port.Port, gpioLevel bool) {}

// ReadSensorInfo copies whatever bytes were captured on the most recent
// Update. Page is ignored; this driver has only one page of data.
func (u *UARTDebug) ReadSensorInfo(p *port.Port, page uint8, buf []byte) int {
	n := u.length
	if n > len(buf) {
		n = len(buf)
	}
	copy(buf, u.buf[:n])
	return n
}

// TestPresence reports presence once at least one byte has ever been
// captured; a UART peripheral gives no electrical presence signal the way
// an I2C device's ack does, so silence reads as absence.
func (u *UARTDebug) TestPresence(p *port.Port, status *port.PresenceStatus) bool {
	if u.length > 0 {
		*status = port.Present
	} else {
		*status = port.NotPresent
	}
	return true
}
