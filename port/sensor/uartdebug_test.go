package sensor

import (
	"context"
	"testing"

	"robotfw/port"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

type fakeUARTLine struct {
	rx       []byte
	baud     uint32
	databits uint8
	stopbits uint8
	parity   uartx.UARTParity
}

func (f *fakeUARTLine) Write(b []byte) (int, error) { return len(b), nil }

func (f *fakeUARTLine) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	n := copy(buf, f.rx)
	f.rx = nil
	return n, nil
}

func (f *fakeUARTLine) SetBaudRate(br uint32) { f.baud = br }

func (f *fakeUARTLine) SetFormat(databits, stopbits uint8, parity uartx.UARTParity) error {
	f.databits, f.stopbits, f.parity = databits, stopbits, parity
	return nil
}

func TestUARTDebugCapturesAndReportsBytes(t *testing.T) {
	line := &fakeUARTLine{rx: []byte("hello")}
	d := NewUARTDebug(line, 9600)
	if line.baud != 9600 {
		t.Fatalf("want baud 9600 applied at construction, got %d", line.baud)
	}

	p := port.New(0)
	d.Update(p)

	buf := make([]byte, 16)
	n := d.ReadSensorInfo(p, 0, buf)
	if string(buf[:n]) != "hello" {
		t.Fatalf("want captured bytes %q, got %q", "hello", buf[:n])
	}
}

func TestUARTDebugPresenceTracksActivity(t *testing.T) {
	line := &fakeUARTLine{}
	d := NewUARTDebug(line, 0)
	p := port.New(0)

	var status port.PresenceStatus
	d.TestPresence(p, &status)
	if status != port.NotPresent {
		t.Fatalf("want NotPresent before any bytes arrive, got %v", status)
	}

	line.rx = []byte("x")
	d.Update(p)
	d.TestPresence(p, &status)
	if status != port.Present {
		t.Fatalf("want Present once bytes have been captured, got %v", status)
	}
}

func TestUARTDebugUpdateConfigurationAppliesFormat(t *testing.T) {
	line := &fakeUARTLine{}
	d := NewUARTDebug(line, 0)
	p := port.New(0)

	cfg := []byte{0x00, 0xC2, 0x01, 0x00, 8, 1, 1} // 115200 baud, 8 data, 1 stop, even parity
	d.UpdateConfiguration(p, cfg)

	if line.baud != 115200 {
		t.Fatalf("want baud 115200, got %d", line.baud)
	}
	if line.databits != 8 || line.stopbits != 1 || line.parity != uartx.ParityEven {
		t.Fatalf("want 8/1/even, got %d/%d/%v", line.databits, line.stopbits, line.parity)
	}
}
