//go:build rp2040 || rp2350

package main

import (
	"image/color"
	"machine"
	"unsafe"

	"robotfw/battery"
	"robotfw/drivers/ltc4015"
	"robotfw/errstore"
	"robotfw/imu"
	"robotfw/led"
	"robotfw/watchdog"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ws2812"
)

// RP2040 watchdog scratch registers. SCRATCH4..7 survive a watchdog reset
// and are what the ROM bootloader checks at boot to decide whether to stay
// in the bootloader; SCRATCH0..3 are free for application use and are what
// WriteBootloaderMarker uses here, matching the four-register handshake the
// watchdog package's doc comment describes.
const (
	watchdogBase     = 0x40058000
	watchdogScratch0 = watchdogBase + 0xB0
)

func scratchReg(n int) *uint32 {
	return (*uint32)(unsafe.Pointer(uintptr(watchdogScratch0 + 4*n)))
}

// rp2HW implements watchdog.HW on top of machine.Watchdog.
type rp2HW struct{}

func (rp2HW) Feed() { machine.Watchdog.Update() }

func (rp2HW) WriteBootloaderMarker() {
	for i := 0; i < 4; i++ {
		*scratchReg(i) = 0xFFFFFFFF
	}
}

func (rp2HW) Reset() {
	machine.CPUReset()
}

// gyroIntegratorFilter is a minimal placeholder orientation filter: plain
// gyro-rate integration with no accelerometer correction. A real Madgwick
// or Mahony filter is an external collaborator this package never supplies
// (see imu.OrientationFilter); this keeps the pipeline exercised on real
// hardware until one is wired in.
type gyroIntegratorFilter struct {
	quat imu.Quaternion
}

func newGyroIntegratorFilter() *gyroIntegratorFilter {
	return &gyroIntegratorFilter{quat: imu.IdentityQuaternion}
}

func (f *gyroIntegratorFilter) Step(gyro, accel imu.Vector3D) imu.Quaternion {
	const dt = 0.02 // paired samples arrive at the 20ms IMU cadence
	q := f.quat
	wx, wy, wz := gyro.X, gyro.Y, gyro.Z
	dq0 := -0.5 * dt * (q.Q1*wx + q.Q2*wy + q.Q3*wz)
	dq1 := 0.5 * dt * (q.Q0*wx + q.Q2*wz - q.Q3*wy)
	dq2 := 0.5 * dt * (q.Q0*wy - q.Q1*wz + q.Q3*wx)
	dq3 := 0.5 * dt * (q.Q0*wz + q.Q1*wy - q.Q2*wx)
	q.Q0 += dq0
	q.Q1 += dq1
	q.Q2 += dq2
	q.Q3 += dq3
	f.quat = q
	return q
}

func (f *gyroIntegratorFilter) Reset() { f.quat = imu.IdentityQuaternion }

// ws2812Transmitter adapts tinygo.org/x/drivers/ws2812 to led.FrameTransmitter.
type ws2812Transmitter struct {
	dev ws2812.Device
	buf []color.RGBA
}

func newWS2812Transmitter(pin machine.Pin, count int) *ws2812Transmitter {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &ws2812Transmitter{dev: ws2812.New(pin), buf: make([]color.RGBA, count)}
}

func (t *ws2812Transmitter) Transmit(colors []led.Color) {
	if len(colors) > len(t.buf) {
		t.buf = make([]color.RGBA, len(colors))
	}
	for i, c := range colors {
		t.buf[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	_ = t.dev.WriteColors(t.buf[:len(colors)])
}

// hardwareRevisionPins is the GPIO strap the board reads at boot to identify
// its revision; wired as three input pins forming a 3-bit code, numbered the
// same way the rest of this package maps logical pin numbers to machine.Pin.
var hardwareRevisionPins = [3]machine.Pin{machine.Pin(16), machine.Pin(17), machine.Pin(18)}

func readHardwareRevision() byte {
	var rev byte
	for i, p := range hardwareRevisionPins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		if !p.Get() { // strap pulled low = bit set
			rev |= 1 << uint(i)
		}
	}
	return rev
}

func configureI2C(bus *machine.I2C, sda, scl machine.Pin, freq uint32) {
	sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	bus.Configure(machine.I2CConfig{SDA: sda, SCL: scl, Frequency: freq})
}

// newBoard wires every collaborator to real RP2040 peripherals: i2c0 for
// the main-battery charger, i2c1 for the motor-battery charger, a WS2812
// strip on the indicator pin, the onboard watchdog, and one sensor port's
// shared SERCOM configured into UART mode for the diagnostic driver.
func newBoard() boardConfig {
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 500}); err == nil {
		machine.Watchdog.Start()
	}

	configureI2C(machine.I2C0, machine.I2C0_SDA_PIN, machine.I2C0_SCL_PIN, 400*machine.KHz)
	configureI2C(machine.I2C1, machine.I2C1_SDA_PIN, machine.I2C1_SCL_PIN, 400*machine.KHz)

	b := boardConfig{
		flashA:      errstore.NewMemFlash(4096),
		flashB:      errstore.NewMemFlash(4096),
		hw:          rp2HW{},
		ledTx:       newWS2812Transmitter(machine.Pin(22), 16), // 12 ring + 4 indicators, matches led.Display's frame size
		orientation: newGyroIntegratorFilter(),
		reason:      startupReason(),
		hwRevision:  readHardwareRevision(),
	}

	if dev, err := ltc4015.NewAuto(machine.I2C0, ltc4015.Config{
		RSNSB_uOhm: 10_000,
		RSNSI_uOhm: 10_000,
	}); err == nil {
		b.chargerMain = battery.NewChargerObserver(dev)
	}
	if dev, err := ltc4015.NewAuto(machine.I2C1, ltc4015.Config{
		RSNSB_uOhm: 10_000,
		RSNSI_uOhm: 10_000,
	}); err == nil {
		b.chargerMotor = battery.NewChargerObserver(dev)
	}

	uartx.UART1.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.Pin(4),
		RX:       machine.Pin(5),
	})
	// *uartx.UART already satisfies sensor.UARTLine; the shared SERCOM
	// behind uart1 is dedicated to the first sensor port's diagnostic line.
	b.sensorUART[0] = uartx.UART1

	return b
}

func startupReason() watchdog.StartupReason {
	for i := 0; i < 4; i++ {
		if *scratchReg(i) != 0xFFFFFFFF {
			return watchdog.ReasonPowerUp
		}
	}
	return watchdog.ReasonBootloaderRequest
}
