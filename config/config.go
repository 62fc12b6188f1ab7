// Package config holds the compile-time constants spec.md §6 calls out:
// device/bootloader I2C addresses, version numbers, the master-link rx
// timeout, the two battery profiles, motor thermal/derating parameters, and
// per-port pin assignments. The expected startup/update windows are not
// here; they are constants of the commslink package. These are deliberately plain Go values — the firmware core
// never needs to change them at runtime, unlike the bench-tooling config
// files a host-side bridge might load.
package config

import (
	"robotfw/battery"
	"robotfw/port/motor"
)

// I2C addresses (7-bit).
const (
	DeviceAddress     = 0x2D
	BootloaderAddress = 0x2B
)

// HardwareVersion/FirmwareVersion back the version-provider command
// responses (spec commands 0x01/0x02).
const (
	HardwareVersion uint32 = 1
	FirmwareVersion uint32 = 1
)

// Master-link timing, in 1ms scheduler ticks.
const (
	RxTimeoutTicks = 100
)

// SupportedHardwareRevisions lists the hardware-revision byte values the
// firmware will fully start against; on anything else cmd/firmware runs in
// degraded mode (watchdog fed, scheduler not started).
var SupportedHardwareRevisions = []byte{1, 2, 3}

// MainBattery and MotorBattery give each battery channel its own detection
// voltage and smoothed voltage range; the low-battery hysteresis
// thresholds are shared constants of the battery package.
var (
	MainBattery = battery.Params{
		DetectionV: 2.0,
		MinV:       5.5,
		MaxV:       8.4,
	}
	MotorBattery = battery.Params{
		DetectionV: 2.0,
		MinV:       5.5,
		MaxV:       8.4,
	}
)

// MotorDerating and MotorThermal are shared across all six motor ports; the
// original firmware uses one set of parameters per product, not per port.
var (
	MotorDerating = motor.DeratingParams{
		MaxSafeTemperature:    70,
		MaxAllowedTemperature: 85,
	}
	MotorThermal = motor.ThermalParams{
		HeatingCoeff: 0.0008,
		CoolingCoeff: 0.02,
		AmbientTemp:  25,
		Resistance:   1.2,
	}
)

// PortGPIO is the fixed pin/peripheral assignment for one motor or sensor
// port; actual pin numbers are board-specific and are filled in at the
// board-bringup layer that owns the HAL.
type PortGPIO struct {
	PWMA, PWMB int
	CurrentADC int
	FaultPin   int
	Sercom     int
}

// MotorPorts and SensorPorts are placeholders for the per-board pinout;
// real boards override these with board-specific values at init time.
var (
	MotorPorts  [6]PortGPIO
	SensorPorts [4]PortGPIO
)
