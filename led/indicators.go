package led

import "robotfw/battery"

// MasterStatus mirrors the host-controlled master-status enum that drives
// the master-status indicator LED's color.
type MasterStatus uint8

const (
	StatusUnknown MasterStatus = iota
	StatusNotConfigured
	StatusConfiguring
	StatusUpdating
	StatusOperational
	StatusControlled
)

// BluetoothStatus mirrors the Bluetooth status enum (spec.md command 0x05).
type BluetoothStatus uint8

const (
	BTOff BluetoothStatus = iota
	BTAdvertising
	BTConnected
)

// IndicatorInputs is everything the four indicator LEDs are computed from.
type IndicatorInputs struct {
	MainBattery  battery.Reading
	MainCharging bool
	MotorBattery battery.Reading
	MotorDrawing bool // motor drawing current with no battery present
	Bluetooth    BluetoothStatus
	Master       MasterStatus
	Frame        uint32
}

func batteryGradient(levelPct float32) Color {
	// green (100%) -> red (0%)
	r := uint8(255 - uint16(levelPct)*255/100)
	g := uint8(uint16(levelPct) * 255 / 100)
	return Color{R: r, G: g}
}

func blinkSlow(frame uint32, period uint32) bool { return (frame/period)%2 == 0 }

func mainBatteryIndicator(in IndicatorInputs) Color {
	if !in.MainBattery.Present {
		return Black
	}
	if in.MainCharging && blinkSlow(in.Frame, 15) {
		return Blue
	}
	return batteryGradient(in.MainBattery.LevelPct)
}

func motorBatteryIndicator(in IndicatorInputs) Color {
	if in.MotorDrawing && !in.MotorBattery.Present {
		if blinkSlow(in.Frame, 15) {
			return Red
		}
		return Black
	}
	if !in.MotorBattery.Present {
		return Black
	}
	return batteryGradient(in.MotorBattery.LevelPct)
}

func bluetoothIndicator(in IndicatorInputs) Color {
	switch in.Bluetooth {
	case BTConnected:
		return Cyan
	case BTAdvertising:
		if blinkSlow(in.Frame, 25) {
			return Cyan
		}
		return Black
	default:
		return Black
	}
}

func masterStatusIndicator(in IndicatorInputs) Color {
	switch in.Master {
	case StatusNotConfigured:
		return Red
	case StatusConfiguring:
		return Cyan
	case StatusUpdating:
		return Red
	case StatusOperational:
		return Orange
	case StatusControlled:
		return Green
	default:
		return Black
	}
}

// Indicators computes the four indicator LED colors.
func Indicators(in IndicatorInputs) [4]Color {
	return [4]Color{
		mainBatteryIndicator(in),
		motorBatteryIndicator(in),
		bluetoothIndicator(in),
		masterStatusIndicator(in),
	}
}

// lowBatteryMaxBrightness and offModeMaxBrightness cap overall brightness
// under the two display modes that reduce it.
const (
	lowBatteryMaxBrightness = 60
	offModeMaxBrightness    = 0
	fullBrightness          = 255
)

// MaxBrightness returns the brightness ceiling for the current display
// mode: switched off forces zero; low main-battery caps it; otherwise full.
func MaxBrightness(displayOff bool, mainLow bool) uint8 {
	if displayOff {
		return offModeMaxBrightness
	}
	if mainLow {
		return lowBatteryMaxBrightness
	}
	return fullBrightness
}
