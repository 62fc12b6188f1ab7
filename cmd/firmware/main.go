// Command firmware is the entry point for the robot controller board. It is
// deliberately thin: everything board-specific (flash blocks, the watchdog
// hardware boundary, the LED transmitter, the orientation filter) comes from
// newBoard() in board_rp2.go or board_host.go, selected by build tag the same
// way the reference HAL's platform factories split rp2xxx from host.
package main

import (
	"time"

	"robotfw/config"
	"robotfw/glue"
	"robotfw/watchdog"
)

func main() {
	// Let clocks, regulators and (on a real board) the USB console settle
	// before the first print.
	time.Sleep(200 * time.Millisecond)

	b := newBoard()

	println("[firmware] starting, reason=", startupReasonString(b.reason))

	if !hardwareSupported(b.hwRevision) {
		println("[firmware] unsupported hardware revision:", int(b.hwRevision), "- running in degraded mode")
		runDegraded(b)
		return
	}

	rt := glue.NewRuntime(b.flashA, b.flashB, b.hw, b.ledTx, b.orientation)
	for idx, line := range b.sensorUART {
		if line != nil {
			rt.BindSensorUARTLine(idx, line)
		}
	}
	if b.chargerMain != nil {
		rt.ChargerMain = b.chargerMain
	}
	if b.chargerMotor != nil {
		rt.ChargerMotor = b.chargerMotor
	}

	println("[firmware] runtime wired, entering scheduler loop")

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		rt.Scheduler.Tick()
	}
}

// hardwareSupported implements the hardware-compatibility check: the
// original firmware refuses to fully start on a revision it doesn't
// recognize.
func hardwareSupported(rev byte) bool {
	for _, v := range config.SupportedHardwareRevisions {
		if v == rev {
			return true
		}
	}
	return false
}

// runDegraded feeds the watchdog forever without starting the scheduler, so
// an unsupported board neither runs the protocol stack nor resets itself
// into a boot loop.
func runDegraded(b boardConfig) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		b.hw.Feed()
	}
}

func startupReasonString(r watchdog.StartupReason) string {
	switch r {
	case watchdog.ReasonWatchdog:
		return "watchdog"
	case watchdog.ReasonBrownOut:
		return "brown-out"
	case watchdog.ReasonBootloaderRequest:
		return "bootloader-request"
	default:
		return "power-up"
	}
}
