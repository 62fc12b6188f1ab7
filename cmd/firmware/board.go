package main

import (
	"robotfw/battery"
	"robotfw/errstore"
	"robotfw/imu"
	"robotfw/led"
	"robotfw/port/sensor"
	"robotfw/watchdog"
)

// boardConfig collects every hardware-specific collaborator newBoard needs
// to hand to glue.NewRuntime. newBoard itself lives in board_rp2.go or
// board_host.go, selected by build tag.
type boardConfig struct {
	flashA, flashB errstore.Flash
	hw             watchdog.HW
	ledTx          led.FrameTransmitter
	orientation    imu.OrientationFilter

	reason     watchdog.StartupReason
	hwRevision byte

	// sensorUART holds a UART line per sensor port index, or nil where the
	// port's shared SERCOM isn't wired into UART mode on this board.
	sensorUART [4]sensor.UARTLine

	chargerMain  *battery.ChargerObserver
	chargerMotor *battery.ChargerObserver
}
