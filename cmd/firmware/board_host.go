//go:build !rp2040 && !rp2350

package main

import (
	"robotfw/config"
	"robotfw/errstore"
	"robotfw/imu"
	"robotfw/led"
	"robotfw/watchdog"
)

// noopHW is a watchdog.HW that does nothing; the host build has no real
// watchdog timer or ROM bootloader to hand off to.
type noopHW struct{}

func (noopHW) Feed()                  {}
func (noopHW) WriteBootloaderMarker() {}
func (noopHW) Reset()                { println("[board-host] reset requested (no-op on host)") }

// discardLEDTransmitter drops every frame; the host build has no WS2812
// strip wired to it.
type discardLEDTransmitter struct{}

func (discardLEDTransmitter) Transmit(colors []led.Color) {}

// identityFilter never updates orientation; it stands in for a real AHRS
// filter on a build with no IMU wired.
type identityFilter struct{}

func (identityFilter) Step(gyro, accel imu.Vector3D) imu.Quaternion { return imu.IdentityQuaternion }
func (identityFilter) Reset()                                      {}

// newBoard assembles the host-demo collaborator set: MemFlash stands in for
// real flash sectors (its own doc comment calls this use out explicitly),
// a no-op watchdog, a discarding LED transmitter, and the identity
// orientation filter so the pipeline has something to drive end to end
// without real sensor hardware.
func newBoard() boardConfig {
	return boardConfig{
		flashA:      errstore.NewMemFlash(4096),
		flashB:      errstore.NewMemFlash(4096),
		hw:          noopHW{},
		ledTx:       discardLEDTransmitter{},
		orientation: identityFilter{},
		reason:      watchdog.ReasonPowerUp,
		hwRevision:  config.SupportedHardwareRevisions[0],
	}
}
