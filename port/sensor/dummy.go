// Package sensor implements the sensor port drivers (C9 sensor specifics):
// Dummy, BumperSwitch, HC-SR04, RGB and DebugRTC.
package sensor

import "robotfw/port"

// Dummy is the no-op placeholder driver bound to an unconfigured sensor
// port. It always reports itself present so host tooling can select a real
// driver afterward without the port first reporting an error.
type Dummy struct{}

func (Dummy) Init(p *port.Port)                                    {}
func (Dummy) DeInit(p *port.Port, done func())                     { done() }
func (Dummy) Update(p *port.Port)                                  {}
func (Dummy) UpdateConfiguration(p *port.Port, cfg []byte)         {}
func (Dummy) UpdateAnalogData(p *port.Port, adc uint8)             {}
func (Dummy) InterruptHandler(p *port.Port, gpioLevel bool)        {}
func (Dummy) ReadSensorInfo(p *port.Port, page uint8, buf []byte) int { return 0 }
func (Dummy) TestPresence(p *port.Port, status *port.PresenceStatus) bool {
	*status = port.Present
	return true
}
