package sensor

import (
	"robotfw/drivers/aht20"
	"robotfw/port"

	"tinygo.org/x/drivers"
)

// EnvSensor is a port.Driver around the AHT20 temperature/humidity sensor,
// driven non-blockingly: Update triggers a measurement, then polls Collect
// on later ticks rather than sleeping, matching the cooperative-scheduler
// constraint that no component may block.
type EnvSensor struct {
	dev      aht20.Device
	pending  bool
	deciTemp int32
	deciHum  int32
	present  bool
}

func NewEnvSensor(bus drivers.I2C) *EnvSensor {
	return &EnvSensor{dev: aht20.New(bus)}
}

func (e *EnvSensor) Init(p *port.Port) {
	p.Interface = port.InterfaceI2C
	e.dev.Configure()
}

func (e *EnvSensor) DeInit(p *port.Port, done func()) { done() }

func (e *EnvSensor) Update(p *port.Port) {
	if !e.pending {
		if err := e.dev.Trigger(); err == nil {
			e.pending = true
		}
		return
	}
	var s aht20.Sample
	if err := e.dev.Collect(&s); err != nil {
		return
	}
	e.deciTemp = s.DeciCelsius()
	e.deciHum = s.DeciRelHumidity()
	e.pending = false
}

func (e *EnvSensor) UpdateConfiguration(p *port.Port, cfg []byte) {}

func (e *EnvSensor) UpdateAnalogData(p *port.Port, adc uint8) {}

func (e *EnvSensor) InterruptHandler(p *port.Port, gpioLevel bool) {}

func (e *EnvSensor) ReadSensorInfo(p *port.Port, page uint8, buf []byte) int {
	if len(buf) < 4 {
		return 0
	}
	buf[0] = byte(e.deciTemp)
	buf[1] = byte(e.deciTemp >> 8)
	buf[2] = byte(e.deciHum)
	buf[3] = byte(e.deciHum >> 8)
	return 4
}

func (e *EnvSensor) TestPresence(p *port.Port, status *port.PresenceStatus) bool {
	if _, err := e.dev.Status(); err != nil {
		e.present = false
		*status = port.PresenceError
		return true
	}
	e.present = true
	*status = port.Present
	return true
}
