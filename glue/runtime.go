// Package glue is the generated-style wiring layer (C16): it owns one
// instance of every other component, registers them on the scheduler's
// periodic tables, binds the command table's Start/GetResult handlers to
// the right component calls, and fans non-hot-path events (master-status
// transitions, LED scenario changes, new error records) out over the
// shared event bus. This is the only layer that reaches across component
// packages; every other package is wiring-agnostic.
package glue

import (
	"robotfw/asyncop"
	"robotfw/battery"
	"robotfw/bus"
	"robotfw/commslink"
	"robotfw/config"
	"robotfw/errstore"
	"robotfw/imu"
	"robotfw/led"
	"robotfw/link"
	"robotfw/port"
	"robotfw/port/motor"
	"robotfw/port/sensor"
	"robotfw/protocol"
	"robotfw/queue"
	"robotfw/scheduler"
	"robotfw/statusslot"
	"robotfw/watchdog"
)

const (
	numMotorPorts  = 6
	numSensorPorts = 4

	// The raw gyro queues hold 8 samples; the accelerometer queue and the
	// two compensated queues feeding the orientation estimator hold 32.
	gyroQueueCapacity  = 8
	accelQueueCapacity = 32
)

// portTypeArgs is the async SetPortType command argument for both motor and
// sensor ports: which port, and which driver-type id the host asked for (0
// means "unbind").
type portTypeArgs struct {
	port   int
	typeID uint8
}

// portConfigArgs is the async SetPortConfig command argument: the raw
// configuration payload, copied out of the request frame's scratch buffer
// since that buffer is reused by the next incoming frame long before this
// op's worker runs.
type portConfigArgs struct {
	cfg [protocol.MaxPayload]byte
	n   int
}

// Runtime owns every component instance and is the single place that
// knows how they are wired together.
type Runtime struct {
	Scheduler *scheduler.Scheduler
	Transport *link.Transport
	Engine    *protocol.Engine
	Table     protocol.Table
	Status    *statusslot.Store
	Collector *statusslot.Collector
	Events    *bus.Bus

	MotorPorts  [numMotorPorts]*port.Port
	SensorPorts [numSensorPorts]*port.Port

	MainBattery  battery.Monitor
	MotorBattery battery.Monitor
	ChargerMain  *battery.ChargerObserver
	ChargerMotor *battery.ChargerObserver

	Display *led.Display

	lastMainReading  battery.Reading
	lastMotorReading battery.Reading
	motorDrawing     bool

	// gyroToMovement and gyroToOffset are independent SPSC queues fed the
	// same raw gyro samples by SubmitIMUSample; Movement and Offset are
	// each a single consumer with its own cursor (matching C10's fan-out).
	gyroToMovement *queue.Queue[imu.RawSample]
	gyroToOffset   *queue.Queue[imu.RawSample]
	rawAccel       *queue.Queue[imu.RawSample]
	filteredGyro   *queue.Queue[imu.Vector3D]
	filteredAcc    *queue.Queue[imu.Vector3D]
	Movement       *imu.MovementDetector
	Offset         *imu.OffsetCompensator
	Orientation    *imu.Estimator

	Errors *errstore.Store
	Comms  *commslink.Observer

	Reboot *watchdog.RebootManager
	Feeder *watchdog.Feeder

	// uartLines holds the UART line handle bound to each sensor port, if
	// any; only set on boards that wire a sensor port's shared SERCOM into
	// UART mode rather than I2C-master mode. nil entries mean "this port
	// has no UART peripheral," so type id 7 (UART diagnostic) fails to
	// bind there the same way any other driver fails against a missing
	// peripheral handle.
	uartLines [numSensorPorts]sensor.UARTLine

	setMotorType  [numMotorPorts]asyncop.Op[portTypeArgs, struct{}]
	setSensorType [numSensorPorts]asyncop.Op[portTypeArgs, struct{}]
	testMotor     [numMotorPorts]asyncop.Op[struct{}, port.PresenceStatus]
	testSensor    [numSensorPorts]asyncop.Op[struct{}, port.PresenceStatus]
	configMotor   [numMotorPorts]asyncop.Op[portConfigArgs, struct{}]
	configSensor  [numSensorPorts]asyncop.Op[portConfigArgs, struct{}]

	// testMotorPort/testSensorPort/setMotorTypeActive/setSensorTypeActive/
	// configMotorActive/configSensorActive remember which port's async op a
	// GetResult poll should read, since the protocol's GetResult phase
	// carries no request payload of its own.
	testMotorPort       int
	testSensorPort      int
	setMotorTypeActive  int
	setSensorTypeActive int
	configMotorActive   int
	configSensorActive  int

	// bluetoothBlinkFrame feeds IndicatorInputs.Frame, the counter the
	// indicator LEDs' blink patterns are timed against.
	bluetoothBlinkFrame uint32
	masterStatusSeen    commslink.MasterStatus
}

// Topics used for non-hot-path event fan-out. Subscribers (host bridge,
// logging) attach to these independent of the hot protocol/scheduler path.
var (
	TopicMasterStatusChanged = bus.T("master", "status")
	TopicLEDScenarioChanged  = bus.T("led", "scenario")
	TopicErrorStored         = bus.T("errors", "stored")
)

// NewRuntime constructs every component with zero/default state and wires
// them to each other. Hardware-specific collaborators (flash blocks, the
// watchdog HW boundary, the WS2812 transmitter, the orientation filter,
// I2C buses for sensor ports) are supplied by the caller, since they are
// the pieces this firmware treats as external.
func NewRuntime(
	flashA, flashB errstore.Flash,
	hw watchdog.HW,
	ledTx led.FrameTransmitter,
	orientationFilter imu.OrientationFilter,
) *Runtime {
	r := &Runtime{
		Scheduler:    &scheduler.Scheduler{},
		Transport:    link.NewTransport(config.RxTimeoutTicks),
		Status:       statusslot.NewStore(),
		Events:       bus.NewBus(8),
		MainBattery:  battery.Monitor{Params: config.MainBattery},
		MotorBattery: battery.Monitor{Params: config.MotorBattery},

		Display: led.NewDisplay(ledTx),

		gyroToMovement: queue.New[imu.RawSample](gyroQueueCapacity),
		gyroToOffset:   queue.New[imu.RawSample](gyroQueueCapacity),
		rawAccel:       queue.New[imu.RawSample](accelQueueCapacity),
		filteredGyro:   queue.New[imu.Vector3D](accelQueueCapacity),
		filteredAcc:    queue.New[imu.Vector3D](accelQueueCapacity),
		Movement:       imu.NewMovementDetector(),
		Offset:         &imu.OffsetCompensator{},
		Orientation:    imu.NewEstimator(orientationFilter),

		Errors: errstore.NewStore(flashA, flashB),
		Comms:  commslink.NewObserver(),

		Feeder: watchdog.NewFeeder(hw),
	}
	hardwareVersion = config.HardwareVersion
	firmwareVersion = config.FirmwareVersion
	r.Reboot = watchdog.NewRebootManager(hw, r.Transport.TxIdle)
	r.Collector = statusslot.NewCollector(r.Status)

	for i := 0; i < numMotorPorts; i++ {
		r.MotorPorts[i] = port.New(i)
	}
	for i := 0; i < numSensorPorts; i++ {
		r.SensorPorts[i] = port.New(i)
	}

	r.Engine = protocol.NewEngine(&r.Table)
	r.registerCommands()
	r.registerSchedule()
	r.Status.Reset()
	return r
}

// registerSchedule installs every periodic task on the scheduler, leaves
// first: the master-link transport services its rx-timeout every tick, the
// watchdog is fed every tick, ports update every 10ms, the IMU pipeline and
// LEDs run every 20ms, and the chargers and the battery status slot every
// 100ms. The status-slot collector is not scheduled; it runs when the host
// polls it (command 0x3C).
func (r *Runtime) registerSchedule() {
	r.Scheduler.Register(scheduler.Every1ms, func() {
		r.Feeder.Tick()
		r.Reboot.Update()
		if r.Transport.Tick() {
			if r.Comms.OnRxTimeout() {
				r.Events.Publish(r.Events.NewMessage(TopicErrorStored, "link-loss", false))
			}
		}
		if frame, ok := r.Transport.TakeFrame(); ok {
			r.Comms.OnFrameReceived()
			var resp [protocol.MaxResponse]byte
			n := r.Engine.Dispatch(frame, resp[:])
			r.Transport.SetResponse(resp[:n])
		}
		r.Comms.Tick()
	})

	r.Scheduler.Register(scheduler.Every10ms, func() {
		for _, p := range r.MotorPorts {
			r.advancePort(p)
			if p.Driver != nil {
				p.Driver.Update(p)
			}
		}
		for _, p := range r.SensorPorts {
			r.advancePort(p)
			if p.Driver != nil {
				p.Driver.Update(p)
			}
		}
		for i := range r.setMotorType {
			r.driveSetPortType(r.MotorPorts[i], &r.setMotorType[i], motorDriverFor)
		}
		for i := range r.setSensorType {
			r.driveSetPortType(r.SensorPorts[i], &r.setSensorType[i], func(typeID uint8) port.Driver {
				return r.sensorDriverFor(i, typeID)
			})
		}
		for i := range r.testMotor {
			r.driveTestPresence(r.MotorPorts[i], &r.testMotor[i])
		}
		for i := range r.testSensor {
			r.driveTestPresence(r.SensorPorts[i], &r.testSensor[i])
		}
		for i := range r.configMotor {
			r.driveSetConfig(r.MotorPorts[i], &r.configMotor[i])
		}
		for i := range r.configSensor {
			r.driveSetConfig(r.SensorPorts[i], &r.configSensor[i])
		}
		r.publishPortSlots()
	})

	r.Scheduler.Register(scheduler.Every20ms, func() {
		r.Movement.Consume(r.gyroToMovement)
		r.Offset.Consume(r.gyroToOffset, r.filteredGyro, r.Movement.IsMoving())
		imu.ConvertRaw(r.rawAccel, r.filteredAcc)
		r.Orientation.Consume(r.filteredGyro, r.filteredAcc)
		r.publishIMUSlots()

		seen := r.Comms.MasterStatus()
		if seen != r.masterStatusSeen {
			r.masterStatusSeen = seen
			r.Events.Publish(r.Events.NewMessage(TopicMasterStatusChanged, seen, false))
		}

		r.bluetoothBlinkFrame++
		r.Display.Render(led.IndicatorInputs{
			MainBattery:  r.lastMainReading,
			MotorBattery: r.lastMotorReading,
			MainCharging: r.ChargerMain != nil && r.ChargerMain.Phase() == battery.Charging,
			MotorDrawing: r.motorDrawing,
			Bluetooth:    toLEDBluetooth(r.Comms.BluetoothStatus()),
			Master:       toLEDMasterStatus(r.masterStatusSeen),
			Frame:        r.bluetoothBlinkFrame,
		})
	})

	r.Scheduler.Register(scheduler.Every100ms, func() {
		if r.ChargerMain != nil {
			r.ChargerMain.Update()
		}
		if r.ChargerMotor != nil {
			r.ChargerMotor.Update()
		}
		r.motorDrawing = false
		for _, p := range r.MotorPorts {
			drv, ok := p.Driver.(*motor.Driver)
			if !ok {
				continue
			}
			if _, duty, _, _, _ := drv.Status(); duty != 0 {
				r.motorDrawing = true
				break
			}
		}
		r.Status.Write(statusslot.SlotBattery, encodeBatterySlot(r.lastMainReading, r.lastMotorReading))
	})
}

func (r *Runtime) advancePort(p *port.Port) {
	if p.SetTypeState() != port.STNone {
		p.Advance()
	}
}

// BindSensorUARTLine records that sensor port idx's shared SERCOM has been
// configured into UART mode with the given line, so a host SetPortType to
// the UART diagnostic driver (type id 7) on that port has a peripheral to
// bind to. Boards with no UART-wired sensor ports never call this.
func (r *Runtime) BindSensorUARTLine(idx int, line sensor.UARTLine) {
	r.uartLines[idx] = line
}

// SubmitBatterySample feeds one ADC sample into the relevant battery
// channel's EMA filter. Called from the ADC conversion-complete handler.
// The derived Reading is cached on the Runtime (lastMainReading/
// lastMotorReading) since sampling is ISR/ADC driven, not on a fixed
// schedule, while the LED and status-slot tasks run on the 20ms/100ms
// tables.
func (r *Runtime) SubmitBatterySample(motorChannel bool, voltage float32) {
	if motorChannel {
		r.lastMotorReading = r.MotorBattery.Update(voltage)
	} else {
		r.lastMainReading = r.MainBattery.Update(voltage)
	}
}

// SubmitIMUSample feeds one raw gyro or accelerometer sample from the
// IMU's data-ready interrupt handler into the appropriate queue(s). A gyro
// sample fans out to both the movement detector's and the offset
// compensator's independent queues.
func (r *Runtime) SubmitIMUSample(gyro bool, s imu.RawSample) {
	if gyro {
		r.gyroToMovement.Write(s)
		r.gyroToOffset.Write(s)
	} else {
		r.rawAccel.Write(s)
	}
}

func toLEDBluetooth(s commslink.BluetoothStatus) led.BluetoothStatus {
	switch s {
	case commslink.BTAdvertising:
		return led.BTAdvertising
	case commslink.BTConnected:
		return led.BTConnected
	default:
		return led.BTOff
	}
}

func toLEDMasterStatus(s commslink.MasterStatus) led.MasterStatus {
	switch s {
	case commslink.StatusNotConfigured:
		return led.StatusNotConfigured
	case commslink.StatusConfiguring:
		return led.StatusConfiguring
	case commslink.StatusUpdating:
		return led.StatusUpdating
	case commslink.StatusOperational:
		return led.StatusOperational
	case commslink.StatusControlled:
		return led.StatusControlled
	default:
		return led.StatusUnknown
	}
}

func encodeBatterySlot(main, mot battery.Reading) []byte {
	return []byte{
		uint8(main.LevelPct),
		boolByte(main.Low),
		uint8(mot.LevelPct),
		boolByte(mot.Low),
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
