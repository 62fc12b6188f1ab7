package port

type fakeDriver struct {
	initCalled   bool
	deinitSync   bool
	deinitDoneFn func()
}

func (f *fakeDriver) Init(p *Port) { f.initCalled = true }
func (f *fakeDriver) DeInit(p *Port, done func()) {
	if f.deinitSync {
		done()
	} else {
		f.deinitDoneFn = done
	}
}
func (f *fakeDriver) Update(p *Port)                              {}
func (f *fakeDriver) UpdateConfiguration(p *Port, cfg []byte)      {}
func (f *fakeDriver) UpdateAnalogData(p *Port, adc uint8)          {}
func (f *fakeDriver) InterruptHandler(p *Port, gpioLevel bool)     {}
func (f *fakeDriver) ReadSensorInfo(p *Port, page uint8, buf []byte) int { return 0 }
func (f *fakeDriver) TestPresence(p *Port, status *PresenceStatus) bool {
	*status = Present
	return true
}

func newFake() *fakeDriver { return &fakeDriver{deinitSync: true} }
