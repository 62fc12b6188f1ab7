// Package scheduler runs the firmware's cooperative main loop: a fixed 1ms
// tick drives slot tables at 1ms, 10ms, 20ms and 100ms, each dispatched in
// registration order with no preemption. It replaces the host-side poller's
// arbitrary-interval heap (see the HAL poller this is grounded on) with fixed
// slot tables, since the firmware's tick source is a single hardware timer
// rather than many independently-scheduled host operations.
package scheduler

import "sync/atomic"

// Task is one unit of scheduled work. Tasks must not block: a blocked task
// stalls every other task sharing its slot.
type Task func()

// Period identifies one of the fixed slot tables.
type Period uint8

const (
	Every1ms Period = iota
	Every10ms
	Every20ms
	Every100ms

	periodCount
)

var divisor = [periodCount]uint32{
	Every1ms:   1,
	Every10ms:  10,
	Every20ms:  20,
	Every100ms: 100,
}

// Scheduler holds the slot tables and the running tick count. Zero value is
// ready to use.
type Scheduler struct {
	tables [periodCount][]Task
	ticks  atomic.Uint32
}

// Register appends a task to the given period's slot table. Registration is
// expected to happen once at startup, before the first Tick; it is not
// synchronized against concurrent Tick calls.
func (s *Scheduler) Register(p Period, t Task) {
	s.tables[p] = append(s.tables[p], t)
}

// Ticks returns the number of 1ms ticks observed so far.
func (s *Scheduler) Ticks() uint32 { return s.ticks.Load() }

// Tick advances the scheduler by one 1ms step and runs every slot table whose
// divisor evenly divides the new tick count, in table order (1ms, 10ms, 20ms,
// 100ms) and registration order within a table. It is meant to be called
// from the firmware's 1kHz hardware timer tick, outside of interrupt context
// (the tick ISR itself only increments a counter and wakes the scheduler;
// see the watchdog package for the feed that depends on this running).
func (s *Scheduler) Tick() {
	n := s.ticks.Add(1)
	for p := Period(0); p < periodCount; p++ {
		if n%divisor[p] != 0 {
			continue
		}
		for _, t := range s.tables[p] {
			t()
		}
	}
}
