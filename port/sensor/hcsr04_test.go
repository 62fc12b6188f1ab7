package sensor

import (
	"testing"

	"robotfw/port"
)

func TestHCSR04ComputesDistanceFromMedianOfThreePulses(t *testing.T) {
	p := port.New(0)
	var now uint32
	h := NewHCSR04(func() uint32 { return now })

	pulses := []uint32{1000, 1200, 1100} // microseconds; median is 1100
	for _, width := range pulses {
		h.InterruptHandler(p, true)
		now += width
		h.InterruptHandler(p, false)
		now += 50
	}

	want := microsToCm(1100)
	if got := h.DistanceCm(); got != want {
		t.Fatalf("want %d cm, got %d", want, got)
	}
}

func TestHCSR04PresenceUnknownUntilThreeSamples(t *testing.T) {
	p := port.New(0)
	var now uint32
	h := NewHCSR04(func() uint32 { return now })
	var status port.PresenceStatus

	if done := h.TestPresence(p, &status); done {
		t.Fatal("should not be done before any echo samples")
	}

	h.InterruptHandler(p, true)
	now += 900
	h.InterruptHandler(p, false)

	if done := h.TestPresence(p, &status); done {
		t.Fatal("should still be unknown with only one sample")
	}
	if status != port.UnknownPresence {
		t.Fatalf("want UnknownPresence, got %v", status)
	}
}

func TestMedianOf3(t *testing.T) {
	cases := [][4]uint32{
		{1, 2, 3, 2},
		{3, 1, 2, 2},
		{5, 5, 1, 5},
	}
	for _, c := range cases {
		got := medianOf3([3]uint32{c[0], c[1], c[2]})
		if got != c[3] {
			t.Fatalf("medianOf3(%v,%v,%v) = %d, want %d", c[0], c[1], c[2], got, c[3])
		}
	}
}
