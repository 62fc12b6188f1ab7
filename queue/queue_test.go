package queue

import "testing"

func TestEmptyRead(t *testing.T) {
	q := New[int](4)
	if _, res := q.Read(); res != Empty {
		t.Fatalf("want Empty, got %v", res)
	}
}

func TestOkUntilFull(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 4; i++ {
		q.Write(i)
	}
	for i := 0; i < 4; i++ {
		v, res := q.Read()
		if res != Ok || v != i {
			t.Fatalf("item %d: want Ok/%d, got %v/%d", i, i, res, v)
		}
	}
	if _, res := q.Read(); res != Empty {
		t.Fatalf("want Empty after drain, got %v", res)
	}
}

func TestOverflowLatchesAndClearsOnce(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 6; i++ { // two more than capacity
		q.Write(i)
	}
	if !q.Overflow() {
		t.Fatal("expected overflow latch set after overfilling")
	}
	// First read surfaces the loss exactly once.
	v, res := q.Read()
	if res != Overflow {
		t.Fatalf("want Overflow on first read, got %v", res)
	}
	if v != 2 { // oldest two (0,1) were dropped as the ring kept the latest 4
		t.Fatalf("want oldest surviving value 2, got %d", v)
	}
	if q.Overflow() {
		t.Fatal("latch should clear after being surfaced")
	}
	// Subsequent reads are Ok until the next saturation.
	for i := 3; i <= 5; i++ {
		v, res := q.Read()
		if res != Ok || v != i {
			t.Fatalf("want Ok/%d, got %v/%d", i, res, v)
		}
	}
}

func TestCapacityRoundsToPowerOfTwo(t *testing.T) {
	q := New[byte](5)
	if q.Cap() != 8 {
		t.Fatalf("want rounded cap 8, got %d", q.Cap())
	}
}
