package link

import "testing"

func TestFrameDeliveredOnStop(t *testing.T) {
	tr := NewTransport(100)
	tr.OnAddressMatchRx()
	for _, b := range []byte{0xAA, 0xBB, 0xCC} {
		tr.OnDataByte(b)
	}
	tr.OnStop()

	frame, ok := tr.TakeFrame()
	if !ok {
		t.Fatal("expected a frame to be ready")
	}
	if len(frame) != 3 || frame[0] != 0xAA || frame[2] != 0xCC {
		t.Fatalf("unexpected frame %v", frame)
	}

	if _, ok := tr.TakeFrame(); ok {
		t.Fatal("expected no frame after it was taken")
	}
}

func TestTxSnapshotServesResponseUntilNextStart(t *testing.T) {
	tr := NewTransport(100)
	tr.SetResponse([]byte{1, 2, 3})
	tr.OnAddressMatchTx()

	if b := tr.NextTxByte(); b != 1 {
		t.Fatalf("want 1, got %d", b)
	}
	if b := tr.NextTxByte(); b != 2 {
		t.Fatalf("want 2, got %d", b)
	}
	if b := tr.NextTxByte(); b != 3 {
		t.Fatalf("want 3, got %d", b)
	}
	// Reading past the end repeats the last byte.
	if b := tr.NextTxByte(); b != 3 {
		t.Fatalf("want repeat of last byte 3, got %d", b)
	}
}

func TestTickResetsOnFrameReceipt(t *testing.T) {
	tr := NewTransport(4)
	tr.Tick()
	tr.Tick()
	tr.OnAddressMatchRx()
	tr.OnStop() // resets ticksSinceRx
	for i := 0; i < 3; i++ {
		if timedOut := tr.Tick(); timedOut {
			t.Fatalf("unexpected timeout at tick %d after reset", i)
		}
	}
}

func TestTimeoutFiresOnceAtThreshold(t *testing.T) {
	tr := NewTransport(3)
	if tr.Tick() {
		t.Fatal("should not time out at tick 1")
	}
	if tr.Tick() {
		t.Fatal("should not time out at tick 2")
	}
	if !tr.Tick() {
		t.Fatal("should time out at tick 3")
	}
	// It should not keep re-firing every subsequent tick.
	if tr.Tick() {
		t.Fatal("should not re-fire at tick 4")
	}
}
