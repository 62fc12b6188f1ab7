package asyncop

import "testing"

func TestStartWhileIdleSucceeds(t *testing.T) {
	var op Op[int, int]
	if !op.TryStart(5) {
		t.Fatal("expected TryStart to succeed from Idle")
	}
	if op.State() != Started {
		t.Fatalf("want Started, got %v", op.State())
	}
}

func TestStartWhileBusyFails(t *testing.T) {
	var op Op[int, int]
	op.TryStart(1)
	op.Update(func(a int, canceled bool) (bool, int) { return false, 0 }) // Started -> Busy
	if op.State() != Busy {
		t.Fatalf("want Busy, got %v", op.State())
	}
	if op.TryStart(2) {
		t.Fatal("expected TryStart to fail while Busy")
	}
}

func TestWorkerRunsToCompletion(t *testing.T) {
	var op Op[int, int]
	op.TryStart(10)

	steps := 0
	worker := func(a int, canceled bool) (bool, int) {
		steps++
		if steps < 3 {
			return false, 0
		}
		return true, a * 2
	}

	op.Update(worker) // Started -> Busy, step 1
	op.Update(worker) // step 2
	if op.State() != Busy {
		t.Fatalf("want Busy mid-run, got %v", op.State())
	}
	op.Update(worker) // step 3, completes

	if op.State() != Done {
		t.Fatalf("want Done, got %v", op.State())
	}
	result, ok := op.GetResult()
	if !ok || result != 20 {
		t.Fatalf("want (20, true), got (%d, %v)", result, ok)
	}
	if op.State() != Idle {
		t.Fatalf("want Idle after GetResult, got %v", op.State())
	}
}

func TestGetResultBeforeDoneReportsFalse(t *testing.T) {
	var op Op[int, int]
	if _, ok := op.GetResult(); ok {
		t.Fatal("expected GetResult to fail while Idle")
	}
	op.TryStart(1)
	if _, ok := op.GetResult(); ok {
		t.Fatal("expected GetResult to fail while Started")
	}
}

func TestCancelWhileBusyResetsToIdle(t *testing.T) {
	var op Op[int, int]
	op.TryStart(1)
	unwound := false
	op.Update(func(a int, canceled bool) (bool, int) { return false, 0 }) // -> Busy
	op.RequestCancel()
	op.Update(func(a int, canceled bool) (bool, int) {
		unwound = canceled
		return false, 0
	})
	if !unwound {
		t.Fatal("expected worker to observe canceled=true")
	}
	if op.State() != Idle {
		t.Fatalf("want Idle after cancel, got %v", op.State())
	}
}

func TestPendingDuringStartedAndBusy(t *testing.T) {
	var op Op[int, int]
	if op.Pending() {
		t.Fatal("should not be pending while Idle")
	}
	op.TryStart(1)
	if !op.Pending() {
		t.Fatal("should be pending while Started")
	}
	op.Update(func(a int, canceled bool) (bool, int) { return false, 0 })
	if !op.Pending() {
		t.Fatal("should be pending while Busy")
	}
}
