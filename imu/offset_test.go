package imu

import (
	"testing"

	"robotfw/queue"
)

func TestOffsetAccumulatesWhileIdleAndAppliesBias(t *testing.T) {
	var o OffsetCompensator
	src := queue.New[RawSample](16)
	dst := queue.New[Vector3D](32)

	for i := 0; i < offsetAverageWindow; i++ {
		src.Write(RawSample{X: 10})
		o.Consume(src, dst, false)
	}
	if o.Offset().X != 10 {
		t.Fatalf("want offset.X == 10 after a full window of constant bias, got %v", o.Offset().X)
	}

	for _, res := dst.Read(); res != queue.Empty; _, res = dst.Read() {
	}
	src.Write(RawSample{X: 10})
	o.Consume(src, dst, false)
	v, res := dst.Read()
	if res != queue.Ok || v.X != 0 {
		t.Fatalf("want a bias-corrected sample of 0, got %v (read result %v)", v.X, res)
	}
}

func TestOffsetDoesNotAccumulateWhileMoving(t *testing.T) {
	var o OffsetCompensator
	src := queue.New[RawSample](16)
	dst := queue.New[Vector3D](32)
	for i := 0; i < offsetAverageWindow; i++ {
		src.Write(RawSample{X: 50})
		o.Consume(src, dst, true) // moving: must not feed the bias average
	}
	if o.Offset().X != 0 {
		t.Fatalf("want offset unchanged while moving, got %v", o.Offset().X)
	}
}
