package led

// Scenario selects the animation driving the 12-LED status ring. Selected
// by the host via the ring-select command.
type Scenario uint8

const (
	Off Scenario = iota
	UserFrame
	ColorWheel
	RainbowFade
	BusyIndicator
	BreathingGreen
	Siren
	TrafficLight

	ringSize = 12
)

// RingState carries everything a scenario's render function needs: the
// current scenario, a free-running frame counter for animation phase, and
// the host-supplied user frame for UserFrame.
type RingState struct {
	Scenario  Scenario
	Frame     uint32
	UserFrame [ringSize]Color
}

// renderRing computes the 12 ring colors for the current tick.
func renderRing(s RingState) [ringSize]Color {
	switch s.Scenario {
	case UserFrame:
		return s.UserFrame
	case ColorWheel:
		return colorWheelFrame(s.Frame)
	case RainbowFade:
		return rainbowFadeFrame(s.Frame)
	case BusyIndicator:
		return busyIndicatorFrame(s.Frame)
	case BreathingGreen:
		return breathingGreenFrame(s.Frame)
	case Siren:
		return sirenFrame(s.Frame)
	case TrafficLight:
		return trafficLightFrame(s.Frame)
	default: // Off
		var out [ringSize]Color
		return out
	}
}

func colorWheelFrame(frame uint32) [ringSize]Color {
	var out [ringSize]Color
	head := int(frame/2) % ringSize
	for i := range out {
		if i == head {
			out[i] = Red
		}
	}
	return out
}

func rainbowFadeFrame(frame uint32) [ringSize]Color {
	var out [ringSize]Color
	phase := uint8(frame % 255)
	for i := range out {
		out[i] = Color{R: phase, G: 255 - phase, B: phase / 2}
	}
	return out
}

func busyIndicatorFrame(frame uint32) [ringSize]Color {
	var out [ringSize]Color
	lit := int(frame/4) % ringSize
	out[lit] = Blue
	return out
}

func breathingGreenFrame(frame uint32) [ringSize]Color {
	var out [ringSize]Color
	phase := frame % 100
	level := phase
	if level > 50 {
		level = 100 - level
	}
	brightness := uint8(level * 255 / 50)
	c := Green.scale(brightness)
	for i := range out {
		out[i] = c
	}
	return out
}

func sirenFrame(frame uint32) [ringSize]Color {
	var out [ringSize]Color
	half := ringSize / 2
	red := (frame/10)%2 == 0
	for i := range out {
		if (i < half) == red {
			out[i] = Red
		} else {
			out[i] = Blue
		}
	}
	return out
}

func trafficLightFrame(frame uint32) [ringSize]Color {
	var out [ringSize]Color
	phase := (frame / 50) % 3
	var c Color
	switch phase {
	case 0:
		c = Red
	case 1:
		c = Orange
	default:
		c = Green
	}
	for i := range out {
		out[i] = c
	}
	return out
}
