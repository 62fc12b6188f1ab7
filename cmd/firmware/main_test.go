package main

import (
	"testing"

	"robotfw/watchdog"
)

func TestHardwareSupported(t *testing.T) {
	cases := []struct {
		rev  byte
		want bool
	}{
		{1, true},
		{2, true},
		{3, true},
		{0, false},
		{4, false},
		{255, false},
	}
	for _, c := range cases {
		if got := hardwareSupported(c.rev); got != c.want {
			t.Errorf("hardwareSupported(%d) = %v, want %v", c.rev, got, c.want)
		}
	}
}

func TestStartupReasonString(t *testing.T) {
	cases := []struct {
		reason watchdog.StartupReason
		want   string
	}{
		{watchdog.ReasonPowerUp, "power-up"},
		{watchdog.ReasonWatchdog, "watchdog"},
		{watchdog.ReasonBrownOut, "brown-out"},
		{watchdog.ReasonBootloaderRequest, "bootloader-request"},
	}
	for _, c := range cases {
		if got := startupReasonString(c.reason); got != c.want {
			t.Errorf("startupReasonString(%v) = %q, want %q", c.reason, got, c.want)
		}
	}
}
