package tinysr

import (
	"math"
	"testing"
)

func TestNoiseFloorMonotonicOnSilence(t *testing.T) {
	tracker := newNoiseFloorTracker()
	logEnergy := math.Log(energyFloor)
	prev := tracker.estimate
	for i := 0; i < 50; i++ {
		got := tracker.update(logEnergy)
		if got > prev {
			t.Fatalf("frame %d: noise floor increased from %v to %v on silence", i, prev, got)
		}
		prev = got
	}
}

func TestNoiseFloorRisesOnLoudFrames(t *testing.T) {
	tracker := newNoiseFloorTracker()
	tracker.update(math.Log(energyFloor))
	before := tracker.estimate
	var after float64
	for i := 0; i < 1000; i++ {
		after = tracker.update(10)
	}
	if after <= before {
		t.Fatalf("expected noise floor to rise toward loud frames, before=%v after=%v", before, after)
	}
}
