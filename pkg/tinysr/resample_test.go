package tinysr

import "testing"

func TestResamplerPassthroughAtInternalRate(t *testing.T) {
	r := newResampler(InternalSampleRate)
	in := []float32{0, 1, -1, 1000, -1000, 32767, -32768}
	var got []float32
	for i, x := range in {
		r.feed(x, func(sample float32) { got = append(got, sample) })
		if i == 0 {
			// The very first sample warms up the interpolator with an
			// implicit prevRaw=0 predecessor and emits it too.
			continue
		}
	}
	// Every input after the first should appear verbatim, in order,
	// once the interpolator's phase has settled at identity.
	if len(got) < len(in) {
		t.Fatalf("expected at least %d output samples, got %d: %v", len(in), len(got), got)
	}
	tail := got[len(got)-len(in)+1:]
	for i, x := range in[1:] {
		if tail[i] != x {
			t.Errorf("sample %d: got %v, want %v", i+1, tail[i], x)
		}
	}
}

func TestResamplerDoublingMatchesDuplicatedInput(t *testing.T) {
	const n = 1600
	ramp := make([]float32, n)
	for i := range ramp {
		ramp[i] = float32(i)
	}

	r1 := newResampler(InternalSampleRate)
	var out1 []float32
	for _, x := range ramp {
		r1.feed(x, func(sample float32) { out1 = append(out1, sample) })
	}

	r2 := newResampler(2 * InternalSampleRate)
	var out2 []float32
	for _, x := range ramp {
		r2.feed(x, func(sample float32) { out2 = append(out2, sample) })
		r2.feed(x, func(sample float32) { out2 = append(out2, sample) })
	}

	if len(out1) == 0 || len(out2) == 0 {
		t.Fatal("expected non-empty output from both resamplers")
	}
	limit := len(out1)
	if len(out2) < limit {
		limit = len(out2)
	}
	for i := 0; i < limit; i++ {
		diff := out1[i] - out2[i]
		if diff < 0 {
			diff = -diff
		}
		// 1 ULP of float32 at the ramp's largest values (1024..1599).
		const ulp = 1.0 / (1 << 13)
		if diff > ulp {
			t.Errorf("sample %d: 16kHz ramp=%v, 32kHz-duplicated=%v", i, out1[i], out2[i])
		}
	}
}

func TestOffsetCompensatorZeroInputIsZero(t *testing.T) {
	var c offsetCompensator
	for i := 0; i < 100; i++ {
		if got := c.apply(0); got != 0 {
			t.Fatalf("iteration %d: expected 0, got %v", i, got)
		}
	}
}
