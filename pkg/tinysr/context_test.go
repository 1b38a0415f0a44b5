package tinysr

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

// fataler is the subset of testing.T and rapid.T this file needs, so
// newTestContext can be called from inside both plain tests and
// rapid.Check closures.
type fataler interface {
	Fatalf(format string, args ...any)
}

func newTestContext(t fataler, mode Mode) *Context {
	ctx := NewContext()
	if err := ctx.Configure(Config{InputSampleRate: InternalSampleRate, Mode: mode}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return ctx
}

func TestScenarioSilentInput(t *testing.T) {
	ctx := newTestContext(t, FreeRunning)
	samples := make([]int16, 8000)
	if err := ctx.FeedInput(samples); err != nil {
		t.Fatalf("FeedInput: %v", err)
	}

	fvs := ctx.DrainFeatureVectors()
	if len(fvs) < 48 {
		t.Fatalf("expected >= 48 feature vectors, got %d", len(fvs))
	}
	want := math.Log(2e-22)
	for i, fv := range fvs {
		if math.Abs(fv.LogEnergy-want) > 1e-6 {
			t.Errorf("fv %d: log energy %v, want %v", i, fv.LogEnergy, want)
		}
		for j, c := range fv.Cepstrum {
			if math.IsInf(c, 0) || c != c {
				t.Errorf("fv %d cepstrum[%d] = %v, not finite", i, j, c)
			}
		}
	}

	ctx2 := newTestContext(t, FreeRunning)
	if err := ctx2.FeedInput(samples); err != nil {
		t.Fatalf("FeedInput: %v", err)
	}
	ctx2.DetectUtterances()
	if ctx2.UtteranceState != Idle {
		t.Errorf("expected Idle state on silence, got %v", ctx2.UtteranceState)
	}
	if ctx2.pendingUtterances.len() != 0 {
		t.Errorf("expected no utterances on silence, got %d", ctx2.pendingUtterances.len())
	}
}

func sine(freqHz float64, amplitude float64, seconds float64, rate int) []int16 {
	n := int(seconds * float64(rate))
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(amplitude * math.Sin(2*math.Pi*freqHz*float64(i)/float64(rate)))
	}
	return out
}

func TestScenarioPureSinusoid(t *testing.T) {
	ctx := newTestContext(t, FreeRunning)
	samples := sine(1000, 10000, 1.0, InternalSampleRate)
	// The utterance only closes once enough trailing quiet frames pass
	// the boredom threshold, so append silence past it -- spec.md's
	// scenario 2 describes the triggering input, not the full close.
	trailing := make([]int16, ShiftInterval*(StopLength+FramesDroppedFromEnd+2))
	samples = append(samples, trailing...)
	if err := ctx.FeedInput(samples); err != nil {
		t.Fatalf("FeedInput: %v", err)
	}
	ctx.DetectUtterances()

	if ctx.pendingUtterances.len() != 1 {
		t.Fatalf("expected exactly 1 utterance, got %d", ctx.pendingUtterances.len())
	}
	utt, _ := ctx.PopPendingUtterance()
	if len(utt.FeatureVectors) == 0 {
		t.Fatal("expected a nonempty utterance")
	}
	first := utt.FeatureVectors[0]
	if first.Cepstrum[0] <= 0 {
		t.Errorf("expected c[0] large and positive, got %v", first.Cepstrum[0])
	}
	nonZero := false
	for _, c := range first.Cepstrum[1:] {
		if c != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("expected higher cepstral coefficients not all zero")
	}
}

func TestScenarioTwoBurstsFreeRunning(t *testing.T) {
	ctx := newTestContext(t, FreeRunning)
	samples := twoBurstSamples()
	if err := ctx.FeedInput(samples); err != nil {
		t.Fatalf("FeedInput: %v", err)
	}
	ctx.DetectUtterances()
	if ctx.pendingUtterances.len() != 2 {
		t.Fatalf("expected exactly 2 utterances, got %d", ctx.pendingUtterances.len())
	}
}

func TestScenarioTwoBurstsOneShot(t *testing.T) {
	ctx := newTestContext(t, OneShot)
	samples := twoBurstSamples()
	if err := ctx.FeedInput(samples); err != nil {
		t.Fatalf("FeedInput: %v", err)
	}
	ctx.DetectUtterances()
	if ctx.pendingUtterances.len() != 1 {
		t.Fatalf("expected exactly 1 utterance covering the whole buffer, got %d", ctx.pendingUtterances.len())
	}
}

func twoBurstSamples() []int16 {
	const rate = InternalSampleRate
	var out []int16
	out = append(out, make([]int16, int(0.3*rate))...)
	out = append(out, sine(800, 12000, 0.5, rate)...)
	out = append(out, make([]int16, int(0.4*rate))...)
	out = append(out, sine(800, 12000, 0.5, rate)...)
	out = append(out, make([]int16, int(0.3*rate))...)
	return out
}

func TestFeatureVectorNumberingGapless(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := newTestContext(t, FreeRunning)
		chunks := rapid.SliceOfN(rapid.IntRange(0, 500), 0, 10).Draw(t, "chunk-sizes")
		for _, n := range chunks {
			samples := make([]int16, n)
			for i := range samples {
				samples[i] = int16(rapid.IntRange(-32768, 32767).Draw(t, "sample"))
			}
			if err := ctx.FeedInput(samples); err != nil {
				t.Fatalf("FeedInput: %v", err)
			}
		}
		fvs := ctx.DrainFeatureVectors()
		for i, fv := range fvs {
			want := int64(i + 1)
			if fv.Number != want {
				t.Fatalf("feature vector %d has number %d, want %d", i, fv.Number, want)
			}
		}
	})
}

func TestVADFreeRunningBackExtensionAndTrim(t *testing.T) {
	ctx := newTestContext(t, FreeRunning)

	silence := make([]int16, ShiftInterval*3)
	loud := make([]int16, 0)
	for i := 0; i < StartLength+5; i++ {
		frame := sine(500, 15000, float64(ShiftInterval)/float64(InternalSampleRate), InternalSampleRate)
		loud = append(loud, frame...)
	}
	tailSilenceFrames := StopLength + FramesDroppedFromEnd + 2
	tailSilence := make([]int16, ShiftInterval*tailSilenceFrames)

	if err := ctx.FeedInput(silence); err != nil {
		t.Fatal(err)
	}
	ctx.DetectUtterances()
	if err := ctx.FeedInput(loud); err != nil {
		t.Fatal(err)
	}
	ctx.DetectUtterances()
	if err := ctx.FeedInput(tailSilence); err != nil {
		t.Fatal(err)
	}
	ctx.DetectUtterances()

	if ctx.pendingUtterances.len() != 1 {
		t.Fatalf("expected exactly one utterance, got %d", ctx.pendingUtterances.len())
	}
	utt, _ := ctx.PopPendingUtterance()
	if len(utt.FeatureVectors) == 0 {
		t.Fatal("expected a nonempty utterance")
	}
	first := utt.FeatureVectors[0].Number
	if first < 1 {
		t.Errorf("first feature vector number %d should be clipped to >= 1", first)
	}
}
