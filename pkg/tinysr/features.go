package tinysr

import "math"

// featureExtractor computes one ES 201 108 feature vector per 400
// sample frame. All working buffers are preallocated so a steady
// state ingest loop does no per-frame heap allocation.
type featureExtractor struct {
	hamming [FrameLength]float64
	melBank [NumMelFilters][]float64
	dctCos  [NumCepstrum][NumMelFilters]float64

	work    [FFTLength]float64
	scratch [FFTLength]float64
	melLog  [NumMelFilters]float64
}

func newFeatureExtractor() *featureExtractor {
	e := &featureExtractor{
		melBank: melFilterBank(),
	}
	for i := 0; i < FrameLength; i++ {
		e.hamming[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(FrameLength-1))
	}
	for i := 0; i < NumCepstrum; i++ {
		for j := 0; j < NumMelFilters; j++ {
			e.dctCos[i][j] = math.Cos(math.Pi * float64(i) * (float64(j) + 0.5) / float64(NumMelFilters))
		}
	}
	return e
}

// extract runs the full front end over one natural-time-order frame
// of FrameLength samples, returning the frame's log-energy and its
// NumCepstrum cepstral coefficients. frame is not modified.
func (e *featureExtractor) extract(frame []float32) (logEnergy float64, cepstrum [NumCepstrum]float64) {
	// 1. Log-energy, computed on the raw frame before pre-emphasis.
	energy := energyFloor
	for i := 0; i < FrameLength; i++ {
		v := float64(frame[i])
		energy += v * v
	}
	logEnergy = math.Log(energy)

	// Copy into the working buffer for the remaining in-place steps.
	for i := 0; i < FrameLength; i++ {
		e.work[i] = float64(frame[i])
	}

	// 2. Pre-emphasis.
	for i := FrameLength - 1; i > 0; i-- {
		e.work[i] -= preEmphasis * e.work[i-1]
	}
	e.work[0] = 0

	// 3. Hamming window.
	for i := 0; i < FrameLength; i++ {
		e.work[i] *= e.hamming[i]
	}

	// 4. Zero-pad to FFTLength.
	for i := FrameLength; i < FFTLength; i++ {
		e.work[i] = 0
	}

	// 5. Magnitude FFT; only bins [0, FFTLength/2] inclusive are used.
	fftMagnitude(e.work[:], e.scratch[:])

	// 6. Mel filter bank.
	for k := 0; k < NumMelFilters; k++ {
		sum := 0.0
		for i, w := range e.melBank[k] {
			if w != 0 {
				sum += w * e.work[i]
			}
		}
		// 7. Log of filter bank.
		e.melLog[k] = math.Log(sum + energyFloor)
	}

	// 8. DCT.
	for i := 0; i < NumCepstrum; i++ {
		c := 0.0
		for j := 0; j < NumMelFilters; j++ {
			c += e.melLog[j] * e.dctCos[i][j]
		}
		cepstrum[i] = c
	}

	return logEnergy, cepstrum
}
