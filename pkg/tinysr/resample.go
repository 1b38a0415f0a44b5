package tinysr

// resampler performs online linear-interpolation resampling from an
// arbitrary input rate down (or up) to InternalSampleRate, one input
// sample at a time. It carries state in float32, matching the
// original single-precision implementation this pipeline is ported
// from, so that input_sample_rate == InternalSampleRate reduces to
// identity and rational-ratio inputs (e.g. 2x) reproduce the same
// output to within 1 ULP of float32.
type resampler struct {
	prevRaw   float32
	timeDelta float32
	ratio     float32
}

func newResampler(inputRate int) resampler {
	return resampler{
		ratio: float32(inputRate) / float32(InternalSampleRate),
	}
}

func (r *resampler) setInputRate(inputRate int) {
	r.ratio = float32(inputRate) / float32(InternalSampleRate)
}

// feed runs one raw input sample through the resampler, invoking emit
// for each interpolated InternalSampleRate-rate output sample it
// produces (zero, one, or more than one, depending on the ratio).
func (r *resampler) feed(raw float32, emit func(sample float32)) {
	for r.timeDelta <= 1.0 {
		interpolated := (1-r.timeDelta)*r.prevRaw + r.timeDelta*raw
		emit(interpolated)
		r.timeDelta += r.ratio
	}
	r.timeDelta -= 1
	r.prevRaw = raw
}

// offsetCompensator is the single-pole DC-removal filter from ES 201
// 108 4.2.3: y[n] = x[n] - x[n-1] + 0.999*y[n-1].
type offsetCompensator struct {
	prevIn, prevOut float32
}

func (c *offsetCompensator) apply(in float32) float32 {
	out := in - c.prevIn + offsetCompPole*c.prevOut
	c.prevIn = in
	c.prevOut = out
	return out
}
