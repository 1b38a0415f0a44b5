package tinysr

// frameAssembler is a circular buffer of exactly FrameLength samples.
// Every ShiftInterval samples appended, it has a complete new frame
// ready and invokes onFrame with the samples straightened out into
// natural time order.
type frameAssembler struct {
	buf  [FrameLength]float32
	next int // write position of the next sample
	samp int // population count, saturates logically at FrameLength

	scratch [FrameLength]float32 // reused across onFrame calls
}

// push appends one sample to the circular buffer. When a frame
// completes it is copied into a scratch buffer (oldest sample first)
// and passed to onFrame before the shift is applied.
func (a *frameAssembler) push(sample float32, onFrame func(frame []float32)) {
	a.buf[a.next] = sample
	a.next = (a.next + 1) % FrameLength
	a.samp++

	if a.samp == FrameLength {
		idx := a.next
		for i := 0; i < FrameLength; i++ {
			a.scratch[i] = a.buf[idx]
			idx = (idx + 1) % FrameLength
		}
		onFrame(a.scratch[:])
		a.samp -= ShiftInterval
	}
}
