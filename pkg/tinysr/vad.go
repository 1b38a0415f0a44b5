package tinysr

// UtteranceState is the two-valued VAD state, exposed read-only on
// Context as UtteranceState.
type UtteranceState int

const (
	Idle UtteranceState = iota
	InUtterance
)

func (s UtteranceState) String() string {
	if s == InUtterance {
		return "InUtterance"
	}
	return "Idle"
}

// Mode selects how the utterance detector treats buffered feature
// vectors: FreeRunning runs the excitement/boredom state machine
// continuously; OneShot ignores it and treats a detect call as "close
// out whatever is currently buffered as a single utterance".
type Mode int

const (
	FreeRunning Mode = iota
	OneShot
)

// vad holds the utterance-detection state machine: the counters, the
// current state, and the number of the feature vector where the
// in-progress utterance began.
type vad struct {
	state          UtteranceState
	excitement     int
	boredom        int
	utteranceStart int64 // valid only while state == InUtterance
}

// step folds in one new feature vector's noise-floor-relative energy
// and returns a closed utterance span [start, end] (inclusive feature
// vector numbers, already back-extended and tail-trimmed) if this
// frame closed one out, or ok=false otherwise. q is consulted only to
// clip the back-extension to the oldest feature vector still live.
func (v *vad) step(q *fvQueue, fv *FeatureVector) (start, end int64, ok bool) {
	relative := fv.LogEnergy - fv.NoiseFloor

	switch v.state {
	case Idle:
		if relative > StartEnergyThreshold {
			v.excitement++
		} else {
			v.excitement = 0
		}
		if v.excitement >= StartLength {
			v.state = InUtterance
			v.utteranceStart = backExtend(q, fv.Number)
			v.boredom = 0
		}
		return 0, 0, false

	case InUtterance:
		if relative < StopEnergyThreshold {
			v.boredom++
		} else {
			v.boredom = 0
		}
		if v.boredom >= StopLength {
			start = v.utteranceStart
			end = trimTail(start, fv.Number)
			v.state = Idle
			v.excitement = 0
			v.boredom = 0
			return start, end, true
		}
		return 0, 0, false
	}
	return 0, 0, false
}

// backExtend pulls the start of an about-to-open utterance back up to
// FramesBackedUp predecessors, clipped to the oldest live feature
// vector in q.
func backExtend(q *fvQueue, start int64) int64 {
	extended := start - FramesBackedUp
	if q.len() == 0 {
		return start
	}
	oldest := q.at(0).Number
	if extended < oldest {
		extended = oldest
	}
	return extended
}

// trimTail walks the close end of an utterance back up to
// FramesDroppedFromEnd predecessors, never crossing start.
func trimTail(start, end int64) int64 {
	trimmed := end - FramesDroppedFromEnd
	if trimmed < start {
		trimmed = start
	}
	return trimmed
}
