package tinysr

// Wire/model-compatibility constants. These must not change without
// breaking on-disk model files and recorded feature-vector CSVs.
const (
	// FFTLength is the zero-padded transform length used by the front end.
	FFTLength = 512
	// FrameLength is the analysis window length in samples (25 ms at 16 kHz).
	FrameLength = 400
	// ShiftInterval is the hop between successive frame starts (10 ms at 16 kHz).
	ShiftInterval = 160
	// InternalSampleRate is the fixed rate the resampler produces and the
	// front end operates at.
	InternalSampleRate = 16000
	// NumMelFilters is the number of triangular Mel filters in the bank.
	NumMelFilters = 23
	// NumCepstrum is the number of DCT coefficients kept per frame.
	NumCepstrum = 13

	preEmphasis    = 0.97
	offsetCompPole = 0.999
	noiseFloorUp   = 0.001
	noiseFloorDown = 0.999
	energyFloor    = 2e-22
)

// VAD tuning constants, exposed by name per spec so callers can reason
// about the defaults even though they aren't currently configurable.
const (
	StartEnergyThreshold  = 5.0
	StopEnergyThreshold   = 2.5
	StartLength           = 4
	StopLength            = 10
	FramesBackedUp        = 8
	FramesDroppedFromEnd  = 7
)

// melCenterBins are the integer FFT-bin centers for the 23-band
// triangular Mel filter bank, precomputed for FFTLength=512 and
// InternalSampleRate=16000. cbin[k+1] is the center bin for filter k;
// cbin[k] and cbin[k+2] are its left/right edges. This implementation
// is zero-indexed, one off from the ES 201 108 text's convention.
var melCenterBins = [25]int{
	2, 5, 8, 11, 14, 18, 23, 27, 33, 38, 45, 52, 60, 69, 79, 89,
	101, 115, 129, 145, 163, 183, 205, 229, 256,
}
