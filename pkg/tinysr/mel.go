package tinysr

// melFilterBank builds the 23 triangular Mel filters over the fixed
// melCenterBins table, matching ES 201 108 section 4.2.9 with this
// implementation's zero-indexed bin convention (see melCenterBins).
// The result is [NumMelFilters][halfFFT] of per-bin weights, where
// halfFFT = FFTLength/2+1.
func melFilterBank() [NumMelFilters][]float64 {
	const halfFFT = FFTLength/2 + 1
	var bank [NumMelFilters][]float64
	for k := 0; k < NumMelFilters; k++ {
		filter := make([]float64, halfFFT)
		left, center, right := melCenterBins[k], melCenterBins[k+1], melCenterBins[k+2]

		for i := left; i <= center; i++ {
			filter[i] += float64(i-left+1) / float64(center-left+1)
		}
		for i := center + 1; i <= right; i++ {
			filter[i] += 1 - float64(i-center)/float64(right-center+1)
		}
		bank[k] = filter
	}
	return bank
}
