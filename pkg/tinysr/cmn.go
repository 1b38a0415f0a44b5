package tinysr

// applyCMN performs cepstral mean normalization across fvs in place:
// for each of the NumCepstrum dimensions, subtracts the per-dimension
// mean over the whole span. Log-energy is left untouched.
func applyCMN(fvs []FeatureVector) {
	if len(fvs) == 0 {
		return
	}
	var mean [NumCepstrum]float64
	for _, fv := range fvs {
		for j := 0; j < NumCepstrum; j++ {
			mean[j] += fv.Cepstrum[j]
		}
	}
	n := float64(len(fvs))
	for j := 0; j < NumCepstrum; j++ {
		mean[j] /= n
	}
	for i := range fvs {
		for j := 0; j < NumCepstrum; j++ {
			fvs[i].Cepstrum[j] -= mean[j]
		}
	}
}
