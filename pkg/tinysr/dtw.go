package tinysr

import "math"

// scoreTemplate runs single-row DTW of utterance cepstra against tmpl,
// applies tmpl's affine score calibration to the final path cost, and
// returns the calibrated score.
//
// D is a rolling row of length len(tmpl.Gaussians); D[j] holds "best
// log-likelihood to reach column j at the current row". diag holds the
// value D[j-1] had before this row overwrote it, i.e. D[i-1, j-1].
func scoreTemplate(utterance []FeatureVector, tmpl *Template) float64 {
	S := len(tmpl.Gaussians)
	if S == 0 || len(utterance) == 0 {
		return math.Inf(-1)
	}

	D := make([]float64, S)
	for j := range D {
		D[j] = math.Inf(-1)
	}

	for i, fv := range utterance {
		diag := math.Inf(-1) // D[i-1, -1], always disallowed
		for j := 0; j < S; j++ {
			emission := tmpl.Gaussians[j].logLikelihood(&fv.Cepstrum)

			var vertical, horizontal float64
			if i == 0 {
				vertical = math.Inf(-1)
			} else {
				vertical = D[j]
			}
			if j == 0 {
				horizontal = math.Inf(-1)
			} else {
				horizontal = D[j-1]
			}
			var predecessor float64
			if i == 0 && j == 0 {
				predecessor = 0 // D[0,0] has no predecessor cost
			} else {
				predecessor = max3(vertical, horizontal, diag)
			}

			prevD := D[j]
			D[j] = emission + predecessor
			diag = prevD
		}
	}

	pathCost := D[S-1]
	return tmpl.LLOffset + tmpl.LLSlope*pathCost
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
