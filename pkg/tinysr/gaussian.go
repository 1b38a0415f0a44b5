package tinysr

import "gonum.org/v1/gonum/mat"

// Gaussian is one full-covariance emission model in a template: a
// log-likelihood offset, a mean in cepstral space, and the inverse of
// its covariance matrix (stored, not the covariance itself, since
// that's what every scoring call needs). invCovar is built once, at
// model-load time, from InverseCovar so scoring never re-packs it.
type Gaussian struct {
	Offset       float64
	Mean         [NumCepstrum]float64
	InverseCovar [NumCepstrum][NumCepstrum]float64

	invCovar *mat.SymDense
}

// prepare packs InverseCovar into the gonum symmetric matrix used by
// logLikelihood. Must be called once after Mean/InverseCovar are set,
// before the Gaussian is scored.
func (g *Gaussian) prepare() {
	data := make([]float64, NumCepstrum*NumCepstrum)
	for i := 0; i < NumCepstrum; i++ {
		for j := 0; j < NumCepstrum; j++ {
			data[i*NumCepstrum+j] = g.InverseCovar[i][j]
		}
	}
	g.invCovar = mat.NewSymDense(NumCepstrum, data)
}

// logLikelihood computes offset - 0.5*(c-mean)^T * invCovar * (c-mean)
// for cepstrum c, using gonum's symmetric quadratic-form helper.
func (g *Gaussian) logLikelihood(cepstrum *[NumCepstrum]float64) float64 {
	var diff mat.VecDense
	diff.ReuseAsVec(NumCepstrum)
	for i := 0; i < NumCepstrum; i++ {
		diff.SetVec(i, cepstrum[i]-g.Mean[i])
	}
	quad := mat.Inner(&diff, g.invCovar, &diff)
	return g.Offset - 0.5*quad
}
