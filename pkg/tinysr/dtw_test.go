package tinysr

import (
	"math"
	"testing"
)

// identityGaussians builds one Gaussian per feature vector in fvs,
// each centered exactly on that vector's cepstrum with an identity
// inverse covariance, so its log-likelihood at that exact point is
// exactly `offset` (the quadratic form is zero).
func identityGaussians(fvs []FeatureVector, offset float64) []Gaussian {
	gaussians := make([]Gaussian, len(fvs))
	for i, fv := range fvs {
		g := &gaussians[i]
		g.Offset = offset
		g.Mean = fv.Cepstrum
		for j := 0; j < NumCepstrum; j++ {
			g.InverseCovar[j][j] = 1
		}
		g.prepare()
	}
	return gaussians
}

func syntheticUtterance(t int) []FeatureVector {
	fvs := make([]FeatureVector, t)
	for i := range fvs {
		for j := 0; j < NumCepstrum; j++ {
			fvs[i].Cepstrum[j] = float64(i + j)
		}
	}
	return fvs
}

func TestDTWIdentityDiagonalScore(t *testing.T) {
	const T = 7
	utt := syntheticUtterance(T)
	tmpl := &Template{
		LLOffset:  0,
		LLSlope:   1,
		Gaussians: identityGaussians(utt, 2.5),
	}

	got := scoreTemplate(utt, tmpl)
	want := float64(T) * 2.5
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("got score %v, want %v", got, want)
	}
}

func TestDTWMonotonicOnTemplateExtension(t *testing.T) {
	const T = 5
	utt := syntheticUtterance(T)
	gaussians := identityGaussians(utt, 1.0)

	short := &Template{LLOffset: 0, LLSlope: 1, Gaussians: gaussians}
	extended := &Template{LLOffset: 0, LLSlope: 1, Gaussians: append(append([]Gaussian{}, gaussians...), gaussians[len(gaussians)-1])}

	shortScore := scoreTemplate(utt, short)
	extendedScore := scoreTemplate(utt, extended)
	if extendedScore < shortScore {
		t.Errorf("extending the template with a copy of its final Gaussian decreased the score: %v -> %v", shortScore, extendedScore)
	}
}

func TestDTWAffineCalibration(t *testing.T) {
	const T = 3
	utt := syntheticUtterance(T)
	tmpl := &Template{
		LLOffset:  10,
		LLSlope:   2,
		Gaussians: identityGaussians(utt, 1),
	}
	got := scoreTemplate(utt, tmpl)
	want := 10 + 2*(float64(T)*1)
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("got %v, want %v", got, want)
	}
}
