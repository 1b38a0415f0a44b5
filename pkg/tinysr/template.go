package tinysr

// Template is one recognition entry loaded from a model file: a word
// name and index, the affine score-calibration coefficients, and the
// ordered sequence of Gaussians that DTW aligns an utterance against.
type Template struct {
	WordName  string
	WordIndex int
	LLOffset  float64
	LLSlope   float64
	Gaussians []Gaussian
}
