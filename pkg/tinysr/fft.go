package tinysr

import "math"

// fftMagnitude computes the magnitude spectrum of real in place, using
// an iterative in-place radix-2 Cooley-Tukey decimation-in-time FFT.
// len(real) must be a power of two; scratch must have the same length
// and is used as the imaginary part (the caller provides it so no
// allocation happens per frame).
//
// Equivalent to, for each output bin k:
//
//	X[k] = sum_n x[n] * exp(-2*pi*i*n*k/N)
//	real[k] <- |X[k]|
func fftMagnitude(real, scratch []float64) {
	n := len(real)
	imag := scratch[:n]
	for i := range imag {
		imag[i] = 0
	}

	// Bit-reversal permutation.
	j := 0
	for i := 0; i < n-1; i++ {
		if i < j {
			real[i], real[j] = real[j], real[i]
		}
		k := n >> 1
		for k <= j {
			j -= k
			k >>= 1
		}
		j += k
	}

	// Cooley-Tukey butterflies.
	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		angle := -2.0 * math.Pi / float64(size)
		wR := math.Cos(angle)
		wI := math.Sin(angle)

		for start := 0; start < n; start += size {
			tR, tI := 1.0, 0.0
			for k := 0; k < half; k++ {
				u := start + k
				v := u + half

				tmpR := tR*real[v] - tI*imag[v]
				tmpI := tR*imag[v] + tI*real[v]

				real[v] = real[u] - tmpR
				imag[v] = imag[u] - tmpI
				real[u] += tmpR
				imag[u] += tmpI

				tR, tI = tR*wR-tI*wI, tR*wI+tI*wR
			}
		}
	}

	for i := 0; i < n; i++ {
		real[i] = math.Hypot(real[i], imag[i])
	}
}
