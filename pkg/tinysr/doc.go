// Package tinysr implements a small, embeddable isolated-word speech
// recognizer.
//
// It ingests a stream of integer PCM samples at an arbitrary input
// sample rate, resamples to 16 kHz, extracts ETSI ES 201 108
// advanced-front-end Mel-frequency cepstral feature vectors (MFCCs),
// segments the stream into utterances via an energy-based
// voice-activity state machine, and scores each utterance against a
// library of per-word diagonal-in-time Gaussian template sequences
// using Dynamic Time Warping (DTW) with per-frame Gaussian
// log-likelihoods.
//
// # Pipeline
//
// Sample intake -> linear-interpolation resampler -> single-pole
// offset compensator -> 400/160 overlapping frame assembler -> ES
// 201 108 feature extractor -> noise-floor tracker -> two-state VAD
// -> cepstral mean normalization -> DTW scorer.
//
// # Usage
//
//	ctx := tinysr.NewContext()
//	ctx.Configure(tinysr.Config{InputSampleRate: 16000, Mode: tinysr.FreeRunning})
//	if _, err := ctx.LoadModel("model.bin"); err != nil {
//		log.Fatal(err)
//	}
//	n, err := ctx.Recognize(samples)
//	for range n {
//		result, _ := ctx.GetResult()
//		fmt.Println(ctx.WordNames[result.WordIndex], result.Score)
//	}
//
// # Concurrency
//
// A Context is not safe for concurrent use; all operations on one
// Context must be externally serialized. Different Contexts share no
// mutable state and may be used from different goroutines
// concurrently.
package tinysr
