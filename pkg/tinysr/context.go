package tinysr

import (
	"log/slog"
	"math"
)

// Config configures a Context. It must be set via Configure before
// FeedInput is called; calling Configure again mid-stream resets the
// resampler's rate conversion but not the feature-vector numbering or
// VAD state.
type Config struct {
	InputSampleRate int
	Mode            Mode
	DownmixStereo   bool
}

// Context owns every buffer and piece of state in the recognition
// pipeline: the resampler, frame assembler, feature extractor,
// noise-floor tracker, VAD, pending utterances, loaded templates, and
// results. It is not safe for concurrent use.
type Context struct {
	// UtteranceState, ProcessedSamples and WordNames are the
	// observable read-only fields of a Context.
	UtteranceState   UtteranceState
	ProcessedSamples int64
	WordNames        []string

	config Config
	log    *slog.Logger

	resampler        resampler
	offsetComp       offsetCompensator
	frameAssembler   frameAssembler
	featureExtractor *featureExtractor
	noiseFloor       noiseFloorTracker

	vad          vad
	fvs          fvQueue
	nextFVNumber int64
	vadCursor    int64 // number of the last feature vector the VAD has seen

	model             []Template
	pendingUtterances utteranceQueue
	results           resultQueue
}

// NewContext allocates an empty Context. Configure must be called
// before feeding any input.
func NewContext() *Context {
	return &Context{
		featureExtractor: newFeatureExtractor(),
		noiseFloor:       newNoiseFloorTracker(),
		nextFVNumber:     1,
		log:              slog.Default().With("component", "tinysr"),
	}
}

// Configure sets the input sample rate, utterance-detection mode and
// downmix flag. It is cheap to call repeatedly; it does not discard
// buffered feature vectors or in-progress utterances.
func (ctx *Context) Configure(cfg Config) error {
	if cfg.InputSampleRate <= 0 {
		return &UsageError{Op: "configure", Msg: "input sample rate must be positive"}
	}
	ctx.config = cfg
	ctx.resampler.setInputRate(cfg.InputSampleRate)
	return nil
}

// FeedInput is pure ingestion: front-end processing plus feature
// vector FIFO enqueue. It does not advance the VAD; call
// DetectUtterances for that. A zero-length input is a no-op.
func (ctx *Context) FeedInput(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	if ctx.config.DownmixStereo && len(samples)%2 != 0 {
		return &UsageError{Op: "feed_input", Msg: "odd-length sample buffer under stereo downmix"}
	}

	step := 1
	if ctx.config.DownmixStereo {
		step = 2
	}

	for i := 0; i < len(samples); i += step {
		var raw float32
		if ctx.config.DownmixStereo {
			raw = float32(samples[i]) + float32(samples[i+1])
		} else {
			raw = float32(samples[i])
		}
		ctx.resampler.feed(raw, func(sample float32) {
			compensated := ctx.offsetComp.apply(sample)
			ctx.frameAssembler.push(compensated, ctx.onFrame)
		})
		ctx.ProcessedSamples++
	}
	return nil
}

// onFrame runs the feature extractor over one completed frame, snapshots
// the noise floor, and enqueues the resulting feature vector.
func (ctx *Context) onFrame(frame []float32) {
	logEnergy, cepstrum := ctx.featureExtractor.extract(frame)
	noiseFloor := ctx.noiseFloor.update(logEnergy)

	ctx.fvs.push(FeatureVector{
		Number:     ctx.nextFVNumber,
		LogEnergy:  logEnergy,
		Cepstrum:   cepstrum,
		NoiseFloor: noiseFloor,
	})
	ctx.nextFVNumber++
}

// DrainFeatureVectors pops every feature vector currently buffered
// (whether or not the VAD has looked at it) and returns them in order,
// leaving the FIFO empty. It exists for callers like the "fv" CLI
// command that want raw per-frame output rather than utterance
// segmentation, mirroring how the original compute_fv program popped
// its whole feature-vector list after every feed.
func (ctx *Context) DrainFeatureVectors() []FeatureVector {
	if ctx.fvs.len() == 0 {
		return nil
	}
	out := make([]FeatureVector, ctx.fvs.len())
	for i := range out {
		out[i] = *ctx.fvs.at(i)
	}
	last := ctx.fvs.at(ctx.fvs.len() - 1).Number
	ctx.fvs.dropBefore(last + 1)
	ctx.vadCursor = last
	return out
}

// DetectUtterances advances the VAD over every feature vector produced
// since the last call, in FreeRunning mode, or closes out the entire
// buffered FIFO as a single utterance in OneShot mode. A call with no
// buffered feature vectors is a no-op.
func (ctx *Context) DetectUtterances() {
	if ctx.fvs.len() == 0 {
		return
	}

	if ctx.config.Mode == OneShot {
		start := ctx.fvs.at(0).Number
		end := ctx.fvs.at(ctx.fvs.len() - 1).Number
		ctx.closeUtterance(start, end)
		ctx.fvs.dropBefore(end + 1)
		ctx.vadCursor = end
		return
	}

	for {
		fv := ctx.fvs.find(ctx.vadCursor + 1)
		if fv == nil {
			break
		}
		if start, end, closed := ctx.vad.step(&ctx.fvs, fv); closed {
			ctx.closeUtterance(start, end)
		}
		ctx.vadCursor = fv.Number
	}
	ctx.UtteranceState = ctx.vad.state

	oldestNeeded := ctx.vadCursor - FramesBackedUp
	if ctx.vad.state == InUtterance && ctx.vad.utteranceStart < oldestNeeded {
		oldestNeeded = ctx.vad.utteranceStart
	}
	ctx.fvs.dropBefore(oldestNeeded)
}

// closeUtterance copies [start, end] out of the feature-vector FIFO,
// applies CMN, and enqueues it as a pending utterance.
func (ctx *Context) closeUtterance(start, end int64) {
	span := ctx.fvs.slice(start, end)
	if len(span) == 0 {
		return
	}
	applyCMN(span)
	ctx.pendingUtterances.push(Utterance{FeatureVectors: span})
}

// PopPendingUtterance pops one detected-but-not-yet-scored utterance
// off the pending queue, for callers like the "record" CLI command
// that want to persist utterances without running DTW against a
// model.
func (ctx *Context) PopPendingUtterance() (Utterance, bool) {
	return ctx.pendingUtterances.popFront()
}

// RecognizeUtterances runs DTW scoring on every pending utterance
// against every loaded template, appending one Result per utterance to
// the results FIFO. An empty utterance queue is a no-op.
func (ctx *Context) RecognizeUtterances() {
	for {
		utt, ok := ctx.pendingUtterances.popFront()
		if !ok {
			return
		}
		ctx.results.push(ctx.scoreUtterance(utt))
	}
}

func (ctx *Context) scoreUtterance(utt Utterance) Result {
	best := Result{WordIndex: -1, Score: math.Inf(-1)}
	for i := range ctx.model {
		score := scoreTemplate(utt.FeatureVectors, &ctx.model[i])
		if score > best.Score {
			best = Result{WordIndex: ctx.model[i].WordIndex, Score: score}
		}
	}
	return best
}

// Recognize is the convenience path feed + detect + recognize. It
// returns the number of results now pending in the FIFO.
func (ctx *Context) Recognize(samples []int16) (int, error) {
	if err := ctx.FeedInput(samples); err != nil {
		return 0, err
	}
	ctx.DetectUtterances()
	ctx.RecognizeUtterances()
	return len(ctx.results.items), nil
}

// GetResult pops one result off the FIFO, or reports absence.
func (ctx *Context) GetResult() (Result, bool) {
	return ctx.results.popFront()
}
