// Package htj2k encodes raster frames into High-Throughput JPEG 2000
// codestreams. The package owns encoder configuration, the mapping
// from configuration to coding directives, and the one-shot stripe
// compression pass; the wavelet transform and block coding themselves
// are performed by an injected engine.Engine.
package htj2k

import (
	"fmt"

	"github.com/osamu620/kakadujs/engine"
)

// Encoder is a single-session HTJ2K encoder. Configure it through the
// setters in any order, supply a frame via DecodedBuffer or
// SetSourceImage, then call Encode once. A session must not be used
// from multiple goroutines.
type Encoder struct {
	eng engine.Engine
	cfg config

	frameInfo FrameInfo
	decoded   []byte
	src       []byte

	encoded  BufferTarget
	encoding bool
}

// NewEncoder creates an encoder session bound to the given codec
// engine, with default configuration: 5 decompositions, lossless,
// qfactor 85, RPCL progression, 64x64 code-blocks, HT enabled, two
// extra workers.
func NewEncoder(eng engine.Engine) *Encoder {
	return &Encoder{
		eng: eng,
		cfg: defaultConfig(),
	}
}

// SetDecompositions sets the number of wavelet decomposition levels
// and clears any configured precincts, since precinct sizes are tied
// to the decomposition structure.
func (e *Encoder) SetDecompositions(n int) {
	e.cfg.decompositions = n
	e.cfg.precincts = nil
}

// SetQuality sets the lossless flag and the quantization step
// atomically. The quantization step is stored but never consulted
// when lossless is true; lossy quality is currently driven by the
// qfactor alone.
func (e *Encoder) SetQuality(lossless bool, quantizationStep float32) {
	e.cfg.lossless = lossless
	e.cfg.quantizationStep = quantizationStep
}

// SetQfactor sets the lossy quality factor, clamped to [0,100].
func (e *Encoder) SetQfactor(qf int) {
	if qf < 0 {
		qf = 0
	}
	if qf > 100 {
		qf = 100
	}
	e.cfg.qfactor = qf
}

// SetProgressionOrder sets the codestream progression order. An
// ordinal outside the five known orders is rejected with
// ErrInvalidConfiguration and leaves the prior order in place.
func (e *Encoder) SetProgressionOrder(order ProgressionOrder) error {
	if !order.valid() {
		return fmt.Errorf("%w: unknown progression order %d", ErrInvalidConfiguration, int(order))
	}
	e.cfg.progressionOrder = order
	return nil
}

// SetBlockDimensions sets the code-block dimensions. The value is
// stored verbatim; the engine validates it at encode time.
func (e *Encoder) SetBlockDimensions(dims Size) {
	e.cfg.blockDimensions = dims
}

// SetHTEnabled toggles the high-throughput block-coding mode.
func (e *Encoder) SetHTEnabled(enabled bool) {
	e.cfg.htEnabled = enabled
}

// SetPrecincts sets per-resolution precinct dimensions, outermost
// resolution first. Calling SetDecompositions afterwards clears them.
func (e *Encoder) SetPrecincts(sizes []Size) {
	e.cfg.precincts = append([]Size(nil), sizes...)
}

// SetExtraWorkers sets the number of engine workers requested in
// addition to the calling goroutine. Negative values are clamped to
// zero. The default is 2.
func (e *Encoder) SetExtraWorkers(n int) {
	if n < 0 {
		n = 0
	}
	e.cfg.extraWorkers = n
}

// DecodedBuffer records fi as the frame to encode and returns the
// session-owned source buffer, sized for one full interleaved frame,
// for the caller to fill.
func (e *Encoder) DecodedBuffer(fi FrameInfo) []byte {
	e.frameInfo = fi
	n := fi.FrameSize()
	if cap(e.decoded) < n {
		e.decoded = make([]byte, n)
	}
	e.decoded = e.decoded[:n]
	return e.decoded
}

// SetFrameInfo records fi as the frame to encode without touching the
// session-owned buffer. Use it together with SetSourceImage.
func (e *Encoder) SetFrameInfo(fi FrameInfo) {
	e.frameInfo = fi
}

// SetSourceImage borrows buf as the source pixel buffer for subsequent
// encodes, taking precedence over the session-owned buffer. The caller
// must not mutate buf while Encode runs. Pass nil to revert to the
// session-owned buffer.
func (e *Encoder) SetSourceImage(buf []byte) {
	e.src = buf
}

// EncodedBytes returns a view of the encoded codestream produced by
// the last successful Encode, valid until the next Encode call.
func (e *Encoder) EncodedBytes() []byte {
	return e.encoded.Bytes()
}

// Encode compresses the source buffer into a fresh codestream. It is
// one-shot and synchronous: the sink is reset on entry, and on any
// failure it is reset again so no partial output is ever observable.
// Encode is not reentrant; a session runs at most one encode at a time.
func (e *Encoder) Encode() error {
	if e.encoding {
		return fmt.Errorf("%w: encode already in progress", ErrInvalidConfiguration)
	}
	e.encoding = true
	defer func() { e.encoding = false }()

	e.encoded.Reset()

	fi := e.frameInfo
	src := e.src
	if src == nil {
		src = e.decoded
	}
	if err := validateFrame(fi, src); err != nil {
		return err
	}

	e.encoded.Grow(fi.FrameSize())

	cs, err := e.eng.NewCodestream(codestreamGeometry(fi), &e.encoded)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGeometry, err)
	}

	fail := func(err error) error {
		cs.Destroy()
		e.encoded.Reset()
		return err
	}

	for _, directive := range codingDirectives(e.cfg) {
		if err := cs.ParseDirective(directive); err != nil {
			return fail(fmt.Errorf("%w: directive %q: %w", ErrEngineFailure, directive, err))
		}
	}
	if err := cs.FinalizeAll(); err != nil {
		return fail(fmt.Errorf("%w: finalize coding defaults: %w", ErrEngineFailure, err))
	}

	compressor, err := cs.NewCompressor(engine.CompressorOptions{
		ExtraWorkers: e.cfg.extraWorkers,
		Fussy:        true,
		RateControl:  false,
	})
	if err != nil {
		return fail(fmt.Errorf("%w: start compressor: %w", ErrEngineFailure, err))
	}

	// One full-height stripe per component.
	stripeHeights := make([]int, fi.ComponentCount)
	for i := range stripeHeights {
		stripeHeights[i] = fi.Height
	}
	if err := compressor.PushStripe(src, stripeHeights); err != nil {
		return fail(fmt.Errorf("%w: push stripe: %w", ErrEngineFailure, err))
	}
	if err := compressor.Finish(); err != nil {
		return fail(fmt.Errorf("%w: finish compression: %w", ErrEngineFailure, err))
	}

	if err := cs.Destroy(); err != nil {
		e.encoded.Reset()
		return fmt.Errorf("%w: destroy codestream: %w", ErrEngineFailure, err)
	}
	if err := e.encoded.Close(); err != nil {
		e.encoded.Reset()
		return fmt.Errorf("%w: close target: %w", ErrEngineFailure, err)
	}
	return nil
}

// validateFrame cross-checks the frame geometry and the source buffer
// length before any engine resource is created.
func validateFrame(fi FrameInfo, src []byte) error {
	if fi.Width <= 0 || fi.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrGeometry, fi.Width, fi.Height)
	}
	if fi.ComponentCount <= 0 {
		return fmt.Errorf("%w: component count %d", ErrGeometry, fi.ComponentCount)
	}
	if fi.BitsPerSample < 1 || fi.BitsPerSample > 16 {
		return fmt.Errorf("%w: %d bits per sample", ErrGeometry, fi.BitsPerSample)
	}
	if len(src) != fi.FrameSize() {
		return fmt.Errorf("%w: source buffer is %d bytes, frame needs %d", ErrGeometry, len(src), fi.FrameSize())
	}
	return nil
}
