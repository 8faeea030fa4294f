// Package engine defines the interface between the HTJ2K encode
// orchestration layer and the codec engine that performs the actual
// wavelet transform, block coding and codestream assembly.
//
// The engine is an injected collaborator: this module ships no
// implementation of its own. Bindings to a native engine (or a pure-Go
// one) implement Engine; tests use the enginetest fake.
package engine

// Geometry describes the codestream image geometry handed to the
// engine. All components share the same dimensions, precision and
// signedness.
type Geometry struct {
	// Components is the number of image components.
	Components int

	// Dims holds the per-component sample dimensions in the engine's
	// axis convention: height first, then width.
	Dims [2]int

	// Precision is the sample precision in bits (1-16).
	Precision int

	// Signed reports whether samples are signed.
	Signed bool
}

// Height returns the per-component sample height.
func (g Geometry) Height() int { return g.Dims[0] }

// Width returns the per-component sample width.
func (g Geometry) Width() int { return g.Dims[1] }

// TargetCap is a set of capability flags a compressed-data target
// reports to the engine.
type TargetCap int

const (
	// CapSequential indicates the target accepts bytes strictly in
	// codestream order.
	CapSequential TargetCap = 1 << iota

	// CapCached indicates the target supports out-of-order cached
	// writes.
	CapCached
)

// Target is the sink the engine pushes compressed bytes into.
type Target interface {
	// Write records all of p, or fails without recording any of it.
	Write(p []byte) error

	// Capabilities reports the write modes the target supports.
	Capabilities() TargetCap

	// Close marks the end of the compressed stream.
	Close() error
}

// CompressorOptions configures a stripe-push compression session.
type CompressorOptions struct {
	// ExtraWorkers is the number of worker threads requested in
	// addition to the calling goroutine. A request, not a guarantee:
	// the engine may serialize.
	ExtraWorkers int

	// Fussy enables strict error reporting inside the engine.
	Fussy bool

	// RateControl enables iterative rate-distortion refinement.
	// The orchestration layer runs single-pass and leaves this off.
	RateControl bool
}

// Engine creates codestreams bound to an output target.
type Engine interface {
	// NewCodestream validates and locks geom, then binds a new
	// codestream to tgt. Geometry outside the engine's accepted
	// ranges is rejected here.
	NewCodestream(geom Geometry, tgt Target) (Codestream, error)
}

// Codestream is one compression unit. Coding parameters are applied as
// string-keyed directives; directives are successive overrides, so
// their order is significant.
type Codestream interface {
	// ParseDirective applies one coding directive, e.g. "Cmodes=HT"
	// or "Clevels=5". Must not be called after FinalizeAll.
	ParseDirective(directive string) error

	// FinalizeAll locks the coding defaults. No further directive may
	// be issued once it returns.
	FinalizeAll() error

	// NewCompressor starts a stripe-push compression session against
	// the finalized codestream.
	NewCompressor(opts CompressorOptions) (StripeCompressor, error)

	// Destroy releases the engine resources held by the codestream.
	Destroy() error
}

// StripeCompressor accepts raw samples in horizontal stripes.
type StripeCompressor interface {
	// PushStripe pushes interleaved samples covering stripeHeights
	// rows for each component.
	PushStripe(samples []byte, stripeHeights []int) error

	// Finish flushes remaining data and ends the session.
	Finish() error
}
