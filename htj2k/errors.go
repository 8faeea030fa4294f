package htj2k

import "errors"

// Common errors for HTJ2K encoding
var (
	// ErrInvalidConfiguration indicates a setter received a value
	// outside its legal closed set, or the session was misused. The
	// session remains usable with its prior configuration.
	ErrInvalidConfiguration = errors.New("htj2k: invalid configuration")

	// ErrGeometry indicates frame geometry the engine cannot accept,
	// or a source buffer whose length does not match it.
	ErrGeometry = errors.New("htj2k: invalid geometry")

	// ErrEngineFailure indicates the codec engine rejected a directive
	// or the push operation. The engine diagnostic is preserved in the
	// error chain.
	ErrEngineFailure = errors.New("htj2k: engine failure")

	// ErrAllocation indicates memory exhaustion while sizing buffers.
	ErrAllocation = errors.New("htj2k: allocation failure")
)
