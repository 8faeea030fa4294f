package htj2k

// Size holds a width/height pair, used for code-block and precinct
// dimensions.
type Size struct {
	Width  int
	Height int
}

// FrameInfo describes the entire source image: all components share
// the same dimensions, precision and signedness.
type FrameInfo struct {
	// Width is the image width in samples.
	Width int

	// Height is the image height in samples.
	Height int

	// ComponentCount is the number of components (1=grayscale, 3=RGB).
	ComponentCount int

	// BitsPerSample is the sample precision in bits (1-16).
	BitsPerSample int

	// IsSigned reports whether samples are signed.
	IsSigned bool
}

// BytesPerSample returns the storage width of one sample.
func (fi FrameInfo) BytesPerSample() int {
	return (fi.BitsPerSample + 7) / 8
}

// FrameSize returns the expected byte length of a full interleaved
// frame buffer.
func (fi FrameInfo) FrameSize() int {
	return fi.Width * fi.Height * fi.ComponentCount * fi.BytesPerSample()
}

// ProgressionOrder selects the ordering of resolution/quality/position/
// component axes in the codestream packet sequence.
type ProgressionOrder int

const (
	// LRCP is layer-resolution-component-position progression.
	LRCP ProgressionOrder = iota
	// RLCP is resolution-layer-component-position progression.
	RLCP
	// RPCL is resolution-position-component-layer progression.
	RPCL
	// PCRL is position-component-resolution-layer progression.
	PCRL
	// CPRL is component-position-resolution-layer progression.
	CPRL
)

var progressionNames = [...]string{"LRCP", "RLCP", "RPCL", "PCRL", "CPRL"}

// String returns the four-letter progression code.
func (p ProgressionOrder) String() string {
	if !p.valid() {
		return "UNKNOWN"
	}
	return progressionNames[p]
}

func (p ProgressionOrder) valid() bool {
	return p >= LRCP && p <= CPRL
}
