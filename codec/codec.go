// Package codec defines a small registry surface for codestream
// encoders, keyed by name or transfer syntax UID.
package codec

// Encoder is the universal interface for codestream encoders
type Encoder interface {
	// Encode encodes one frame of pixel data
	Encode(params EncodeParams) ([]byte, error)

	// UID returns the unique identifier (typically DICOM Transfer Syntax UID)
	UID() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData  []byte  // Raw interleaved pixel data
	Width      int     // Image width
	Height     int     // Image height
	Components int     // Number of color components (1=grayscale, 3=RGB)
	BitDepth   int     // Bits per sample (8, 12, 16, etc.)
	Signed     bool    // Whether samples are signed
	Options    Options // Codec-specific options
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// BaseOptions provides common options for all encoders
type BaseOptions struct {
	// Qfactor for lossy encoders (0-100, higher is better)
	// Not used for lossless encoders
	Qfactor int
}

// Validate validates base options
func (o *BaseOptions) Validate() error {
	if o.Qfactor < 0 || o.Qfactor > 100 {
		return ErrInvalidQfactor
	}
	return nil
}
