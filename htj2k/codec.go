package htj2k

import (
	"fmt"

	"github.com/osamu620/kakadujs/codec"
	"github.com/osamu620/kakadujs/engine"
)

var _ codec.Encoder = (*Codec)(nil)

// DICOM Transfer Syntax UIDs for HTJ2K codestreams.
// Reference: ITU-T T.814 | ISO/IEC 15444-15
const (
	// UIDLossless - HTJ2K Lossless Only
	UIDLossless = "1.2.840.10008.1.2.4.201"

	// UIDLosslessRPCL - HTJ2K with RPCL Options (Lossless Only)
	UIDLosslessRPCL = "1.2.840.10008.1.2.4.202"

	// UIDLossy - HTJ2K (lossy permitted)
	UIDLossy = "1.2.840.10008.1.2.4.203"
)

// Codec is a registry-facing encoder profile. Each Encode call runs a
// fresh session against the shared engine, so a Codec is safe for
// concurrent use as long as the engine is.
type Codec struct {
	eng      engine.Engine
	uid      string
	lossless bool
	qfactor  int
}

// NewLosslessCodec creates the HTJ2K lossless profile.
func NewLosslessCodec(eng engine.Engine) *Codec {
	return &Codec{eng: eng, uid: UIDLossless, lossless: true}
}

// NewLosslessRPCLCodec creates the HTJ2K lossless RPCL profile. RPCL
// progression is already the session default, so the profile differs
// from NewLosslessCodec only in identity.
func NewLosslessRPCLCodec(eng engine.Engine) *Codec {
	return &Codec{eng: eng, uid: UIDLosslessRPCL, lossless: true}
}

// NewLossyCodec creates the HTJ2K lossy profile with the given
// qfactor. Out-of-range qfactors are clamped by the session.
func NewLossyCodec(eng engine.Engine, qfactor int) *Codec {
	return &Codec{eng: eng, uid: UIDLossy, qfactor: qfactor}
}

// Name returns the codec name
func (c *Codec) Name() string {
	switch {
	case c.uid == UIDLosslessRPCL:
		return "HTJ2K Lossless RPCL"
	case c.lossless:
		return "HTJ2K Lossless"
	default:
		return fmt.Sprintf("HTJ2K (Qfactor %d)", c.qfactor)
	}
}

// UID returns the DICOM transfer syntax UID of the profile
func (c *Codec) UID() string {
	return c.uid
}

// Encode encodes one frame of pixel data to an HTJ2K codestream
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	qfactor := c.qfactor
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		if base, ok := params.Options.(*codec.BaseOptions); ok {
			qfactor = base.Qfactor
		}
	}

	enc := NewEncoder(c.eng)
	enc.SetQuality(c.lossless, -1)
	if !c.lossless {
		enc.SetQfactor(qfactor)
	}
	enc.SetFrameInfo(FrameInfo{
		Width:          params.Width,
		Height:         params.Height,
		ComponentCount: params.Components,
		BitsPerSample:  params.BitDepth,
		IsSigned:       params.Signed,
	})
	enc.SetSourceImage(params.PixelData)

	if err := enc.Encode(); err != nil {
		return nil, err
	}
	// Copy out: the session buffer is reused across encodes.
	return append([]byte(nil), enc.EncodedBytes()...), nil
}

// RegisterCodecs registers the three HTJ2K profiles with the global
// encoder registry, bound to the given engine.
func RegisterCodecs(eng engine.Engine) {
	codec.Register(NewLosslessCodec(eng))
	codec.Register(NewLosslessRPCLCodec(eng))
	codec.Register(NewLossyCodec(eng, 85))
}
