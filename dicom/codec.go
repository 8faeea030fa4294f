// Package dicom adapts the HTJ2K encoder to the go-dicom imaging
// codec interface, registering it under the HTJ2K transfer syntaxes.
package dicom

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/osamu620/kakadujs/engine"
	"github.com/osamu620/kakadujs/htj2k"
)

var _ codec.Codec = (*Codec)(nil)

// Codec implements the HTJ2K (High-Throughput JPEG 2000) codec over an
// injected engine.
//
// Supported Transfer Syntaxes:
// - 1.2.840.10008.1.2.4.201: HTJ2K Lossless
// - 1.2.840.10008.1.2.4.202: HTJ2K Lossless RPCL
// - 1.2.840.10008.1.2.4.203: HTJ2K (Lossy)
type Codec struct {
	eng            engine.Engine
	transferSyntax *transfer.Syntax
	lossless       bool
	forceRPCL      bool
	qfactor        int
}

// NewLosslessCodec creates a new HTJ2K lossless codec.
func NewLosslessCodec(eng engine.Engine) *Codec {
	return &Codec{
		eng:            eng,
		transferSyntax: transfer.HTJ2KLossless,
		lossless:       true,
	}
}

// NewLosslessRPCLCodec creates a new HTJ2K lossless codec that pins the
// progression order to RPCL, as its transfer syntax requires.
func NewLosslessRPCLCodec(eng engine.Engine) *Codec {
	return &Codec{
		eng:            eng,
		transferSyntax: transfer.HTJ2KLosslessRPCL,
		lossless:       true,
		forceRPCL:      true,
	}
}

// NewCodec creates a new HTJ2K lossy codec with the specified qfactor.
func NewCodec(eng engine.Engine, qfactor int) *Codec {
	if qfactor < 0 || qfactor > 100 {
		qfactor = 85
	}
	return &Codec{
		eng:            eng,
		transferSyntax: transfer.HTJ2K,
		qfactor:        qfactor,
	}
}

// Name returns the codec name
func (c *Codec) Name() string {
	if c.lossless {
		if c.forceRPCL {
			return "HTJ2K Lossless RPCL"
		}
		return "HTJ2K Lossless"
	}
	return fmt.Sprintf("HTJ2K (Qfactor %d)", c.qfactor)
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *Codec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *Codec) GetDefaultParameters() codec.Parameters {
	if c.lossless {
		return NewParameters()
	}
	return NewLossyParameters(c.qfactor)
}

// Encode encodes pixel data to HTJ2K format, one codestream per frame.
func (c *Codec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}
	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}

	params := c.extractParameters(parameters)
	params.Validate()

	enc, err := c.newSession(params)
	if err != nil {
		return err
	}
	enc.SetFrameInfo(htj2k.FrameInfo{
		Width:          int(frameInfo.Width),
		Height:         int(frameInfo.Height),
		ComponentCount: int(frameInfo.SamplesPerPixel),
		BitsPerSample:  int(frameInfo.BitsStored),
		IsSigned:       frameInfo.PixelRepresentation != 0,
	})

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		enc.SetSourceImage(frameData)
		if err := enc.Encode(); err != nil {
			return fmt.Errorf("HTJ2K encode failed for frame %d: %w", frameIndex, err)
		}

		// Copy out: the session reuses its output buffer per frame.
		encoded := append([]byte(nil), enc.EncodedBytes()...)
		if err := newPixelData.AddFrame(encoded); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}
	return nil
}

// Decode is not supported: this module is encode-only.
func (c *Codec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, _ codec.Parameters) error {
	return fmt.Errorf("htj2k: decoding not supported (%s is an encode-only codec)", c.Name())
}

// newSession builds a configured encoder session from params.
func (c *Codec) newSession(params *Parameters) (*htj2k.Encoder, error) {
	enc := htj2k.NewEncoder(c.eng)

	lossless := params.Lossless
	if c.lossless {
		lossless = true
	}
	enc.SetQuality(lossless, float32(params.QuantizationStep))
	enc.SetQfactor(params.Qfactor)
	enc.SetDecompositions(params.Decompositions)
	enc.SetBlockDimensions(htj2k.Size{Width: params.BlockWidth, Height: params.BlockHeight})
	enc.SetHTEnabled(params.HTEnabled)
	enc.SetExtraWorkers(params.ExtraWorkers)

	order := htj2k.ProgressionOrder(params.ProgressionOrder)
	if c.forceRPCL {
		order = htj2k.RPCL
	}
	if err := enc.SetProgressionOrder(order); err != nil {
		return nil, err
	}
	return enc, nil
}

// extractParameters resolves typed, generic or absent parameters into
// a Parameters value.
func (c *Codec) extractParameters(parameters codec.Parameters) *Parameters {
	if parameters == nil {
		p := c.GetDefaultParameters().(*Parameters)
		return p
	}
	if hp, ok := parameters.(*Parameters); ok {
		return hp
	}

	// Fallback: create from generic parameters
	p := c.GetDefaultParameters().(*Parameters)
	if v := parameters.GetParameter("lossless"); v != nil {
		if b, ok := v.(bool); ok {
			p.Lossless = b
		}
	}
	if v := parameters.GetParameter("qfactor"); v != nil {
		if n, ok := v.(int); ok {
			p.Qfactor = n
		}
	}
	if v := parameters.GetParameter("decompositions"); v != nil {
		if n, ok := v.(int); ok {
			p.Decompositions = n
		}
	}
	if v := parameters.GetParameter("blockWidth"); v != nil {
		if n, ok := v.(int); ok {
			p.BlockWidth = n
		}
	}
	if v := parameters.GetParameter("blockHeight"); v != nil {
		if n, ok := v.(int); ok {
			p.BlockHeight = n
		}
	}
	if v := parameters.GetParameter("progressionOrder"); v != nil {
		if n, ok := v.(int); ok {
			p.ProgressionOrder = n
		}
	}
	if v := parameters.GetParameter("htEnabled"); v != nil {
		if b, ok := v.(bool); ok {
			p.HTEnabled = b
		}
	}
	if v := parameters.GetParameter("extraWorkers"); v != nil {
		if n, ok := v.(int); ok {
			p.ExtraWorkers = n
		}
	}
	return p
}

// RegisterHTJ2KCodecs registers all HTJ2K codecs with the global
// go-dicom registry, bound to the given engine. There is no init()
// registration because the engine is an injected collaborator.
func RegisterHTJ2KCodecs(eng engine.Engine) {
	registry := codec.GetGlobalRegistry()

	registry.RegisterCodec(transfer.HTJ2KLossless, NewLosslessCodec(eng))
	registry.RegisterCodec(transfer.HTJ2KLosslessRPCL, NewLosslessRPCLCodec(eng))
	registry.RegisterCodec(transfer.HTJ2K, NewCodec(eng, 85))
}
