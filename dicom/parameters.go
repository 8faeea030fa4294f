package dicom

import "github.com/cocosip/go-dicom/pkg/imaging/codec"

// Ensure Parameters implements codec.Parameters
var _ codec.Parameters = (*Parameters)(nil)

// Parameters contains parameters for HTJ2K encoding.
type Parameters struct {
	// Lossless selects the reversible wavelet transform. When false,
	// quality is driven by Qfactor.
	Lossless bool

	// QuantizationStep is reserved for explicit lossy quantization.
	// Negative (the default) means unset; lossy encodes derive their
	// quality from Qfactor instead.
	QuantizationStep float64

	// Qfactor is the lossy quality factor (0-100, higher is better).
	// Ignored when Lossless is true. Default: 85.
	Qfactor int

	// Decompositions is the number of wavelet decomposition levels.
	// Default: 5.
	Decompositions int

	// BlockWidth specifies the code-block width. Default: 64.
	BlockWidth int

	// BlockHeight specifies the code-block height. Default: 64.
	BlockHeight int

	// ProgressionOrder selects the packet progression
	// (0=LRCP, 1=RLCP, 2=RPCL, 3=PCRL, 4=CPRL). Default: 2 (RPCL).
	ProgressionOrder int

	// HTEnabled toggles the high-throughput block-coding mode.
	// Default: true.
	HTEnabled bool

	// ExtraWorkers is the number of engine workers requested in
	// addition to the calling goroutine. Default: 2.
	ExtraWorkers int

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewParameters creates default Parameters for lossless HTJ2K encoding.
func NewParameters() *Parameters {
	return &Parameters{
		Lossless:         true,
		QuantizationStep: -1,
		Qfactor:          85,
		Decompositions:   5,
		BlockWidth:       64,
		BlockHeight:      64,
		ProgressionOrder: 2, // RPCL
		HTEnabled:        true,
		ExtraWorkers:     2,
		params:           make(map[string]interface{}),
	}
}

// NewLossyParameters creates Parameters for lossy HTJ2K encoding with
// the given qfactor.
func NewLossyParameters(qfactor int) *Parameters {
	p := NewParameters()
	p.Lossless = false
	p.Qfactor = qfactor
	return p
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *Parameters) GetParameter(name string) interface{} {
	switch name {
	case "lossless":
		return p.Lossless
	case "quantizationStep":
		return p.QuantizationStep
	case "qfactor":
		return p.Qfactor
	case "decompositions":
		return p.Decompositions
	case "blockWidth":
		return p.BlockWidth
	case "blockHeight":
		return p.BlockHeight
	case "progressionOrder":
		return p.ProgressionOrder
	case "htEnabled":
		return p.HTEnabled
	case "extraWorkers":
		return p.ExtraWorkers
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *Parameters) SetParameter(name string, value interface{}) {
	switch name {
	case "lossless":
		if v, ok := value.(bool); ok {
			p.Lossless = v
		}
	case "quantizationStep":
		switch v := value.(type) {
		case float64:
			p.QuantizationStep = v
		case float32:
			p.QuantizationStep = float64(v)
		}
	case "qfactor":
		if v, ok := value.(int); ok {
			p.Qfactor = v
		}
	case "decompositions":
		if v, ok := value.(int); ok {
			p.Decompositions = v
		}
	case "blockWidth":
		if v, ok := value.(int); ok {
			p.BlockWidth = v
		}
	case "blockHeight":
		if v, ok := value.(int); ok {
			p.BlockHeight = v
		}
	case "progressionOrder":
		if v, ok := value.(int); ok {
			p.ProgressionOrder = v
		}
	case "htEnabled":
		if v, ok := value.(bool); ok {
			p.HTEnabled = v
		}
	case "extraWorkers":
		if v, ok := value.(int); ok {
			p.ExtraWorkers = v
		}
	default:
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid and normalizes values.
// The progression order is left untouched: the encoder session rejects
// unknown ordinals instead of silently substituting a default.
func (p *Parameters) Validate() error {
	if p.Qfactor < 0 {
		p.Qfactor = 0
	} else if p.Qfactor > 100 {
		p.Qfactor = 100
	}
	if p.Decompositions < 0 {
		p.Decompositions = 0
	}
	if p.BlockWidth <= 0 {
		p.BlockWidth = 64
	}
	if p.BlockHeight <= 0 {
		p.BlockHeight = 64
	}
	if p.ExtraWorkers < 0 {
		p.ExtraWorkers = 0
	}
	return nil
}

// WithLossless sets the lossless flag and returns the parameters for chaining.
func (p *Parameters) WithLossless(lossless bool) *Parameters {
	p.Lossless = lossless
	return p
}

// WithQfactor sets the qfactor and returns the parameters for chaining.
func (p *Parameters) WithQfactor(qfactor int) *Parameters {
	p.Qfactor = qfactor
	return p
}

// WithDecompositions sets the decomposition level count and returns
// the parameters for chaining.
func (p *Parameters) WithDecompositions(n int) *Parameters {
	p.Decompositions = n
	return p
}

// WithBlockSize sets both block dimensions and returns the parameters
// for chaining.
func (p *Parameters) WithBlockSize(width, height int) *Parameters {
	p.BlockWidth = width
	p.BlockHeight = height
	return p
}

// WithProgressionOrder sets the progression order ordinal and returns
// the parameters for chaining.
func (p *Parameters) WithProgressionOrder(order int) *Parameters {
	p.ProgressionOrder = order
	return p
}

// WithHTEnabled sets the HT block-coding toggle and returns the
// parameters for chaining.
func (p *Parameters) WithHTEnabled(enabled bool) *Parameters {
	p.HTEnabled = enabled
	return p
}

// WithExtraWorkers sets the requested engine worker count and returns
// the parameters for chaining.
func (p *Parameters) WithExtraWorkers(n int) *Parameters {
	p.ExtraWorkers = n
	return p
}
