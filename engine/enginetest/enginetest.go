// Package enginetest provides a deterministic in-memory codec engine
// for testing encode orchestration. It performs no real compression:
// the "codestream" it emits is the geometry, the applied directives
// and the raw samples wrapped in JPEG 2000 style markers, so tests can
// verify directive plumbing and recover the pushed samples exactly.
package enginetest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/osamu620/kakadujs/engine"
)

var _ engine.Engine = (*Engine)(nil)

// Marker bytes framing the synthetic stream.
const (
	markerSOC uint16 = 0xFF4F // start of codestream
	markerSIZ uint16 = 0xFF51 // geometry
	markerCOD uint16 = 0xFF52 // directive list
	markerSOD uint16 = 0xFF93 // start of sample data
	markerEOC uint16 = 0xFFD9 // end of codestream
)

// directiveKeys is the closed set of coding parameters the fake engine
// understands.
var directiveKeys = map[string]bool{
	"Cmodes":      true,
	"Creversible": true,
	"Qfactor":     true,
	"Corder":      true,
	"Clevels":     true,
	"Cblk":        true,
	"Cprecincts":  true,
}

var progressionCodes = map[string]bool{
	"LRCP": true, "RLCP": true, "RPCL": true, "PCRL": true, "CPRL": true,
}

// Engine is an in-memory stand-in for a real HTJ2K codec engine.
// The zero value is ready to use; the Fail* fields inject failures
// for error-path tests.
type Engine struct {
	// FailDirective makes ParseDirective fail for any directive
	// containing the given substring.
	FailDirective string

	// FailPush makes PushStripe fail with this error.
	FailPush error

	// FailFinish makes Finish fail with this error.
	FailFinish error

	// Codestreams records every codestream created, newest last.
	Codestreams []*Codestream
}

// New returns a fresh fake engine.
func New() *Engine {
	return &Engine{}
}

// NewCodestream validates geom and binds a recording codestream to tgt.
func (e *Engine) NewCodestream(geom engine.Geometry, tgt engine.Target) (engine.Codestream, error) {
	if geom.Components <= 0 {
		return nil, fmt.Errorf("enginetest: %d components", geom.Components)
	}
	if geom.Height() <= 0 || geom.Width() <= 0 {
		return nil, fmt.Errorf("enginetest: dimensions %dx%d", geom.Width(), geom.Height())
	}
	if geom.Precision < 1 || geom.Precision > 16 {
		return nil, fmt.Errorf("enginetest: precision %d", geom.Precision)
	}
	if tgt.Capabilities()&engine.CapSequential == 0 {
		return nil, errors.New("enginetest: target must support sequential writes")
	}
	cs := &Codestream{eng: e, Geom: geom, tgt: tgt}
	e.Codestreams = append(e.Codestreams, cs)
	return cs, nil
}

// Codestream records directives and writes the synthetic stream.
type Codestream struct {
	eng *Engine
	tgt engine.Target

	// Geom is the locked geometry.
	Geom engine.Geometry

	// Directives lists the applied directives in order.
	Directives []string

	// Finalized reports whether coding defaults were locked.
	Finalized bool

	// Destroyed reports whether the codestream was torn down.
	Destroyed bool

	// Compressors records every compression session started, newest
	// last.
	Compressors []*Compressor
}

// ParseDirective validates and records one coding directive.
func (c *Codestream) ParseDirective(directive string) error {
	if c.Destroyed {
		return errors.New("enginetest: codestream destroyed")
	}
	if c.Finalized {
		return fmt.Errorf("enginetest: directive %q after finalize", directive)
	}
	if c.eng.FailDirective != "" && strings.Contains(directive, c.eng.FailDirective) {
		return fmt.Errorf("enginetest: injected failure for %q", directive)
	}
	key, value, ok := strings.Cut(directive, "=")
	if !ok || value == "" || !directiveKeys[key] {
		return fmt.Errorf("enginetest: malformed directive %q", directive)
	}
	if key == "Corder" && !progressionCodes[value] {
		return fmt.Errorf("enginetest: unknown progression %q", value)
	}
	c.Directives = append(c.Directives, directive)
	return nil
}

// FinalizeAll locks the coding defaults.
func (c *Codestream) FinalizeAll() error {
	if c.Destroyed {
		return errors.New("enginetest: codestream destroyed")
	}
	c.Finalized = true
	return nil
}

// NewCompressor starts a stripe-push session and writes the stream
// header.
func (c *Codestream) NewCompressor(opts engine.CompressorOptions) (engine.StripeCompressor, error) {
	if c.Destroyed {
		return nil, errors.New("enginetest: codestream destroyed")
	}
	if !c.Finalized {
		return nil, errors.New("enginetest: coding defaults not finalized")
	}
	if opts.ExtraWorkers < 0 {
		return nil, fmt.Errorf("enginetest: %d extra workers", opts.ExtraWorkers)
	}
	comp := &Compressor{cs: c, Opts: opts}
	if err := comp.writeHeader(); err != nil {
		return nil, err
	}
	c.Compressors = append(c.Compressors, comp)
	return comp, nil
}

// Destroy tears the codestream down.
func (c *Codestream) Destroy() error {
	c.Destroyed = true
	return nil
}

// Compressor is the fake stripe compressor.
type Compressor struct {
	cs *Codestream

	// Opts are the options the session was started with.
	Opts engine.CompressorOptions

	// Pushed counts PushStripe calls.
	Pushed int

	finished bool
}

func (p *Compressor) writeHeader() error {
	g := p.cs.Geom
	var hdr []byte
	hdr = binary.BigEndian.AppendUint16(hdr, markerSOC)
	hdr = binary.BigEndian.AppendUint16(hdr, markerSIZ)
	hdr = binary.BigEndian.AppendUint16(hdr, uint16(g.Components))
	hdr = binary.BigEndian.AppendUint16(hdr, uint16(g.Height()))
	hdr = binary.BigEndian.AppendUint16(hdr, uint16(g.Width()))
	hdr = append(hdr, byte(g.Precision))
	if g.Signed {
		hdr = append(hdr, 1)
	} else {
		hdr = append(hdr, 0)
	}
	hdr = binary.BigEndian.AppendUint16(hdr, markerCOD)
	hdr = binary.BigEndian.AppendUint16(hdr, uint16(len(p.cs.Directives)))
	for _, d := range p.cs.Directives {
		hdr = binary.BigEndian.AppendUint16(hdr, uint16(len(d)))
		hdr = append(hdr, d...)
	}
	return p.cs.tgt.Write(hdr)
}

// PushStripe checks the stripe against the locked geometry and writes
// the samples verbatim.
func (p *Compressor) PushStripe(samples []byte, stripeHeights []int) error {
	if p.finished {
		return errors.New("enginetest: push after finish")
	}
	if p.cs.eng.FailPush != nil {
		return p.cs.eng.FailPush
	}
	g := p.cs.Geom
	if len(stripeHeights) != g.Components {
		return fmt.Errorf("enginetest: %d stripe heights for %d components", len(stripeHeights), g.Components)
	}
	for i, h := range stripeHeights {
		if h != stripeHeights[0] {
			return errors.New("enginetest: non-uniform stripe heights")
		}
		if h <= 0 || h > g.Height() {
			return fmt.Errorf("enginetest: stripe height %d for component %d", h, i)
		}
	}
	bytesPerSample := (g.Precision + 7) / 8
	expect := stripeHeights[0] * g.Width() * g.Components * bytesPerSample
	if len(samples) != expect {
		return fmt.Errorf("enginetest: stripe is %d bytes, want %d", len(samples), expect)
	}

	var body []byte
	body = binary.BigEndian.AppendUint16(body, markerSOD)
	body = binary.BigEndian.AppendUint32(body, uint32(len(samples)))
	if err := p.cs.tgt.Write(body); err != nil {
		return err
	}
	if err := p.cs.tgt.Write(samples); err != nil {
		return err
	}
	p.Pushed++
	return nil
}

// Finish writes the end-of-codestream marker.
func (p *Compressor) Finish() error {
	if p.finished {
		return errors.New("enginetest: already finished")
	}
	if p.cs.eng.FailFinish != nil {
		return p.cs.eng.FailFinish
	}
	p.finished = true
	var tail []byte
	tail = binary.BigEndian.AppendUint16(tail, markerEOC)
	return p.cs.tgt.Write(tail)
}

// Decoded holds the contents recovered from a synthetic stream.
type Decoded struct {
	Geom       engine.Geometry
	Directives []string
	Samples    []byte
}

// Decode parses a stream produced by this fake engine, recovering the
// geometry, the directive list and the pushed samples.
func Decode(stream []byte) (*Decoded, error) {
	r := &reader{buf: stream}
	if r.uint16() != markerSOC {
		return nil, errors.New("enginetest: missing SOC marker")
	}
	if r.uint16() != markerSIZ {
		return nil, errors.New("enginetest: missing SIZ marker")
	}
	var d Decoded
	d.Geom.Components = int(r.uint16())
	d.Geom.Dims[0] = int(r.uint16())
	d.Geom.Dims[1] = int(r.uint16())
	d.Geom.Precision = int(r.byte())
	d.Geom.Signed = r.byte() != 0
	if r.uint16() != markerCOD {
		return nil, errors.New("enginetest: missing COD marker")
	}
	n := int(r.uint16())
	for i := 0; i < n; i++ {
		d.Directives = append(d.Directives, string(r.bytes(int(r.uint16()))))
	}
	for {
		switch m := r.uint16(); m {
		case markerSOD:
			d.Samples = append(d.Samples, r.bytes(int(r.uint32()))...)
		case markerEOC:
			if r.err != nil {
				return nil, r.err
			}
			return &d, nil
		default:
			if r.err != nil {
				return nil, r.err
			}
			return nil, fmt.Errorf("enginetest: unexpected marker %#04x", m)
		}
	}
}

type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil || r.off+n > len(r.buf) {
		if r.err == nil {
			r.err = errors.New("enginetest: truncated stream")
		}
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) byte() byte {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) uint16() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *reader) uint32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}
