package htj2k

import (
	"fmt"
	"strings"

	"github.com/osamu620/kakadujs/engine"
)

// config holds the settable coding knobs of an encoder session,
// independent of any frame or source buffer.
type config struct {
	decompositions   int
	lossless         bool
	quantizationStep float32
	qfactor          int
	progressionOrder ProgressionOrder
	blockDimensions  Size
	htEnabled        bool
	precincts        []Size
	extraWorkers     int
}

func defaultConfig() config {
	return config{
		decompositions:   5,
		lossless:         true,
		quantizationStep: -1, // unset: derive lossy behavior from qfactor
		qfactor:          85,
		progressionOrder: RPCL,
		blockDimensions:  Size{Width: 64, Height: 64},
		htEnabled:        true,
		extraWorkers:     2,
	}
}

// codestreamGeometry maps fi to the engine's geometry description.
// Sample dimensions are given height first per the engine axis
// convention.
func codestreamGeometry(fi FrameInfo) engine.Geometry {
	return engine.Geometry{
		Components: fi.ComponentCount,
		Dims:       [2]int{fi.Height, fi.Width},
		Precision:  fi.BitsPerSample,
		Signed:     fi.IsSigned,
	}
}

// codingDirectives returns the coding directives for cfg in the order
// the engine requires: HT mode before quality, quality before
// progression, then decomposition levels, block dimensions and
// precincts. The caller locks the coding defaults afterwards; nothing
// may follow that.
func codingDirectives(cfg config) []string {
	d := make([]string, 0, 7)
	if cfg.htEnabled {
		d = append(d, "Cmodes=HT")
	}
	if cfg.lossless {
		d = append(d, "Creversible=yes")
	} else {
		// The quantization step is a reserved extension point and is
		// never emitted; lossy quality rides on the qfactor alone.
		d = append(d, "Creversible=no", fmt.Sprintf("Qfactor=%d", cfg.qfactor))
	}
	d = append(d, "Corder="+cfg.progressionOrder.String())
	d = append(d, fmt.Sprintf("Clevels=%d", cfg.decompositions))
	d = append(d, fmt.Sprintf("Cblk={%d,%d}", cfg.blockDimensions.Height, cfg.blockDimensions.Width))
	if len(cfg.precincts) > 0 {
		pairs := make([]string, len(cfg.precincts))
		for i, p := range cfg.precincts {
			pairs[i] = fmt.Sprintf("{%d,%d}", p.Height, p.Width)
		}
		d = append(d, "Cprecincts="+strings.Join(pairs, ","))
	}
	return d
}
