package htj2k

import (
	"bytes"
	"errors"
	"testing"

	"github.com/osamu620/kakadujs/codec"
	"github.com/osamu620/kakadujs/engine/enginetest"
)

func TestCodecName(t *testing.T) {
	eng := enginetest.New()
	tests := []struct {
		name  string
		codec *Codec
		want  string
	}{
		{
			name:  "Lossless",
			codec: NewLosslessCodec(eng),
			want:  "HTJ2K Lossless",
		},
		{
			name:  "Lossless RPCL",
			codec: NewLosslessRPCLCodec(eng),
			want:  "HTJ2K Lossless RPCL",
		},
		{
			name:  "Lossy Qfactor 85",
			codec: NewLossyCodec(eng, 85),
			want:  "HTJ2K (Qfactor 85)",
		},
		{
			name:  "Lossy Qfactor 50",
			codec: NewLossyCodec(eng, 50),
			want:  "HTJ2K (Qfactor 50)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.codec.Name(); got != tt.want {
				t.Errorf("Name() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodecUID(t *testing.T) {
	eng := enginetest.New()
	tests := []struct {
		codec *Codec
		want  string
	}{
		{NewLosslessCodec(eng), UIDLossless},
		{NewLosslessRPCLCodec(eng), UIDLosslessRPCL},
		{NewLossyCodec(eng, 85), UIDLossy},
	}

	for _, tt := range tests {
		if got := tt.codec.UID(); got != tt.want {
			t.Errorf("%s UID() = %q, want %q", tt.codec.Name(), got, tt.want)
		}
	}
}

func TestCodecEncodeLossless(t *testing.T) {
	eng := enginetest.New()
	c := NewLosslessCodec(eng)

	width, height := 8, 8
	pixelData := make([]byte, width*height)
	for i := range pixelData {
		pixelData[i] = byte((i * 3) % 256)
	}

	encoded, err := c.Encode(codec.EncodeParams{
		PixelData:  pixelData,
		Width:      width,
		Height:     height,
		Components: 1,
		BitDepth:   8,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(encoded) == 0 {
		t.Fatal("Encode produced no output")
	}

	dec, err := enginetest.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(dec.Samples, pixelData) {
		t.Error("recovered samples differ from source")
	}
	for _, d := range dec.Directives {
		if d == "Creversible=no" {
			t.Error("lossless profile emitted irreversible transform")
		}
	}
}

func TestCodecEncodeLossyOptions(t *testing.T) {
	eng := enginetest.New()
	c := NewLossyCodec(eng, 85)

	params := codec.EncodeParams{
		PixelData:  make([]byte, 16),
		Width:      4,
		Height:     4,
		Components: 1,
		BitDepth:   8,
		Options:    &codec.BaseOptions{Qfactor: 30},
	}
	encoded, err := c.Encode(params)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	dec, err := enginetest.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	found := false
	for _, d := range dec.Directives {
		if d == "Qfactor=30" {
			found = true
		}
	}
	if !found {
		t.Errorf("directives %v missing Qfactor=30 from options", dec.Directives)
	}
}

func TestCodecEncodeRejectsInvalidOptions(t *testing.T) {
	c := NewLossyCodec(enginetest.New(), 85)

	_, err := c.Encode(codec.EncodeParams{
		PixelData:  make([]byte, 16),
		Width:      4,
		Height:     4,
		Components: 1,
		BitDepth:   8,
		Options:    &codec.BaseOptions{Qfactor: 101},
	})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Encode error = %v, want ErrInvalidConfiguration", err)
	}
	if !errors.Is(err, codec.ErrInvalidQfactor) {
		t.Errorf("Encode error = %v, want wrapped ErrInvalidQfactor", err)
	}
}
