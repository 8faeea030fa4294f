package codec_test

import (
	"errors"
	"testing"

	"github.com/osamu620/kakadujs/codec"
	"github.com/osamu620/kakadujs/engine/enginetest"
	"github.com/osamu620/kakadujs/htj2k"
)

func registerAll(t *testing.T) {
	t.Helper()
	htj2k.RegisterCodecs(enginetest.New())
}

func TestEncoderRegistry(t *testing.T) {
	registerAll(t)

	tests := []struct {
		name      string
		key       string
		wantFound bool
		wantUID   string
		wantName  string
	}{
		{
			name:      "Get lossless by UID",
			key:       "1.2.840.10008.1.2.4.201",
			wantFound: true,
			wantUID:   "1.2.840.10008.1.2.4.201",
			wantName:  "HTJ2K Lossless",
		},
		{
			name:      "Get lossless by name",
			key:       "HTJ2K Lossless",
			wantFound: true,
			wantUID:   "1.2.840.10008.1.2.4.201",
			wantName:  "HTJ2K Lossless",
		},
		{
			name:      "Get lossless RPCL by UID",
			key:       "1.2.840.10008.1.2.4.202",
			wantFound: true,
			wantUID:   "1.2.840.10008.1.2.4.202",
			wantName:  "HTJ2K Lossless RPCL",
		},
		{
			name:      "Get lossy by UID",
			key:       "1.2.840.10008.1.2.4.203",
			wantFound: true,
			wantUID:   "1.2.840.10008.1.2.4.203",
			wantName:  "HTJ2K (Qfactor 85)",
		},
		{
			name:      "Get non-existent encoder",
			key:       "non-existent",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := codec.Get(tt.key)

			if tt.wantFound {
				if err != nil {
					t.Errorf("Get(%q) unexpected error: %v", tt.key, err)
					return
				}
				if enc == nil {
					t.Errorf("Get(%q) returned nil encoder", tt.key)
					return
				}
				if enc.UID() != tt.wantUID {
					t.Errorf("Get(%q).UID() = %q, want %q", tt.key, enc.UID(), tt.wantUID)
				}
				if enc.Name() != tt.wantName {
					t.Errorf("Get(%q).Name() = %q, want %q", tt.key, enc.Name(), tt.wantName)
				}
			} else {
				if err == nil {
					t.Errorf("Get(%q) expected error, got nil", tt.key)
				}
				if !errors.Is(err, codec.ErrEncoderNotFound) {
					t.Errorf("Get(%q) error = %v, want %v", tt.key, err, codec.ErrEncoderNotFound)
				}
			}
		})
	}
}

func TestListEncoders(t *testing.T) {
	registerAll(t)

	encoders := codec.List()
	if len(encoders) < 3 {
		t.Errorf("List() returned %d encoders, want at least 3", len(encoders))
	}

	found := make(map[string]bool)
	for _, enc := range encoders {
		found[enc.UID()] = true
	}
	for _, uid := range []string{htj2k.UIDLossless, htj2k.UIDLosslessRPCL, htj2k.UIDLossy} {
		if !found[uid] {
			t.Errorf("List() did not include encoder %s", uid)
		}
	}
}

func TestRegisteredEncoderEncodes(t *testing.T) {
	registerAll(t)

	enc, err := codec.Get(htj2k.UIDLossless)
	if err != nil {
		t.Fatalf("Failed to get lossless encoder: %v", err)
	}

	width, height := 16, 16
	pixelData := make([]byte, width*height)
	for i := range pixelData {
		pixelData[i] = byte((i * 7) % 256)
	}

	compressed, err := enc.Encode(codec.EncodeParams{
		PixelData:  pixelData,
		Width:      width,
		Height:     height,
		Components: 1,
		BitDepth:   8,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(compressed) == 0 {
		t.Fatal("Encode produced no output")
	}
	t.Logf("Compressed size: %d bytes", len(compressed))
}

func TestBaseOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		qfactor int
		wantErr bool
	}{
		{"minimum", 0, false},
		{"typical", 85, false},
		{"maximum", 100, false},
		{"negative", -1, true},
		{"too large", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &codec.BaseOptions{Qfactor: tt.qfactor}
			err := opts.Validate()
			if tt.wantErr && !errors.Is(err, codec.ErrInvalidQfactor) {
				t.Errorf("Validate() = %v, want ErrInvalidQfactor", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}
