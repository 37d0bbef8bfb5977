package image

import (
	"encoding/base64"
	"errors"
	"testing"
)

// 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

func TestDecodeDataURI(t *testing.T) {
	img, err := DecodeDataURI(pngDataURI())
	if err != nil {
		t.Fatalf("DecodeDataURI() returned unexpected error: %v", err)
	}

	if img.MimeType != "image/png" {
		t.Errorf("expected MimeType image/png, got %q", img.MimeType)
	}
	if img.Suffix != ".png" {
		t.Errorf("expected Suffix .png, got %q", img.Suffix)
	}
	if img.Size != int64(len(pngBytes)) {
		t.Errorf("expected Size %d, got %d", len(pngBytes), img.Size)
	}
	if len(img.Data) != len(pngBytes) {
		t.Errorf("expected %d data bytes, got %d", len(pngBytes), len(img.Data))
	}
}

func TestDecodeDataURIErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "missing data prefix",
			input:    "image/png;base64,abcd",
			expected: ErrNotDataURI,
		},
		{
			name:     "missing base64 marker",
			input:    "data:image/png,abcd",
			expected: ErrNotDataURI,
		},
		{
			name:     "declared image but payload is text",
			input:    "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("plain text")),
			expected: ErrUnsupportedMimeType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDataURI(tt.input)
			if !errors.Is(err, tt.expected) {
				t.Fatalf("DecodeDataURI() = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestDecodeDataURIInvalidBase64(t *testing.T) {
	if _, err := DecodeDataURI("data:image/png;base64,!!not-base64!!"); err == nil {
		t.Fatal("expected an error for invalid base64 payload")
	}
}

func TestDecodeDataURIIgnoresDeclaredType(t *testing.T) {
	// The declared jpeg prefix is irrelevant; the decoded bytes are PNG.
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	img, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("DecodeDataURI() returned unexpected error: %v", err)
	}
	if img.MimeType != "image/png" {
		t.Errorf("expected sniffed MimeType image/png, got %q", img.MimeType)
	}
}
