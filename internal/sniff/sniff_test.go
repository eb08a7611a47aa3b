package sniff

import (
	"bytes"
	"testing"
)

func TestClassifyShortBuffers(t *testing.T) {
	inputs := [][]byte{nil, {}, {0xFF}, {0xFF, 0xD8}}
	for _, in := range inputs {
		if got := Classify(in); got != FormatUnknown {
			t.Fatalf("expected UNKNOWN for %d-byte buffer, got %s", len(in), got)
		}
	}
}

func TestClassifyJPEG(t *testing.T) {
	// Any trailer after the SOI marker still classifies as JPEG.
	payloads := [][]byte{
		{0xFF, 0xD8, 0xFF},
		{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'},
		append([]byte{0xFF, 0xD8, 0xFF}, bytes.Repeat([]byte{0x00}, 64)...),
	}
	for _, p := range payloads {
		if got := Classify(p); got != FormatJPEG {
			t.Fatalf("expected JPEG, got %s", got)
		}
	}
}

func TestClassifyPNG(t *testing.T) {
	payload := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte("arbitrary trailer")...)
	if got := Classify(payload); got != FormatPNG {
		t.Fatalf("expected PNG, got %s", got)
	}

	// A truncated signature must not classify.
	if got := Classify([]byte{0x89, 0x50, 0x4E, 0x47}); got != FormatUnknown {
		t.Fatalf("expected UNKNOWN for truncated PNG signature, got %s", got)
	}
}

func TestClassifyWEBP(t *testing.T) {
	payload := []byte("RIFF\x24\x00\x00\x00WEBPVP8 ")
	if got := Classify(payload); got != FormatWEBP {
		t.Fatalf("expected WEBP, got %s", got)
	}
}

func TestClassifyRIFFWithoutWEBPFormType(t *testing.T) {
	// A RIFF container holding something else (e.g. WAVE audio) is not WEBP.
	payload := []byte("RIFF\x24\x00\x00\x00WAVEfmt ")
	if got := Classify(payload); got != FormatUnknown {
		t.Fatalf("expected UNKNOWN for non-WEBP RIFF, got %s", got)
	}

	// "RIFF" alone, shorter than 12 bytes, must not index out of range.
	if got := Classify([]byte("RIFF")); got != FormatUnknown {
		t.Fatalf("expected UNKNOWN for bare RIFF header, got %s", got)
	}
}

func TestClassifyPlainText(t *testing.T) {
	if got := Classify([]byte("this is definitely not an image")); got != FormatUnknown {
		t.Fatalf("expected UNKNOWN for plain text, got %s", got)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0x01, 0x02, 0x03}
	first := Classify(payload)
	second := Classify(payload)
	if first != second {
		t.Fatalf("classification not deterministic: %s vs %s", first, second)
	}
	if !bytes.Equal(payload, []byte{0xFF, 0xD8, 0xFF, 0x01, 0x02, 0x03}) {
		t.Fatalf("Classify mutated its input")
	}
}

func TestFormatContentType(t *testing.T) {
	cases := map[Format]string{
		FormatJPEG:    "image/jpeg",
		FormatPNG:     "image/png",
		FormatWEBP:    "image/webp",
		FormatUnknown: "",
	}
	for format, want := range cases {
		if got := format.ContentType(); got != want {
			t.Fatalf("ContentType(%s) = %q, want %q", format, got, want)
		}
	}
}
