package avatar

import (
	"strings"
	"testing"

	"github.com/pborkovic/bunkermuseum-members/internal/sniff"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func minimalPNG() []byte {
	return append(append([]byte{}, pngSignature...), []byte("trailer bytes")...)
}

func TestValidateRejectsEmptyPayload(t *testing.T) {
	verdict := Validate(nil, "image/png", 0, DefaultPolicy())
	if verdict.Valid {
		t.Fatalf("expected rejection of empty payload")
	}
	if verdict.Reason != "File is empty or null" {
		t.Fatalf("unexpected reason: %q", verdict.Reason)
	}
}

func TestValidateRejectsSpoofedContentType(t *testing.T) {
	// Declared as PNG but the bytes are plain text. The declared type is
	// attacker-controlled; the magic-byte check must catch this.
	data := []byte("#!/bin/sh\necho not an image")
	verdict := Validate(data, "image/png", int64(len(data)), DefaultPolicy())

	if verdict.Valid {
		t.Fatalf("expected spoofed upload to be rejected")
	}
	if !strings.Contains(verdict.Reason, "does not match any supported image format") {
		t.Fatalf("unexpected reason: %q", verdict.Reason)
	}
	if verdict.Format != sniff.FormatUnknown {
		t.Fatalf("expected UNKNOWN format, got %s", verdict.Format)
	}
}

func TestValidateAcceptsMinimalPNG(t *testing.T) {
	data := minimalPNG()
	verdict := Validate(data, "image/png", int64(len(data)), DefaultPolicy())

	if !verdict.Valid {
		t.Fatalf("expected acceptance, got reason %q", verdict.Reason)
	}
	if verdict.Format != sniff.FormatPNG {
		t.Fatalf("expected PNG format, got %s", verdict.Format)
	}
	if !strings.Contains(verdict.Reason, "PNG") {
		t.Fatalf("expected reason to name the format, got %q", verdict.Reason)
	}
}

func TestValidateSizeBoundaryIsInclusive(t *testing.T) {
	policy := Policy{MaxBytes: 64, AllowedTypes: []string{"image/png"}}
	data := minimalPNG()

	atLimit := Validate(data, "image/png", 64, policy)
	if !atLimit.Valid {
		t.Fatalf("expected file exactly at the limit to be accepted, got %q", atLimit.Reason)
	}

	overLimit := Validate(data, "image/png", 65, policy)
	if overLimit.Valid {
		t.Fatalf("expected file one byte over the limit to be rejected")
	}
	if !strings.Contains(overLimit.Reason, "64") {
		t.Fatalf("expected reason to state the limit, got %q", overLimit.Reason)
	}
}

func TestValidateRejectsDisallowedDeclaredType(t *testing.T) {
	data := minimalPNG()
	verdict := Validate(data, "application/pdf", int64(len(data)), DefaultPolicy())

	if verdict.Valid {
		t.Fatalf("expected disallowed declared type to be rejected")
	}
	if !strings.Contains(verdict.Reason, "Invalid file type") {
		t.Fatalf("unexpected reason: %q", verdict.Reason)
	}
}

func TestValidateDeclaredTypeIsCaseInsensitive(t *testing.T) {
	data := minimalPNG()
	verdict := Validate(data, "IMAGE/PNG", int64(len(data)), DefaultPolicy())
	if !verdict.Valid {
		t.Fatalf("expected case-insensitive type match, got %q", verdict.Reason)
	}
}

func TestValidateAcceptsJPEG(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	verdict := Validate(data, "image/jpeg", int64(len(data)), DefaultPolicy())

	if !verdict.Valid {
		t.Fatalf("expected JPEG acceptance, got %q", verdict.Reason)
	}
	if verdict.Format != sniff.FormatJPEG {
		t.Fatalf("expected JPEG format, got %s", verdict.Format)
	}
}
