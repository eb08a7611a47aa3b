// Package sniff classifies image payloads by their leading magic bytes,
// ignoring any client-declared content type or filename.
package sniff

import "bytes"

// Format is the detected image format of a byte payload.
type Format string

const (
	FormatJPEG    Format = "JPEG"
	FormatPNG     Format = "PNG"
	FormatWEBP    Format = "WEBP"
	FormatUnknown Format = "UNKNOWN"
)

// maxSignatureLen bounds how far Classify ever looks into a payload.
const maxSignatureLen = 12

var (
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffSignature = []byte("RIFF")
	webpFormType  = []byte("WEBP")
)

// ContentType returns the MIME type conventionally used for the format,
// or "" when the format is unknown.
func (f Format) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatWEBP:
		return "image/webp"
	default:
		return ""
	}
}

// Classify inspects at most the first 12 bytes of data and reports the
// image format they identify. Payloads shorter than the shortest known
// signature are always FormatUnknown.
func Classify(data []byte) Format {
	if len(data) < len(jpegSignature) {
		return FormatUnknown
	}

	if bytes.HasPrefix(data, jpegSignature) {
		return FormatJPEG
	}

	if bytes.HasPrefix(data, pngSignature) {
		return FormatPNG
	}

	// WEBP lives in a RIFF container: "RIFF" at offset 0 and the form
	// type "WEBP" at offsets 8-11. Both must match.
	if len(data) >= maxSignatureLen &&
		bytes.HasPrefix(data, riffSignature) &&
		bytes.Equal(data[8:12], webpFormType) {
		return FormatWEBP
	}

	return FormatUnknown
}
