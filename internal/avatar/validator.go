package avatar

import (
	"fmt"
	"strings"

	"github.com/pborkovic/bunkermuseum-members/internal/sniff"
)

// Policy bounds what an upload may look like before it is accepted.
type Policy struct {
	MaxBytes     int64
	AllowedTypes []string
}

// DefaultPolicy returns the standard profile-picture upload policy:
// 5 MiB limit, common web image MIME types.
func DefaultPolicy() Policy {
	return Policy{
		MaxBytes:     5 * 1024 * 1024,
		AllowedTypes: []string{"image/jpeg", "image/jpg", "image/png", "image/webp"},
	}
}

// Verdict is the outcome of validating one upload. Reason is always
// populated: a rejection cause when Valid is false, a success description
// naming the detected format when Valid is true.
type Verdict struct {
	Valid  bool
	Reason string
	Format sniff.Format
}

// Validate runs the upload checks in order, first failure wins:
// empty payload, declared size, declared MIME type, then the magic-byte
// classification. The declared type and size are attacker-controlled
// metadata; only the byte classification is authoritative. Malformed
// input never produces an error, only a negative verdict.
func Validate(data []byte, declaredType string, declaredSize int64, policy Policy) Verdict {
	if len(data) == 0 {
		return Verdict{Valid: false, Reason: "File is empty or null", Format: sniff.FormatUnknown}
	}

	if policy.MaxBytes > 0 && declaredSize > policy.MaxBytes {
		return Verdict{
			Valid:  false,
			Reason: fmt.Sprintf("File exceeds the maximum allowed size of %d bytes", policy.MaxBytes),
			Format: sniff.FormatUnknown,
		}
	}

	if !typeAllowed(declaredType, policy.AllowedTypes) {
		return Verdict{
			Valid:  false,
			Reason: fmt.Sprintf("Invalid file type: %s", declaredType),
			Format: sniff.FormatUnknown,
		}
	}

	format := sniff.Classify(data)
	if format == sniff.FormatUnknown {
		return Verdict{
			Valid:  false,
			Reason: "File content does not match any supported image format. The file may be corrupted or is not actually an image.",
			Format: sniff.FormatUnknown,
		}
	}

	return Verdict{
		Valid:  true,
		Reason: fmt.Sprintf("Valid %s image", format),
		Format: format,
	}
}

func typeAllowed(declaredType string, allowed []string) bool {
	declaredType = strings.ToLower(strings.TrimSpace(declaredType))
	for _, t := range allowed {
		if declaredType == t {
			return true
		}
	}
	return false
}
