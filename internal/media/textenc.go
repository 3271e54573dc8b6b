// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package media

import (
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/ianaindex"
)

// EncodingDecision records the outcome of a charset sniff over a text file.
type EncodingDecision struct {
	// DetectedEncoding is the IANA charset name the detector settled on,
	// or empty when detection was ambiguous.
	DetectedEncoding string

	// RequiresTranscode is true when the bytes were decoded from a legacy
	// charset and re-encoded as UTF-8.
	RequiresTranscode bool
}

// NormalizeText transcodes raw text bytes to canonical UTF-8.
//
// Detection is statistical (byte-frequency heuristics over the buffer) and
// best-effort: it can mis-detect on short or binary-like inputs. Whenever
// detection is ambiguous, names an unknown charset, or the decode fails, the
// bytes pass through unchanged under the assumption they are already UTF-8.
// That makes normalization idempotent: re-normalizing UTF-8 output is a no-op.
func NormalizeText(raw []byte) ([]byte, EncodingDecision) {
	if len(raw) == 0 {
		return raw, EncodingDecision{}
	}

	// Pure ASCII is already canonical under every encoding this code can
	// produce. Skipping detection here also sidesteps the detector's habit
	// of labeling English ASCII prose as ISO-8859-1.
	if isASCII(raw) {
		return raw, EncodingDecision{DetectedEncoding: "US-ASCII"}
	}

	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || result == nil || result.Charset == "" {
		return raw, EncodingDecision{}
	}

	decision := EncodingDecision{DetectedEncoding: result.Charset}

	// Already canonical, nothing to do. ISO-8859-1 with pure ASCII content
	// is also byte-identical to UTF-8, but the decode below is a no-op for
	// those bytes so no special case is needed.
	upper := strings.ToUpper(result.Charset)
	if upper == "UTF-8" || upper == "US-ASCII" || upper == "ASCII" {
		return raw, decision
	}

	enc, err := ianaindex.IANA.Encoding(result.Charset)
	if err != nil || enc == nil {
		// The detector named a charset x/text has no codec for. Treat as
		// ambiguous and pass through.
		return raw, EncodingDecision{DetectedEncoding: result.Charset}
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return raw, EncodingDecision{DetectedEncoding: result.Charset}
	}

	decision.RequiresTranscode = true
	return decoded, decision
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
