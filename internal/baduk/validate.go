package baduk

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// IsValidName reports whether a player or profile name is acceptable for a
// persisted record.
func IsValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// ValidateEncodingName checks a proposed SGF text encoding against the IANA
// character-set registry. The returned error carries the reason so it can
// be surfaced on the settings screen.
func ValidateEncodingName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("encoding name required")
	}
	enc, err := ianaindex.IANA.Encoding(trimmed)
	if err != nil {
		return fmt.Errorf("unknown text encoding %q: %w", trimmed, err)
	}
	if enc == nil {
		// Registered name, but no converter is available for it.
		return fmt.Errorf("text encoding %q has no converter", trimmed)
	}
	return nil
}

func IsValidEncodingName(name string) bool {
	return ValidateEncodingName(name) == nil
}
