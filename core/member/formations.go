package member

import "strings"

// formations are persisted as a single delimited text value, e.g. "Leadership, Finance".
const formationsSeparator = ", "

// EncodeFormations joins formation names into the persisted text value.
// Names are trimmed and empty ones dropped. A name containing the separator
// itself will not round-trip; callers are expected not to produce such names.
func EncodeFormations(names []string) string {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return strings.Join(cleaned, formationsSeparator)
}

// DecodeFormations splits the persisted text value back into formation names.
// Pieces are trimmed and empty ones dropped; decoding an empty value yields
// no names. Names are exact strings: no case folding is applied.
func DecodeFormations(encoded string) []string {
	if strings.TrimSpace(encoded) == "" {
		return nil
	}
	pieces := strings.Split(encoded, ",")
	names := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if piece = strings.TrimSpace(piece); piece != "" {
			names = append(names, piece)
		}
	}
	return names
}
