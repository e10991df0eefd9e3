package fleet

import "strings"

// Canonical orientation tokens. They name the three mounting positions on
// the rig and appear in persisted files and artifact paths.
const (
	OrientLeft  = "left"
	OrientRight = "right"
	OrientTop   = "top"
)

// DefaultOrientation returns the orientation implied by a slot index:
// slot 0 is the left head, slot 1 the right head, anything else the top head.
func DefaultOrientation(slot int) string {
	switch slot {
	case 0:
		return OrientLeft
	case 1:
		return OrientRight
	default:
		return OrientTop
	}
}

// CanonicalOrientation normalizes an orientation string to one of the
// canonical tokens. Spanish names and short forms from older config files
// are accepted as synonyms. An unrecognized non-empty value is sanitized to
// a filesystem-safe token and kept as-is; an empty value stays empty so the
// caller can apply the slot default.
func CanonicalOrientation(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "left", "izq", "izquierda":
		return OrientLeft
	case "right", "der", "derecha":
		return OrientRight
	case "top", "cen", "cenital":
		return OrientTop
	case "":
		return ""
	}
	return SanitizeTag(s)
}

// SanitizeTag rewrites a string so it is safe to use as a path component:
// ASCII letters, digits, '_' and '-' pass through, everything else becomes
// '_'. The empty string is returned unchanged.
func SanitizeTag(s string) string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	for i, c := range b {
		ok := (c >= 'a' && c <= 'z') ||
			(c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') ||
			c == '_' || c == '-'
		if !ok {
			b[i] = '_'
		}
	}
	return string(b)
}
