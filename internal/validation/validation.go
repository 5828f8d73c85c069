// Package validation implements the registry's validation gate: pure,
// side-effect-free predicates over operation inputs. The functions here hold
// no state and never return errors; the facade consumes the booleans and maps
// failures to its own typed error codes.
//
// Length bounds are byte lengths, matching the column widths declared on the
// domain models.
package validation

const (
	// MaxSerialLen bounds the laptop serial field.
	MaxSerialLen = 50
	// MaxDescriptionLen bounds the laptop description field.
	MaxDescriptionLen = 256
	// MaxLogDescriptionLen bounds a repair-log description.
	MaxLogDescriptionLen = 512
)

// Serial reports whether s is a well-formed serial: non-empty and at most
// MaxSerialLen bytes.
func Serial(s string) bool {
	return len(s) > 0 && len(s) <= MaxSerialLen
}

// Description reports whether s is a well-formed laptop description.
// The empty string is valid; absence is modeled by the caller (nil pointer),
// not by this predicate.
func Description(s string) bool {
	return len(s) <= MaxDescriptionLen
}

// LogDescription reports whether s is a well-formed repair-log description.
func LogDescription(s string) bool {
	return len(s) <= MaxLogDescriptionLen
}

// Identity reports whether p is acceptable as an owner, recipient, admin, or
// shop identity: non-empty and distinct from the registry's own execution
// identity. The latter prevents the registry from being assigned any role
// over its own tokens.
func Identity(p, system string) bool {
	return p != "" && p != system
}
