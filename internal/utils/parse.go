// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// ParseID parses a decimal token or repair-log identifier from a path
// parameter. It returns (0, false) for empty input, non-numeric input, or
// zero — identifiers are always positive.
//
// Example:
//
//	id, ok := utils.ParseID("42") // 42, true
//	id, ok = utils.ParseID("0")   // 0, false
//	id, ok = utils.ParseID("x")   // 0, false
func ParseID(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
