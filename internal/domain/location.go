package domain

import "strings"

// A named place that may serve as a depot or as a route stop.
// Codes are short upper-case strings such as "CDMX" or "EDO.MEX".
type Location struct {
	Code        string
	Coordinates Coordinates
}

// NormalizeCode trims surrounding whitespace and upper-cases a location code
// the same way user input is treated before lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
