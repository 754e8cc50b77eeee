// Package ticker normalizes exchange-qualified symbols.
package ticker

import "strings"

// Normalize trims and upper-cases a user supplied ticker.
func Normalize(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// IsIndian reports whether t trades on NSE (.NS) or BSE (.BO).
func IsIndian(t string) bool {
	t = Normalize(t)
	return strings.HasSuffix(t, ".NS") || strings.HasSuffix(t, ".BO")
}

// Exchange returns "BSE" for .BO listings and "NSE" otherwise.
func Exchange(t string) string {
	if strings.HasSuffix(Normalize(t), ".BO") {
		return "BSE"
	}
	return "NSE"
}

// Base strips an Indian exchange suffix: "RELIANCE.NS" -> "RELIANCE".
func Base(t string) string {
	t = Normalize(t)
	if i := strings.LastIndexByte(t, '.'); i > 0 {
		switch t[i+1:] {
		case "NS", "BO":
			return t[:i]
		}
	}
	return t
}
