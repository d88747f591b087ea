package utils

import "strings"

// IsValidPincode reports whether s is a 6-digit number.
func IsValidPincode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeVehicleNumber strips spaces and upper-cases a registration number
// so uniqueness checks are not defeated by formatting.
func NormalizeVehicleNumber(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

func IsValidValueOfConstant(value string, constantValues []string) bool {
	for _, v := range constantValues {
		if v == value {
			return true
		}
	}
	return false
}
