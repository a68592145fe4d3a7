package navigation

// PincodeLength is the number of digits in an Indian postal index number.
const PincodeLength = 6

// IsWellFormedPincode reports whether s is exactly six ASCII digits.
// Unicode digits (e.g. Devanagari) are rejected.
func IsWellFormedPincode(s string) bool {
	if len(s) != PincodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
