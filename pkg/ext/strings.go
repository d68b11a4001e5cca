package ext

// ContainsString returns true if value is one of values.
func ContainsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
