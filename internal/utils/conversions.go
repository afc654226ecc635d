package utils

import "encoding/json"

func ToStringSlice(slice []any) []string {
	stringSlice := make([]string, 0)
	for _, v := range slice {
		if s, ok := v.(string); ok {
			stringSlice = append(stringSlice, s)
		}
	}
	return stringSlice
}

// ToInt converts loosely-typed JSON numbers to an int. Negative and
// non-numeric values collapse to zero.
func ToInt(v any) int {
	var n int
	switch value := v.(type) {
	case int:
		n = value
	case int64:
		n = int(value)
	case float64:
		n = int(value)
	case json.Number:
		if i, err := value.Int64(); err == nil {
			n = int(i)
		}
	}
	if n < 0 {
		return 0
	}
	return n
}
