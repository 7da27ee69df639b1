package util

import (
	"fmt"
	"strings"
)

// Error creates an error with a formatted message
func Error(msg string) error {
	return fmt.Errorf("Internal Error: %s", msg)
}

// Stringify converts a token to its string representation
func Stringify(token interface{}) string {
	if s, ok := token.(string); ok {
		return s
	}

	if arr, ok := token.([]interface{}); ok {
		parts := make([]string, len(arr))
		for i, v := range arr {
			parts[i] = Stringify(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}

	if token == nil {
		return "null"
	}

	if named, ok := token.(interface{ Name() string }); ok {
		return named.Name()
	}

	if named, ok := token.(fmt.Stringer); ok {
		return named.String()
	}

	return fmt.Sprintf("%v", token)
}
