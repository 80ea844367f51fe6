package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts various types to int using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
func ToInt(val any) int {
	switch v := val.(type) {
	case nil:
		return 0
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		i, _ := strconv.Atoi(v)
		return i
	case []byte:
		i, _ := strconv.Atoi(string(v))
		return i
	default:
		s := fmt.Sprintf("%v", v)
		i, _ := strconv.Atoi(s)
		return i
	}
}

// ToFloat64 converts various types to float64.
func ToFloat64(val any) float64 {
	switch v := val.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// ToFloat64Slice converts a loosely typed list to []float64.
// Non-list inputs return nil.
func ToFloat64Slice(val any) []float64 {
	switch v := val.(type) {
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]float64, len(v))
		for i, element := range v {
			out[i] = ToFloat64(element)
		}
		return out
	default:
		return nil
	}
}

// ToStringSlice converts a loosely typed list to []string.
// Non-list inputs return nil.
func ToStringSlice(val any) []string {
	switch v := val.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, len(v))
		for i, element := range v {
			out[i] = ToString(element)
		}
		return out
	default:
		return nil
	}
}

// ToString converts various types to string. A nil value is the empty
// string, never the literal "<nil>", so omitted optional parameters fall
// through to their defaults.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, uint, uint64, uint32, float64, float32:
		return ToInt(v) == 1
	case string:
		return v == "1" || strings.ToLower(v) == "true"
	default:
		return false
	}
}
