package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Values from TOML arrive as int64, from YAML as int and from the
// environment as strings, so conversions accept all of them.

func toString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

func toInt(path string, v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val == math.Trunc(val) {
			return int(val), nil
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n, nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
}

func toBool(path string, v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b, nil
		}
	}
	return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
}

func toStringSlice(path string, v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	}
	return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
