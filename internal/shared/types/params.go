package types

import "fmt"

// GetString extracts a string parameter
func GetString(params map[string]interface{}, key string, required bool) (string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return "", fmt.Errorf("%s parameter required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// GetBool extracts a bool parameter with a default
func GetBool(params map[string]interface{}, key string, defaultVal bool) bool {
	val, ok := params[key]
	if !ok {
		return defaultVal
	}

	b, ok := val.(bool)
	if !ok {
		return defaultVal
	}

	return b
}

// GetNumber extracts a numeric parameter
func GetNumber(params map[string]interface{}, key string, required bool) (float64, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return 0, fmt.Errorf("%s parameter required", key)
		}
		return 0, nil
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s must be number", key)
	}
}

// GetInt extracts an integer parameter, reporting whether it was present
func GetInt(params map[string]interface{}, key string) (int, bool) {
	val, ok := params[key]
	if !ok || val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return int(v), true
	case float32:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetMap extracts a map parameter, nil when absent or mistyped
func GetMap(params map[string]interface{}, key string) map[string]interface{} {
	val, ok := params[key]
	if !ok {
		return nil
	}

	m, ok := val.(map[string]interface{})
	if !ok {
		return nil
	}

	return m
}

// GetArray extracts an array parameter, nil when absent or mistyped
func GetArray(params map[string]interface{}, key string) []interface{} {
	val, ok := params[key]
	if !ok {
		return nil
	}

	arr, ok := val.([]interface{})
	if !ok {
		return nil
	}

	return arr
}

// GetStringSlice extracts an array parameter and coerces its elements to strings
func GetStringSlice(params map[string]interface{}, key string) []string {
	arr := GetArray(params, key)
	if arr == nil {
		return nil
	}

	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
