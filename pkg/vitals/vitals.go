// Package vitals validates patient-submitted vitals payloads and computes
// derived metrics.
package vitals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// MandatoryFields must be present and numeric in every vitals payload.
var MandatoryFields = []string{"heightCm", "weightKg", "temperatureC"}

const maxStringLength = 120

// Metrics is a sanitized vitals snapshot. Whole-valued floats are
// JSON-encoded as integers to match how the store's decimal type is
// presented to clients.
type Metrics map[string]interface{}

// Sanitize validates and normalizes a raw vitals payload. Mandatory
// fields are coerced to float64 with a field-specific error on failure;
// extra numeric fields are coerced, strings are truncated, everything
// else is dropped silently. A bmi key is derived when absent.
func Sanitize(raw map[string]interface{}) (Metrics, error) {
	if raw == nil {
		return nil, fmt.Errorf("vitals must be an object")
	}

	summary := Metrics{}
	for _, field := range MandatoryFields {
		value, ok := raw[field]
		if !ok || value == nil {
			return nil, fmt.Errorf("Missing vital: %s", field)
		}
		number, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("Invalid numeric value for %s", field)
		}
		summary[field] = number
	}

	for key, value := range raw {
		if _, exists := summary[key]; exists {
			continue
		}
		if number, ok := toFloat(value); ok {
			if _, isString := value.(string); !isString {
				summary[key] = number
				continue
			}
		}
		if str, ok := value.(string); ok {
			summary[key] = truncate(str, maxStringLength)
		}
		// Other types are dropped silently.
	}

	if _, exists := summary["bmi"]; !exists {
		height, _ := toFloat(summary["heightCm"])
		weight, _ := toFloat(summary["weightKg"])
		if bmi, ok := ComputeBMI(height, weight); ok {
			summary["bmi"] = bmi
		}
	}

	return summary, nil
}

// ComputeBMI derives weightKg / (heightCm/100)^2 rounded to one decimal
// place. Returns false instead of an error for non-positive heights.
func ComputeBMI(heightCm, weightKg float64) (float64, bool) {
	meters := heightCm / 100
	if meters <= 0 {
		return 0, false
	}
	return math.Round(weightKg/(meters*meters)*10) / 10, true
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// MarshalJSON encodes whole-valued floats as integers, matching the
// re-encoding rule for the store's native decimal type.
func (m Metrics) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		encodedValue, err := marshalValue(m[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(value interface{}) ([]byte, error) {
	if f, ok := value.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return []byte(strconv.FormatInt(int64(f), 10)), nil
	}
	return json.Marshal(value)
}
