package environment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errNullObject = errors.New("expected an object, got null")

// object decodes raw as a JSON object. A missing member (empty raw) reads as
// an empty object; null or any other JSON type is an error.
func object(raw json.RawMessage) (map[string]json.RawMessage, error) {
	if len(raw) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errNullObject
	}
	return m, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// intField reads key from m as an integer. A missing key reads as zero.
func intField(m map[string]json.RawMessage, key string) (int, error) {
	raw, ok := m[key]
	if !ok {
		return 0, nil
	}
	v, err := coerceInt(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

// coerceInt accepts a JSON number, truncated toward zero, or a string holding
// an integer. Numbers outside the int range are rejected.
func coerceInt(raw json.RawMessage) (int, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, itself out of range.
		if x < float64(math.MinInt) || x >= float64(math.MaxInt) {
			return 0, fmt.Errorf("%s is out of integer range", raw)
		}
		return int(x), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(x))
	default:
		return 0, fmt.Errorf("cannot use %s as an integer", raw)
	}
}
