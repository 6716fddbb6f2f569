package transit

import (
	"encoding/json"
	"fmt"
)

// busSlot is one upcoming-bus entry.
type busSlot struct {
	EstimatedArrival string
	Load             string
	Type             string
	Feature          string
}

// decodeSlot reads one NextBus entry. Absent or empty entries (null, "", {},
// [], false, 0) report ok=false. Codes that are not strings read as empty, so
// they map to the unknown variants. A non-empty entry that is not an object,
// or an arrival time that is not a string, is an error.
func decodeSlot(raw json.RawMessage) (slot busSlot, ok bool, err error) {
	if len(raw) == 0 {
		return busSlot{}, false, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return busSlot{}, false, err
	}

	switch x := v.(type) {
	case nil:
		return busSlot{}, false, nil
	case map[string]any:
		if len(x) == 0 {
			return busSlot{}, false, nil
		}
		eta, err := arrivalField(x["EstimatedArrival"])
		if err != nil {
			return busSlot{}, false, err
		}
		return busSlot{
			EstimatedArrival: eta,
			Load:             codeField(x["Load"]),
			Type:             codeField(x["Type"]),
			Feature:          codeField(x["Feature"]),
		}, true, nil
	case string:
		if x == "" {
			return busSlot{}, false, nil
		}
	case []any:
		if len(x) == 0 {
			return busSlot{}, false, nil
		}
	case bool:
		if !x {
			return busSlot{}, false, nil
		}
	case float64:
		if x == 0 {
			return busSlot{}, false, nil
		}
	}
	return busSlot{}, false, fmt.Errorf("bus slot is not an object: %s", raw)
}

func arrivalField(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	default:
		return "", fmt.Errorf("arrival time is not a string: %v", v)
	}
}

func codeField(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
