package weather

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Normalize extracts the temperature and the first weather description from a
// provider record. Missing or mistyped fields are left nil; a nil or empty
// record yields ErrNoData.
func Normalize(rec RawRecord) (Reading, error) {
	if len(rec) == 0 {
		return Reading{}, ErrNoData
	}

	var reading Reading

	if main, ok := rec["main"].(map[string]any); ok {
		reading.Temperature = measurementOf(main["temp"])
	}

	if items, ok := rec["weather"].([]any); ok && len(items) > 0 {
		if first, ok := items[0].(map[string]any); ok {
			if desc, ok := first["description"].(string); ok {
				reading.Description = &desc
			}
		}
	}

	return reading, nil
}

// measurementOf accepts json.Number (the decoder's default here) as well as
// plain Go numbers, so records built in code normalize the same way.
func measurementOf(v any) *Measurement {
	var m Measurement
	switch n := v.(type) {
	case json.Number:
		m = Measurement(n.String())
		if strings.ContainsAny(string(n), "eE") {
			m = exponentFree(n)
		}
	case float64:
		m = Measurement(strconv.FormatFloat(n, 'f', -1, 64))
	case float32:
		m = Measurement(strconv.FormatFloat(float64(n), 'f', -1, 32))
	case int:
		m = Measurement(strconv.Itoa(n))
	case int64:
		m = Measurement(strconv.FormatInt(n, 10))
	default:
		return nil
	}
	if m == "" {
		return nil
	}
	return &m
}

// String is used in debug logs.
func (r Reading) String() string {
	return fmt.Sprintf("temperature=%s description=%s",
		orSentinel(measurementText(r.Temperature)), orSentinel(r.Description))
}

// exponentFree rewrites "1e2" as "100.0" so exponent forms render like any
// other float. Values that do not parse are kept as sent.
func exponentFree(n json.Number) Measurement {
	f, err := n.Float64()
	if err != nil {
		return Measurement(n.String())
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return Measurement(s)
}
