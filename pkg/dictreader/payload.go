package dictreader

import "encoding/json"

// frequencyShape covers the polymorphic frequency JSON payload: a bare
// integer, an object with value/displayValue, or an object with a nested
// "frequency" field that is either of those two forms, optionally carrying
// its own "reading".
type frequencyShape struct {
	Value        *json.Number     `json:"value"`
	DisplayValue *string          `json:"displayValue"`
	Frequency    *json.RawMessage `json:"frequency"`
	Reading      *string          `json:"reading"`
}

// parseFrequencyPayload decodes data into a FreqEntry. If the payload
// carries a reading that differs from termReading, it's skipped per
// spec.md §4.4. A malformed payload is skipped, not an error.
func parseFrequencyPayload(data []byte, termReading string) (FreqEntry, bool) {
	trimmed := trimSpace(data)
	if len(trimmed) == 0 {
		return FreqEntry{}, false
	}

	if n, ok := parseBareInt(trimmed); ok {
		return FreqEntry{Value: n}, true
	}

	var shape frequencyShape
	if err := json.Unmarshal(trimmed, &shape); err != nil {
		return FreqEntry{}, false
	}
	if shape.Reading != nil && *shape.Reading != "" && *shape.Reading != termReading {
		return FreqEntry{}, false
	}
	if shape.Frequency != nil {
		inner := trimSpace([]byte(*shape.Frequency))
		if n, ok := parseBareInt(inner); ok {
			return FreqEntry{Value: n}, true
		}
		var innerShape frequencyShape
		if err := json.Unmarshal(inner, &innerShape); err == nil && innerShape.Value != nil {
			v, _ := innerShape.Value.Int64()
			disp := ""
			if innerShape.DisplayValue != nil {
				disp = *innerShape.DisplayValue
			}
			return FreqEntry{Value: int(v), Display: disp}, true
		}
		return FreqEntry{}, false
	}
	if shape.Value != nil {
		v, _ := shape.Value.Int64()
		disp := ""
		if shape.DisplayValue != nil {
			disp = *shape.DisplayValue
		}
		return FreqEntry{Value: int(v), Display: disp}, true
	}
	return FreqEntry{}, false
}

type pitchEntryShape struct {
	Position int `json:"position"`
}

type pitchShape struct {
	Reading string            `json:"reading"`
	Pitches []pitchEntryShape `json:"pitches"`
}

// parsePitchPayload decodes data into a reading plus flattened position
// list.
func parsePitchPayload(data []byte) (string, []int, error) {
	var shape pitchShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return "", nil, err
	}
	positions := make([]int, 0, len(shape.Pitches))
	for _, p := range shape.Pitches {
		positions = append(positions, p.Position)
	}
	return shape.Reading, positions, nil
}

func trimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isJSONSpace(b[start]) {
		start++
	}
	for end > start && isJSONSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func parseBareInt(b []byte) (int, bool) {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(v), true
}
