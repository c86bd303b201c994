package dictimport

import (
	"encoding/json"
	"fmt"
)

// decodeTuple positionally unmarshals raw into targets, which must be
// pointers to string, json.Number, or json.RawMessage. Used by the three
// bank tuple types to express the vendor format's fixed-arity array schema
// without hand-rolling index arithmetic at every call site.
func decodeTuple(raw []json.RawMessage, kind string, targets ...interface{}) error {
	if len(raw) < len(targets) {
		return fmt.Errorf("dictimport: %s tuple has %d fields, want at least %d", kind, len(raw), len(targets))
	}
	for i, t := range targets {
		switch v := t.(type) {
		case *string:
			var s string
			if err := json.Unmarshal(raw[i], &s); err != nil {
				return fmt.Errorf("dictimport: %s tuple field %d: %w", kind, i, err)
			}
			*v = s
		case *json.Number:
			var n json.Number
			if err := json.Unmarshal(raw[i], &n); err != nil {
				return fmt.Errorf("dictimport: %s tuple field %d: %w", kind, i, err)
			}
			*v = n
		case *json.RawMessage:
			*v = raw[i]
		default:
			return fmt.Errorf("dictimport: %s tuple field %d: unsupported decode target", kind, i)
		}
	}
	return nil
}

func intOrZero(n json.Number) int {
	v, err := n.Int64()
	if err != nil {
		return 0
	}
	return int(v)
}
