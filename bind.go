package snowtype

import (
	"fmt"
	"strconv"
)

// binding is one positional statement binding in the SQL API request body.
// The API takes every value as a string tagged with a binding type.
type binding struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// newBinding classifies a Go value into the API's binding types: BOOLEAN,
// FIXED for integers, REAL for floats, TEXT for strings.
func newBinding(v any) (binding, error) {
	switch x := v.(type) {
	case bool:
		return binding{Type: "BOOLEAN", Value: strconv.FormatBool(x)}, nil
	case int:
		return binding{Type: "FIXED", Value: strconv.FormatInt(int64(x), 10)}, nil
	case int8:
		return binding{Type: "FIXED", Value: strconv.FormatInt(int64(x), 10)}, nil
	case int16:
		return binding{Type: "FIXED", Value: strconv.FormatInt(int64(x), 10)}, nil
	case int32:
		return binding{Type: "FIXED", Value: strconv.FormatInt(int64(x), 10)}, nil
	case int64:
		return binding{Type: "FIXED", Value: strconv.FormatInt(x, 10)}, nil
	case uint:
		return binding{Type: "FIXED", Value: strconv.FormatUint(uint64(x), 10)}, nil
	case uint8:
		return binding{Type: "FIXED", Value: strconv.FormatUint(uint64(x), 10)}, nil
	case uint16:
		return binding{Type: "FIXED", Value: strconv.FormatUint(uint64(x), 10)}, nil
	case uint32:
		return binding{Type: "FIXED", Value: strconv.FormatUint(uint64(x), 10)}, nil
	case uint64:
		return binding{Type: "FIXED", Value: strconv.FormatUint(x, 10)}, nil
	case float32:
		return binding{Type: "REAL", Value: strconv.FormatFloat(float64(x), 'g', -1, 32)}, nil
	case float64:
		return binding{Type: "REAL", Value: strconv.FormatFloat(x, 'g', -1, 64)}, nil
	case string:
		return binding{Type: "TEXT", Value: x}, nil
	case fmt.Stringer:
		return binding{Type: "TEXT", Value: x.String()}, nil
	default:
		return binding{}, fmt.Errorf("unsupported binding type %T", v)
	}
}
