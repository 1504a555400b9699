// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package automation

import "fmt"

// toInt converts the integer-like values COM properties come back as
// (counts, msoTriState flags, shape type enums) into an int.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case bool:
		if n {
			return -1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected value %v (%T)", v, v)
	}
}
