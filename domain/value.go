package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// overflowToken is how an overflowed Value is written to JSON.
const overflowToken = "overflow"

// Value is a computed amount that may have overflowed. An overflowed Value
// carries no number; callers render it as "value too large".
type Value struct {
	Amount   float64
	Overflow bool
}

// Finite wraps f, or returns the overflow sentinel when f is NaN or ±Inf.
func Finite(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return OverflowValue()
	}
	return Value{Amount: f}
}

// OverflowValue returns the overflow sentinel.
func OverflowValue() Value {
	return Value{Overflow: true}
}

func (v Value) String() string {
	if v.Overflow {
		return overflowToken
	}
	return fmt.Sprintf("%g", v.Amount)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Overflow {
		return json.Marshal(overflowToken)
	}
	return json.Marshal(v.Amount)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != overflowToken {
			return fmt.Errorf("invalid value %q", s)
		}
		*v = OverflowValue()
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Value{Amount: f}
	return nil
}
