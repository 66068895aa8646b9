package renderer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// displayPlaces is the number of decimal places used to display metrics.
const displayPlaces = 4

// Value is an optional metric, as returned by the gbce (value, ok) methods.
type Value struct {
	V  float64
	Ok bool
}

// Some returns a present Value.
func Some(v float64) Value { return Value{V: v, Ok: true} }

// ValueOf converts a (value, ok) pair.
func ValueOf(v float64, ok bool) Value { return Value{V: v, Ok: ok} }

// String returns the value rounded for display, "-" when missing.
func (v Value) String() string {
	if !v.Ok {
		return "-"
	}
	if math.IsInf(v.V, 0) || math.IsNaN(v.V) {
		return strconv.FormatFloat(v.V, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v.V).Round(displayPlaces).String()
}

// MarshalJSON writes the full precision value, or null when missing.
// JSON has no infinities, they are written as the strings "+Inf" and "-Inf",
// and NaN as "NaN".
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Ok {
		return []byte("null"), nil
	}
	if math.IsInf(v.V, 0) || math.IsNaN(v.V) {
		return json.Marshal(strconv.FormatFloat(v.V, 'g', -1, 64))
	}
	return json.Marshal(v.V)
}

// UnmarshalJSON reads the values written by MarshalJSON.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Value{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", s, err)
		}
		*v = Some(f)
		return nil
	}
	if err := json.Unmarshal(b, &v.V); err != nil {
		return err
	}
	v.Ok = true
	return nil
}
