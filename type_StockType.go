package gbce

import "fmt"

// StockType defines which dividend yield formula applies to a stock.
type StockType int

const (
	// Common stocks yield their last dividend over the price.
	Common StockType = iota
	// Preferred stocks yield their fixed dividend applied to the par value.
	Preferred
)

func (t StockType) String() string {
	switch t {
	case Common:
		return "common"
	case Preferred:
		return "preferred"
	default:
		return "unknown"
	}
}

// ParseStockType parses a string into a StockType.
func ParseStockType(s string) (StockType, error) {
	switch s {
	case "common":
		return Common, nil
	case "preferred":
		return Preferred, nil
	default:
		return 0, fmt.Errorf("unknown stock type: %q", s)
	}
}

func (t StockType) valid() bool { return t == Common || t == Preferred }

// MarshalText implements the encoding.TextMarshaler interface.
func (t StockType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("unknown stock type: %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (t *StockType) UnmarshalText(text []byte) error {
	v, err := ParseStockType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
