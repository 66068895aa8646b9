package gbce

import "fmt"

// Indicator tells whether a trade was a buy or a sell.
// It is recorded with every trade but plays no part in the metrics.
type Indicator int

const (
	Buy Indicator = iota
	Sell
)

func (i Indicator) String() string {
	switch i {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseIndicator parses a string into an Indicator.
func ParseIndicator(s string) (Indicator, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown trade indicator: %q", s)
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (i Indicator) MarshalText() ([]byte, error) {
	if i != Buy && i != Sell {
		return nil, fmt.Errorf("unknown trade indicator: %d", int(i))
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (i *Indicator) UnmarshalText(text []byte) error {
	v, err := ParseIndicator(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
