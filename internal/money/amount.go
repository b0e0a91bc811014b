package money

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value. It travels as a JSON number and also accepts a
// quoted number or null.
type Amount struct {
	decimal.Decimal
}

var Zero = Amount{}

func New(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func FromFloat(f float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

func FromInt(n int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(n)}
}

// Parse reads user input such as "1234.56", "-588,74" or "1.234,56".
// A comma followed by one or two digits at the end is a decimal separator.
func Parse(s string) (Amount, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if clean == "" {
		return Zero, fmt.Errorf("empty amount")
	}

	if i := strings.LastIndex(clean, ","); i >= 0 && len(clean)-i <= 3 {
		clean = strings.ReplaceAll(clean[:i], ".", "") + "." + clean[i+1:]
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}

	return Amount{Decimal: d}, nil
}

func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Sub(b.Decimal)}
}

// Format renders the amount with two decimals.
func (a Amount) Format() string {
	return a.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decoding amount: %w", err)
		}

		if s == "" {
			a.Decimal = decimal.Zero
			return nil
		}

		b = []byte(s)
	}

	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("decoding amount: %w", err)
	}

	a.Decimal = d

	return nil
}

// Sum adds up amounts.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}

	return total
}
