package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount carried across the wire. Marshalling always
// emits a JSON number with exactly two fraction digits; unmarshalling is
// tolerant of the back office's loose encodings (numbers, quoted strings,
// and strings with a leading currency sign).
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func MoneyFromString(value string) (Money, error) {
	d, err := parseAmount(value)
	if err != nil {
		return Money{}, err
	}
	return Money{Decimal: d}, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	raw = strings.Trim(raw, `"`)
	d, err := parseAmount(raw)
	if err != nil {
		return err
	}
	m.Decimal = d
	return nil
}

func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "₱")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", value, err)
	}
	return d, nil
}
