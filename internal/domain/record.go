package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldKind tells exporters how to render a field value
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldAmount
	FieldRate
	FieldFlag
)

// Field is one labeled primitive value of a Record
type Field struct {
	Key    string
	Label  string
	Kind   FieldKind
	Number decimal.Decimal
	Text   string
	Flag   bool
}

// AmountField creates a currency field; the value is rounded to cents
func AmountField(key, label string, amount decimal.Decimal) Field {
	return Field{Key: key, Label: label, Kind: FieldAmount, Number: RoundCurrency(amount)}
}

// RateField creates a percentage field
func RateField(key, label string, rate decimal.Decimal) Field {
	return Field{Key: key, Label: label, Kind: FieldRate, Number: rate}
}

// TextField creates a string field
func TextField(key, label, text string) Field {
	return Field{Key: key, Label: label, Kind: FieldText, Text: text}
}

// FlagField creates a boolean field
func FlagField(key, label string, flag bool) Field {
	return Field{Key: key, Label: label, Kind: FieldFlag, Flag: flag}
}

// IsNumeric reports whether the field carries a decimal value
func (f Field) IsNumeric() bool {
	return f.Kind == FieldAmount || f.Kind == FieldRate
}

// String renders the value without locale formatting
func (f Field) String() string {
	switch f.Kind {
	case FieldAmount:
		return f.Number.StringFixed(2)
	case FieldRate:
		return f.Number.String()
	case FieldFlag:
		if f.Flag {
			return "true"
		}
		return "false"
	default:
		return f.Text
	}
}

// Record is a flat, ordered mapping of labeled primitive values
type Record []Field

// Get returns the field stored under key
func (r Record) Get(key string) (Field, bool) {
	for _, f := range r {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Keys returns the field keys in order
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Merge returns a new record with r's fields followed by other's
func (r Record) Merge(other Record) Record {
	out := make(Record, 0, len(r)+len(other))
	out = append(out, r...)
	return append(out, other...)
}

// MarshalJSON writes the record as a JSON object preserving field order.
// Numbers are emitted unquoted.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var value []byte
		switch f.Kind {
		case FieldAmount, FieldRate:
			value = []byte(f.String())
		case FieldFlag:
			value, err = json.Marshal(f.Flag)
		default:
			value, err = json.Marshal(f.Text)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RoundCurrency rounds half away from zero to two decimal places.
// Amounts are non-negative, so this is half-up rounding.
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// ParseAmount reads a currency amount written either as 1234.56 or in the
// Brazilian style 1.234,56, with an optional R$ prefix. Blank input is zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q must not be negative", raw)
	}
	return amount, nil
}
