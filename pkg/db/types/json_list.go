package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// StringList persists an ordered list of strings as a JSON array so the same
// column works on Postgres (jsonb) and SQLite (text).
type StringList []string

func (l *StringList) Scan(src any) error {
	raw, err := jsonBytes(src, "StringList")
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("StringList: decode: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = StringList(out)
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	buf, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// PriceMap maps a key (a wilaya code) to a price, stored as a JSON object
// with string-encoded decimals.
type PriceMap map[string]decimal.Decimal

func (m *PriceMap) Scan(src any) error {
	raw, err := jsonBytes(src, "PriceMap")
	if err != nil {
		return err
	}
	out := map[string]decimal.Decimal{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("PriceMap: decode: %w", err)
		}
	}
	*m = PriceMap(out)
	return nil
}

func (m PriceMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(map[string]decimal.Decimal(m))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

func jsonBytes(src any, typeName string) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("%s: unsupported Scan type %T", typeName, src)
	}
}
