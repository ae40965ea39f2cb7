package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places an amount may carry.
const MoneyScale = 2

// Money is an amount persisted as an integer count of minor units (cents),
// so snapshot arithmetic done in SQL stays exact on every dialect.
// It marshals to JSON the same way decimal.Decimal does.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func MoneyFromMinorUnits(units int64) Money {
	return Money{Decimal: decimal.New(units, -MoneyScale)}
}

// MinorUnits returns the amount in cents.
func (m Money) MinorUnits() int64 {
	return m.Decimal.Shift(MoneyScale).Round(0).IntPart()
}

// FitsMoneyScale reports whether d has no more than MoneyScale decimal places.
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

func (m Money) Value() (driver.Value, error) {
	return m.MinorUnits(), nil
}

func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = Money{Decimal: decimal.Zero}
	case int64:
		*m = MoneyFromMinorUnits(v)
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	default:
		return fmt.Errorf("money: cannot scan %T", src)
	}
	return nil
}

func (m *Money) scanString(s string) error {
	units, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = MoneyFromMinorUnits(units)
	return nil
}
