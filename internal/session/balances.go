package session

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Balances are the player's server-side balances, kept exactly as the
// server formatted them.
type Balances struct {
	Eggs string
	USDT string
}

// IsZero reports whether no balance has been received yet.
func (b Balances) IsZero() bool {
	return b.Eggs == "" && b.USDT == ""
}

// Earned returns how much USDT was gained since the from balances.
// Missing values count as zero.
func (b Balances) Earned(from Balances) (decimal.Decimal, error) {
	now, err := parseAmount(b.USDT)
	if err != nil {
		return decimal.Zero, fmt.Errorf("session: current usdt: %w", err)
	}
	before, err := parseAmount(from.USDT)
	if err != nil {
		return decimal.Zero, fmt.Errorf("session: starting usdt: %w", err)
	}
	return now.Sub(before), nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
