package debt

import (
	"fmt"
	"sort"
	"strings"
)

// Strategy selects which debt receives the extra payment each month.
type Strategy int

const (
	// Avalanche directs the extra payment to the highest-rate unpaid debt.
	Avalanche Strategy = iota
	// Snowball directs the extra payment to the smallest unpaid balance.
	Snowball
	// Minimum pays only the minimum on every debt.
	Minimum
)

var strategyNames = map[Strategy]string{
	Avalanche: "avalanche",
	Snowball:  "snowball",
	Minimum:   "minimum",
}

// Strategies lists every strategy in presentation order.
var Strategies = []Strategy{Avalanche, Snowball, Minimum}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps a strategy name to its Strategy. An empty name selects Avalanche.
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return Avalanche, nil
	}
	for s, n := range strategyNames {
		if n == normalized {
			return s, nil
		}
	}
	return Avalanche, fmt.Errorf("unknown payoff strategy %q (expected avalanche, snowball or minimum)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[s]; !ok {
		return nil, fmt.Errorf("invalid payoff strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// less reports whether a should be paid before b under s. Ties are left to
// the caller's ordering.
func (s Strategy) less(a, b *account) bool {
	switch s {
	case Avalanche:
		return a.rate > b.rate
	case Snowball:
		return a.balance < b.balance
	default:
		return false
	}
}

// target re-derives the debt that receives the extra payment from the live
// balances. The first unpaid account in working order wins ties.
func (s Strategy) target(accounts []*account) *account {
	if s == Minimum {
		return nil
	}
	var best *account
	for _, a := range accounts {
		if a.balance <= 0 {
			continue
		}
		if best == nil || s.less(a, best) {
			best = a
		}
	}
	return best
}

func sortAccounts(accounts []*account, s Strategy) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return s.less(accounts[i], accounts[j])
	})
}
