package paystation

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/temoto/paystation/currency"
)

var ErrInvalidCoin = errors.New("invalid coin")

// Coin is one of accepted denominations.
type Coin uint8

const (
	CoinInvalid Coin = iota
	Nickel
	Dime
	Quarter
)

var coinNominals = [...]currency.Nominal{
	Nickel:  5,
	Dime:    10,
	Quarter: 25,
}

// Coins lists accepted denominations, lowest first.
func Coins() []Coin { return []Coin{Nickel, Dime, Quarter} }

func coinNominalList() []currency.Nominal {
	ns := make([]currency.Nominal, 0, len(coinNominals))
	for _, c := range Coins() {
		ns = append(ns, c.Nominal())
	}
	return ns
}

// ParseCoin maps cent value to denomination.
func ParseCoin(cents int) (Coin, error) {
	for _, c := range Coins() {
		if int(coinNominals[c]) == cents {
			return c, nil
		}
	}
	return CoinInvalid, errors.Annotatef(ErrInvalidCoin, "coin=%d", cents)
}

func coinFromNominal(n currency.Nominal) Coin {
	c, _ := ParseCoin(int(n))
	return c
}

// IsInvalidCoin reports whether err was caused by rejected coin value.
func IsInvalidCoin(err error) bool { return errors.Cause(err) == ErrInvalidCoin }

func (c Coin) Nominal() currency.Nominal {
	if int(c) >= len(coinNominals) {
		return 0
	}
	return coinNominals[c]
}

func (c Coin) Cents() int { return int(c.Nominal()) }

func (c Coin) String() string {
	switch c {
	case Nickel, Dime, Quarter:
		return fmt.Sprintf("%dc", c.Cents())
	}
	return fmt.Sprintf("Coin(%d)", uint8(c))
}
