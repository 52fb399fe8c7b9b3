// Package paystation models coin operated parking pay station.
// Overview:
// - customer inserts coins, display shows purchasable minutes
// - buy: receipt for displayed minutes, transaction committed
// - cancel: inserted coins returned, no time granted
// - empty: owner collects inserted cents
// PayStation is not safe for concurrent use, callers serialize access (see state.Global.WithStation).
package paystation

import (
	"github.com/benbjohnson/clock"
	"github.com/juju/errors"
	"github.com/temoto/paystation/currency"
	"github.com/temoto/paystation/log2"
)

type State uint8

const (
	StateIdle State = iota
	StateAccumulating
)

func (s State) String() string {
	if s == StateAccumulating {
		return "accumulating"
	}
	return "idle"
}

// Config zero values select DefaultRate, TallyCount, real clock and no logging.
type Config struct {
	Rate  Rate
	Tally TallyMode
	Clock clock.Clock
	Log   *log2.Log
}

type PayStation struct {
	Log *log2.Log

	clock clock.Clock
	rate  Rate
	tally TallyMode

	insertedSoFar currency.Amount
	timeBought    int
	contents      currency.NominalGroup
}

func New(c Config) (*PayStation, error) {
	if c.Rate == (Rate{}) {
		c.Rate = DefaultRate
	}
	if err := c.Rate.Validate(); err != nil {
		return nil, errors.Annotate(err, "paystation.New")
	}
	switch c.Tally {
	case TallyCount, TallyPresence:
	default:
		return nil, errors.NotValidf("paystation.New tally=%d", c.Tally)
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	self := &PayStation{
		Log:   c.Log,
		clock: c.Clock,
		rate:  c.Rate,
		tally: c.Tally,
	}
	self.contents.SetValid(coinNominalList())
	return self, nil
}

// AddPayment accepts one coin worth `cents`. Rejected coin leaves state unchanged.
func (self *PayStation) AddPayment(cents int) error {
	const tag = "paystation.add-payment"

	coin, err := ParseCoin(cents)
	if err != nil {
		self.Log.Debugf("%s rejected err=%v", tag, err)
		return err
	}
	switch self.tally {
	case TallyPresence:
		err = self.contents.Set(coin.Nominal(), 1)
	default:
		err = self.contents.Add(coin.Nominal(), 1)
	}
	if err != nil {
		return errors.Annotate(err, tag)
	}
	self.insertedSoFar += currency.Amount(coin.Nominal())
	self.timeBought = self.rate.MinutesFor(self.insertedSoFar)
	self.Log.Debugf("%s coin=%s inserted=%s minutes=%d", tag, coin, self.insertedSoFar.Format100I(), self.timeBought)
	return nil
}

// ReadDisplay returns minutes purchasable with inserted coins.
func (self *PayStation) ReadDisplay() int { return self.timeBought }

func (self *PayStation) ReadDisplayInCents() currency.Amount { return self.insertedSoFar }

func (self *PayStation) State() State {
	if self.insertedSoFar == 0 {
		return StateIdle
	}
	return StateAccumulating
}

// Buy commits transaction, returned receipt carries minutes displayed before call.
func (self *PayStation) Buy() Receipt {
	const tag = "paystation.buy"
	r := newReceipt(self.timeBought, self.clock.Now())
	self.Log.Debugf("%s inserted=%s %s", tag, self.insertedSoFar.Format100I(), r.String())
	self.reset()
	return r
}

// Cancel returns coins inserted since last reset. Coins never inserted are absent.
func (self *PayStation) Cancel() map[Coin]uint {
	const tag = "paystation.cancel"
	counts := self.contents.ToMap()
	result := make(map[Coin]uint, len(counts))
	for n, count := range counts {
		result[coinFromNominal(n)] = count
	}
	self.Log.Debugf("%s returned=%s", tag, self.contents.String())
	self.reset()
	return result
}

// Empty returns cents inserted since last reset.
func (self *PayStation) Empty() currency.Amount {
	const tag = "paystation.empty"
	total := self.insertedSoFar
	self.Log.Debugf("%s total=%s", tag, total.Format100I())
	self.reset()
	return total
}

func (self *PayStation) reset() {
	self.insertedSoFar = 0
	self.timeBought = 0
	self.contents.Clear()
}
