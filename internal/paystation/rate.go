package paystation

import (
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/paystation/currency"
)

// Rate grants Minutes of parking for every full Cents inserted.
type Rate struct {
	Cents   currency.Amount
	Minutes int
}

// DefaultRate is 2 minutes per 5 cents.
var DefaultRate = Rate{Cents: 5, Minutes: 2}

func (r Rate) Validate() error {
	if r.Cents == 0 {
		return errors.NotValidf("rate cents=0")
	}
	if r.Minutes <= 0 {
		return errors.NotValidf("rate minutes=%d", r.Minutes)
	}
	return nil
}

func (r Rate) MinutesFor(a currency.Amount) int {
	return int(a/r.Cents) * r.Minutes
}

// TallyMode selects how Cancel reports inserted coins.
type TallyMode uint8

const (
	// TallyCount counts every inserted coin.
	TallyCount TallyMode = iota
	// TallyPresence records 1 per denomination seen, no matter how many were inserted.
	// Matches older pay stations that reported coin types rather than counts.
	TallyPresence
)

func ParseTallyMode(s string) (TallyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "count":
		return TallyCount, nil
	case "presence":
		return TallyPresence, nil
	}
	return TallyCount, errors.NotValidf("cancel_tally=%s (count|presence)", s)
}

func (m TallyMode) String() string {
	switch m {
	case TallyCount:
		return "count"
	case TallyPresence:
		return "presence"
	}
	return "TallyMode(?)"
}
