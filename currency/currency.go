package currency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juju/errors"
)

// Amount is integer counting lowest currency unit, e.g. $1.20 = 120
type Amount uint32

func (self Amount) Format100I() string { return fmt.Sprint(float32(self) / 100) }

// Nominal is value of one coin
type Nominal Amount

var ErrNominalInvalid = errors.New("Nominal is not valid for this group")

// NominalGroup counts coins by nominal. Only nominals passed to SetValid are accepted.
// coin5 : 1
// coin10: 2
// coin25: 0
// total : 25
type NominalGroup struct {
	values map[Nominal]uint
}

func (self *NominalGroup) SetValid(valid []Nominal) {
	self.values = make(map[Nominal]uint, len(valid))
	for _, n := range valid {
		if n != 0 {
			self.values[n] = 0
		}
	}
}

func (self *NominalGroup) Add(n Nominal, count uint) error {
	if _, ok := self.values[n]; !ok {
		return errors.Annotatef(ErrNominalInvalid, "Add(n=%s, c=%d)", Amount(n).Format100I(), count)
	}
	self.values[n] += count
	return nil
}

// Set overwrites stored count for nominal.
func (self *NominalGroup) Set(n Nominal, count uint) error {
	if _, ok := self.values[n]; !ok {
		return errors.Annotatef(ErrNominalInvalid, "Set(n=%s, c=%d)", Amount(n).Format100I(), count)
	}
	self.values[n] = count
	return nil
}

func (self *NominalGroup) Clear() {
	for n := range self.values {
		self.values[n] = 0
	}
}

func (self *NominalGroup) Total() Amount {
	sum := Amount(0)
	for nominal, count := range self.values {
		sum += Amount(nominal) * Amount(count)
	}
	return sum
}

// ToMap returns copy of non-zero counts.
func (self *NominalGroup) ToMap() map[Nominal]uint {
	m := make(map[Nominal]uint, len(self.values))
	for n, c := range self.values {
		if c != 0 {
			m[n] = c
		}
	}
	return m
}

func (self *NominalGroup) String() string {
	parts := make([]string, 0, len(self.values)+1)
	for _, n := range self.sorted() {
		if c := self.values[n]; c > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", Amount(n).Format100I(), c))
		}
	}
	parts = append(parts, fmt.Sprintf("total:%s", self.Total().Format100I()))
	return strings.Join(parts, ",")
}

func (self *NominalGroup) sorted() []Nominal {
	order := make([]Nominal, 0, len(self.values))
	for n := range self.values {
		order = append(order, n)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	return order
}
