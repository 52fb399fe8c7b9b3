package state

import (
	"math"
	"path/filepath"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/paystation/currency"
	"github.com/temoto/paystation/helpers"
	"github.com/temoto/paystation/internal/paystation"
	"github.com/temoto/paystation/log2"
)

type Config struct {
	// includeSeen contains normalized paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Log struct {
		Level string `hcl:"level"`
	} `hcl:"log"`

	Money struct {
		RateCents   int    `hcl:"rate_cents"`
		RateMinutes int    `hcl:"rate_minutes"`
		CancelTally string `hcl:"cancel_tally"`
	} `hcl:"money"`

	Receipt struct {
		QR       bool `hcl:"qr"`
		QRBorder bool `hcl:"qr_border"`
	} `hcl:"receipt"`
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

// Rate returns configured rate, paystation.DefaultRate if both values are unset.
func (c *Config) Rate() paystation.Rate {
	if c.Money.RateCents == 0 && c.Money.RateMinutes == 0 {
		return paystation.DefaultRate
	}
	return paystation.Rate{
		Cents:   currency.Amount(c.Money.RateCents),
		Minutes: c.Money.RateMinutes,
	}
}

func (c *Config) Validate() error {
	errs := make([]error, 0, 3)
	if c.Money.RateCents < 0 || int64(c.Money.RateCents) > math.MaxUint32 {
		errs = append(errs, errors.NotValidf("config: money.rate_cents=%d", c.Money.RateCents))
	} else if err := c.Rate().Validate(); err != nil {
		errs = append(errs, errors.Annotate(err, "config: money"))
	}
	if _, err := paystation.ParseTallyMode(c.Money.CancelTally); err != nil {
		errs = append(errs, errors.Annotate(err, "config: money"))
	}
	if _, err := log2.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, errors.Annotate(err, "config: log"))
	}
	return helpers.FoldErrors(errs)
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

// ReadConfig reads and merges sources in order, later values override earlier.
// Relative includes in OS files are resolved against directory of the first name.
func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		return nil, errors.Errorf("code error ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	if len(errs) == 0 {
		errs = append(errs, c.Validate())
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
