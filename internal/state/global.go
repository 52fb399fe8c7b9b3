package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/paystation/helpers"
	"github.com/temoto/paystation/internal/paystation"
	"github.com/temoto/paystation/log2"
)

type Global struct {
	Alive        *alive.Alive
	BuildVersion string
	Clock        clock.Clock
	Config       *Config
	Log          *log2.Log

	// stationLk serializes all operations on station, one customer at a time
	stationLk sync.Mutex
	station   *paystation.PayStation
}

const ContextKey = "run/state-global"

func NewContext(log *log2.Log, clk clock.Clock) (context.Context, *Global) {
	if log == nil {
		panic("code error NewContext() log=nil")
	}
	if clk == nil {
		clk = clock.New()
	}

	g := &Global{
		Alive: alive.NewAlive(),
		Clock: clk,
		Log:   log,
	}
	ctx := context.Background()
	ctx = context.WithValue(ctx, log2.ContextKey, log)
	ctx = context.WithValue(ctx, ContextKey, g)
	return ctx, g
}

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return errors.Annotate(err, "state.Init")
	}
	g.Config = cfg

	// empty log.level keeps level chosen by caller
	if cfg.Log.Level != "" {
		level, _ := log2.ParseLevel(cfg.Log.Level)
		g.Log.SetLevel(level)
	}
	g.Log.Debugf("build version=%s", g.BuildVersion)

	tally, _ := paystation.ParseTallyMode(cfg.Money.CancelTally)
	station, err := paystation.New(paystation.Config{
		Rate:  cfg.Rate(),
		Tally: tally,
		Clock: g.Clock,
		Log:   g.Log,
	})
	if err != nil {
		return errors.Annotate(err, "state.Init")
	}
	g.stationLk.Lock()
	g.station = station
	g.stationLk.Unlock()
	g.Log.Debugf("paystation rate=%d/%dc tally=%s", cfg.Rate().Minutes, cfg.Rate().Cents, tally)
	return nil
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Fatal(err)
	}
}

// WithStation runs f holding exclusive access to pay station.
func (g *Global) WithStation(f func(*paystation.PayStation) error) error {
	return helpers.WithLockError(&g.stationLk, func() error {
		if g.station == nil {
			return errors.Errorf("code error paystation not initialized")
		}
		return f(g.station)
	})
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Error(errors.ErrorStack(err))
	}
}

func (g *Global) Fatal(err error, args ...interface{}) {
	if err != nil {
		g.Error(err, args...)
		g.StopWait(5 * time.Second)
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

func (g *Global) Stop() {
	g.Alive.Stop()
}

func (g *Global) StopWait(timeout time.Duration) bool {
	g.Alive.Stop()
	select {
	case <-g.Alive.WaitChan():
		return true
	case <-g.Clock.After(timeout):
		return false
	}
}
