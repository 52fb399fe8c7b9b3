package state

import (
	"context"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/temoto/paystation/log2"
)

// NewTestContext returns initialized Global with inline config and mock clock.
func NewTestContext(t testing.TB, confString string) (context.Context, *Global, *clock.Mock) {
	fs := NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	log := log2.NewTest(t, log2.LDebug)
	// log := log2.NewStderr(log2.LDebug) // useful with panics
	mc := clock.NewMock()
	ctx, g := NewContext(log, mc)
	g.BuildVersion = "test"
	g.MustInit(ctx, MustReadConfig(log, fs, "test-inline"))
	return ctx, g, mc
}
