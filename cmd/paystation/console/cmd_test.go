package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/paystation/helpers/cli"
	"github.com/temoto/paystation/internal/state"
	"github.com/temoto/paystation/log2"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestExecutor(t *testing.T) {
	t.Parallel()

	type Case struct {
		name   string
		config string
		input  string
		expect string
	}
	cases := []Case{
		{"insert-display", "", `
insert 5
i 10
25
display`, `display minutes=2
display minutes=6
display minutes=16
display minutes=16 cents=40 state=accumulating
`},

		{"buy", "", `
insert 5 10 25
buy
display`, `display minutes=2
display minutes=6
display minutes=16
receipt minutes=16 issued=1970-01-01T00:00:00Z until=1970-01-01T00:16:00Z
display minutes=0 cents=0 state=idle
`},

		{"cancel", "", `
insert 10
insert 10
insert 5
cancel
cancel
insert 10
insert 25`, `display minutes=4
display minutes=8
display minutes=10
returned 5c:1 10c:2
returned nothing
display minutes=4
display minutes=14
`},

		{"cancel-presence", `money { cancel_tally = "presence" }`, `
insert 10 10 5
cancel`, `display minutes=4
display minutes=8
display minutes=10
returned 5c:1 10c:1
`},

		{"empty", "", `
empty
insert 25
insert 25
empty
display`, `collected cents=0
display minutes=10
display minutes=20
collected cents=50
display minutes=0 cents=0 state=idle
`},

		{"errors", "", `
insert 17
insert
insert five
dance
display`, `error: coin=17: invalid coin
error: insert: coin value required
error: insert: coin='five': strconv.Atoi: parsing "five": invalid syntax
error: command='dance' not supported
display minutes=0 cents=0 state=idle
`},

		{"quit", "", `
insert 25
quit
buy`, `display minutes=10
`},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			ctx, g, _ := state.NewTestContext(t, c.config)
			buf := bytes.NewBuffer(nil)
			exec := newExecutor(ctx, buf)
			require.NoError(t, cli.ExecReader(strings.NewReader(c.input), g.Alive.StopChan(), exec))
			assert.Equal(t, c.expect, buf.String())
			assert.True(t, g.StopWait(time.Second))
		})
	}
}

func TestExecutorReceiptQR(t *testing.T) {
	t.Parallel()

	ctx, g, _ := state.NewTestContext(t, `receipt { qr = true }`)
	buf := bytes.NewBuffer(nil)
	exec := newExecutor(ctx, buf)
	exec("insert 25")
	exec("buy")
	lines := strings.Split(buf.String(), "\n")
	require.True(t, len(lines) > 4)
	assert.Equal(t, "receipt minutes=10 issued=1970-01-01T00:00:00Z until=1970-01-01T00:10:00Z", lines[1])
	assert.Contains(t, buf.String(), "█")
	g.Stop()
	<-g.Alive.WaitChan()
}

func TestExecutorHelp(t *testing.T) {
	t.Parallel()

	ctx, g, _ := state.NewTestContext(t, "")
	buf := bytes.NewBuffer(nil)
	newExecutor(ctx, buf)("help")
	assert.Equal(t, usage, buf.String())
	g.Stop()
	<-g.Alive.WaitChan()
}

func TestExecutorNotInitialized(t *testing.T) {
	t.Parallel()

	ctx, g := state.NewContext(log2.NewTest(t, log2.LDebug), nil)
	for _, line := range []string{"insert 25", "display", "buy", "cancel", "empty"} {
		line := line
		t.Run(line, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			err := execLine(ctx, buf, line)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "paystation not initialized")
			assert.Equal(t, "", buf.String())

			buf.Reset()
			newExecutor(ctx, buf)(line)
			assert.Equal(t, "error: code error paystation not initialized\n", buf.String())
		})
	}
	g.Stop()
	<-g.Alive.WaitChan()
}

func TestFormatCoins(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "nothing", formatCoins(nil))
}
