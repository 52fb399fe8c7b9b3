package log2

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog2(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fun  func(t testing.TB, l *Log) string
	}{
		{"caller/debug", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Debugf("coin=%d", 25)
			return formatCallerShort(1) + "debug: coin=25\n"
		}},
		{"caller/info", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Infof("receipt minutes=%d", 16)
			return formatCallerShort(1) + "receipt minutes=16\n"
		}},
		{"caller/error", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Errorf("problem")
			return formatCallerShort(1) + "error: problem\n"
		}},
		{"error", func(t testing.TB, l *Log) string {
			l.SetFlags(0)
			l.Error(fmt.Errorf("one particular issue"))
			return "error: one particular issue\n"
		}},
		{"prefix", func(t testing.TB, l *Log) string {
			l.SetFlags(0)
			l.SetPrefix("station ")
			l.Infof("cents=%d", 40)
			return "station cents=40\n"
		}},
		{"level/skip-debug", func(t testing.TB, l *Log) string {
			l.SetFlags(0)
			l.SetLevel(LInfo)
			l.Debugf("hidden")
			l.Info("shown")
			return "shown\n"
		}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name+"/logger=nil", func(t *testing.T) {
			c.fun(t, nil)
		})
		t.Run(c.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			l := NewWriter(buf, LAll)
			expect := c.fun(t, l)
			assert.Equal(t, expect, buf.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input  string
		expect Level
		err    bool
	}{
		{"", LInfo, false},
		{"info", LInfo, false},
		{"Debug", LDebug, false},
		{"error", LError, false},
		{"all", LAll, false},
		{"loud", LInfo, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.input, func(t *testing.T) {
			l, err := ParseLevel(c.input)
			if c.err {
				require.Error(t, err)
				assert.True(t, errors.IsNotValid(err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, c.expect, l)
		})
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	l := NewWriter(ioutil.Discard, LAll)
	assert.Nil(t, l)
	assert.False(t, l.Enabled(LError))
}

func TestContextValueLogger(t *testing.T) {
	t.Parallel()
	l := NewWriter(bytes.NewBuffer(nil), LInfo)
	ctx := context.WithValue(context.Background(), ContextKey, l)
	assert.Equal(t, l, ContextValueLogger(ctx))
	assert.Nil(t, ContextValueLogger(context.Background()))
	bad := context.WithValue(context.Background(), ContextKey, "log")
	assert.Panics(t, func() { ContextValueLogger(bad) })
}

func callerShort(depth int) (file string, line int) {
	var ok bool
	_, file, line, ok = runtime.Caller(depth)
	if !ok {
		file = "???"
		line = 0
	}

	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	file = short

	return
}

func formatCallerShort(depth int) string {
	file, line := callerShort(depth + 1)
	return fmt.Sprintf("%s:%d: ", file, line-1)
}
