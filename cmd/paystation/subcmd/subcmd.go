// Support sub-commands in paystation application.
// It's simple but fine so far.
package subcmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/temoto/paystation/internal/state"
	"github.com/temoto/paystation/log2"
)

type Mod struct {
	Name string
	Main func(context.Context, *state.Config) error
	// SkipConfig modules run with zero Config, config file is not required.
	SkipConfig bool
}

func (self *Mod) ReadConfig(log *log2.Log, fs state.FullReader, name string) (*state.Config, error) {
	if self.SkipConfig {
		return &state.Config{}, nil
	}
	return state.ReadConfig(log, fs, name)
}

func Parse(command string, modules []Mod) (*Mod, error) {
	if command == "" {
		return nil, fmt.Errorf("empty command")
	}

	var found *Mod
	for i := range modules {
		m := &modules[i]
		if m.Name == "" {
			panic(fmt.Sprintf("code error Name='' module=%#v", m))
		}
		if command == m.Name {
			found = m
			break
		}
	}
	if found == nil {
		return nil, errors.NotFoundf("command='%s' (known: %s)", command, Names(modules))
	}
	return found, nil
}

func Names(modules []Mod) string {
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// SdNotify reports state to systemd, false when not running under systemd.
func SdNotify(s string) (bool, error) {
	ok, err := daemon.SdNotify(false, s)
	return ok, errors.Annotate(err, "sdnotify")
}
