package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/juju/errors"
	"github.com/kelseyhightower/envconfig"
	"github.com/mattn/go-isatty"
	"github.com/temoto/paystation/cmd/paystation/console"
	"github.com/temoto/paystation/cmd/paystation/subcmd"
	"github.com/temoto/paystation/internal/state"
	"github.com/temoto/paystation/log2"
)

var BuildVersion string = "unknown" // set by ldflags -X

var log = log2.NewStderr(log2.LInfo)

var modules = []subcmd.Mod{
	console.Mod,
	{Name: "version", Main: versionMain, SkipConfig: true},
}

// Environment overrides defaults, command line flags override environment.
type env struct {
	Config string `default:"paystation.hcl"`
	Debug  bool
}

func main() {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.SetFlags(log2.LInteractiveFlags)
	} else {
		log.SetFlags(log2.LServiceFlags)
	}

	var e env
	if err := envconfig.Process("paystation", &e); err != nil {
		log.Fatal(errors.ErrorStack(errors.Annotate(err, "environment")))
	}
	if e.Debug {
		log.SetLevel(log2.LDebug)
	}

	flagset := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := flagset.String("config", e.Config, "config file (env PAYSTATION_CONFIG)")
	flagset.Usage = func() {
		fmt.Fprintf(flagset.Output(), "usage: %s [flags] [%s]\n", os.Args[0], subcmd.Names(modules))
		flagset.PrintDefaults()
	}
	_ = flagset.Parse(os.Args[1:])

	command := flagset.Arg(0)
	if command == "" {
		command = console.Mod.Name
	}
	mod, err := subcmd.Parse(command, modules)
	if err != nil {
		flagset.Usage()
		log.Fatal(err)
	}

	config, err := mod.ReadConfig(log, state.NewOsFullReader(), *flagConfig)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	log.Debugf("config=%+v", config)

	ctx, g := state.NewContext(log, nil)
	g.BuildVersion = BuildVersion
	if e.Debug {
		// env wins over config log.level
		config.Log.Level = "debug"
	}

	if err := mod.Main(ctx, config); err != nil {
		g.Fatal(err)
	}
}

func versionMain(ctx context.Context, config *state.Config) error {
	fmt.Printf("paystation version=%s\n", state.GetGlobal(ctx).BuildVersion)
	return nil
}
