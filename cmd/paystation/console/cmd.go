// Package console operates pay station from terminal or script on stdin.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/paystation/cmd/paystation/subcmd"
	"github.com/temoto/paystation/helpers/cli"
	"github.com/temoto/paystation/internal/paystation"
	"github.com/temoto/paystation/internal/state"
	"github.com/temoto/paystation/log2"
)

const modName = "console"

var Mod = subcmd.Mod{Name: modName, Main: Main}

const usage = `commands, one per line:
- insert N   insert coin of N cents (5, 10, 25); aliases: i N, N
- display    show purchasable minutes and inserted cents
- buy        print receipt, start new transaction
- cancel     return inserted coins
- empty      collect inserted cents
- help
- quit
`

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	if err := g.Init(ctx, config); err != nil {
		return errors.Annotate(err, modName)
	}
	if _, err := subcmd.SdNotify("READY=1"); err != nil {
		g.Log.Error(err)
	}
	g.Log.Debugf("console init complete, running")

	cli.MainLoop(modName, g.Alive.StopChan(), newExecutor(ctx, os.Stdout), newCompleter(ctx))
	g.Stop()
	return nil
}

var suggests = []prompt.Suggest{
	{Text: "insert", Description: "insert coin: insert 25"},
	{Text: "display", Description: "minutes and cents"},
	{Text: "buy", Description: "print receipt"},
	{Text: "cancel", Description: "return coins"},
	{Text: "empty", Description: "collect cents"},
	{Text: "help"},
	{Text: "quit"},
}

func newCompleter(ctx context.Context) func(d prompt.Document) []prompt.Suggest {
	return func(d prompt.Document) []prompt.Suggest {
		if strings.Contains(d.TextBeforeCursor(), " ") {
			return nil
		}
		return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
	}
}

func newExecutor(ctx context.Context, w io.Writer) func(string) {
	log := log2.ContextValueLogger(ctx)
	return func(line string) {
		if err := execLine(ctx, w, line); err != nil {
			log.Debugf("console line='%s' err=%v", line, err)
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
}

func execLine(ctx context.Context, w io.Writer, line string) error {
	g := state.GetGlobal(ctx)
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	command, args := strings.ToLower(parts[0]), parts[1:]

	if _, err := strconv.Atoi(command); err == nil {
		command, args = "insert", parts
	}

	switch command {
	case "insert", "i":
		if len(args) == 0 {
			return errors.Errorf("insert: coin value required")
		}
		for _, arg := range args {
			cents, err := strconv.Atoi(arg)
			if err != nil {
				return errors.Annotatef(err, "insert: coin='%s'", arg)
			}
			err = g.WithStation(func(ps *paystation.PayStation) error {
				if err := ps.AddPayment(cents); err != nil {
					return err
				}
				fmt.Fprintf(w, "display minutes=%d\n", ps.ReadDisplay())
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil

	case "display", "d":
		return g.WithStation(func(ps *paystation.PayStation) error {
			fmt.Fprintf(w, "display minutes=%d cents=%d state=%s\n", ps.ReadDisplay(), ps.ReadDisplayInCents(), ps.State())
			return nil
		})

	case "buy":
		var r paystation.Receipt
		err := g.WithStation(func(ps *paystation.PayStation) error {
			r = ps.Buy()
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, r.String())
		if g.Config.Receipt.QR {
			qr, err := r.QR(g.Config.Receipt.QRBorder)
			if err != nil {
				return err
			}
			fmt.Fprint(w, qr)
		}
		return nil

	case "cancel":
		var returned map[paystation.Coin]uint
		err := g.WithStation(func(ps *paystation.PayStation) error {
			returned = ps.Cancel()
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "returned %s\n", formatCoins(returned))
		return nil

	case "empty":
		var total int
		err := g.WithStation(func(ps *paystation.PayStation) error {
			total = int(ps.Empty())
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "collected cents=%d\n", total)
		return nil

	case "help", "?":
		fmt.Fprint(w, usage)
		return nil

	case "quit", "exit":
		g.Stop()
		return nil
	}
	return errors.NotSupportedf("command='%s'", command)
}

func formatCoins(m map[paystation.Coin]uint) string {
	if len(m) == 0 {
		return "nothing"
	}
	parts := make([]string, 0, len(m))
	for _, c := range paystation.Coins() {
		if n, ok := m[c]; ok {
			parts = append(parts, fmt.Sprintf("%s:%d", c, n))
		}
	}
	return strings.Join(parts, " ")
}
