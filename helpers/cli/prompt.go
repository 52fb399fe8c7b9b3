package cli

import (
	"bytes"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
)

// MainLoop runs exec for every input line until stdin ends or stopCh is closed.
// Terminal gets interactive prompt with completion, otherwise stdin is read as script.
func MainLoop(tag string, stopCh <-chan struct{}, exec func(line string), complete func(d prompt.Document) []prompt.Suggest) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer signal.Stop(signalCh)
	go func() {
		select {
		case <-signalCh:
			os.Exit(1)
		case <-stopCh:
		}
	}()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		go func() {
			<-stopCh
			// prompt.Run has no way to return
			os.Exit(0)
		}()
		// TODO OptionHistory
		prompt.New(exec, complete, prompt.OptionPrefix(tag+"> ")).Run()
	} else if err := ExecReader(os.Stdin, stopCh, exec); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
}

// ExecReader calls exec for each non-empty line of r.
func ExecReader(r io.Reader, stopCh <-chan struct{}, exec func(line string)) error {
	all, err := ioutil.ReadAll(r)
	if err != nil {
		return errors.Annotate(err, "ExecReader")
	}
	for _, lineb := range bytes.Split(all, []byte{'\n'}) {
		select {
		case <-stopCh:
			return nil
		default:
		}
		line := string(bytes.TrimSpace(lineb))
		if line == "" {
			continue
		}
		exec(line)
	}
	return nil
}
