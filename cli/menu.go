package main

import (
	"errors"
	"os"

	"github.com/BertoldVdb/devtrial/trial"
	"github.com/mattn/go-isatty"
)

type MenuCmd struct {
}

func (m *MenuCmd) Run(c *Context) error {
	console := trial.NewConsole(os.Stdin, os.Stdout, trial.ConsoleConfig{
		NoColor: CLI.NoColor,
		Clear:   !CLI.NoClear && isatty.IsTerminal(os.Stdout.Fd()),
	})

	err := c.session(console).Run(c.catalog.Root)
	if errors.Is(err, trial.ErrorInputClosed) {
		return nil
	}
	return err
}
