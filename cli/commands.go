package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BertoldVdb/devtrial/trial"
)

type ListCommandsCmd struct {
	Fields bool `optional help:"Also show the parameters of each command."`
}

func (l *ListCommandsCmd) Run(c *Context) error {
	printMenu(os.Stdout, c.catalog.Root, 0, l.Fields)
	return nil
}

func printMenu(w io.Writer, n *trial.MenuNode, depth int, fields bool) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s\n", indent, n.Title)

	for _, m := range n.Items {
		if m.Menu != nil {
			printMenu(w, m.Menu, depth+1, fields)
			continue
		}

		cmd := m.Command
		fmt.Fprintf(w, "%s  %-32s %s (opcode 0x%02X)\n", indent, cmd.ID, cmd.Name, cmd.Opcode)
		if !fields {
			continue
		}
		for _, f := range cmd.Fields {
			fmt.Fprintf(w, "%s      %s: %s, default %s\n", indent, f.Name, f.Hint(), f.Format(f.DefaultValue()))
		}
	}
}
