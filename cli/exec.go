package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BertoldVdb/devtrial/hexdump"
	"github.com/BertoldVdb/devtrial/sense"
	"github.com/BertoldVdb/devtrial/trial"
)

type ExecCmd struct {
	ID  string   `arg name:"id" help:"Command id, see list-commands."`
	Set []string `arg optional name:"field=value" help:"Parameter assignments, unset fields keep their default."`
}

func (e *ExecCmd) Run(c *Context) error {
	cmd, ok := c.catalog.Lookup(e.ID)
	if !ok {
		return fmt.Errorf("unknown command %q", e.ID)
	}

	params, err := applyAssignments(cmd, e.Set)
	if err != nil {
		return err
	}

	result, err := c.invoker().Invoke(cmd, params)
	if err != nil {
		return err
	}

	printResult(os.Stdout, cmd, params, result, hexdump.New(CLI.NoColor), CLI.BytesPerLine)
	return nil
}

func applyAssignments(cmd *trial.Command, assignments []string) (*trial.ParameterSet, error) {
	params := trial.NewParameterSet(cmd.Fields)
	for _, m := range assignments {
		name, value, found := strings.Cut(m, "=")
		if !found {
			return nil, fmt.Errorf("expected field=value, got %q", m)
		}

		ok, err := params.Set(strings.TrimSpace(name), value)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%q is not a valid value for %s", value, name)
		}
	}
	return params, nil
}

func printResult(w io.Writer, cmd *trial.Command, params *trial.ParameterSet, r *trial.Result, renderer trial.HexRenderer, perLine int) {
	fmt.Fprintf(w, "%s (%s), trial %s\n", cmd.Name, cmd.ID, r.ID)
	params.Display(w)
	fmt.Fprintf(w, "Command took %.3f ms.\n", r.Milliseconds())
	if r.Success {
		fmt.Fprintln(w, "Command succeeded.")
	} else {
		fmt.Fprintln(w, "Command failed.")
	}

	printBuffer(w, "Payload buffer", r.Payload, renderer, perLine)
	printBuffer(w, "Diagnostic buffer", r.Diagnostic, renderer, perLine)

	if r.Diagnostic != nil {
		if text := sense.Decode(r.Diagnostic); text != "" {
			fmt.Fprintf(w, "Decoded diagnostic:\n%s\n", text)
		}
	}
}

func printBuffer(w io.Writer, name string, data []byte, renderer trial.HexRenderer, perLine int) {
	switch {
	case data == nil:
		fmt.Fprintf(w, "%s is not present.\n", name)
	case len(data) == 0:
		fmt.Fprintf(w, "%s is present but empty (0 bytes).\n", name)
	default:
		fmt.Fprintf(w, "%s is %d bytes:\n%s", name, len(data), renderer.Render(data, perLine))
	}
}
