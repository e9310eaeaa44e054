package trial

import (
	"fmt"
	"strings"
)

// Session is the interactive controller: it walks the menu stack and runs
// the parameter, trial and result stages of a selected command.
type Session struct {
	Console      *Console
	Invoker      *Invoker
	Decoder      Decoder
	Renderer     HexRenderer
	BytesPerLine int

	LogFunc LogFunc
}

func (s *Session) log(level int, format string, param ...interface{}) {
	if s.LogFunc != nil {
		s.LogFunc(level, format, param...)
	}
}

// Run shows root and returns when it is popped. A closed input ends the
// session with ErrorInputClosed.
func (s *Session) Run(root *MenuNode) error {
	stack := []*MenuNode{root}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		s.renderMenu(stack)

		n, ok, err := s.Console.Choose(len(top.Items))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		item := top.Items[n-1]
		if item.Menu != nil {
			stack = append(stack, item.Menu)
		} else if item.Command != nil {
			if err := s.RunCommand(item.Command, top.Title); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Session) renderMenu(stack []*MenuNode) {
	c := s.Console
	top := stack[len(stack)-1]

	c.Begin(top.Title)
	for i, m := range top.Items {
		c.Option(i+1, "%s", m.Label())
	}
	if len(stack) == 1 {
		c.Option(0, "Exit.")
	} else {
		c.Option(0, "Return to %s menu.", stack[len(stack)-2].Title)
	}
}

// RunCommand runs the parameter and result stages of cmd until the operator
// returns to the menu titled parent.
func (s *Session) RunCommand(cmd *Command, parent string) error {
	params := NewParameterSet(cmd.Fields)
	s.log(1, "Selected %s", cmd.ID)

	for {
		submit, err := s.editParameters(cmd, params, parent)
		if err != nil || !submit {
			return err
		}

		result, err := s.Invoker.Invoke(cmd, params)
		if err != nil {
			return err
		}

		b := &Browser{
			Console:      s.Console,
			Invoker:      s.Invoker,
			Decoder:      s.Decoder,
			Renderer:     s.Renderer,
			BytesPerLine: s.BytesPerLine,
			Parent:       parent,
		}

		state, err := b.Run(cmd, params, result)
		if err != nil {
			return err
		}
		if state == StateBack {
			return nil
		}
	}
}

func (s *Session) editParameters(cmd *Command, params *ParameterSet, parent string) (bool, error) {
	c := s.Console

	for {
		c.Begin(fmt.Sprintf("Parameters for %s command:", cmd.Name))
		params.Display(c.Writer())
		send := params.Len() + 1
		c.Option(send, "Send command with these parameters.")
		c.Option(0, "Return to %s menu.", parent)

		n, ok, err := c.Choose(send)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}

		switch {
		case n == 0:
			return false, nil
		case n == send:
			if params.IsReady() {
				return true, nil
			}
		default:
			if err := s.editField(params, n-1); err != nil {
				return false, err
			}
		}
	}
}

func (s *Session) editField(params *ParameterSet, index int) error {
	c := s.Console
	spec := params.Spec(index)

	line, err := c.ReadLine(fmt.Sprintf("%s (%s) [%s]: ", spec.Name, spec.Hint(), spec.Format(params.Value(index))))
	if err != nil {
		return err
	}
	if strings.TrimSpace(line) == "" {
		return nil
	}

	ok, err := params.EditField(index, line)
	if err != nil {
		return err
	}
	if !ok {
		c.Warnf("%q is not a valid %s for %s, keeping %s. ", line, spec.Kind, spec.Name, spec.Format(params.Value(index)))
		return c.Acknowledge()
	}
	return nil
}
