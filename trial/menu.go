package trial

import "time"

// Command is a terminal menu entry: a named opcode with its parameter layout.
// A zero Timeout uses the session timeout.
type Command struct {
	ID      string
	Name    string
	Opcode  byte
	Fields  []FieldSpec
	Timeout time.Duration
}

// MenuItem is either a nested menu or a command.
type MenuItem struct {
	Menu    *MenuNode
	Command *Command
}

func (m MenuItem) Label() string {
	if m.Menu != nil {
		return m.Menu.Title
	}
	if m.Command != nil {
		return m.Command.Name
	}
	return ""
}

type MenuNode struct {
	Title string
	Items []MenuItem
}

// Walk calls fn for every command below n, depth first in menu order.
func (n *MenuNode) Walk(fn func(path []*MenuNode, cmd *Command) error) error {
	return n.walk([]*MenuNode{n}, fn)
}

func (n *MenuNode) walk(path []*MenuNode, fn func(path []*MenuNode, cmd *Command) error) error {
	for _, m := range n.Items {
		if m.Menu != nil {
			if err := m.Menu.walk(append(path[:len(path):len(path)], m.Menu), fn); err != nil {
				return err
			}
		} else if m.Command != nil {
			if err := fn(path, m.Command); err != nil {
				return err
			}
		}
	}
	return nil
}
