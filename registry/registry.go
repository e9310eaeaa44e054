// Package registry loads command catalogs: a menu tree of commands and their
// parameter layouts, described in YAML.
package registry

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	_ "embed"

	"github.com/BertoldVdb/devtrial/trial"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type enumDef struct {
	Name  string `yaml:"name"`
	Value uint64 `yaml:"value"`
}

type fieldDef struct {
	Name    string    `yaml:"name"`
	Kind    string    `yaml:"kind"`
	Width   int       `yaml:"width"`
	Min     *uint64   `yaml:"min"`
	Max     *uint64   `yaml:"max"`
	Hex     bool      `yaml:"hex"`
	Values  []enumDef `yaml:"values"`
	Charset string    `yaml:"charset"`
	MaxLen  int       `yaml:"max_len"`
	Fixed   bool      `yaml:"fixed"`
	Default string    `yaml:"default"`
}

type commandDef struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Opcode    uint8      `yaml:"opcode"`
	TimeoutMs int        `yaml:"timeout_ms"`
	Fields    []fieldDef `yaml:"fields"`
}

type menuDef struct {
	Title string    `yaml:"title"`
	Items []itemDef `yaml:"items"`
}

type itemDef struct {
	Menu    *menuDef    `yaml:"menu"`
	Command *commandDef `yaml:"command"`
}

// Catalog is a validated menu tree with an index of its commands.
type Catalog struct {
	Root *trial.MenuNode

	commands map[string]*trial.Command
	order    []*trial.Command
}

func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Load(r io.Reader) (*Catalog, error) {
	var root menuDef
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}

	c := &Catalog{
		commands: make(map[string]*trial.Command),
	}

	var err error
	c.Root, err = c.buildMenu(&root, root.Title)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) buildMenu(def *menuDef, path string) (*trial.MenuNode, error) {
	if strings.TrimSpace(def.Title) == "" {
		return nil, fmt.Errorf("%w: menu without title below %q", ErrorInvalidItem, path)
	}
	if len(def.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrorEmptyMenu, path)
	}

	node := &trial.MenuNode{
		Title: def.Title,
	}
	for i, m := range def.Items {
		if (m.Menu == nil) == (m.Command == nil) {
			return nil, fmt.Errorf("%w: %s entry %d", ErrorInvalidItem, path, i+1)
		}

		if m.Menu != nil {
			sub, err := c.buildMenu(m.Menu, path+" / "+m.Menu.Title)
			if err != nil {
				return nil, err
			}
			node.Items = append(node.Items, trial.MenuItem{Menu: sub})
			continue
		}

		cmd, err := buildCommand(m.Command)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if _, ok := c.commands[cmd.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrorDuplicateCommand, cmd.ID)
		}
		c.commands[cmd.ID] = cmd
		c.order = append(c.order, cmd)
		node.Items = append(node.Items, trial.MenuItem{Command: cmd})
	}

	return node, nil
}

func buildCommand(def *commandDef) (*trial.Command, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("%w: command %q without id", ErrorInvalidCommand, def.Name)
	}
	if def.TimeoutMs < 0 {
		return nil, fmt.Errorf("%w: %s: negative timeout", ErrorInvalidCommand, def.ID)
	}

	cmd := &trial.Command{
		ID:      def.ID,
		Name:    def.Name,
		Opcode:  def.Opcode,
		Timeout: time.Duration(def.TimeoutMs) * time.Millisecond,
	}
	if cmd.Name == "" {
		cmd.Name = cmd.ID
	}

	seen := make(map[string]bool)
	for _, m := range def.Fields {
		spec, err := buildField(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", def.ID, err)
		}

		key := strings.ToLower(spec.Name)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s: duplicate field %s", ErrorInvalidCommand, def.ID, spec.Name)
		}
		seen[key] = true

		cmd.Fields = append(cmd.Fields, spec)
	}

	return cmd, nil
}

func buildField(def fieldDef) (trial.FieldSpec, error) {
	kind, err := trial.ParseFieldKind(def.Kind)
	if err != nil {
		return trial.FieldSpec{}, fmt.Errorf("%s: %w", def.Name, err)
	}

	spec := trial.FieldSpec{
		Name:    def.Name,
		Kind:    kind,
		Width:   def.Width,
		Hex:     def.Hex,
		Charset: def.Charset,
		MaxLen:  def.MaxLen,
		Fixed:   def.Fixed,
		Default: def.Default,
	}

	if def.Min != nil || def.Max != nil {
		spec.Bounded = true
		if def.Min != nil {
			spec.Min = *def.Min
		}
		spec.Max = ^uint64(0)
		if def.Max != nil {
			spec.Max = *def.Max
		} else if w := def.Width; w > 0 && w < 8 {
			spec.Max = 1<<(8*uint(w)) - 1
		} else if w == 0 {
			spec.Max = 0xFFFFFFFF
		}
	}

	for _, m := range def.Values {
		spec.Values = append(spec.Values, trial.EnumValue{Name: m.Name, Value: m.Value})
	}

	if err := spec.Validate(); err != nil {
		return trial.FieldSpec{}, err
	}
	return spec, nil
}

func (c *Catalog) Lookup(id string) (*trial.Command, bool) {
	cmd, ok := c.commands[id]
	return cmd, ok
}

// Commands returns all commands in menu order.
func (c *Catalog) Commands() []*trial.Command {
	return c.order
}
