package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BertoldVdb/devtrial/trial"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "Vendor commands", c.Root.Title)
	assert.Len(t, c.Commands(), 15)

	cmd, ok := c.Lookup("hldtst.read-dvd-raw")
	require.True(t, ok)
	assert.Equal(t, byte(0xE7), cmd.Opcode)
	assert.Equal(t, 30*time.Second, cmd.Timeout)

	cmd, ok = c.Lookup("plextor.read-eeprom")
	require.True(t, ok)
	require.Len(t, cmd.Fields, 1)
	assert.True(t, cmd.Fields[0].Hex)
	assert.Equal(t, uint64(0x3F), cmd.Fields[0].Max)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)

	seen := 0
	err = c.Root.Walk(func(path []*trial.MenuNode, cmd *trial.Command) error {
		assert.Same(t, c.Commands()[seen], cmd)
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 15, seen)
}

func TestDefaultCatalogParameterSets(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	cmd, _ := c.Lookup("fujitsu.display")
	p := trial.NewParameterSet(cmd.Fields)
	assert.Equal(t, []byte{0, 0, 'D', 'E', 'V', 'T', 'R', 'I', 'A', 'L', 0, 0, 0, 0, 0, 0, 0, 0}, p.Encode())

	cmd, _ = c.Lookup("plextor.set-gigarec")
	p = trial.NewParameterSet(cmd.Fields)
	ok, err := p.Set("Ratio", "0.6")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{0x86}, p.Encode())
}

const smallCatalog = `
title: Root
items:
  - command:
      id: root.ping
      opcode: 0x01
  - menu:
      title: Tools
      items:
        - command:
            id: tools.peek
            name: PEEK
            opcode: 0x10
            timeout_ms: 250
            fields:
              - name: Address
                kind: uint
                width: 2
                hex: true
                min: 0x10
              - name: Mode
                kind: enum
                values:
                  - name: Byte
                    value: 1
                  - name: Word
                    value: 2
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(smallCatalog))
	require.NoError(t, err)

	ping := &trial.Command{ID: "root.ping", Name: "root.ping", Opcode: 0x01}
	peek := &trial.Command{
		ID:      "tools.peek",
		Name:    "PEEK",
		Opcode:  0x10,
		Timeout: 250 * time.Millisecond,
		Fields: []trial.FieldSpec{
			{Name: "Address", Kind: trial.KindUint, Width: 2, Hex: true, Bounded: true, Min: 0x10, Max: 0xFFFF},
			{Name: "Mode", Kind: trial.KindEnum, Values: []trial.EnumValue{{Name: "Byte", Value: 1}, {Name: "Word", Value: 2}}},
		},
	}
	want := &trial.MenuNode{
		Title: "Root",
		Items: []trial.MenuItem{
			{Command: ping},
			{Menu: &trial.MenuNode{Title: "Tools", Items: []trial.MenuItem{{Command: peek}}}},
		},
	}

	if diff := cmp.Diff(want, c.Root); diff != "" {
		t.Errorf("menu tree mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Commands(), 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{
			name: "empty menu",
			yaml: "title: Root\nitems: []\n",
			err:  ErrorEmptyMenu,
		},
		{
			name: "menu and command",
			yaml: "title: Root\nitems:\n  - command: {id: a}\n    menu: {title: X, items: [{command: {id: b}}]}\n",
			err:  ErrorInvalidItem,
		},
		{
			name: "neither menu nor command",
			yaml: "title: Root\nitems:\n  - {}\n",
			err:  ErrorInvalidItem,
		},
		{
			name: "duplicate id",
			yaml: "title: Root\nitems:\n  - command: {id: a}\n  - menu: {title: X, items: [{command: {id: a}}]}\n",
			err:  ErrorDuplicateCommand,
		},
		{
			name: "missing id",
			yaml: "title: Root\nitems:\n  - command: {name: A}\n",
			err:  ErrorInvalidCommand,
		},
		{
			name: "duplicate field",
			yaml: "title: Root\nitems:\n  - command: {id: a, fields: [{name: X, kind: bool}, {name: x, kind: bool}]}\n",
			err:  ErrorInvalidCommand,
		},
		{
			name: "unknown kind",
			yaml: "title: Root\nitems:\n  - command: {id: a, fields: [{name: X, kind: float}]}\n",
			err:  trial.ErrorInvalidField,
		},
		{
			name: "bad default",
			yaml: "title: Root\nitems:\n  - command: {id: a, fields: [{name: X, kind: uint, width: 1, default: \"300\"}]}\n",
			err:  trial.ErrorInvalidField,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.yaml))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("title: Root\nitems:\n  - command: {id: a, opcod: 1}\n"))
	assert.Error(t, err)
}
