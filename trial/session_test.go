package trial

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BertoldVdb/devtrial/hexdump"
	"github.com/BertoldVdb/devtrial/sense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenu() *MenuNode {
	count := &Command{
		ID:     "family.count",
		Name:   "COUNT",
		Opcode: 0x42,
		Fields: []FieldSpec{{Name: "Count", Kind: KindUint}},
	}
	nested := &MenuNode{
		Title: "Nested",
		Items: []MenuItem{{Command: &Command{ID: "nested.noop", Name: "NOOP"}}},
	}
	family := &MenuNode{
		Title: "Family",
		Items: []MenuItem{{Command: count}, {Menu: nested}},
	}
	return &MenuNode{
		Title: "Root",
		Items: []MenuItem{{Menu: family}},
	}
}

func testSession(in string, tr Transport) (*Session, *bytes.Buffer) {
	c, out := testConsole(in)
	return &Session{
		Console:      c,
		Invoker:      &Invoker{Transport: tr},
		Decoder:      sense.Decoder{},
		Renderer:     hexdump.New(true),
		BytesPerLine: 16,
	}, out
}

func TestSessionRejectsThenAcceptsValue(t *testing.T) {
	tr := &fakeTransport{}
	s, out := testSession("1\n1\n1\nabc\n\n1\n42\n2\n0\n0\n0\n", tr)

	require.NoError(t, s.Run(testMenu()))
	require.Len(t, tr.requests, 1)
	assert.Equal(t, Request{Command: "family.count", Opcode: 0x42, Params: []byte{0, 0, 0, 42}}, tr.requests[0])

	text := out.String()
	assert.Contains(t, text, "\"abc\" is not a valid uint for Count, keeping 0.")
	assert.Contains(t, text, "1.- Count: 42")
	assert.Contains(t, text, "2.- Send command with these parameters.")
	assert.Contains(t, text, "0.- Return to Family menu.")
}

func TestSessionExitAtRoot(t *testing.T) {
	s, out := testSession("0\n", &fakeTransport{})

	require.NoError(t, s.Run(testMenu()))
	assert.Equal(t, 1, strings.Count(out.String(), "0.- Exit."))
}

func TestSessionPopsOneLevel(t *testing.T) {
	s, out := testSession("1\n2\n0\n0\n0\n", &fakeTransport{})

	require.NoError(t, s.Run(testMenu()))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "0.- Exit."))
	assert.Equal(t, 2, strings.Count(text, "0.- Return to Root menu."))
	assert.Equal(t, 1, strings.Count(text, "0.- Return to Family menu."))

	assert.Equal(t, []string{"Root", "Family", "Nested", "Family", "Root"}, screens(text, "Root", "Family", "Nested"))
}

// screens lists the menu titles in the order they were rendered.
func screens(text string, titles ...string) []string {
	var seen []string
	for _, m := range strings.Split(text, "\n") {
		m = strings.TrimPrefix(m, "Choose: ")
		for _, title := range titles {
			if m == title {
				seen = append(seen, m)
			}
		}
	}
	return seen
}

func TestSessionInvalidSelection(t *testing.T) {
	s, out := testSession("7\n\nfoo\n\n-1\n\n0\n", &fakeTransport{})

	require.NoError(t, s.Run(testMenu()))
	assert.Equal(t, 4, strings.Count(out.String(), "0.- Exit."))
	assert.Equal(t, 1, strings.Count(out.String(), "Incorrect option."))
	assert.Equal(t, 2, strings.Count(out.String(), "Not a number."))
}

func TestSessionReconfigureKeepsValues(t *testing.T) {
	tr := &fakeTransport{}
	s, out := testSession("1\n1\n1\n42\n2\n5\n2\n0\n0\n0\n", tr)

	require.NoError(t, s.Run(testMenu()))
	require.Len(t, tr.requests, 2)
	assert.Equal(t, tr.requests[0].Params, tr.requests[1].Params)
	assert.Equal(t, 2, strings.Count(out.String(), "1.- Count: 42"))
}

func TestSessionNewCommandStartsFromDefaults(t *testing.T) {
	tr := &fakeTransport{}
	s, _ := testSession("1\n1\n1\n42\n2\n0\n1\n2\n0\n0\n0\n", tr)

	require.NoError(t, s.Run(testMenu()))
	require.Len(t, tr.requests, 2)
	assert.Equal(t, []byte{0, 0, 0, 42}, tr.requests[0].Params)
	assert.Equal(t, []byte{0, 0, 0, 0}, tr.requests[1].Params)
}

func TestSessionReturnFromParameters(t *testing.T) {
	tr := &fakeTransport{}
	s, _ := testSession("1\n1\n0\n0\n0\n", tr)

	require.NoError(t, s.Run(testMenu()))
	assert.Empty(t, tr.requests)
}

func TestSessionInputClosed(t *testing.T) {
	s, _ := testSession("1\n1\n", &fakeTransport{})
	assert.ErrorIs(t, s.Run(testMenu()), ErrorInputClosed)
}

func TestSessionTransportFault(t *testing.T) {
	s, _ := testSession("1\n1\n2\n", &fakeTransport{err: assert.AnError})
	assert.ErrorIs(t, s.Run(testMenu()), ErrorTransportUnreachable)
}

func TestSessionLogsSelection(t *testing.T) {
	var lines []string
	s, _ := testSession("1\n1\n0\n0\n0\n", &fakeTransport{})
	s.LogFunc = func(level int, format string, param ...interface{}) {
		lines = append(lines, format)
	}

	require.NoError(t, s.Run(testMenu()))
	assert.Equal(t, []string{"Selected %s"}, lines)
}

func TestSessionEmptyInputKeepsValue(t *testing.T) {
	note := &Command{
		ID:     "family.note",
		Name:   "NOTE",
		Opcode: 0x43,
		Fields: []FieldSpec{{Name: "Note", Kind: KindText, Default: "keep"}},
	}
	root := &MenuNode{Title: "Root", Items: []MenuItem{{Command: note}}}

	tr := &fakeTransport{}
	s, out := testSession("1\n1\n\n2\n0\n0\n", tr)

	require.NoError(t, s.Run(root))
	require.Len(t, tr.requests, 1)
	assert.Equal(t, []byte("keep"), tr.requests[0].Params)
	assert.NotContains(t, out.String(), "is not a valid")
}
