package trial

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/inancgumus/screen"
)

type ConsoleConfig struct {
	NoColor bool

	/* Clear the terminal on every state entry, only useful on a real tty */
	Clear bool
}

// Console is the operator side of a session: line based input and rendered
// output.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	clear bool

	heading *color.Color
	warn    *color.Color
	good    *color.Color
}

func NewConsole(in io.Reader, out io.Writer, config ConsoleConfig) *Console {
	c := &Console{
		in:    bufio.NewReader(in),
		out:   out,
		clear: config.Clear,

		heading: color.New(color.Bold),
		warn:    color.New(color.FgRed),
		good:    color.New(color.FgGreen),
	}

	if config.NoColor {
		c.heading.DisableColor()
		c.warn.DisableColor()
		c.good.DisableColor()
	}
	return c
}

func (c *Console) Writer() io.Writer {
	return c.out
}

// Begin starts rendering a new state.
func (c *Console) Begin(title string) {
	if c.clear {
		screen.Clear()
		screen.MoveTopLeft()
	}
	c.heading.Fprintln(c.out, title)
}

func (c *Console) Printf(format string, param ...interface{}) {
	fmt.Fprintf(c.out, format, param...)
}

func (c *Console) Warnf(format string, param ...interface{}) {
	c.warn.Fprintf(c.out, format, param...)
}

func (c *Console) Goodf(format string, param ...interface{}) {
	c.good.Fprintf(c.out, format, param...)
}

// ReadLine prompts and returns one trimmed line.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}

	text, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && text != "" {
			return strings.TrimRight(text, "\r\n"), nil
		}
		if err == io.EOF {
			fmt.Fprintln(c.out)
			return "", ErrorInputClosed
		}
		return "", err
	}
	return strings.TrimRight(text, "\r\n"), nil
}

// Acknowledge blocks until the operator presses enter.
func (c *Console) Acknowledge() error {
	_, err := c.ReadLine("Press Enter to continue...")
	return err
}

// Choose reads a menu selection in 0..max. Invalid selections are reported
// and acknowledged before returning ok=false.
func (c *Console) Choose(max int) (int, bool, error) {
	line, err := c.ReadLine("Choose: ")
	if err != nil {
		return 0, false, err
	}

	line = strings.TrimSpace(line)
	n, err := strconv.Atoi(line)
	if err != nil || line[0] == '+' || line[0] == '-' {
		c.Warnf("Not a number. ")
		return 0, false, c.Acknowledge()
	}
	if n < 0 || n > max {
		c.Warnf("Incorrect option. ")
		return 0, false, c.Acknowledge()
	}
	return n, true, nil
}

// Option prints one numbered menu line.
func (c *Console) Option(n int, format string, param ...interface{}) {
	fmt.Fprintf(c.out, "%d.- %s\n", n, fmt.Sprintf(format, param...))
}
