package trial

import (
	"fmt"
)

// Decoder turns diagnostic bytes into operator text. It must be pure and
// return "" for absent input.
type Decoder interface {
	Decode(diagnostic []byte) string
}

type DecoderFunc func(diagnostic []byte) string

func (f DecoderFunc) Decode(diagnostic []byte) string {
	return f(diagnostic)
}

type HexRenderer interface {
	Render(data []byte, bytesPerLine int) string
}

// MarkedHexRenderer is implemented by renderers that can highlight bytes.
type MarkedHexRenderer interface {
	RenderMarked(data []byte, mark []bool, bytesPerLine int) string
}

type BrowserState int

const (
	StateReady BrowserState = iota
	StateViewPayload
	StateViewDiagnostic
	StateViewDecoded
	StateRetry
	StateReconfigure
	StateBack
)

func (s BrowserState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateViewPayload:
		return "view-payload"
	case StateViewDiagnostic:
		return "view-diagnostic"
	case StateViewDecoded:
		return "view-decoded"
	case StateRetry:
		return "retry"
	case StateReconfigure:
		return "reconfigure"
	case StateBack:
		return "back"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var browserChoices = []BrowserState{
	StateBack,
	StateViewPayload,
	StateViewDiagnostic,
	StateViewDecoded,
	StateRetry,
	StateReconfigure,
}

// Browser presents the result of a trial. One Browser serves one pass through
// the result stage and ends in StateReconfigure or StateBack.
type Browser struct {
	Console      *Console
	Invoker      *Invoker
	Decoder      Decoder
	Renderer     HexRenderer
	BytesPerLine int

	/* Title of the menu that StateBack returns to */
	Parent string

	cmd    *Command
	params *ParameterSet
	state  BrowserState

	result      *Result
	previous    *Result
	decoded     string
	haveDecoded bool
}

func (b *Browser) State() BrowserState {
	return b.state
}

func (b *Browser) Result() *Result {
	return b.result
}

// Run shows result and handles operator choices until a terminal state is
// reached. Errors are fatal: closed input or an unreachable transport.
func (b *Browser) Run(cmd *Command, params *ParameterSet, result *Result) (BrowserState, error) {
	b.cmd = cmd
	b.params = params
	b.setResult(result)
	b.state = StateReady

	for {
		var err error
		switch b.state {
		case StateReady:
			b.state, err = b.ready()

		case StateViewPayload:
			err = b.viewBuffer("Payload buffer", b.result.Payload, true)
			b.state = StateReady

		case StateViewDiagnostic:
			err = b.viewBuffer("Diagnostic buffer", b.result.Diagnostic, false)
			b.state = StateReady

		case StateViewDecoded:
			err = b.viewDecoded()
			b.state = StateReady

		case StateRetry:
			var r *Result
			r, err = b.Invoker.Invoke(b.cmd, b.params)
			if err == nil {
				b.setResult(r)
				b.state = StateReady
			}

		case StateReconfigure, StateBack:
			return b.state, nil
		}

		if err != nil {
			return b.state, err
		}
	}
}

func (b *Browser) setResult(r *Result) {
	b.previous = b.result
	b.result = r
	b.decoded = ""
	b.haveDecoded = false
}

func (b *Browser) decodedText() string {
	if !b.haveDecoded {
		if b.Decoder != nil {
			b.decoded = b.Decoder.Decode(b.result.Diagnostic)
		}
		b.haveDecoded = true
	}
	return b.decoded
}

func describeBuffer(data []byte) string {
	if data == nil {
		return "not present"
	}
	return fmt.Sprintf("%d bytes", len(data))
}

func (b *Browser) ready() (BrowserState, error) {
	c := b.Console
	r := b.result

	c.Begin(fmt.Sprintf("Sent %s to the device (trial %s):", b.cmd.Name, r.ID))
	c.Printf("Command took %.3f ms.\n", r.Milliseconds())
	if r.Success {
		c.Goodf("Command succeeded.\n")
	} else {
		c.Warnf("Command failed.\n")
	}
	c.Printf("Payload buffer is %s.\n", describeBuffer(r.Payload))
	c.Printf("Diagnostic buffer is %s.\n", describeBuffer(r.Diagnostic))
	c.Printf("\n")

	c.Option(1, "Print payload buffer.")
	c.Option(2, "Print diagnostic buffer.")
	c.Option(3, "Decode diagnostic buffer.")
	c.Option(4, "Send command again.")
	c.Option(5, "Change parameters.")
	c.Option(0, "Return to %s menu.", b.Parent)

	n, ok, err := c.Choose(len(browserChoices) - 1)
	if err != nil || !ok {
		return StateReady, err
	}
	return browserChoices[n], nil
}

func (b *Browser) viewBuffer(name string, data []byte, markChanges bool) error {
	c := b.Console
	c.Begin(fmt.Sprintf("%s %s:", b.cmd.Name, name))

	if data == nil {
		c.Printf("%s is not present.\n", name)
	} else if len(data) == 0 {
		c.Printf("%s is present but empty (0 bytes).\n", name)
	} else {
		c.Printf("%s", b.render(data, markChanges))
	}

	return c.Acknowledge()
}

func (b *Browser) render(data []byte, markChanges bool) string {
	marked, canMark := b.Renderer.(MarkedHexRenderer)
	if !markChanges || !canMark || b.previous == nil || b.previous.Payload == nil {
		return b.Renderer.Render(data, b.BytesPerLine)
	}

	prev := b.previous.Payload
	mark := make([]bool, len(data))
	for i, m := range data {
		mark[i] = i >= len(prev) || prev[i] != m
	}
	return marked.RenderMarked(data, mark, b.BytesPerLine)
}

func (b *Browser) viewDecoded() error {
	c := b.Console
	c.Begin(fmt.Sprintf("%s decoded diagnostic buffer:", b.cmd.Name))

	if b.result.Diagnostic == nil {
		c.Printf("Diagnostic buffer is not present.\n")
	} else if text := b.decodedText(); text == "" {
		c.Printf("Diagnostic buffer could not be decoded.\n")
	} else {
		c.Printf("%s\n", text)
	}

	return c.Acknowledge()
}
