package transport

import (
	"encoding/hex"
	"time"

	"github.com/BertoldVdb/devtrial/sense"
	"github.com/BertoldVdb/devtrial/trial"
)

// Handler produces the simulated reply to one request.
type Handler func(params []byte) trial.Reply

// Simulator is an in-memory device. Opcodes without a handler fail with
// ILLEGAL REQUEST / INVALID COMMAND OPERATION CODE sense data.
type Simulator struct {
	handlers map[byte]Handler

	/* Simulated processing time, longer than the timeout makes trials time out */
	Latency time.Duration

	LogFunc trial.LogFunc
}

func NewSimulator() *Simulator {
	return &Simulator{
		handlers: make(map[byte]Handler),
	}
}

// NewCatalogSimulator echoes the parameters of every command in root.
func NewCatalogSimulator(root *trial.MenuNode) *Simulator {
	s := NewSimulator()
	root.Walk(func(path []*trial.MenuNode, cmd *trial.Command) error {
		s.Handle(cmd.Opcode, Echo)
		return nil
	})
	return s
}

func (s *Simulator) Handle(opcode byte, h Handler) {
	s.handlers[opcode] = h
}

func (s *Simulator) Execute(req trial.Request, timeout time.Duration) (trial.Reply, error) {
	start := time.Now()

	if s.LogFunc != nil {
		s.LogFunc(3, "SimOut: %02x %s", req.Opcode, hex.EncodeToString(req.Params))
	}

	if s.Latency > 0 {
		wait := s.Latency
		if timeout > 0 && wait > timeout {
			wait = timeout
		}
		time.Sleep(wait)
		if timeout > 0 && s.Latency > timeout {
			return trial.Reply{Duration: time.Since(start)}, nil
		}
	}

	var r trial.Reply
	if h, ok := s.handlers[req.Opcode]; ok {
		r = h(append([]byte{}, req.Params...))
	} else {
		r = trial.Reply{Diagnostic: sense.Fixed(sense.KeyIllegalRequest, 0x20, 0x00)}
	}
	r.Duration = time.Since(start)
	return r, nil
}

// Echo answers with the request parameters as payload.
func Echo(params []byte) trial.Reply {
	return trial.Reply{Success: true, Payload: params}
}

// Respond always answers with payload.
func Respond(payload []byte) Handler {
	return func([]byte) trial.Reply {
		return trial.Reply{Success: true, Payload: append([]byte{}, payload...)}
	}
}

// Fail always fails with fixed format sense data.
func Fail(key sense.Key, asc byte, ascq byte) Handler {
	return func([]byte) trial.Reply {
		return trial.Reply{Diagnostic: sense.Fixed(key, asc, ascq)}
	}
}
