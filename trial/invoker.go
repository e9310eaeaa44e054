package trial

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type LogFunc func(level int, format string, param ...interface{})

// Request is one serialized command as handed to a Transport.
type Request struct {
	Command string
	Opcode  byte
	Params  []byte
}

// Reply is what a transport observed. A nil Payload or Diagnostic means the
// buffer is not present, which differs from a present empty buffer.
type Reply struct {
	Success    bool
	Payload    []byte
	Diagnostic []byte
	Duration   time.Duration
}

// Transport executes commands on a device. Command failures, including
// timeouts, are reported through Reply; an error means the device could not
// be reached at all.
type Transport interface {
	Execute(req Request, timeout time.Duration) (Reply, error)
}

// Result is one immutable trial outcome.
type Result struct {
	ID         uuid.UUID
	Success    bool
	Duration   time.Duration
	Payload    []byte
	Diagnostic []byte
}

type Invoker struct {
	Transport Transport

	/* Session timeout, used unless the command has its own */
	Timeout time.Duration

	LogFunc LogFunc
}

func (i *Invoker) Invoke(cmd *Command, params *ParameterSet) (*Result, error) {
	timeout := i.Timeout
	if cmd.Timeout > 0 {
		timeout = cmd.Timeout
	}

	req := Request{
		Command: cmd.ID,
		Opcode:  cmd.Opcode,
		Params:  params.Encode(),
	}

	if i.LogFunc != nil {
		i.LogFunc(3, "Out %s(%02x): %s", cmd.ID, cmd.Opcode, hex.EncodeToString(req.Params))
	}

	reply, err := i.Transport.Execute(req, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrorTransportUnreachable, cmd.ID, err)
	}

	r := &Result{
		ID:         uuid.New(),
		Success:    reply.Success,
		Duration:   reply.Duration,
		Payload:    cloneBytes(reply.Payload),
		Diagnostic: cloneBytes(reply.Diagnostic),
	}

	if i.LogFunc != nil {
		i.LogFunc(2, "Trial %s: %s success=%v took %.3fms", r.ID, cmd.ID, r.Success, r.Milliseconds())
		if r.Payload != nil {
			i.LogFunc(3, "In  %s payload: %s", cmd.ID, hex.EncodeToString(r.Payload))
		}
		if r.Diagnostic != nil {
			i.LogFunc(3, "In  %s diagnostic: %s", cmd.ID, hex.EncodeToString(r.Diagnostic))
		}
	}
	return r, nil
}

func (r *Result) Milliseconds() float64 {
	return float64(r.Duration) / float64(time.Millisecond)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}
