package trial

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport records requests and answers with the reply produced by
// reply, or with err when set.
type fakeTransport struct {
	requests []Request
	timeouts []time.Duration
	reply    func(n int, req Request) Reply
	err      error
}

func (f *fakeTransport) Execute(req Request, timeout time.Duration) (Reply, error) {
	f.requests = append(f.requests, req)
	f.timeouts = append(f.timeouts, timeout)
	if f.err != nil {
		return Reply{}, f.err
	}
	if f.reply == nil {
		return Reply{Success: true, Payload: req.Params, Duration: time.Millisecond}, nil
	}
	return f.reply(len(f.requests), req), nil
}

func TestInvokeBuildsRequest(t *testing.T) {
	tr := &fakeTransport{}
	inv := &Invoker{Transport: tr, Timeout: 3 * time.Second}

	cmd := &Command{ID: "vendor.test", Name: "TEST", Opcode: 0xE7, Fields: []FieldSpec{{Name: "LBA", Kind: KindUint, Width: 2}}}
	params := NewParameterSet(cmd.Fields)
	_, err := params.EditField(0, "258")
	require.NoError(t, err)

	r, err := inv.Invoke(cmd, params)
	require.NoError(t, err)
	require.Len(t, tr.requests, 1)

	assert.Equal(t, Request{Command: "vendor.test", Opcode: 0xE7, Params: []byte{0x01, 0x02}}, tr.requests[0])
	assert.Equal(t, 3*time.Second, tr.timeouts[0])
	assert.True(t, r.Success)
	assert.Equal(t, []byte{0x01, 0x02}, r.Payload)
	assert.Nil(t, r.Diagnostic)
	assert.Equal(t, time.Millisecond, r.Duration)
	assert.InDelta(t, 1.0, r.Milliseconds(), 1e-9)
}

func TestInvokeCommandTimeout(t *testing.T) {
	tr := &fakeTransport{}
	inv := &Invoker{Transport: tr, Timeout: 3 * time.Second}

	cmd := &Command{ID: "slow", Timeout: 30 * time.Second}
	_, err := inv.Invoke(cmd, NewParameterSet(nil))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, tr.timeouts[0])
}

func TestInvokeKeepsAbsentAndEmptyApart(t *testing.T) {
	tr := &fakeTransport{
		reply: func(n int, req Request) Reply {
			return Reply{Success: false, Payload: []byte{}, Diagnostic: nil}
		},
	}
	inv := &Invoker{Transport: tr}

	r, err := inv.Invoke(&Command{ID: "x"}, NewParameterSet(nil))
	require.NoError(t, err)
	assert.False(t, r.Success)
	assert.NotNil(t, r.Payload)
	assert.Len(t, r.Payload, 0)
	assert.Nil(t, r.Diagnostic)
}

func TestInvokeCopiesBuffers(t *testing.T) {
	shared := []byte{1, 2, 3}
	tr := &fakeTransport{
		reply: func(n int, req Request) Reply {
			return Reply{Diagnostic: shared}
		},
	}
	inv := &Invoker{Transport: tr}

	r, err := inv.Invoke(&Command{ID: "x"}, NewParameterSet(nil))
	require.NoError(t, err)
	shared[0] = 0xFF
	assert.Equal(t, []byte{1, 2, 3}, r.Diagnostic)
}

func TestInvokeTransportUnreachable(t *testing.T) {
	cause := errors.New("device unplugged")
	inv := &Invoker{Transport: &fakeTransport{err: cause}}

	r, err := inv.Invoke(&Command{ID: "x"}, NewParameterSet(nil))
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrorTransportUnreachable)
	assert.Contains(t, err.Error(), "device unplugged")
}

func TestInvokeLogs(t *testing.T) {
	var lines []int
	inv := &Invoker{
		Transport: &fakeTransport{},
		LogFunc: func(level int, format string, param ...interface{}) {
			lines = append(lines, level)
		},
	}

	_, err := inv.Invoke(&Command{ID: "x"}, NewParameterSet(nil))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, lines)
}
