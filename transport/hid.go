package transport

import (
	"encoding/hex"
	"time"

	"github.com/BertoldVdb/devtrial/gohid"
	"github.com/BertoldVdb/devtrial/trial"
)

const (
	hidStatusOK   = 0x00
	hidStatusBusy = 0xFF
)

type HIDConfig struct {
	ReportID byte

	/* Report length including the report ID, 64 when unset */
	ReportSize int

	/* Delay between polls for the reply, 2ms when zero */
	PollInterval time.Duration

	LogFunc trial.LogFunc
}

// HID executes commands with feature reports. The request report is
// [id, opcode, params...]; the device answers [id, opcode, status, length,
// data...] and keeps status 0xFF while it is busy. Status 0 carries the
// payload, any other status carries diagnostic data.
type HID struct {
	dev    gohid.Device
	config HIDConfig
}

func NewHID(dev gohid.Device, config HIDConfig) *HID {
	if config.ReportSize < 4 {
		config.ReportSize = 64
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 2 * time.Millisecond
	}
	return &HID{
		dev:    dev,
		config: config,
	}
}

func (h *HID) log(level int, format string, param ...interface{}) {
	if h.config.LogFunc != nil {
		h.config.LogFunc(level, format, param...)
	}
}

func (h *HID) Execute(req trial.Request, timeout time.Duration) (trial.Reply, error) {
	size := h.config.ReportSize
	if 2+len(req.Params) > size {
		h.log(1, "%s: %v (%d parameter bytes)", req.Command, ErrorRequestTooLarge, len(req.Params))
		return trial.Reply{}, nil
	}

	out := make([]byte, size)
	out[0] = h.config.ReportID
	out[1] = req.Opcode
	copy(out[2:], req.Params)

	h.log(3, "HIDOut: %s", hex.EncodeToString(out))

	start := time.Now()
	if _, err := h.dev.SendFeatureReport(out); err != nil {
		return trial.Reply{}, err
	}

	deadline := start.Add(timeout)
	in := make([]byte, size)
	for {
		for i := range in {
			in[i] = 0
		}
		in[0] = h.config.ReportID
		n, err := h.dev.GetFeatureReport(in)
		if err != nil {
			return trial.Reply{}, err
		}

		// Reports shorter than the reply header are ignored
		if n >= 4 && in[1] == req.Opcode && in[2] != hidStatusBusy {
			h.log(3, "HIDIn:  %s", hex.EncodeToString(in[:n]))
			return hidParseReply(in[:n], time.Since(start)), nil
		}

		if !time.Now().Before(deadline) {
			h.log(2, "%s: no reply within %v", req.Command, timeout)
			return trial.Reply{Duration: time.Since(start)}, nil
		}
		time.Sleep(h.config.PollInterval)
	}
}

func hidParseReply(in []byte, took time.Duration) trial.Reply {
	data := in[4:]
	n := int(in[3])
	if n > len(data) {
		n = len(data)
	}
	buf := append([]byte{}, data[:n]...)

	if in[2] == hidStatusOK {
		return trial.Reply{Success: true, Payload: buf, Duration: took}
	}
	return trial.Reply{Diagnostic: buf, Duration: took}
}
