package transport

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"time"

	"github.com/BertoldVdb/devtrial/trial"
	"github.com/sigurn/crc16"
	"go.bug.st/serial"
)

const (
	frameSync      = 0x6E
	frameHeaderLen = 8
	frameMaxBody   = 0xFFFF
)

var crcTab = crc16.MakeTable(crc16.CRC16_XMODEM)

// Port is the part of a serial port the transport needs. A read that times
// out returns 0 bytes and no error.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
}

type SerialConfig struct {
	LogFunc trial.LogFunc
}

// Serial executes commands as CRC16 framed messages on a serial line.
type Serial struct {
	port   Port
	config SerialConfig
}

func OpenSerial(path string, baud int, config SerialConfig) (*Serial, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}
	return NewSerial(port, config), nil
}

func NewSerial(port Port, config SerialConfig) *Serial {
	return &Serial{
		port:   port,
		config: config,
	}
}

func (s *Serial) Close() error {
	return s.port.Close()
}

func (s *Serial) log(level int, format string, param ...interface{}) {
	if s.config.LogFunc != nil {
		s.config.LogFunc(level, format, param...)
	}
}

// encodeFrame builds [sync, status, 0, opcode, len16, crc16(header), body,
// crc16(body)] with big endian fields.
func encodeFrame(status byte, opcode byte, body []byte) []byte {
	result := []byte{frameSync, status, 0, opcode, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(result[4:], uint16(len(body)))
	binary.BigEndian.PutUint16(result[6:], crc16.Update(0, result[:6], crcTab))

	result = append(result, body...)
	result = binary.BigEndian.AppendUint16(result, crc16.Update(0, result[frameHeaderLen:], crcTab))
	return result
}

func checkHeader(header []byte) bool {
	return header[0] == frameSync &&
		binary.BigEndian.Uint16(header[6:]) == crc16.Update(0, header[:6], crcTab)
}

func (s *Serial) Execute(req trial.Request, timeout time.Duration) (trial.Reply, error) {
	if len(req.Params) > frameMaxBody {
		s.log(1, "%s: %v (%d parameter bytes)", req.Command, ErrorRequestTooLarge, len(req.Params))
		return trial.Reply{}, nil
	}

	if err := s.port.ResetInputBuffer(); err != nil {
		return trial.Reply{}, err
	}

	out := encodeFrame(0, req.Opcode, req.Params)
	s.log(3, "SerialOut: %s", hex.EncodeToString(out))

	start := time.Now()
	if _, err := s.port.Write(out); err != nil {
		return trial.Reply{}, err
	}
	deadline := start.Add(timeout)

	header := make([]byte, frameHeaderLen)
	n, err := s.readFull(header, deadline)
	if err != nil {
		return trial.Reply{}, err
	}
	if n < len(header) {
		s.log(2, "%s: no reply within %v", req.Command, timeout)
		return trial.Reply{Duration: time.Since(start)}, nil
	}
	if !checkHeader(header) {
		return s.badFrame(req, header, start), nil
	}

	body := make([]byte, int(binary.BigEndian.Uint16(header[4:]))+2)
	n, err = s.readFull(body, deadline)
	if err != nil {
		return trial.Reply{}, err
	}
	raw := append(header, body[:n]...)
	if n < len(body) {
		return s.badFrame(req, raw, start), nil
	}

	s.log(3, "SerialIn:  %s", hex.EncodeToString(raw))

	data := body[:len(body)-2]
	if binary.BigEndian.Uint16(body[len(body)-2:]) != crc16.Update(0, data, crcTab) || header[3] != req.Opcode {
		return s.badFrame(req, raw, start), nil
	}

	took := time.Since(start)
	if header[1] == 0 {
		return trial.Reply{Success: true, Payload: data, Duration: took}, nil
	}
	return trial.Reply{Diagnostic: data, Duration: took}, nil
}

func (s *Serial) badFrame(req trial.Request, raw []byte, start time.Time) trial.Reply {
	s.log(2, "%s: %v: %s", req.Command, ErrorBadFrame, hex.EncodeToString(raw))
	return trial.Reply{
		Diagnostic: append([]byte{}, raw...),
		Duration:   time.Since(start),
	}
}

// readFull reads until buf is full or the deadline passes.
func (s *Serial) readFull(buf []byte, deadline time.Time) (int, error) {
	got := 0
	for got < len(buf) {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		if err := s.port.SetReadTimeout(remaining); err != nil {
			return got, err
		}

		n, err := s.port.Read(buf[got:])
		got += n
		if err != nil {
			return got, err
		}
		if n == 0 {
			break
		}
	}
	return got, nil
}
