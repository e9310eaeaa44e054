// Package sense decodes SCSI sense data returned as the diagnostic buffer of
// a failed command.
package sense

import (
	"encoding/binary"
	"fmt"
	"strings"
)

type Key byte

const (
	KeyNoSense        Key = 0x0
	KeyRecoveredError Key = 0x1
	KeyNotReady       Key = 0x2
	KeyMediumError    Key = 0x3
	KeyHardwareError  Key = 0x4
	KeyIllegalRequest Key = 0x5
	KeyUnitAttention  Key = 0x6
	KeyDataProtect    Key = 0x7
	KeyBlankCheck     Key = 0x8
	KeyVendorSpecific Key = 0x9
	KeyCopyAborted    Key = 0xA
	KeyAbortedCommand Key = 0xB
	KeyEqual          Key = 0xC
	KeyVolumeOverflow Key = 0xD
	KeyMiscompare     Key = 0xE
	KeyCompleted      Key = 0xF
)

var keyNames = [16]string{
	"NO SENSE",
	"RECOVERED ERROR",
	"NOT READY",
	"MEDIUM ERROR",
	"HARDWARE ERROR",
	"ILLEGAL REQUEST",
	"UNIT ATTENTION",
	"DATA PROTECT",
	"BLANK CHECK",
	"VENDOR SPECIFIC",
	"COPY ABORTED",
	"ABORTED COMMAND",
	"EQUAL",
	"VOLUME OVERFLOW",
	"MISCOMPARE",
	"COMPLETED",
}

func (k Key) String() string {
	return keyNames[k&0xF]
}

// Fields is the parsed content of a sense buffer.
type Fields struct {
	ResponseCode byte
	Deferred     bool
	Descriptor   bool
	Key          Key
	ASC          byte
	ASCQ         byte

	Filemark bool
	EOM      bool
	ILI      bool

	InformationValid bool
	Information      uint32
}

// Parse extracts the fixed or descriptor format fields. ok is false when the
// buffer is too short or has an unknown response code.
func Parse(b []byte) (Fields, bool) {
	var f Fields
	if len(b) < 1 {
		return f, false
	}

	f.ResponseCode = b[0] & 0x7F
	switch f.ResponseCode {
	case 0x70, 0x71:
		if len(b) < 3 {
			return f, false
		}
		f.Deferred = f.ResponseCode == 0x71
		f.Key = Key(b[2] & 0x0F)
		f.Filemark = b[2]&0x80 != 0
		f.EOM = b[2]&0x40 != 0
		f.ILI = b[2]&0x20 != 0
		if len(b) >= 7 {
			f.InformationValid = b[0]&0x80 != 0
			f.Information = binary.BigEndian.Uint32(b[3:7])
		}
		if len(b) >= 13 {
			f.ASC = b[12]
		}
		if len(b) >= 14 {
			f.ASCQ = b[13]
		}

	case 0x72, 0x73:
		if len(b) < 4 {
			return f, false
		}
		f.Descriptor = true
		f.Deferred = f.ResponseCode == 0x73
		f.Key = Key(b[1] & 0x0F)
		f.ASC = b[2]
		f.ASCQ = b[3]

	default:
		return f, false
	}

	return f, true
}

// Decode returns a human readable description of b, or "" when b is empty.
func Decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	f, ok := Parse(b)
	if !ok {
		return fmt.Sprintf("Unknown sense format 0x%02X (%d bytes)", b[0]&0x7F, len(b))
	}

	var sb strings.Builder
	if f.Deferred {
		sb.WriteString("Deferred error: ")
	}
	sb.WriteString(f.Key.String())

	if desc := Describe(f.ASC, f.ASCQ); desc != "" {
		sb.WriteString(": " + desc)
	} else if f.ASC != 0 || f.ASCQ != 0 {
		fmt.Fprintf(&sb, ": ASC 0x%02X ASCQ 0x%02X", f.ASC, f.ASCQ)
	}

	var flags []string
	if f.Filemark {
		flags = append(flags, "FILEMARK")
	}
	if f.EOM {
		flags = append(flags, "EOM")
	}
	if f.ILI {
		flags = append(flags, "ILI")
	}
	if len(flags) > 0 {
		sb.WriteString("\nFlags: " + strings.Join(flags, " "))
	}
	if f.InformationValid {
		fmt.Fprintf(&sb, "\nInformation: 0x%08X", f.Information)
	}

	return sb.String()
}

// Decoder adapts Decode to the trial engine's decoder interface.
type Decoder struct{}

func (Decoder) Decode(diagnostic []byte) string {
	return Decode(diagnostic)
}

// Fixed builds an 18 byte fixed format sense buffer for the current error.
func Fixed(key Key, asc byte, ascq byte) []byte {
	b := make([]byte, 18)
	b[0] = 0x70
	b[2] = byte(key) & 0x0F
	b[7] = 10
	b[12] = asc
	b[13] = ascq
	return b
}
