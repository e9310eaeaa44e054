package hexdump

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const DefaultBytesPerLine = 16

// Renderer formats buffers as offset, hex and ASCII columns. Marked bytes are
// printed in red.
type Renderer struct {
	mark *color.Color
}

func New(noColor bool) *Renderer {
	r := &Renderer{
		mark: color.New(color.FgRed),
	}
	if noColor {
		r.mark.DisableColor()
	}
	return r
}

func (r *Renderer) Render(data []byte, bytesPerLine int) string {
	return r.Dump(0, data, nil, bytesPerLine)
}

func (r *Renderer) RenderMarked(data []byte, mark []bool, bytesPerLine int) string {
	return r.Dump(0, data, mark, bytesPerLine)
}

// Dump renders data with offsets starting at offset. mark, when not nil,
// must be as long as data.
func (r *Renderer) Dump(offset int, data []byte, mark []bool, bytesPerLine int) string {
	if bytesPerLine <= 0 {
		bytesPerLine = DefaultBytesPerLine
	}

	var result strings.Builder
	for len(data) > 0 {
		l := len(data)
		if l > bytesPerLine {
			l = bytesPerLine
		}
		work := data[:l]
		data = data[l:]
		var workMark []bool
		if mark != nil {
			workMark = mark[:l]
			mark = mark[l:]
		}

		var workHex strings.Builder
		var workASCII strings.Builder
		for i := 0; i < bytesPerLine; i++ {
			if i >= len(work) {
				workHex.WriteString("   ")
				workASCII.WriteString(" ")
			} else {
				m := work[i]
				delta := workMark != nil && workMark[i]

				c := m
				if c < 32 || c > 126 {
					c = '.'
				}

				if delta {
					workHex.WriteString(r.mark.Sprintf("%02x ", m))
					workASCII.WriteString(r.mark.Sprintf("%c", c))
				} else {
					fmt.Fprintf(&workHex, "%02x ", m)
					workASCII.WriteByte(c)
				}
			}
			if i%8 == 7 {
				workHex.WriteString(" ")
			}
		}

		fmt.Fprintf(&result, "%08x  %s|%s|\n", offset, workHex.String(), workASCII.String())
		offset += l
	}

	return result.String()
}
