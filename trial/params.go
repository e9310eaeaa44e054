package trial

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// ParameterSet holds one valid value per field of a command, in declaration
// order.
type ParameterSet struct {
	specs  []FieldSpec
	values []Value
}

func NewParameterSet(specs []FieldSpec) *ParameterSet {
	p := &ParameterSet{
		specs:  specs,
		values: make([]Value, len(specs)),
	}
	for i, m := range specs {
		p.values[i] = m.DefaultValue()
	}
	return p
}

func (p *ParameterSet) Len() int {
	return len(p.specs)
}

func (p *ParameterSet) Spec(index int) FieldSpec {
	return p.specs[index]
}

func (p *ParameterSet) Value(index int) Value {
	return p.values[index]
}

// EditField applies raw to the field at index. The stored value only changes
// when the input was accepted.
func (p *ParameterSet) EditField(index int, raw string) (bool, error) {
	if index < 0 || index >= len(p.specs) {
		return false, fmt.Errorf("%w: %d", ErrorFieldIndex, index)
	}

	v, ok := Edit(p.specs[index], p.values[index], raw)
	p.values[index] = v
	return ok, nil
}

// Set edits a field by case-insensitive name.
func (p *ParameterSet) Set(name string, raw string) (bool, error) {
	for i, m := range p.specs {
		if strings.EqualFold(m.Name, name) {
			return p.EditField(i, raw)
		}
	}
	return false, fmt.Errorf("%w: %s", ErrorUnknownField, name)
}

// IsReady reports whether the set can be submitted. Fields are validated
// individually so every set is always ready.
func (p *ParameterSet) IsReady() bool {
	return true
}

func (p *ParameterSet) Display(w io.Writer) {
	for i, m := range p.specs {
		fmt.Fprintf(w, "%d.- %s: %s\n", i+1, m.Name, m.Format(p.values[i]))
	}
}

// Encode serializes the values in declaration order: uint and enum fields
// big endian in their width, booleans as one byte, text as its bytes (zero
// padded to MaxLen when fixed).
func (p *ParameterSet) Encode() []byte {
	var out []byte
	for i, m := range p.specs {
		v := p.values[i]
		switch m.Kind {
		case KindUint:
			out = appendBigEndian(out, v.num, m.encodedWidth())
		case KindEnum:
			out = appendBigEndian(out, m.Values[v.num].Value, m.encodedWidth())
		case KindBool:
			if v.Bool() {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		case KindText:
			out = append(out, v.text...)
			if m.Fixed {
				for j := len(v.text); j < m.MaxLen; j++ {
					out = append(out, 0)
				}
			}
		}
	}
	return out
}

func appendBigEndian(out []byte, value uint64, width int) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], value)
	return append(out, tmp[8-width:]...)
}
