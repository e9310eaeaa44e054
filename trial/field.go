package trial

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type FieldKind int

const (
	KindUint FieldKind = iota
	KindBool
	KindEnum
	KindText
)

var fieldKindNames = []string{"uint", "bool", "enum", "text"}

func (k FieldKind) String() string {
	if k < 0 || int(k) >= len(fieldKindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return fieldKindNames[k]
}

func ParseFieldKind(name string) (FieldKind, error) {
	for i, m := range fieldKindNames {
		if strings.EqualFold(m, name) {
			return FieldKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrorInvalidField, name)
}

type EnumValue struct {
	Name  string
	Value uint64
}

// FieldSpec describes one typed command parameter. Width is the encoded size
// in bytes of uint and enum fields (0 selects 4 for uint and 1 for enum).
// Min and Max only apply when Bounded is set. Text fields keep only runes
// from Charset (printable ASCII when empty) and are cut at MaxLen encoded
// bytes; Fixed text is padded with zero bytes to MaxLen when encoded.
type FieldSpec struct {
	Name    string
	Kind    FieldKind
	Width   int
	Bounded bool
	Min     uint64
	Max     uint64
	Hex     bool
	Values  []EnumValue
	Charset string
	MaxLen  int
	Fixed   bool
	Default string
}

// Value is the stored value of a field. The zero Value is "not set".
type Value struct {
	set  bool
	num  uint64
	text string
}

func (v Value) IsSet() bool    { return v.set }
func (v Value) Uint() uint64   { return v.num }
func (v Value) Bool() bool     { return v.num != 0 }
func (v Value) EnumIndex() int { return int(v.num) }
func (v Value) Text() string   { return v.text }

func (f FieldSpec) encodedWidth() int {
	switch f.Kind {
	case KindUint:
		if f.Width == 0 {
			return 4
		}
	case KindEnum:
		if f.Width == 0 {
			return 1
		}
	case KindBool:
		return 1
	case KindText:
		return f.MaxLen
	}
	return f.Width
}

func widthLimit(width int) uint64 {
	if width >= 8 {
		return ^uint64(0)
	}
	return 1<<(8*uint(width)) - 1
}

func (f FieldSpec) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: field without name", ErrorInvalidField)
	}

	switch f.Kind {
	case KindUint:
		w := f.encodedWidth()
		if w < 1 || w > 8 {
			return fmt.Errorf("%w: %s: width %d not in 1..8", ErrorInvalidField, f.Name, f.Width)
		}
		if f.Bounded {
			if f.Min > f.Max {
				return fmt.Errorf("%w: %s: min %d above max %d", ErrorInvalidField, f.Name, f.Min, f.Max)
			}
			if f.Max > widthLimit(w) {
				return fmt.Errorf("%w: %s: max %d does not fit in %d bytes", ErrorInvalidField, f.Name, f.Max, w)
			}
		}

	case KindBool:

	case KindEnum:
		w := f.encodedWidth()
		if w < 1 || w > 8 {
			return fmt.Errorf("%w: %s: width %d not in 1..8", ErrorInvalidField, f.Name, f.Width)
		}
		if len(f.Values) == 0 {
			return fmt.Errorf("%w: %s: enum without values", ErrorInvalidField, f.Name)
		}
		seen := make(map[string]bool)
		for _, m := range f.Values {
			key := strings.ToLower(strings.TrimSpace(m.Name))
			if key == "" {
				return fmt.Errorf("%w: %s: enum value without name", ErrorInvalidField, f.Name)
			}
			if seen[key] {
				return fmt.Errorf("%w: %s: duplicate enum value %q", ErrorInvalidField, f.Name, m.Name)
			}
			seen[key] = true
			if m.Value > widthLimit(w) {
				return fmt.Errorf("%w: %s: enum value %s does not fit in %d bytes", ErrorInvalidField, f.Name, m.Name, w)
			}
		}

	case KindText:
		if f.MaxLen < 0 {
			return fmt.Errorf("%w: %s: negative max length", ErrorInvalidField, f.Name)
		}
		if f.Fixed && f.MaxLen == 0 {
			return fmt.Errorf("%w: %s: fixed text needs a max length", ErrorInvalidField, f.Name)
		}

	default:
		return fmt.Errorf("%w: %s: %s", ErrorInvalidField, f.Name, f.Kind)
	}

	if f.Default != "" {
		if _, ok := f.parse(f.Default); !ok {
			return fmt.Errorf("%w: %s: default %q is not a valid %s", ErrorInvalidField, f.Name, f.Default, f.Kind)
		}
	}
	return nil
}

// DefaultValue returns the declared default, or the smallest valid value when
// no default was declared.
func (f FieldSpec) DefaultValue() Value {
	if f.Default != "" {
		if v, ok := f.parse(f.Default); ok {
			return v
		}
	}

	if f.Kind == KindUint && f.Bounded {
		return Value{set: true, num: f.Min}
	}
	return Value{set: true}
}

// Edit parses raw according to the field kind. Malformed input yields the
// current value (or the default when nothing was stored yet) and false.
func Edit(spec FieldSpec, current Value, raw string) (Value, bool) {
	if v, ok := spec.parse(raw); ok {
		return v, true
	}
	if !current.set {
		return spec.DefaultValue(), false
	}
	return current, false
}

func (f FieldSpec) parse(raw string) (Value, bool) {
	switch f.Kind {
	case KindUint:
		return f.parseUint(strings.TrimSpace(raw))

	case KindBool:
		s := strings.TrimSpace(raw)
		if strings.EqualFold(s, "true") {
			return Value{set: true, num: 1}, true
		} else if strings.EqualFold(s, "false") {
			return Value{set: true}, true
		}

	case KindEnum:
		s := strings.TrimSpace(raw)
		for i, m := range f.Values {
			if strings.EqualFold(m.Name, s) {
				return Value{set: true, num: uint64(i)}, true
			}
		}

	case KindText:
		return Value{set: true, text: f.filterText(raw)}, true
	}

	return Value{}, false
}

func (f FieldSpec) parseUint(s string) (Value, bool) {
	base := 10
	if f.Hex {
		base = 16
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
		}
	}
	if s == "" || s[0] == '+' || s[0] == '-' {
		return Value{}, false
	}

	n, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return Value{}, false
	}
	if n > widthLimit(f.encodedWidth()) {
		return Value{}, false
	}
	if f.Bounded && (n < f.Min || n > f.Max) {
		return Value{}, false
	}
	return Value{set: true, num: n}, true
}

func (f FieldSpec) filterText(raw string) string {
	var sb strings.Builder
	count := 0
	for _, r := range raw {
		if r == utf8.RuneError {
			continue
		}
		if f.Charset == "" {
			if r < 0x20 || r > 0x7E {
				continue
			}
		} else if !strings.ContainsRune(f.Charset, r) {
			continue
		}
		n := utf8.RuneLen(r)
		if f.MaxLen > 0 && count+n > f.MaxLen {
			break
		}
		sb.WriteRune(r)
		count += n
	}
	return sb.String()
}

// Format renders v the way the operator enters it.
func (f FieldSpec) Format(v Value) string {
	switch f.Kind {
	case KindUint:
		if f.Hex {
			return fmt.Sprintf("0x%X", v.num)
		}
		return strconv.FormatUint(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindEnum:
		if int(v.num) < len(f.Values) {
			return f.Values[v.num].Name
		}
	case KindText:
		return strconv.Quote(v.text)
	}
	return "?"
}

// Hint describes the accepted input domain.
func (f FieldSpec) Hint() string {
	switch f.Kind {
	case KindUint:
		max := widthLimit(f.encodedWidth())
		min := uint64(0)
		if f.Bounded {
			min, max = f.Min, f.Max
		}
		if f.Hex {
			return fmt.Sprintf("hex 0x%X-0x%X", min, max)
		}
		return fmt.Sprintf("%d-%d", min, max)
	case KindBool:
		return "true/false"
	case KindEnum:
		names := make([]string, len(f.Values))
		for i, m := range f.Values {
			names[i] = m.Name
		}
		return strings.Join(names, "/")
	case KindText:
		if f.MaxLen > 0 {
			return fmt.Sprintf("text, up to %d bytes", f.MaxLen)
		}
		return "text"
	}
	return ""
}
