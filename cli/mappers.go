package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
)

// intMapper parses integers in a fixed base, or with Go prefixes when base
// is 0. A 0x prefix is accepted for base 16.
type intMapper struct {
	base int
}

func (h intMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	err := ctx.Scan.PopValueInto("int", &value)
	if err != nil {
		return err
	}
	if h.base == 16 {
		value = strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	}

	i, err := strconv.ParseInt(value, h.base, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", value, err)
	}
	target.SetInt(i)
	return nil
}
