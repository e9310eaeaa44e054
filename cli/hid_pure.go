//go:build puregohid
// +build puregohid

package main

import (
	"errors"

	"github.com/BertoldVdb/devtrial/gohid"
)

func hidInit() {}

func hidExit() {}

func OpenDevice() (gohid.Device, error) {
	if CLI.RawPath == "" {
		return nil, errors.New("RawPath must be specified when using pure Go HID")
	}

	return gohid.Open(CLI.RawPath)
}

type ListHIDCmd struct {
}

func (l *ListHIDCmd) Run(c *Context) error {
	return errors.New("This command is not supported using pure Go HID")
}
