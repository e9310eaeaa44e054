package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BertoldVdb/devtrial/transport"
)

func (c *Context) openTransport() error {
	switch strings.ToLower(CLI.Transport) {
	case "hid":
		dev, err := OpenDevice()
		if err != nil {
			return fmt.Errorf("failed to open HID device: %w", err)
		}
		c.closer = dev
		c.transport = transport.NewHID(dev, transport.HIDConfig{
			ReportID:   byte(CLI.ReportID),
			ReportSize: CLI.ReportSize,
			LogFunc:    c.logFunc,
		})

	case "serial":
		if CLI.Port == "" {
			return errors.New("the serial transport needs --port")
		}
		s, err := transport.OpenSerial(CLI.Port, CLI.Baud, transport.SerialConfig{
			LogFunc: c.logFunc,
		})
		if err != nil {
			return err
		}
		c.closer = s
		c.transport = s

	case "sim":
		sim := transport.NewCatalogSimulator(c.catalog.Root)
		sim.LogFunc = c.logFunc
		c.transport = sim

	default:
		return fmt.Errorf("unknown transport %q", CLI.Transport)
	}

	c.logFunc(1, "Using %s transport", strings.ToLower(CLI.Transport))
	return nil
}
