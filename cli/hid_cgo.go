//go:build !puregohid
// +build !puregohid

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BertoldVdb/devtrial/gohid"
	"github.com/sstallion/go-hid"
)

var errFound = errors.New("Done")

func hidInit() {
	hid.Init()
}

func hidExit() {
	hid.Exit()
}

func SearchDevice(foundHandler func(info *hid.DeviceInfo) error) error {
	return hid.Enumerate(uint16(CLI.VID), uint16(CLI.PID), func(info *hid.DeviceInfo) error {
		if CLI.Serial != "" && info.SerialNbr != CLI.Serial {
			return nil
		}
		if CLI.RawPath != "" && info.Path != CLI.RawPath {
			return nil
		}

		return foundHandler(info)
	})
}

func OpenDevice() (gohid.Device, error) {
	var dev *hid.Device
	err := SearchDevice(func(info *hid.DeviceInfo) error {
		d, err := hid.Open(info.VendorID, info.ProductID, info.SerialNbr)
		if err != nil {
			return err
		}
		dev = d
		return errFound
	})
	if dev != nil {
		return dev, nil
	}
	if err == nil {
		err = os.ErrNotExist
	}

	return nil, err
}

type ListHIDCmd struct {
}

func (l *ListHIDCmd) Run(c *Context) error {
	return SearchDevice(func(info *hid.DeviceInfo) error {
		fmt.Printf("%s: ID %04x:%04x %s %s\n",
			info.Path, info.VendorID, info.ProductID, info.MfrStr, info.ProductStr)
		fmt.Printf("\tSerialNbr    %s\n", info.SerialNbr)
		fmt.Printf("\tReleaseNbr   %x.%x\n", info.ReleaseNbr>>8, info.ReleaseNbr&0xff)
		fmt.Printf("\tInterfaceNbr %d\n", info.InterfaceNbr)
		fmt.Printf("\tUse with     --vid %04x --pid %04x --raw-path %s\n", info.VendorID, info.ProductID, info.Path)
		fmt.Println()

		return nil
	})
}
