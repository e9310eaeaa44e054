//go:build linux
// +build linux

package gohid

import (
	"fmt"
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	maxReportLen = 4096

	/* _IOC(_IOC_WRITE|_IOC_READ, 'H', nr, len) with the length added per call */
	hidiocSFeature = 0xC0004806
	hidiocGFeature = 0xC0004807
)

type rawDevice struct {
	dev *os.File
}

func openRaw(path string) (Device, error) {
	dev, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	return &rawDevice{
		dev: dev,
	}, nil
}

func (h *rawDevice) featureIoctl(name string, req uint32, b []byte) (int, error) {
	if len(b) == 0 || len(b) > maxReportLen {
		return 0, ErrorTooLong
	}

	n, _, errno := unix.Syscall(
		syscall.SYS_IOCTL,
		h.dev.Fd(),
		uintptr(req|uint32(len(b)<<16)),
		uintptr(unsafe.Pointer(&b[0])),
	)
	runtime.KeepAlive(b)

	if errno != 0 {
		return 0, os.NewSyscallError(name, fmt.Errorf("%d", int(errno)))
	}
	return int(n), nil
}

func (h *rawDevice) SendFeatureReport(b []byte) (int, error) {
	if _, err := h.featureIoctl("SendFeatureReport", hidiocSFeature, b); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (h *rawDevice) GetFeatureReport(b []byte) (int, error) {
	return h.featureIoctl("GetFeatureReport", hidiocGFeature, b)
}

func (h *rawDevice) Close() error {
	return h.dev.Close()
}
