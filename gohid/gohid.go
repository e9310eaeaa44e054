// Package gohid accesses hidraw devices without cgo.
package gohid

import "errors"

var (
	ErrorTooLong     = errors.New("Transfer is too long")
	ErrorUnsupported = errors.New("Raw HID access is not supported on this platform")
)

// Device is the subset of a HID device used to exchange feature reports. The
// first byte of every report is the report ID.
type Device interface {
	GetFeatureReport(b []byte) (int, error)
	SendFeatureReport(b []byte) (int, error)
	Close() error
}

func Open(path string) (Device, error) {
	return openRaw(path)
}
