//go:build !linux
// +build !linux

package gohid

func openRaw(path string) (Device, error) {
	return nil, ErrorUnsupported
}
