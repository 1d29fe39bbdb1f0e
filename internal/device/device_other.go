//go:build !linux

package device

import "errors"

var errUnsupported = errors.New("watchdog devices are only supported on Linux")

// The WDIOC ioctl interface only exists on Linux. Everything else gets a
// stub that fails at open time so the caller sees one clear error.
type unsupportedIO struct{}

func newDeviceIO() deviceIO {
	return unsupportedIO{}
}

func (unsupportedIO) Open(string) error {
	return errUnsupported
}

func (unsupportedIO) Close() error {
	return nil
}

func (unsupportedIO) GetSupport() (string, uint32, uint32, error) {
	return "", 0, 0, errUnsupported
}

func (unsupportedIO) GetStatus() (uint32, error) {
	return 0, errUnsupported
}

func (unsupportedIO) GetBootStatus() (uint32, error) {
	return 0, errUnsupported
}

func (unsupportedIO) GetTimeout() (int, error) {
	return 0, errUnsupported
}

func (unsupportedIO) GetPretimeout() (int, error) {
	return 0, errUnsupported
}

func (unsupportedIO) GetTimeLeft() (int, error) {
	return 0, errUnsupported
}

func (unsupportedIO) Disarm() error {
	return errUnsupported
}

func blockSignals() (func(), error) {
	return func() {}, nil
}
