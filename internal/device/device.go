package device

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/rs/zerolog/log"
)

// DisarmChar is the magic close character. Writing it to an open watchdog
// device tells the driver to stop the countdown when the handle is closed.
const DisarmChar = 'V'

// ErrBusy is returned by Read when the watchdog device is already held by
// another process. Callers should treat it as fatal: a held device cannot
// be queried without interfering with whoever armed it.
var ErrBusy = errors.New("watchdog already in use, terminating")

// Status is the result of a single device query session. It is built once
// by Read and never modified afterwards.
//
// Timeout, Pretimeout and TimeLeft carry an explicit Has* presence flag
// because drivers are free to support any subset of the three, and a zero
// value is a legitimate timeout. A missing value must not render as "0".
type Status struct {
	Device string

	Identity string
	Firmware uint32

	// Options is the supported-capabilities bitmask reported by the
	// driver. It may contain bits with no entry in Flags; the renderer
	// reports those separately instead of dropping them.
	Options    uint32
	Status     uint32
	BootStatus uint32

	Timeout    int
	Pretimeout int
	TimeLeft   int

	HasTimeout    bool
	HasPretimeout bool
	HasTimeLeft   bool
}

// deviceIO is the syscall surface of one watchdog device session. The
// real implementation lives in device_linux.go; tests substitute a mock
// to pin down the session protocol without a real device.
type deviceIO interface {
	Open(path string) error
	Close() error

	// GetSupport returns identity string, firmware version and the
	// supported-options bitmask (WDIOC_GETSUPPORT).
	GetSupport() (identity string, firmware uint32, options uint32, err error)

	GetStatus() (uint32, error)
	GetBootStatus() (uint32, error)
	GetTimeout() (int, error)
	GetPretimeout() (int, error)
	GetTimeLeft() (int, error)

	// Disarm performs a single write of the magic close character.
	Disarm() error
}

// Read opens the watchdog device at path, queries its capabilities and
// status, disarms it with the magic close character and closes it.
//
// Only open-time failures are returned as errors: a device that reports
// EBUSY yields an error wrapping ErrBusy, any other open failure yields a
// generic open error naming the path. Every failure after a successful
// open is logged as a warning and the session still disarms and closes
// the device, because leaving the watchdog armed risks a reboot.
//
// All signals are blocked for the duration of the session so that an
// interrupt cannot abort it between open and disarm; the previous signal
// mask is restored on every return path.
func Read(path string) (*Status, error) {
	return read(path, newDeviceIO())
}

func read(path string, dev deviceIO) (*Status, error) {
	st := &Status{Device: path}

	restore, err := blockSignals()
	if err != nil {
		log.Warn().Err(err).Msg("failed to block signals")
	}
	defer restore()

	if err := dev.Open(path); err != nil {
		if errors.Is(err, syscall.EBUSY) {
			return nil, fmt.Errorf("%s: %w", path, ErrBusy)
		}
		return nil, fmt.Errorf("%s: failed to open watchdog device: %w", path, err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Warn().Err(err).Str("device", path).Msg("failed to close watchdog device")
		}
	}()

	identity, firmware, options, err := dev.GetSupport()
	if err != nil {
		// Non-fatal: the disarm write below must still happen.
		log.Warn().Err(err).Str("device", path).Msg("failed to get information about watchdog")
	} else {
		st.Identity = identity
		st.Firmware = firmware
		st.Options = options

		if v, err := dev.GetStatus(); err == nil {
			st.Status = v
		}
		if v, err := dev.GetBootStatus(); err == nil {
			st.BootStatus = v
		}

		// Each timeout query is independently optional; a driver may
		// support any subset and failure of one says nothing about
		// the others.
		if v, err := dev.GetTimeout(); err == nil {
			st.Timeout = v
			st.HasTimeout = true
		}
		if v, err := dev.GetPretimeout(); err == nil {
			st.Pretimeout = v
			st.HasPretimeout = true
		}
		if v, err := dev.GetTimeLeft(); err == nil {
			st.TimeLeft = v
			st.HasTimeLeft = true
		}
	}

	// The device was opened only to query state, not to arm it, so the
	// magic close character must reach the driver. Retry on EINTR and
	// nothing else: if we don't get this right the machine may end up
	// rebooting.
	for {
		err := dev.Disarm()
		if err == nil {
			break
		}
		if !errors.Is(err, syscall.EINTR) {
			log.Warn().Err(err).Str("device", path).Msg("failed to disarm watchdog")
			break
		}
	}

	return st, nil
}
