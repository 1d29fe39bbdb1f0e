//go:build linux

package device

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// watchdogIO talks to the kernel watchdog driver through the WDIOC ioctl
// interface of golang.org/x/sys/unix.
type watchdogIO struct {
	fd int
}

func newDeviceIO() deviceIO {
	return &watchdogIO{fd: -1}
}

func (w *watchdogIO) Open(path string) error {
	// Write-only: the watchdog character device has nothing to read,
	// and some drivers reject read access outright.
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return err
	}
	w.fd = fd
	return nil
}

func (w *watchdogIO) Close() error {
	fd := w.fd
	w.fd = -1
	return unix.Close(fd)
}

func (w *watchdogIO) GetSupport() (string, uint32, uint32, error) {
	info, err := unix.IoctlGetWatchdogInfo(w.fd)
	if err != nil {
		return "", 0, 0, err
	}
	return unix.ByteSliceToString(info.Identity[:]), info.Version, info.Options, nil
}

func (w *watchdogIO) GetStatus() (uint32, error) {
	v, err := unix.IoctlGetInt(w.fd, unix.WDIOC_GETSTATUS)
	return uint32(v), err
}

func (w *watchdogIO) GetBootStatus() (uint32, error) {
	v, err := unix.IoctlGetInt(w.fd, unix.WDIOC_GETBOOTSTATUS)
	return uint32(v), err
}

func (w *watchdogIO) GetTimeout() (int, error) {
	return unix.IoctlGetInt(w.fd, unix.WDIOC_GETTIMEOUT)
}

func (w *watchdogIO) GetPretimeout() (int, error) {
	return unix.IoctlGetInt(w.fd, unix.WDIOC_GETPRETIMEOUT)
}

func (w *watchdogIO) GetTimeLeft() (int, error) {
	return unix.IoctlGetInt(w.fd, unix.WDIOC_GETTIMELEFT)
}

func (w *watchdogIO) Disarm() error {
	_, err := unix.Write(w.fd, []byte{DisarmChar})
	return err
}

// blockSignals masks all signals on the calling thread and returns a
// function restoring the previous mask. The goroutine is pinned to its OS
// thread for the duration because the mask is per-thread state.
func blockSignals() (func(), error) {
	runtime.LockOSThread()

	var all, old unix.Sigset_t
	for i := range all.Val {
		all.Val[i] = ^uint64(0)
	}
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, &all, &old); err != nil {
		runtime.UnlockOSThread()
		return func() {}, err
	}
	return func() {
		_ = unix.PthreadSigmask(unix.SIG_SETMASK, &old, nil)
		runtime.UnlockOSThread()
	}, nil
}
