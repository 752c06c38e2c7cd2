//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

const enableVirtualTerminalProcessing uint32 = 0x4

// consoleSupportsVT reports whether console is able to process VT100
// sequences, that requires Windows 10 or later.
func consoleSupportsVT() bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	major, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	return err == nil && major >= 10
}

// EnableColorOutput checks if colorized output is possible and switches
// console stream into VT100 mode.
func EnableColorOutput(stream *os.File) bool {
	if !consoleSupportsVT() || !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|enableVirtualTerminalProcessing) == nil
}
