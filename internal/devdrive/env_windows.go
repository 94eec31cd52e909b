//go:build windows

package devdrive

import (
	"context"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const machineEnvKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`

// registryEnvironment writes machine-wide environment variables to the
// registry and broadcasts the change to running processes
type registryEnvironment struct{}

func (registryEnvironment) SetMachineEnvironment(_ context.Context, name, value string) error {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, machineEnvKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open machine environment key: %w", err)
	}
	defer func() { _ = key.Close() }()

	if err := key.SetStringValue(name, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}

	broadcastEnvironmentChange()
	return nil
}

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	sendMessageTimeout = user32.NewProc("SendMessageTimeoutW")
)

const (
	hwndBroadcast   = 0xFFFF
	wmSettingChange = 0x001A
	smtoAbortIfHung = 0x0002
)

// broadcastEnvironmentChange tells running processes to re-read the machine
// environment. Best effort; a hung window must not stall provisioning.
func broadcastEnvironmentChange() {
	env, _ := syscall.UTF16PtrFromString("Environment")
	_, _, _ = sendMessageTimeout.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(env)),
		uintptr(smtoAbortIfHung),
		5000, // ms
		0,
	)
}

// osBuild returns the running Windows build number
func osBuild() (int, error) {
	info := windows.RtlGetVersion()
	return int(info.BuildNumber), nil
}
