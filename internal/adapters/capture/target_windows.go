//go:build windows

package capture

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

type winRect struct {
	left, top, right, bottom int32
}

// ResolveProcessRegion locates the top-level visible window of the named
// process and anchors a w×h capture region at its origin. A missing or
// mismatched process is startup-fatal for the caller.
func ResolveProcessRegion(process string, w, h int) (image.Rectangle, error) {
	want := strings.ToLower(strings.TrimSuffix(process, ".exe"))

	var found image.Rectangle
	var matched bool

	cb := windows.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		visible, _, _ := procIsWindowVisible.Call(hwnd)
		if visible == 0 {
			return 1 // continue
		}

		var pid uint32
		procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
		if pid == 0 {
			return 1
		}
		name, err := processImageName(pid)
		if err != nil {
			return 1
		}
		if strings.ToLower(strings.TrimSuffix(name, ".exe")) != want {
			return 1
		}

		var r winRect
		ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
		if ok == 0 {
			return 1
		}
		found = image.Rect(int(r.left), int(r.top), int(r.right), int(r.bottom))
		matched = true
		return 0 // stop enumeration
	})
	procEnumWindows.Call(cb, 0)

	if !matched {
		return image.Rectangle{}, fmt.Errorf("no visible window for process %q", process)
	}
	if found.Empty() {
		return image.Rectangle{}, fmt.Errorf("window for process %q has empty bounds", process)
	}
	return clampRegion(found, w, h), nil
}

func processImageName(pid uint32) (string, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(h)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", err
	}
	return filepath.Base(windows.UTF16ToString(buf[:size])), nil
}
