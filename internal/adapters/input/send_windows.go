//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/notyesbut/NitroGen/internal/keymap"
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002

	mouseeventfMove  = 0x0001
	mouseeventfWheel = 0x0800
)

// mouseButtonFlags holds the down flag, up flag and button data for each
// mouse button, matching the SendInput MOUSEEVENTF_* contract.
var mouseButtonFlags = map[string]struct {
	down, up uint32
	data     uint32
}{
	"left":   {0x0002, 0x0004, 0},
	"right":  {0x0008, 0x0010, 0},
	"middle": {0x0020, 0x0040, 0},
	"x1":     {0x0080, 0x0100, 0x0001},
	"x2":     {0x0080, 0x0100, 0x0002},
}

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

type mouseInput struct {
	dx          int32
	dy          int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// winInput is the INPUT struct with the mouse member of the union; the
// keyboard variant below is padded to the same size.
type winInput struct {
	typ uint32
	_   [4]byte
	mi  mouseInput
}

type winKbdInput struct {
	typ uint32
	_   [4]byte
	ki  keybdInput
	_   [8]byte
}

type sendInputBackend struct{}

func newBackend() backend { return sendInputBackend{} }

func (sendInputBackend) send(ev event) error {
	switch ev.kind {
	case evKey:
		vk, ok := keymap.VKCode[ev.name]
		if !ok {
			return nil
		}
		var flags uint32
		if !ev.down {
			flags |= keyeventfKeyUp
		}
		if keymap.IsExtended(ev.name) {
			flags |= keyeventfExtendedKey
		}
		in := winKbdInput{typ: inputKeyboard, ki: keybdInput{wVk: vk, dwFlags: flags}}
		return sendOne(unsafe.Pointer(&in))

	case evButton:
		bf, ok := mouseButtonFlags[ev.name]
		if !ok {
			return nil
		}
		flag := bf.down
		if !ev.down {
			flag = bf.up
		}
		in := winInput{typ: inputMouse, mi: mouseInput{mouseData: bf.data, dwFlags: flag}}
		return sendOne(unsafe.Pointer(&in))

	case evMove:
		in := winInput{typ: inputMouse, mi: mouseInput{
			dx:      int32(ev.dx),
			dy:      int32(ev.dy),
			dwFlags: mouseeventfMove,
		}}
		return sendOne(unsafe.Pointer(&in))

	default:
		in := winInput{typ: inputMouse, mi: mouseInput{
			mouseData: uint32(int32(ev.amount)),
			dwFlags:   mouseeventfWheel,
		}}
		return sendOne(unsafe.Pointer(&in))
	}
}

func sendOne(p unsafe.Pointer) error {
	n, _, err := procSendInput.Call(1, uintptr(p), unsafe.Sizeof(winInput{}))
	if n != 1 {
		return fmt.Errorf("SendInput: %v", err)
	}
	return nil
}
