//go:build windows

package rawinput

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	wmInput   = 0x00FF
	wmClose   = 0x0010
	wmDestroy = 0x0002

	ridInput          = 0x10000003
	rimTypeMouse      = 0
	ridevInputSink    = 0x00000100
	riMouseWheel      = 0x0400
	mouseMoveAbsolute = 0x0001
)

var (
	user32                     = windows.NewLazySystemDLL("user32.dll")
	procRegisterClassW         = user32.NewProc("RegisterClassW")
	procCreateWindowExW        = user32.NewProc("CreateWindowExW")
	procDestroyWindow          = user32.NewProc("DestroyWindow")
	procDefWindowProcW         = user32.NewProc("DefWindowProcW")
	procPostQuitMessage        = user32.NewProc("PostQuitMessage")
	procPostMessageW           = user32.NewProc("PostMessageW")
	procGetMessageW            = user32.NewProc("GetMessageW")
	procTranslateMessage       = user32.NewProc("TranslateMessage")
	procDispatchMessageW       = user32.NewProc("DispatchMessageW")
	procRegisterRawInputDevs   = user32.NewProc("RegisterRawInputDevices")
	procGetRawInputData        = user32.NewProc("GetRawInputData")
	kernel32                   = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandleW       = kernel32.NewProc("GetModuleHandleW")
)

type wndClass struct {
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
}

type msg struct {
	hwnd    windows.HWND
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

type rawInputDevice struct {
	usagePage  uint16
	usage      uint16
	flags      uint32
	hwndTarget windows.HWND
}

type rawInputHeader struct {
	typ    uint32
	size   uint32
	device windows.Handle
	wParam uintptr
}

type rawMouse struct {
	usFlags            uint16
	_                  uint16
	usButtonFlags      uint16
	usButtonData       uint16
	ulRawButtons       uint32
	lLastX             int32
	lLastY             int32
	ulExtraInformation uint32
}

type rawInput struct {
	header rawInputHeader
	mouse  rawMouse
}

// Sampler accumulates raw mouse deltas and wheel ticks through a
// message-only window registered for WM_INPUT. The message loop runs on a
// dedicated locked OS thread; the loop side only ever touches the
// accumulator.
type Sampler struct {
	acc     Accumulator
	hwnd    windows.HWND
	ready   chan error
	done    chan struct{}
	lastAbs *[2]int32
	started bool
}

// NewSampler creates a raw mouse sampler. Call Start before use.
func NewSampler() *Sampler {
	return &Sampler{
		ready: make(chan error, 1),
		done:  make(chan struct{}),
	}
}

// Start brings up the raw input window and begins accumulating.
func (s *Sampler) Start() error {
	if s.started {
		return nil
	}
	go s.run()
	select {
	case err := <-s.ready:
		if err != nil {
			return err
		}
	case <-time.After(5 * time.Second):
		return fmt.Errorf("raw input thread failed to start")
	}
	s.started = true
	return nil
}

// Stop tears down the raw input window.
func (s *Sampler) Stop() error {
	if !s.started {
		return nil
	}
	procPostMessageW.Call(uintptr(s.hwnd), wmClose, 0, 0)
	select {
	case <-s.done:
	case <-time.After(time.Second):
	}
	s.started = false
	return nil
}

// Drain atomically returns and resets the accumulated deltas.
func (s *Sampler) Drain() (dx, dy, wheel int) {
	return s.acc.Drain()
}

// WheelSupported reports true: the raw input hook observes wheel ticks.
func (s *Sampler) WheelSupported() bool { return true }

func (s *Sampler) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(s.done)

	className, _ := windows.UTF16PtrFromString("NitroGenRawInput")
	windowName, _ := windows.UTF16PtrFromString("NitroGen Raw Input")

	hInstance, _, _ := procGetModuleHandleW.Call(0)
	wc := wndClass{
		lpfnWndProc:   windows.NewCallback(s.wndProc),
		hInstance:     windows.Handle(hInstance),
		lpszClassName: className,
	}
	procRegisterClassW.Call(uintptr(unsafe.Pointer(&wc)))

	// HWND_MESSAGE parents a message-only window.
	hwndMessage := ^uintptr(2)
	hwnd, _, _ := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(windowName)),
		0, 0, 0, 0, 0,
		hwndMessage,
		0, hInstance, 0,
	)
	if hwnd == 0 {
		s.ready <- fmt.Errorf("CreateWindowExW failed")
		return
	}
	s.hwnd = windows.HWND(hwnd)

	rid := rawInputDevice{
		usagePage:  0x01, // generic desktop
		usage:      0x02, // mouse
		flags:      ridevInputSink,
		hwndTarget: s.hwnd,
	}
	ok, _, _ := procRegisterRawInputDevs.Call(
		uintptr(unsafe.Pointer(&rid)), 1, unsafe.Sizeof(rid),
	)
	if ok == 0 {
		s.ready <- fmt.Errorf("RegisterRawInputDevices failed")
		return
	}

	s.ready <- nil

	var m msg
	for {
		r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if r == 0 {
			return
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func (s *Sampler) wndProc(hwnd windows.HWND, message uint32, wParam, lParam uintptr) uintptr {
	switch message {
	case wmInput:
		s.handleRawInput(lParam)
		return 0
	case wmClose:
		procDestroyWindow.Call(uintptr(hwnd))
		return 0
	case wmDestroy:
		procPostQuitMessage.Call(0)
		return 0
	}
	r, _, _ := procDefWindowProcW.Call(uintptr(hwnd), uintptr(message), wParam, lParam)
	return r
}

func (s *Sampler) handleRawInput(hRawInput uintptr) {
	var size uint32
	headerSize := uint32(unsafe.Sizeof(rawInputHeader{}))
	procGetRawInputData.Call(hRawInput, ridInput, 0,
		uintptr(unsafe.Pointer(&size)), uintptr(headerSize))
	if size == 0 || size > 1024 {
		return
	}

	buf := make([]byte, size)
	read, _, _ := procGetRawInputData.Call(hRawInput, ridInput,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&size)), uintptr(headerSize))
	if uint32(read) != size {
		return
	}

	raw := (*rawInput)(unsafe.Pointer(&buf[0]))
	if raw.header.typ != rimTypeMouse {
		return
	}

	mouse := raw.mouse
	dx := int(mouse.lLastX)
	dy := int(mouse.lLastY)

	// Absolute devices (tablets, RDP) report positions, not deltas.
	if mouse.usFlags&mouseMoveAbsolute != 0 {
		if s.lastAbs != nil {
			dx = int(mouse.lLastX - s.lastAbs[0])
			dy = int(mouse.lLastY - s.lastAbs[1])
		} else {
			dx, dy = 0, 0
		}
		s.lastAbs = &[2]int32{mouse.lLastX, mouse.lLastY}
	}

	wheel := 0
	if mouse.usButtonFlags&riMouseWheel != 0 {
		wheel = int(int16(mouse.usButtonData))
	}

	if dx != 0 || dy != 0 || wheel != 0 {
		s.acc.Add(dx, dy, wheel)
	}
}
