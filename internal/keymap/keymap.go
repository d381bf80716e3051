// Package keymap defines the canonical key and mouse-button naming used
// across the agent: virtual-key codes, aliases, and the default tracked sets.
//
// All key and button names flowing through actions, recordings and
// configuration are normalized through this package, so the on-disk
// recording format uses one stable vocabulary.
package keymap

import (
	"strconv"
	"strings"
)

// VKCode maps normalized key names to Windows virtual-key codes. The codes
// are part of the recording vocabulary even on platforms that do not inject.
var VKCode = map[string]uint16{
	"backspace": 0x08,
	"tab":       0x09,
	"enter":     0x0D,
	"shift":     0x10,
	"ctrl":      0x11,
	"alt":       0x12,
	"pause":     0x13,
	"capslock":  0x14,
	"esc":       0x1B,
	"space":     0x20,
	"pageup":    0x21,
	"pagedown":  0x22,
	"end":       0x23,
	"home":      0x24,
	"left":      0x25,
	"up":        0x26,
	"right":     0x27,
	"down":      0x28,
	"insert":    0x2D,
	"delete":    0x2E,
	"0":         0x30,
	"1":         0x31,
	"2":         0x32,
	"3":         0x33,
	"4":         0x34,
	"5":         0x35,
	"6":         0x36,
	"7":         0x37,
	"8":         0x38,
	"9":         0x39,
	"a":         0x41,
	"b":         0x42,
	"c":         0x43,
	"d":         0x44,
	"e":         0x45,
	"f":         0x46,
	"g":         0x47,
	"h":         0x48,
	"i":         0x49,
	"j":         0x4A,
	"k":         0x4B,
	"l":         0x4C,
	"m":         0x4D,
	"n":         0x4E,
	"o":         0x4F,
	"p":         0x50,
	"q":         0x51,
	"r":         0x52,
	"s":         0x53,
	"t":         0x54,
	"u":         0x55,
	"v":         0x56,
	"w":         0x57,
	"x":         0x58,
	"y":         0x59,
	"z":         0x5A,
	"lshift":    0xA0,
	"rshift":    0xA1,
	"lctrl":     0xA2,
	"rctrl":     0xA3,
	"lalt":      0xA4,
	"ralt":      0xA5,
	"f1":        0x70,
	"f2":        0x71,
	"f3":        0x72,
	"f4":        0x73,
	"f5":        0x74,
	"f6":        0x75,
	"f7":        0x76,
	"f8":        0x77,
	"f9":        0x78,
	"f10":       0x79,
	"f11":       0x7A,
	"f12":       0x7B,
}

// aliases maps alternative spellings to canonical key names.
var aliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"control":  "ctrl",
	"lcontrol": "lctrl",
	"rcontrol": "rctrl",
	"option":   "alt",
}

// extendedKeys are keys that require the extended-key flag when injected.
var extendedKeys = map[string]struct{}{
	"up":       {},
	"down":     {},
	"left":     {},
	"right":    {},
	"insert":   {},
	"delete":   {},
	"home":     {},
	"end":      {},
	"pageup":   {},
	"pagedown": {},
	"rctrl":    {},
	"ralt":     {},
}

// MouseButtonVK maps normalized mouse-button names to virtual-key codes,
// used when sampling hardware button state.
var MouseButtonVK = map[string]uint16{
	"left":   0x01,
	"right":  0x02,
	"middle": 0x04,
	"x1":     0x05,
	"x2":     0x06,
}

// DefaultMouseButtons is the default tracked mouse-button set.
var DefaultMouseButtons = []string{"left", "right", "middle", "x1", "x2"}

// DefaultKeys is the default tracked key set: movement keys first, then the
// common control keys, digits, remaining letters and function keys.
var DefaultKeys = defaultKeys()

func defaultKeys() []string {
	keys := []string{
		"w", "a", "s", "d",
		"space", "shift", "ctrl", "alt", "tab", "esc", "enter", "backspace",
		"up", "down", "left", "right",
	}
	for c := '1'; c <= '9'; c++ {
		keys = append(keys, string(c))
	}
	keys = append(keys, "0")
	movement := map[string]struct{}{"w": {}, "a": {}, "s": {}, "d": {}}
	for c := 'a'; c <= 'z'; c++ {
		k := string(c)
		if _, ok := movement[k]; !ok {
			keys = append(keys, k)
		}
	}
	for i := 1; i <= 12; i++ {
		keys = append(keys, "f"+strconv.Itoa(i))
	}
	return keys
}

// NormalizeKey lowercases, trims and de-aliases a key name.
func NormalizeKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canon, ok := aliases[key]; ok {
		return canon
	}
	return key
}

// NormalizeMouseButton lowercases, trims and de-aliases a mouse-button name.
func NormalizeMouseButton(name string) string {
	button := strings.ToLower(strings.TrimSpace(name))
	switch button {
	case "mouse1", "button1":
		return "left"
	case "mouse2", "button2":
		return "right"
	case "mouse3", "button3":
		return "middle"
	case "mouse4", "button4":
		return "x1"
	case "mouse5", "button5":
		return "x2"
	}
	return button
}

// IsExtended reports whether a key needs the extended-key injection flag.
func IsExtended(key string) bool {
	_, ok := extendedKeys[key]
	return ok
}

// ParseKeyList parses a comma- or space-separated key list, normalizing
// names and dropping unknown or duplicate entries. An empty input yields
// the provided default set.
func ParseKeyList(raw string, def []string) []string {
	if strings.TrimSpace(raw) == "" {
		out := make([]string, len(def))
		copy(out, def)
		return out
	}
	var keys []string
	seen := make(map[string]struct{})
	for _, tok := range tokens(raw) {
		norm := NormalizeKey(tok)
		if _, known := VKCode[norm]; !known {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		keys = append(keys, norm)
	}
	return keys
}

// ParseMouseButtonList parses a comma- or space-separated mouse-button list,
// normalizing names and dropping unknown or duplicate entries. An empty
// input yields the provided default set.
func ParseMouseButtonList(raw string, def []string) []string {
	if strings.TrimSpace(raw) == "" {
		out := make([]string, len(def))
		copy(out, def)
		return out
	}
	var buttons []string
	seen := make(map[string]struct{})
	for _, tok := range tokens(raw) {
		norm := NormalizeMouseButton(tok)
		if _, known := MouseButtonVK[norm]; !known {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		buttons = append(buttons, norm)
	}
	return buttons
}

func tokens(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
