package keys

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// keysyms maps the names accepted in binding tables to X keysym values.
// Printable Latin-1 keys are filled in by init.
var keysyms = map[string]xproto.Keysym{
	"space":     0x0020,
	"comma":     0x002c,
	"minus":     0x002d,
	"period":    0x002e,
	"slash":     0x002f,
	"semicolon": 0x003b,
	"equal":     0x003d,
	"BackSpace": 0xff08,
	"Tab":       0xff09,
	"Return":    0xff0d,
	"Escape":    0xff1b,
	"Home":      0xff50,
	"Left":      0xff51,
	"Up":        0xff52,
	"Right":     0xff53,
	"Down":      0xff54,
	"Prior":     0xff55,
	"Next":      0xff56,
	"End":       0xff57,
	"Print":     0xff61,
	"Delete":    0xffff,

	"XF86MonBrightnessUp":   0x1008ff02,
	"XF86MonBrightnessDown": 0x1008ff03,
	"XF86AudioLowerVolume":  0x1008ff11,
	"XF86AudioMute":         0x1008ff12,
	"XF86AudioRaiseVolume":  0x1008ff13,
	"XF86AudioPlay":         0x1008ff14,
	"XF86AudioStop":         0x1008ff15,
	"XF86AudioPrev":         0x1008ff16,
	"XF86AudioNext":         0x1008ff17,
}

var keysymNames = make(map[xproto.Keysym]string)

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keysyms[string(c)] = xproto.Keysym(c)
	}
	for c := '0'; c <= '9'; c++ {
		keysyms[string(c)] = xproto.Keysym(c)
	}
	for i := 1; i <= 12; i++ {
		keysyms[fmt.Sprintf("F%d", i)] = xproto.Keysym(0xffbe + i - 1)
	}
	for name, sym := range keysyms {
		keysymNames[sym] = name
	}
}

// ParseKeysym resolves a key name such as "Return", "j" or
// "XF86AudioMute". Single letters are case-insensitive.
func ParseKeysym(name string) (xproto.Keysym, error) {
	if sym, ok := keysyms[name]; ok {
		return sym, nil
	}
	if len(name) == 1 {
		if sym, ok := keysyms[strings.ToLower(name)]; ok {
			return sym, nil
		}
	}
	return 0, fmt.Errorf("unknown key name %q", name)
}

// KeysymName is the inverse of ParseKeysym. Unknown keysyms are rendered in hex.
func KeysymName(sym xproto.Keysym) string {
	if name, ok := keysymNames[sym]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint32(sym))
}
