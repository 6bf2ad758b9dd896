package keys

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// NumLock is conventionally bound to Mod2.
const NumLock = xproto.ModMask2

const relevantMods = xproto.ModMaskShift | xproto.ModMaskControl |
	xproto.ModMask1 | xproto.ModMask3 | xproto.ModMask4 | xproto.ModMask5

// CleanMask strips CapsLock, NumLock and pointer button bits from a
// modifier state.
func CleanMask(mask uint16) uint16 {
	return mask & relevantMods
}

// LockVariants returns mod combined with every lock modifier combination,
// which is what has to be grabbed for CleanMask matching to see the key.
func LockVariants(mod uint16) []uint16 {
	return []uint16{
		mod,
		mod | xproto.ModMaskLock,
		mod | NumLock,
		mod | xproto.ModMaskLock | NumLock,
	}
}

// modifierNames is also the order ModifierString renders in, matching
// how binding tables are written ("Mod1+Shift").
var modifierNames = []struct {
	name string
	mask uint16
}{
	{"Mod1", xproto.ModMask1},
	{"Mod2", xproto.ModMask2},
	{"Mod3", xproto.ModMask3},
	{"Mod4", xproto.ModMask4},
	{"Mod5", xproto.ModMask5},
	{"Control", xproto.ModMaskControl},
	{"Shift", xproto.ModMaskShift},
	{"Lock", xproto.ModMaskLock},
}

// modifierAliases is keyed by lower-case name.
var modifierAliases = map[string]string{
	"ctrl":  "Control",
	"alt":   "Mod1",
	"super": "Mod4",
}

// ParseModifiers parses "Mod1+Shift" or "Mod1|Shift". An empty string is
// the empty mask.
func ParseModifiers(s string) (uint16, error) {
	var mask uint16
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == '|' || r == ' '
	})
	for _, f := range fields {
		if alias, ok := modifierAliases[strings.ToLower(f)]; ok {
			f = alias
		}
		found := false
		for _, m := range modifierNames {
			if strings.EqualFold(m.name, f) {
				mask |= m.mask
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown modifier %q", f)
		}
	}
	return mask, nil
}

// ModifierString renders a mask in the form ParseModifiers accepts.
func ModifierString(mask uint16) string {
	var parts []string
	for _, m := range modifierNames {
		if mask&m.mask != 0 {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(parts, "+")
}
