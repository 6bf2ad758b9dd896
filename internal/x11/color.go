package x11

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseColor parses "#rrggbb" or "#rgb" into 16-bit X color channels.
func ParseColor(spec string) (r, g, b uint16, err error) {
	hex, ok := strings.CutPrefix(spec, "#")
	if !ok {
		return 0, 0, 0, fmt.Errorf("invalid color %q: missing '#'", spec)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", spec)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", spec, err)
	}
	// Scale 8-bit channels to 16 bits: 0xab -> 0xabab.
	r = uint16(v>>16&0xff) * 0x101
	g = uint16(v>>8&0xff) * 0x101
	b = uint16(v&0xff) * 0x101
	return r, g, b, nil
}
