package gamedata

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/tilegrid/internal/framebuffer"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to an opaque framebuffer color.
func ParseHexColor(hex string) (framebuffer.Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return framebuffer.Color{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return framebuffer.RGBA(r, g, b, 0xff), nil
}
