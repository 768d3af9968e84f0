package gamedata

import (
	"fmt"

	"github.com/samdwyer/tilegrid/internal/framebuffer"
	"github.com/samdwyer/tilegrid/internal/world"
)

// PaletteFile represents the structure of palette.json. Colors are hex strings.
type PaletteFile struct {
	Wall    string `json:"wall"`
	Green   string `json:"green"`
	Blue    string `json:"blue"`
	Floor   string `json:"floor"`
	Marker  string `json:"marker"`
	Overlay string `json:"overlay"`
}

// Colors holds a parsed palette file.
type Colors struct {
	Grid    world.Palette
	Overlay framebuffer.Color
}

// Parse converts every hex entry. Empty entries keep the built-in color.
func (p PaletteFile) Parse() (Colors, error) {
	c := Colors{
		Grid:    world.DefaultPalette(),
		Overlay: world.DefaultPalette().Wall,
	}

	fields := []struct {
		name string
		hex  string
		dst  *framebuffer.Color
	}{
		{"wall", p.Wall, &c.Grid.Wall},
		{"green", p.Green, &c.Grid.Green},
		{"blue", p.Blue, &c.Grid.Blue},
		{"floor", p.Floor, &c.Grid.Floor},
		{"marker", p.Marker, &c.Grid.Marker},
		{"overlay", p.Overlay, &c.Overlay},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		color, err := ParseHexColor(f.hex)
		if err != nil {
			return Colors{}, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = color
	}
	return c, nil
}

// LoadPalette loads colors from the embedded palette.json, or from path when set.
func LoadPalette(path string) (Colors, error) {
	var (
		file PaletteFile
		err  error
	)
	if path == "" {
		file, err = Load[PaletteFile]("palette.json")
	} else {
		file, err = LoadFile[PaletteFile](path)
	}
	if err != nil {
		return Colors{}, err
	}
	return file.Parse()
}
