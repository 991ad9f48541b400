// Package catalog holds the fixed table of emulated systems the bundled
// emulator supports.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pandeptwidyaop/webretro-server/internal/models"
)

var ErrInvalidSystem = errors.New("invalid system descriptor")

// Catalog is an immutable set of system descriptors keyed by system id.
type Catalog struct {
	systems map[string]models.System
}

var defaultCatalog = &Catalog{systems: map[string]models.System{
	"nes": {
		Name:        "Nintendo Entertainment System",
		Core:        "nestopia",
		Extensions:  []string{".nes"},
		Description: "8-bit home video game console by Nintendo",
	},
	"gba": {
		Name:        "Game Boy Advance",
		Core:        "mgba",
		Extensions:  []string{".gba"},
		Description: "32-bit handheld game console by Nintendo",
	},
	"snes": {
		Name:        "Super Nintendo Entertainment System",
		Core:        "snes9x",
		Extensions:  []string{".sfc", ".smc"},
		Description: "16-bit home video game console by Nintendo",
	},
	"genesis": {
		Name:        "Sega Genesis/Mega Drive",
		Core:        "genesis_plus_gx",
		Extensions:  []string{".md", ".gen", ".bin"},
		Description: "16-bit home video game console by Sega",
	},
	"n64": {
		Name:        "Nintendo 64",
		Core:        "mupen64plus_next",
		Extensions:  []string{".n64", ".z64", ".v64"},
		Description: "64-bit home video game console by Nintendo",
	},
	"psx": {
		Name:        "Sony PlayStation",
		Core:        "mednafen_psx_hw",
		Extensions:  []string{".bin", ".cue", ".pbp"},
		Description: "32-bit home video game console by Sony",
	},
	"gbc": {
		Name:        "Game Boy Color",
		Core:        "mgba",
		Extensions:  []string{".gbc", ".gb"},
		Description: "8-bit handheld game console by Nintendo",
	},
	"nds": {
		Name:        "Nintendo DS",
		Core:        "melonds",
		Extensions:  []string{".nds"},
		Description: "Dual-screen handheld game console by Nintendo",
	},
	"atari2600": {
		Name:        "Atari 2600",
		Core:        "stella2014",
		Extensions:  []string{".a26", ".bin"},
		Description: "Home video game console by Atari",
	},
	"atari5200": {
		Name:        "Atari 5200",
		Core:        "a5200",
		Extensions:  []string{".a52", ".bin"},
		Description: "Home video game console by Atari",
	},
	"colecovision": {
		Name:        "ColecoVision",
		Core:        "gearcoleco",
		Extensions:  []string{".col"},
		Description: "Second-generation home video game console",
	},
	"intellivision": {
		Name:        "Intellivision",
		Core:        "freeintv",
		Extensions:  []string{".int"},
		Description: "Home video game console by Mattel Electronics",
	},
	"lynx": {
		Name:        "Atari Lynx",
		Core:        "handy",
		Extensions:  []string{".lnx"},
		Description: "16-bit handheld game console by Atari",
	},
	"ngp": {
		Name:        "Neo Geo Pocket",
		Core:        "mednafen_ngp",
		Extensions:  []string{".ngp", ".ngc"},
		Description: "Handheld game console by SNK",
	},
	"wonderswan": {
		Name:        "WonderSwan",
		Core:        "mednafen_wswan",
		Extensions:  []string{".ws", ".wsc"},
		Description: "Handheld game console by Bandai",
	},
	"virtualboy": {
		Name:        "Virtual Boy",
		Core:        "mednafen_vb",
		Extensions:  []string{".vb"},
		Description: "32-bit tabletop portable console by Nintendo",
	},
	"saturn": {
		Name:        "Sega Saturn",
		Core:        "yabause",
		Extensions:  []string{".bin", ".cue"},
		Description: "32-bit fifth-generation home video game console by Sega",
	},
	"3do": {
		Name:        "3DO Interactive Multiplayer",
		Core:        "opera",
		Extensions:  []string{".iso", ".bin", ".cue"},
		Description: "Home video game console developed by The 3DO Company",
	},
	"jaguar": {
		Name:        "Atari Jaguar",
		Core:        "virtualjaguar",
		Extensions:  []string{".j64", ".jag"},
		Description: "Home video game console by Atari Corporation",
	},
	"vectrex": {
		Name:        "Vectrex",
		Core:        "vecx",
		Extensions:  []string{".vec", ".bin"},
		Description: "Vector display-based home video game console",
	},
	"odyssey2": {
		Name:        "Magnavox Odyssey²",
		Core:        "o2em",
		Extensions:  []string{".bin"},
		Description: "Home video game console by Magnavox",
	},
	"channelf": {
		Name:        "Fairchild Channel F",
		Core:        "freechaf",
		Extensions:  []string{".bin"},
		Description: "Home video game console by Fairchild Semiconductor",
	},
	"neocd": {
		Name:        "Neo Geo CD",
		Core:        "neocd",
		Extensions:  []string{".bin", ".cue"},
		Description: "Home video game console by SNK",
	},
}}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// New builds a catalog from the given descriptors and validates it.
func New(systems map[string]models.System) (*Catalog, error) {
	c := &Catalog{systems: make(map[string]models.System, len(systems))}
	for id, s := range systems {
		c.systems[id] = clone(s)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every descriptor once so handlers never have to.
func (c *Catalog) Validate() error {
	for _, id := range c.IDs() {
		s := c.systems[id]
		switch {
		case strings.TrimSpace(s.Name) == "":
			return fmt.Errorf("%w: %s: empty name", ErrInvalidSystem, id)
		case strings.TrimSpace(s.Core) == "":
			return fmt.Errorf("%w: %s: empty core", ErrInvalidSystem, id)
		case len(s.Extensions) == 0:
			return fmt.Errorf("%w: %s: no extensions", ErrInvalidSystem, id)
		}
		for _, ext := range s.Extensions {
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 || ext != strings.ToLower(ext) {
				return fmt.Errorf("%w: %s: bad extension %q", ErrInvalidSystem, id, ext)
			}
		}
	}
	return nil
}

// All returns a deep copy of the id to descriptor mapping.
func (c *Catalog) All() map[string]models.System {
	out := make(map[string]models.System, len(c.systems))
	for id, s := range c.systems {
		out[id] = clone(s)
	}
	return out
}

// Lookup returns a copy of the descriptor for id.
func (c *Catalog) Lookup(id string) (models.System, bool) {
	s, ok := c.systems[id]
	if !ok {
		return models.System{}, false
	}
	return clone(s), true
}

// IDs returns the system ids in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.systems))
	for id := range c.systems {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of systems.
func (c *Catalog) Len() int {
	return len(c.systems)
}

func clone(s models.System) models.System {
	s.Extensions = append([]string(nil), s.Extensions...)
	return s
}
