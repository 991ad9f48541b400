package models

// ROM is a game image found under a system directory of the ROM root.
// Path is relative to the ROM root and always uses forward slashes.
type ROM struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	System string `json:"system"`
	Size   int64  `json:"size"`
}

// Library maps a system id to the ROMs found in its directory.
type Library map[string][]ROM

// Count returns the number of ROMs across all systems.
func (l Library) Count() int {
	n := 0
	for _, roms := range l {
		n += len(roms)
	}
	return n
}

// TotalSize returns the summed byte size of every ROM.
func (l Library) TotalSize() int64 {
	var total int64
	for _, roms := range l {
		for _, r := range roms {
			total += r.Size
		}
	}
	return total
}
