// Package models defines data models for emulated systems and ROM files.
package models

// System describes one emulated platform as the dashboard and the bundled
// emulator know it.
type System struct {
	Name        string   `json:"name"`
	Core        string   `json:"core"`
	Extensions  []string `json:"extensions"`
	Description string   `json:"description"`
}
