// Package assets provides the embedded dashboard, templates, and the layered
// filesystem the static handler serves from.
package assets

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"os"
	"path"
	"strings"
)

// EmbeddedFiles contains the default dashboard (HTML, CSS, JS) and the HTML
// templates rendered by the server.
//
//go:embed web templates
var EmbeddedFiles embed.FS

// contentTypeOverrides forces media types the browser-side core loader
// depends on.
var contentTypeOverrides = map[string]string{
	".wasm": "application/wasm",
	".js":   "application/javascript; charset=utf-8",
}

// ContentType returns the forced media type for name, or "" when the
// default detection applies. Matching ignores extension case.
func ContentType(name string) string {
	return contentTypeOverrides[strings.ToLower(path.Ext(name))]
}

// DefaultFS returns the embedded dashboard files rooted at web/.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(EmbeddedFiles, "web")
	if err != nil {
		panic("assets: " + err.Error())
	}
	return sub
}

// GetTemplatesFS returns the embedded HTML templates.
func GetTemplatesFS() fs.FS {
	sub, err := fs.Sub(EmbeddedFiles, "templates")
	if err != nil {
		panic("assets: " + err.Error())
	}
	return sub
}

// ParseTemplates parses every embedded HTML template.
func ParseTemplates() (*template.Template, error) {
	return template.New("").ParseFS(GetTemplatesFS(), "*.html")
}

// Layered resolves a name against each filesystem in order; the first one
// that has it wins.
type Layered []fs.FS

// Open implements fs.FS.
func (l Layered) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	for _, layer := range l {
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// New returns the asset filesystem: the emulator bundle on disk at root,
// falling back to the embedded dashboard.
func New(root string) fs.FS {
	return Layered{os.DirFS(root), DefaultFS()}
}
