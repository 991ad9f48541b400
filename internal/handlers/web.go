// Package handlers provides HTTP request handlers for the dashboard, the
// emulator bundle and the JSON API.
package handlers

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/webretro-server/internal/assets"
)

// WebHandler serves the document entry points and the static asset tree.
type WebHandler struct {
	fsys      fs.FS
	dashboard string
	emulator  string
}

// NewWebHandler creates a new WebHandler instance. dashboard and emulator are
// file names inside fsys.
func NewWebHandler(fsys fs.FS, dashboard, emulator string) *WebHandler {
	return &WebHandler{
		fsys:      fsys,
		dashboard: dashboard,
		emulator:  emulator,
	}
}

// Dashboard serves the game library page.
// GET /
func (h *WebHandler) Dashboard(c *gin.Context) {
	if !h.serveFile(c, h.dashboard) {
		h.NotFound(c)
	}
}

// Emulator serves the bundled emulator page. The dashboard passes core and
// rom as query parameters; they are interpreted client side only.
// GET /emulator
func (h *WebHandler) Emulator(c *gin.Context) {
	if !h.serveFile(c, h.emulator) {
		h.NotFound(c)
	}
}

// Static resolves any unmatched GET or HEAD against the asset tree.
func (h *WebHandler) Static(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		h.NotFound(c)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
	if name == "" {
		name = "."
	}
	if !h.serveFile(c, name) {
		h.NotFound(c)
	}
}

// NotFound renders the 404 page.
func (h *WebHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{
		"Path": c.Request.URL.Path,
	})
}

// serveFile writes name from the asset tree and reports whether it existed.
// Directories resolve to their index.html; dot files are never served.
func (h *WebHandler) serveFile(c *gin.Context, name string) bool {
	if !fs.ValidPath(name) || hasDotSegment(name) {
		return false
	}

	f, err := h.fsys.Open(name)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	if info.IsDir() {
		return h.serveIndex(c, name)
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			return false
		}
		rs = bytes.NewReader(data)
	}

	if ct := assets.ContentType(name); ct != "" {
		c.Header("Content-Type", ct)
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), rs)
	return true
}

// serveIndex redirects to the slash form first so relative links in the
// index resolve inside the directory.
func (h *WebHandler) serveIndex(c *gin.Context, dir string) bool {
	index := path.Join(dir, "index.html")
	info, err := fs.Stat(h.fsys, index)
	if err != nil || info.IsDir() {
		return false
	}
	if dir != "." && !strings.HasSuffix(c.Request.URL.Path, "/") {
		target := "/" + dir + "/"
		if q := c.Request.URL.RawQuery; q != "" {
			target += "?" + q
		}
		c.Redirect(http.StatusMovedPermanently, target)
		return true
	}
	return h.serveFile(c, index)
}

func hasDotSegment(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}
