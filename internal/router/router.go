package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/webretro-server/internal/assets"
	"github.com/pandeptwidyaop/webretro-server/internal/catalog"
	"github.com/pandeptwidyaop/webretro-server/internal/config"
	"github.com/pandeptwidyaop/webretro-server/internal/handlers"
	"github.com/pandeptwidyaop/webretro-server/internal/middleware"
	"github.com/pandeptwidyaop/webretro-server/internal/services"
)

var (
	pageMethods = []string{http.MethodGet, http.MethodHead}
	getMethod   = []string{http.MethodGet}
)

// match registers p with and without a trailing slash.
func match(r gin.IRoutes, methods []string, p string, h gin.HandlerFunc) {
	r.Match(methods, p, h)
	r.Match(methods, p+"/", h)
}

// New wires every route. fsys is the asset tree; started is the process
// start time reported by the health endpoint.
func New(cfg *config.Config, systems *catalog.Catalog, library *services.LibraryService, fsys fs.FS, started time.Time) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	// The built-in 301 is written before middleware runs; slash forms are
	// registered below instead.
	r.RedirectTrailingSlash = false
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CrossOrigin())

	tmpl, err := assets.ParseTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	webHandler := handlers.NewWebHandler(fsys, cfg.Assets.Dashboard, cfg.Assets.Emulator)
	catalogHandler := handlers.NewCatalogHandler(systems)
	romHandler := handlers.NewROMHandler(library)
	healthHandler := handlers.NewHealthHandler(cfg.Server.Port, library.Root(), started)
	versionHandler := handlers.NewVersionHandler()

	r.Match(pageMethods, "/", webHandler.Dashboard)
	match(r, pageMethods, "/emulator", webHandler.Emulator)

	match(r, getMethod, "/health", healthHandler.Health)

	api := r.Group("/api")
	{
		match(api, getMethod, "/systems", catalogHandler.Systems)
		match(api, getMethod, "/roms", romHandler.List)
		match(api, getMethod, "/roms/events", romHandler.Events)
		match(api, getMethod, "/status", healthHandler.Status)
		match(api, getMethod, "/version", versionHandler.Get)
	}

	// Everything else is either a bundle asset or a 404 page.
	r.NoRoute(webHandler.Static)

	return r, nil
}
