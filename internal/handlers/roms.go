package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pandeptwidyaop/webretro-server/internal/services"
)

const (
	eventsWriteWait  = 10 * time.Second
	eventsPongWait   = 60 * time.Second
	eventsPingPeriod = eventsPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same policy as Access-Control-Allow-Origin: *.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ROMHandler exposes the ROM library.
type ROMHandler struct {
	library *services.LibraryService
}

// NewROMHandler creates a new ROMHandler instance.
func NewROMHandler(library *services.LibraryService) *ROMHandler {
	return &ROMHandler{library: library}
}

// List scans the ROM root and returns ROMs grouped by system.
// GET /api/roms
func (h *ROMHandler) List(c *gin.Context) {
	lib, err := h.library.Scan(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrLibraryUnavailable) {
			slog.ErrorContext(c.Request.Context(), "Error reading ROMs directory", "root", h.library.Root(), "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read ROMs directory"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, lib)
}

// Events streams library change notifications over a WebSocket until the
// client goes away or the server shuts down.
// GET /api/roms/events
func (h *ROMHandler) Events(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(c.Request.Context(), "Failed to upgrade to WebSocket", "err", err)
		return
	}
	defer func() { _ = ws.Close() }()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, err := h.library.Watch(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Could not watch ROM library", "root", h.library.Root(), "err", err)
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "library unavailable"),
			time.Now().Add(eventsWriteWait))
		return
	}

	// Reader: only needed to process control frames and notice the close.
	ws.SetReadLimit(512)
	_ = ws.SetReadDeadline(time.Now().Add(eventsPongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(eventsPongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(eventsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(eventsWriteWait))
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = ws.SetWriteDeadline(time.Now().Add(eventsWriteWait))
			if err := ws.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventsWriteWait)); err != nil {
				return
			}
		}
	}
}
