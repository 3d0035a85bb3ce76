package ws

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/inventory-backend/internal/config"
	"github.com/heartmarshall/inventory-backend/internal/notify"
	"github.com/heartmarshall/inventory-backend/internal/transport/middleware"
	"github.com/heartmarshall/inventory-backend/pkg/ctxutil"
)

type registry interface {
	Register(sub notify.Subscriber) error
	Unregister(id string) bool
}

// Handler upgrades GET /ws and registers the connection with the bus registry
// until the client disconnects.
type Handler struct {
	registry   registry
	log        *slog.Logger
	upgrader   websocket.Upgrader
	buffer     int
	pingPeriod time.Duration
}

// NewHandler creates a WebSocket handler. Origins follow the CORS allow-list.
func NewHandler(reg registry, notifyCfg config.NotifyConfig, corsCfg config.CORSConfig, logger *slog.Logger) *Handler {
	origins := middleware.NewOriginPolicy(corsCfg.AllowedOrigins)

	ping := notifyCfg.WSPingPeriod
	if ping <= 0 {
		ping = 30 * time.Second
	}

	return &Handler{
		registry:   reg,
		log:        logger.With("handler", "ws"),
		buffer:     notifyCfg.WSWriteBuffer,
		pingPeriod: ping,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins.Allows(origin)
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.DebugContext(r.Context(), "upgrade failed", slog.String("error", err.Error()))
		return
	}

	sub := newSubscriber("ws:"+uuid.NewString(), conn, h.buffer)

	if err := h.registry.Register(sub); err != nil {
		msg := "registration failed"
		if errors.Is(err, notify.ErrRegistryFull) {
			msg = "too many subscribers"
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, msg),
			time.Now().Add(writeWait))
		_ = conn.Close()
		h.log.WarnContext(r.Context(), "subscriber rejected", slog.String("error", err.Error()))
		return
	}

	attrs := []any{slog.String("subscriber", sub.ID())}
	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		attrs = append(attrs, slog.String("user_id", userID.String()))
	}
	h.log.InfoContext(r.Context(), "subscriber connected", attrs...)

	go sub.writePump(h.pingPeriod)
	sub.readPump(h.pingPeriod * 2)

	h.registry.Unregister(sub.ID())
	_ = sub.Close()
	h.log.InfoContext(r.Context(), "subscriber disconnected", attrs...)
}
