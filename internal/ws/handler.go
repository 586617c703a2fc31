package ws

import (
	"net/http"
	"strings"

	"talent-hub/internal/pkg/jwt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Handler upgrades authenticated HR connections and registers them with the
// hub. Browsers cannot set headers on websocket requests, so the access token
// may also be passed as ?token=.
type Handler struct {
	hub      *Hub
	tokens   jwt.Service
	upgrader websocket.Upgrader
	logger   logrus.FieldLogger
}

func NewHandler(hub *Hub, tokens jwt.Service, logger logrus.FieldLogger) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		if auth := r.Header.Get("Authorization"); len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
			token = strings.TrimSpace(auth[7:])
		}
	}
	who, err := h.tokens.ValidateToken(token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if !who.CanManage() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("ws upgrade")
		return
	}
	client := NewClient(h.hub, conn, who.Email)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}
