package controller

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/notify"

	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/websocket"
)

const writeTimeout = 10 * time.Second

type notificationRoutesHandler struct {
	sink           notify.Sink
	allowedOrigins map[string]bool
	anyOrigin      bool
}

func newNotificationRoutesHandler(outer *echo.Group, sink notify.Sink, origins []string) *notificationRoutesHandler {
	h := &notificationRoutesHandler{sink: sink, allowedOrigins: make(map[string]bool)}
	for _, o := range origins {
		if o == "*" {
			h.anyOrigin = true
		}
		h.allowedOrigins[o] = true
	}
	outer.GET("/notifications/ws", h.Connect)

	return h
}

type socketEvent struct {
	Event string              `json:"event"`
	Data  entity.Notification `json:"data"`
}

func (h *notificationRoutesHandler) handshake(config *websocket.Config, req *http.Request) error {
	origin := req.Header.Get("Origin")
	if origin == "" || h.anyOrigin || h.allowedOrigins[origin] {
		return nil
	}

	return websocket.ErrBadWebSocketOrigin
}

// /notifications/ws?userId=
// Browsers cannot set headers on a websocket upgrade, so the query
// parameter is accepted as well as the identity header.
func (h *notificationRoutesHandler) Connect(c echo.Context) error {
	raw := c.Request().Header.Get(HeaderUserId)
	if raw == "" {
		raw = c.QueryParam("userId")
	}
	userId, err := uuid.Parse(raw)
	if err != nil || userId == uuid.Nil {
		return c.JSON(http.StatusUnauthorized, fail("Not authorized, no user identity"))
	}

	server := websocket.Server{
		Handshake: h.handshake,
		Handler: func(ws *websocket.Conn) {
			h.serve(ws, userId)
		},
	}
	server.ServeHTTP(c.Response(), c.Request())

	return nil
}

func (h *notificationRoutesHandler) serve(ws *websocket.Conn, userId uuid.UUID) {
	defer ws.Close()

	var mu sync.Mutex
	unregister := h.sink.Register(userId, notify.ChannelFunc(func(ctx context.Context, n entity.Notification) error {
		mu.Lock()
		defer mu.Unlock()

		deadline, ok := ctx.Deadline()
		if !ok {
			deadline = time.Now().Add(writeTimeout)
		}
		if err := ws.SetWriteDeadline(deadline); err != nil {
			return err
		}

		return websocket.JSON.Send(ws, socketEvent{Event: "notification", Data: n})
	}))
	defer unregister()

	log.Debug().Str("user_id", userId.String()).Msg("notification socket joined")

	// the client only ever closes; reading detects that
	for {
		var msg string
		if err := websocket.Message.Receive(ws, &msg); err != nil {
			log.Debug().Str("user_id", userId.String()).Msg("notification socket disconnected")
			return
		}
	}
}
