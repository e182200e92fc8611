package controller

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// HeaderUserId carries the caller identity set by the upstream auth layer.
const HeaderUserId = "X-User-Id"

const userContextKey = "userId"

func requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Request().Header.Get(HeaderUserId))
		if err != nil || id == uuid.Nil {
			return c.JSON(http.StatusUnauthorized, fail("Not authorized, no user identity"))
		}

		c.Set(userContextKey, id)
		return next(c)
	}
}

func currentUser(c echo.Context) uuid.UUID {
	id, _ := c.Get(userContextKey).(uuid.UUID)
	return id
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		if err := next(c); err != nil {
			c.Error(err)
		}

		req, res := c.Request(), c.Response()
		var event *zerolog.Event
		switch {
		case res.Status >= http.StatusInternalServerError:
			event = log.Error()
		case res.Status >= http.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event.
			Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", res.Status).
			Dur("latency", time.Since(start)).
			Msg("request")

		return nil
	}
}
