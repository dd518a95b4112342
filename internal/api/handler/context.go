package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akti/portal-api/internal/api/middleware"
)

// ctxActor extracts the acting username injected by the session gate.
// Its presence proves the gate ran; a handler reached without it is a
// wiring error, answered with 401 rather than a guess.
func ctxActor(c echo.Context) (string, error) {
	actor, _ := c.Get(middleware.CtxUsername).(string)
	if actor == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
