package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/internal/crypto"
	"github.com/guttosm/marketpulse/internal/middleware"
	"github.com/guttosm/marketpulse/internal/service"
	"github.com/guttosm/marketpulse/internal/vendorerr"
)

// statusFor maps a service error to an HTTP status and a client-facing message.
func statusFor(err error) (int, string) {
	var (
		verr *service.ValidationError
		serr *vendorerr.SessionError
		terr *vendorerr.TimeoutError
		herr *vendorerr.HTTPError
		derr *vendorerr.DataError
		perr *vendorerr.ParseError
	)
	switch {
	case errors.As(err, &verr), errors.Is(err, crypto.ErrUnsupportedGranularity):
		return http.StatusBadRequest, "invalid request"
	case errors.As(err, &serr):
		return http.StatusServiceUnavailable, "upstream session unavailable"
	case errors.As(err, &terr), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream timed out"
	case errors.As(err, &herr):
		if herr.Status == http.StatusNotFound {
			return http.StatusNotFound, "symbol not found"
		}
		return http.StatusBadGateway, "upstream request failed"
	case errors.As(err, &derr), errors.As(err, &perr):
		return http.StatusBadGateway, "upstream returned unusable data"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	middleware.AbortWithError(c, status, msg, err)
}
