package controller

import (
	"net/http"
	"strconv"

	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/asrayg/betterforms/internal/dto"
	"github.com/gin-gonic/gin"
)

// RespondError maps a service error onto an HTTP status and a caller-safe
// body. Internal and upstream causes are already logged by the services and
// never reach the wire.
func RespondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperror.KindOf(err) {
	case apperror.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperror.KindForbidden:
		status = http.StatusForbidden
	case apperror.KindInvalid:
		status = http.StatusBadRequest
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindUpstream:
		status = http.StatusBadGateway
	}
	ctx.JSON(status, dto.ErrorResponse{Message: apperror.Message(err)})
}

// ParamID parses a numeric path parameter, responding 400 on malformed input.
func ParamID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
