package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathwise/pathwise-backend/internal/http/response"
	pkgerrors "github.com/pathwise/pathwise-backend/internal/pkg/errors"
)

// respondServiceError maps service sentinels to HTTP statuses.
func respondServiceError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, code, err)
	case errors.Is(err, pkgerrors.ErrInvalidArgument), errors.Is(err, pkgerrors.ErrInvalidWindow):
		response.RespondError(c, http.StatusBadRequest, code, err)
	case errors.Is(err, pkgerrors.ErrVersionConflict):
		response.RespondError(c, http.StatusConflict, code, err)
	case errors.Is(err, pkgerrors.ErrDataUnavailable):
		response.RespondError(c, http.StatusServiceUnavailable, code, err)
	default:
		response.RespondError(c, http.StatusInternalServerError, code, err)
	}
}
