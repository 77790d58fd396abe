package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/gin-gonic/gin"
)

// fail maps a service error onto a status and a {message} body. Unknown
// errors are logged and hidden behind a generic 500.
func (h *handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Message: err.Error()})
	case errors.Is(err, common.ErrorInvalidLoginPassword), errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Message: err.Error()})
	default:
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: common.ErrorInternal.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request: " + err.Error()})
}
