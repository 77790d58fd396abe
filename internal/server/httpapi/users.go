package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// root answers the client's reachability probe.
func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "civigo", "status": "ok"})
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.svc.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: res.Token, UserID: res.UserID})
}

func (h *handler) register(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.svc.Users.Register(c.Request.Context(), req.Email, req.Password, "")
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, registerResponse{ID: u.ID, Email: u.Email})
}
