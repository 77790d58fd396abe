package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (h *handler) createProject(c *gin.Context) {
	var req projectDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.svc.Projects.Create(c.Request.Context(), projectFromDTO(userID(c), req))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": projectToDTO(p)})
}

func (h *handler) updateProject(c *gin.Context) {
	var req projectDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p := projectFromDTO(userID(c), req)
	p.ID = c.Param("id")
	if err := h.svc.Projects.Update(c.Request.Context(), p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": projectToDTO(p)})
}

func (h *handler) deleteProject(c *gin.Context) {
	if err := h.svc.Projects.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listProjects(c *gin.Context) {
	list, err := h.svc.Projects.List(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]projectDTO, 0, len(list))
	for _, p := range list {
		out = append(out, projectToDTO(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createWork(c *gin.Context) {
	var req workDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	w, err := h.svc.Works.Create(c.Request.Context(), &models.Work{
		UserID:      userID(c),
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"work": workToDTO(w)})
}

func (h *handler) updateWork(c *gin.Context) {
	var req workDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	w := &models.Work{ID: c.Param("id"), UserID: userID(c), ProjectID: req.ProjectID, Name: req.Name, Description: req.Description}
	if err := h.svc.Works.Update(c.Request.Context(), w); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"work": workToDTO(w)})
}

func (h *handler) deleteWork(c *gin.Context) {
	if err := h.svc.Works.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listWorks(c *gin.Context) {
	list, err := h.svc.Works.List(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]workDTO, 0, len(list))
	for _, w := range list {
		out = append(out, workToDTO(w))
	}
	c.JSON(http.StatusOK, out)
}
