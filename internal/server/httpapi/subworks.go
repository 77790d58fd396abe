package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (h *handler) createSubwork(c *gin.Context) {
	var req subworkDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sw, err := h.svc.Subworks.Create(c.Request.Context(), &models.Subwork{
		UserID:      userID(c),
		WorkID:      req.workID(),
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		DefaultRate: req.DefaultRate.dec(),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subwork": subworkToDTO(sw)})
}

func (h *handler) updateSubwork(c *gin.Context) {
	var req subworkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sw := &models.Subwork{ID: c.Param("id"), UserID: userID(c), Name: req.Name, Description: req.Description, Unit: req.Unit}
	if err := h.svc.Subworks.Update(c.Request.Context(), sw); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// updateDefaultRate takes a single-key object mapping the unit to the rate,
// e.g. {"SFT": 12.5}.
func (h *handler) updateDefaultRate(c *gin.Context) {
	var req map[string]amount
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req) != 1 {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "expected exactly one unit"})
		return
	}

	for unit, rate := range req {
		if err := h.svc.Subworks.SetDefaultRate(c.Request.Context(), userID(c), c.Param("id"), unit, rate.dec()); err != nil {
			h.fail(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) deleteSubwork(c *gin.Context) {
	if err := h.svc.Subworks.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listSubworks(c *gin.Context) {
	list, err := h.svc.Subworks.List(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]subworkDTO, 0, len(list))
	for _, sw := range list {
		out = append(out, subworkToDTO(sw))
	}
	c.JSON(http.StatusOK, out)
}

// itemKind reads the entry group from the X-Item-Type header. A missing
// header means details.
func itemKind(c *gin.Context) (string, bool) {
	kind := c.GetHeader(common.ItemTypeHeaderName)
	if kind == "" {
		return models.KindDetails, true
	}
	return kind, models.ValidKind(kind)
}

func (h *handler) createItems(c *gin.Context) {
	kind, ok := itemKind(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "unknown item type"})
		return
	}
	var req []itemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in := make([]*models.Item, 0, len(req))
	for _, d := range req {
		in = append(in, itemFromDTO(d))
	}
	created, err := h.svc.Items.Create(c.Request.Context(), userID(c), c.Param("id"), kind, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, itemsResponse{Items: itemsToDTO(created)})
}

func (h *handler) updateItem(c *gin.Context) {
	kind, ok := itemKind(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "unknown item type"})
		return
	}
	var req itemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	it := itemFromDTO(req)
	it.ID = c.Param("itemId")
	it.UserID = userID(c)
	it.SubworkID = c.Param("id")
	it.Kind = kind
	if err := h.svc.Items.Update(c.Request.Context(), it); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, itemToDTO(it))
}

func (h *handler) deleteItem(c *gin.Context) {
	kind, ok := itemKind(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "unknown item type"})
		return
	}
	if err := h.svc.Items.Delete(c.Request.Context(), userID(c), c.Param("id"), kind, c.Param("itemId")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
