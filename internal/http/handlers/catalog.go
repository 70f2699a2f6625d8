package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/http/response"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
	"github.com/yungbote/foodexplorer-backend/internal/services"
)

// CatalogHandler serves the five item routes of one category.
type CatalogHandler struct {
	svc services.CatalogService
	cat catalog.Category
}

func NewCatalogHandler(svc services.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc, cat: svc.Category()}
}

func (h *CatalogHandler) Category() catalog.Category { return h.cat }

func (h *CatalogHandler) bindPayload(c *gin.Context) (catalog.Payload, error) {
	var p catalog.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		return p, apierr.Validation(fmt.Sprintf("invalid %s payload: %s", h.cat.Name, err.Error()))
	}
	return p, nil
}

// POST /{category}
func (h *CatalogHandler) Create(c *gin.Context) {
	actor, err := requestIdentity(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := services.RequireAdmin(actor, "create"); err != nil {
		response.RespondError(c, err)
		return
	}
	p, err := h.bindPayload(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	id, err := h.svc.Create(c.Request.Context(), actor, p)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, response.MessageEnvelope{
		Message: fmt.Sprintf("%s created successfully", h.cat.Name),
		ID:      id,
	})
}

// GET /{category}
func (h *CatalogHandler) List(c *gin.Context) {
	actor, err := requestIdentity(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	items, err := h.svc.List(c.Request.Context(), actor.ID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, items)
}

// GET /{category}/:id
func (h *CatalogHandler) Show(c *gin.Context) {
	id, err := pathID(c, h.cat.Name)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	item, err := h.svc.Show(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, item)
}

// PUT /{category}/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	actor, err := requestIdentity(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := services.RequireAdmin(actor, "update"); err != nil {
		response.RespondError(c, err)
		return
	}
	id, err := pathID(c, h.cat.Name)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	p, err := h.bindPayload(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.svc.Update(c.Request.Context(), actor, id, p); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, fmt.Sprintf("%s updated successfully", h.cat.Name))
}

// DELETE /{category}/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	actor, err := requestIdentity(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := services.RequireAdmin(actor, "delete"); err != nil {
		response.RespondError(c, err)
		return
	}
	id, err := pathID(c, h.cat.Name)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, fmt.Sprintf("%s deleted successfully", h.cat.Name))
}
