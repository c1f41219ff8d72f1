package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/warung-pos/models"
	"github.com/yeremiapane/warung-pos/services"
	"github.com/yeremiapane/warung-pos/utils"
)

type CatalogController struct {
	Catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// GetCatalog
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Katalog", cc.Catalog.List())
}

// CreateCatalogItem
func (cc *CatalogController) CreateCatalogItem(c *gin.Context) {
	var req struct {
		ID        string          `json:"id"`
		Kind      models.Kind     `json:"kind" binding:"required"`
		Name      string          `json:"name" binding:"required"`
		Price     int64           `json:"price"`
		Variants  []string        `json:"variants"`
		Category  models.Category `json:"category"`
		Signature bool            `json:"signature"`
		Position  int             `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := cc.Catalog.Create(c.Request.Context(), models.CatalogItem{
		ID:        req.ID,
		Kind:      req.Kind,
		Name:      req.Name,
		Price:     req.Price,
		Variants:  req.Variants,
		Category:  req.Category,
		Signature: req.Signature,
		Position:  req.Position,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item katalog dibuat", item)
}

// UpdateCatalogItem
func (cc *CatalogController) UpdateCatalogItem(c *gin.Context) {
	var patch services.CatalogPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := cc.Catalog.Update(c.Request.Context(), c.Param("item_id"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item katalog diperbarui", item)
}

// DeleteCatalogItem
func (cc *CatalogController) DeleteCatalogItem(c *gin.Context) {
	if err := cc.Catalog.Delete(c.Request.Context(), c.Param("item_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item katalog dihapus", nil)
}
