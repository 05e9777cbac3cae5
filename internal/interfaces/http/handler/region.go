package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pupuk/storefront/internal/domain/region"
)

// RegionHandler exposes the region catalog. Lookups never fail; an
// unavailable collection is an empty list.
type RegionHandler struct {
	BaseHandler
	catalog region.Catalog
}

// NewRegionHandler creates a new RegionHandler
func NewRegionHandler(catalog region.Catalog) *RegionHandler {
	return &RegionHandler{catalog: catalog}
}

// Provinces godoc
// @Summary      List provinces
// @Description  An unavailable collection is returned as an empty list.
// @Tags         regions
// @Produce      json
// @Success      200 {object} dto.Response{data=[]region.Node}
// @Router       /regions/provinces [get]
func (h *RegionHandler) Provinces(c *gin.Context) {
	h.Success(c, h.catalog.ListProvinces(c.Request.Context()))
}

// Regencies godoc
// @Summary      List regencies
// @Tags         regions
// @Produce      json
// @Param        id path string true "Province ID"
// @Success      200 {object} dto.Response{data=[]region.Node}
// @Router       /regions/regencies/{id} [get]
func (h *RegionHandler) Regencies(c *gin.Context) {
	h.Success(c, h.catalog.ListRegencies(c.Request.Context(), c.Param("id")))
}

// Districts godoc
// @Summary      List districts
// @Tags         regions
// @Produce      json
// @Param        id path string true "Regency ID"
// @Success      200 {object} dto.Response{data=[]region.Node}
// @Router       /regions/districts/{id} [get]
func (h *RegionHandler) Districts(c *gin.Context) {
	h.Success(c, h.catalog.ListDistricts(c.Request.Context(), c.Param("id")))
}

// Villages godoc
// @Summary      List villages
// @Tags         regions
// @Produce      json
// @Param        id path string true "District ID"
// @Success      200 {object} dto.Response{data=[]region.Node}
// @Router       /regions/villages/{id} [get]
func (h *RegionHandler) Villages(c *gin.Context) {
	h.Success(c, h.catalog.ListVillages(c.Request.Context(), c.Param("id")))
}
